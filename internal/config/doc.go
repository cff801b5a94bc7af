// Package config loads and saves param sets: named parameter values for a
// sketch, stored next to the sketch script in its config directory.
//
// JSON is the native format and the only one Save writes. Param sets may
// also be hand-written as TOML or YAML; the format is chosen by the file
// extension.
package config
