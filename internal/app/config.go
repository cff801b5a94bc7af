package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SketchPath string // script file, or directory holding sketch.hcl

	Seed       *int64 // nil leaves every randomness source unseeded
	Finalize   bool
	ConfigName string // param set to apply, by name in the config dir or by path
	SaveConfig bool
	OutputDir  string // defaults to "output" next to the script
	List       bool   // list the sketches below SketchPath instead of running

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.SketchPath == "" {
		return nil, errors.New("SketchPath is a required configuration field and cannot be empty")
	}
	if cfg.List && (cfg.ConfigName != "" || cfg.SaveConfig) {
		return nil, errors.New("listing sketches cannot be combined with param set options")
	}

	return &cfg, nil
}
