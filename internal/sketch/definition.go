// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package sketch

import (
	"fmt"
	"maps"
)

// Constructor creates a fresh, unseeded sketch instance. It may return nil,
// nil when no usable instance can be built.
type Constructor func() (Sketch, error)

// Definition is a discovered sketch type.
type Definition struct {
	// Name is the declared name of the sketch.
	Name string
	// Path is the script the definition was loaded from, if any.
	Path string
	// HomeDir is the directory the definition was loaded from. Executions
	// run with it as working directory. Empty means the process's current
	// directory at execution time.
	HomeDir string

	ctor     Constructor
	paramSet map[string]any
}

// NewDefinition creates a definition around a constructor.
func NewDefinition(name string, ctor Constructor) *Definition {
	return &Definition{Name: name, ctor: ctor}
}

// AttachHomeDir records the directory the definition was loaded from. The
// home directory is attached once; later calls are ignored.
func (d *Definition) AttachHomeDir(dir string) {
	if d.HomeDir == "" {
		d.HomeDir = dir
	}
}

// SetParamSet stores parameter overrides applied to every instance created
// from this definition. Instances that do not implement ParamSetter ignore
// them.
func (d *Definition) SetParamSet(params map[string]any) {
	d.paramSet = maps.Clone(params)
}

// New instantiates the definition.
func (d *Definition) New() (Sketch, error) {
	if d.ctor == nil {
		return nil, nil
	}
	s, err := d.ctor()
	if err != nil || s == nil {
		return nil, err
	}
	if len(d.paramSet) > 0 {
		if setter, ok := s.(ParamSetter); ok {
			if err := setter.SetParams(d.paramSet); err != nil {
				return nil, fmt.Errorf("failed to apply param set to sketch %q: %w", d.Name, err)
			}
		}
	}
	return s, nil
}
