// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package sketch

import (
	"github.com/specialistvlad/hclsketch/internal/document"
)

// Document is the part of the produced geometry the executor needs.
type Document interface {
	PageSize() (document.Size, bool)
	Bounds() (document.Rect, bool)
	Translate(dx, dy float64)
}

// Sketch is the capability contract of a sketch instance.
type Sketch interface {
	// Draw runs the drawing procedure, populating Document.
	Draw() error
	// Finalize runs the post-drawing procedure.
	Finalize() error
	// RandomSeed seeds the instance's primary randomness source.
	RandomSeed(seed int64)
	// NoiseSeed seeds the instance's noise source.
	NoiseSeed(seed int64)
	// Centered reports whether the drawing should be centered on the page.
	Centered() bool
	// Document returns the drawing produced so far.
	Document() Document
}

// ParamSetter is implemented by sketches that accept a param set.
type ParamSetter interface {
	SetParams(params map[string]any) error
}

// ParamGetter is implemented by sketches that can report their effective
// parameter values.
type ParamGetter interface {
	Params() map[string]any
}
