// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the drawing and finalize statements a sketch script may
// use, and the registry that maps block types to them.
//
// Why a registry?
//
// Statements are validated when a script is loaded, long before anything is
// drawn. Keeping every statement's accepted attributes next to its Go
// implementation lets the loader reject unknown blocks, unknown attributes
// and missing required attributes as load-time errors, with a source range.

package script

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/specialistvlad/hclsketch/internal/document"
	"github.com/zclconf/go-cty/cty"
)

// Attributes every drawing statement accepts.
const (
	attrCount = "count"
	attrLayer = "layer"
)

// args holds the evaluated attributes of one statement.
type args map[string]cty.Value

func (a args) number(name string) (float64, error) {
	var f float64
	if err := decode(a[name], &f); err != nil {
		return 0, fmt.Errorf("attribute %q: %w", name, err)
	}
	return f, nil
}

func (a args) optNumber(name string, def float64) (float64, error) {
	if _, ok := a[name]; !ok {
		return def, nil
	}
	return a.number(name)
}

func (a args) optBool(name string, def bool) (bool, error) {
	if _, ok := a[name]; !ok {
		return def, nil
	}
	var b bool
	if err := decode(a[name], &b); err != nil {
		return false, fmt.Errorf("attribute %q: %w", name, err)
	}
	return b, nil
}

func (a args) optString(name, def string) (string, error) {
	if _, ok := a[name]; !ok {
		return def, nil
	}
	var s string
	if err := decode(a[name], &s); err != nil {
		return "", fmt.Errorf("attribute %q: %w", name, err)
	}
	return s, nil
}

// pair reads a two-number list such as [dx, dy].
func (a args) pair(name string) (float64, float64, error) {
	var p []float64
	if err := decode(a[name], &p); err != nil {
		return 0, 0, fmt.Errorf("attribute %q: %w", name, err)
	}
	if len(p) != 2 {
		return 0, 0, fmt.Errorf("attribute %q: expected 2 numbers, got %d", name, len(p))
	}
	return p[0], p[1], nil
}

func (a args) points(name string) (document.Path, error) {
	var raw [][]float64
	if err := decode(a[name], &raw); err != nil {
		return nil, fmt.Errorf("attribute %q: %w", name, err)
	}
	path := make(document.Path, len(raw))
	for i, pt := range raw {
		if len(pt) != 2 {
			return nil, fmt.Errorf("attribute %q: point %d must have 2 coordinates, got %d", name, i, len(pt))
		}
		path[i] = mgl64.Vec2{pt[0], pt[1]}
	}
	return path, nil
}

// drawStatement is a block allowed inside draw.
type drawStatement struct {
	Required []string
	Optional []string
	// Build returns the geometry of one evaluation, in local coordinates.
	Build func(a args) ([]document.Path, error)
	// Transform is set on container statements instead of Build. Their
	// nested statements are drawn under the returned local transform.
	Transform func(a args) (mgl64.Mat3, error)
}

// finalizeStatement is a block allowed inside finalize.
type finalizeStatement struct {
	Required []string
	Optional []string
	Apply    func(doc *document.Document, a args) error
}

// registry holds all statements known to the runtime.
type registry struct {
	draw     map[string]*drawStatement
	finalize map[string]*finalizeStatement
}

func newRegistry() *registry {
	return &registry{
		draw:     make(map[string]*drawStatement),
		finalize: make(map[string]*finalizeStatement),
	}
}

// registerDraw adds a drawing statement. Registering a name twice is a
// programming error.
func (r *registry) registerDraw(name string, st *drawStatement) {
	if _, exists := r.draw[name]; exists {
		panic(fmt.Sprintf("draw statement '%s' already registered", name))
	}
	r.draw[name] = st
}

// registerFinalize adds a finalize statement. Registering a name twice is a
// programming error.
func (r *registry) registerFinalize(name string, st *finalizeStatement) {
	if _, exists := r.finalize[name]; exists {
		panic(fmt.Sprintf("finalize statement '%s' already registered", name))
	}
	r.finalize[name] = st
}

// statements is the registry every script is checked and run against.
var statements = defaultRegistry()

func defaultRegistry() *registry {
	r := newRegistry()

	r.registerDraw("line", &drawStatement{
		Required: []string{"x1", "y1", "x2", "y2"},
		Build: func(a args) ([]document.Path, error) {
			var c [4]float64
			for i, name := range []string{"x1", "y1", "x2", "y2"} {
				v, err := a.number(name)
				if err != nil {
					return nil, err
				}
				c[i] = v
			}
			return []document.Path{{{c[0], c[1]}, {c[2], c[3]}}}, nil
		},
	})

	r.registerDraw("rect", &drawStatement{
		Required: []string{"x", "y", "width", "height"},
		Optional: []string{"mode"},
		Build: func(a args) ([]document.Path, error) {
			var c [4]float64
			for i, name := range []string{"x", "y", "width", "height"} {
				v, err := a.number(name)
				if err != nil {
					return nil, err
				}
				c[i] = v
			}
			mode, err := a.optString("mode", "corner")
			if err != nil {
				return nil, err
			}
			x, y, w, h := c[0], c[1], c[2], c[3]
			switch mode {
			case "corner":
			case "center":
				x, y = x-w/2, y-h/2
			default:
				return nil, fmt.Errorf("attribute \"mode\": must be 'corner' or 'center', got %q", mode)
			}
			return []document.Path{{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}, {x, y}}}, nil
		},
	})

	r.registerDraw("circle", &drawStatement{
		Required: []string{"x", "y", "radius"},
		Optional: []string{"segments"},
		Build: func(a args) ([]document.Path, error) {
			x, err := a.number("x")
			if err != nil {
				return nil, err
			}
			y, err := a.number("y")
			if err != nil {
				return nil, err
			}
			radius, err := a.number("radius")
			if err != nil {
				return nil, err
			}
			segments, err := a.optNumber("segments", 64)
			if err != nil {
				return nil, err
			}
			n := int(segments)
			if n < 3 {
				return nil, fmt.Errorf("attribute \"segments\": must be at least 3, got %d", n)
			}
			path := make(document.Path, 0, n+1)
			for i := 0; i < n; i++ {
				angle := 2 * math.Pi * float64(i) / float64(n)
				path = append(path, mgl64.Vec2{x + radius*math.Cos(angle), y + radius*math.Sin(angle)})
			}
			path = append(path, path[0])
			return []document.Path{path}, nil
		},
	})

	r.registerDraw("point", &drawStatement{
		Required: []string{"x", "y"},
		Build: func(a args) ([]document.Path, error) {
			x, err := a.number("x")
			if err != nil {
				return nil, err
			}
			y, err := a.number("y")
			if err != nil {
				return nil, err
			}
			return []document.Path{{{x, y}}}, nil
		},
	})

	r.registerDraw("polyline", &drawStatement{
		Required: []string{"points"},
		Optional: []string{"closed"},
		Build: func(a args) ([]document.Path, error) {
			path, err := a.points("points")
			if err != nil {
				return nil, err
			}
			closed, err := a.optBool("closed", false)
			if err != nil {
				return nil, err
			}
			if closed && len(path) > 1 {
				path = append(path, path[0])
			}
			return []document.Path{path}, nil
		},
	})

	r.registerDraw("group", &drawStatement{
		Optional: []string{"translate", "rotate", "scale"},
		Transform: func(a args) (mgl64.Mat3, error) {
			m := mgl64.Ident3()
			if _, ok := a["translate"]; ok {
				dx, dy, err := a.pair("translate")
				if err != nil {
					return m, err
				}
				m = m.Mul3(mgl64.Translate2D(dx, dy))
			}
			if _, ok := a["rotate"]; ok {
				deg, err := a.number("rotate")
				if err != nil {
					return m, err
				}
				m = m.Mul3(mgl64.HomogRotate2D(mgl64.DegToRad(deg)))
			}
			if _, ok := a["scale"]; ok {
				sx, sy, err := a.pair("scale")
				if err != nil {
					return m, err
				}
				m = m.Mul3(mgl64.Scale2D(sx, sy))
			}
			return m, nil
		},
	})

	r.registerFinalize("linemerge", &finalizeStatement{
		Optional: []string{"tolerance"},
		Apply: func(doc *document.Document, a args) error {
			tol, err := a.optNumber("tolerance", 0.2)
			if err != nil {
				return err
			}
			doc.MergeLines(tol)
			return nil
		},
	})

	r.registerFinalize("linesort", &finalizeStatement{
		Apply: func(doc *document.Document, _ args) error {
			doc.SortLines()
			return nil
		},
	})

	r.registerFinalize("translate", &finalizeStatement{
		Required: []string{"dx", "dy"},
		Apply: func(doc *document.Document, a args) error {
			dx, err := a.number("dx")
			if err != nil {
				return err
			}
			dy, err := a.number("dy")
			if err != nil {
				return err
			}
			doc.Translate(dx, dy)
			return nil
		},
	})

	r.registerFinalize("scale", &finalizeStatement{
		Required: []string{"sx"},
		Optional: []string{"sy"},
		Apply: func(doc *document.Document, a args) error {
			sx, err := a.number("sx")
			if err != nil {
				return err
			}
			sy, err := a.optNumber("sy", sx)
			if err != nil {
				return err
			}
			doc.Scale(sx, sy)
			return nil
		},
	})

	r.registerFinalize("rotate", &finalizeStatement{
		Required: []string{"degrees"},
		Apply: func(doc *document.Document, a args) error {
			deg, err := a.number("degrees")
			if err != nil {
				return err
			}
			doc.Rotate(deg)
			return nil
		},
	})

	return r
}
