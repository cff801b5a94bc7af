// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Sketch, one running instance of a sketch declared in a
// script.
//
// Why evaluate page settings inside Draw?
//
// The page size, orientation and centering of a sketch may depend on its
// parameters, and parameters are only final once a param set has been
// applied to the fresh instance. Evaluating them as the first step of Draw
// keeps the instance usable with any param set and mirrors scripts where the
// page is configured at the top of the drawing procedure.

package script

import (
	"fmt"
	"maps"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/hclsketch/internal/document"
	"github.com/specialistvlad/hclsketch/internal/hclutil"
	"github.com/specialistvlad/hclsketch/internal/sketch"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// instanceStream is the PCG stream of every instance's primary source.
const instanceStream uint64 = 0x94d049bb133111eb

// Perlin parameters: persistence, lacunarity and octaves.
const (
	noiseAlpha   = 2
	noiseBeta    = 2
	noiseOctaves = 3
)

// Sketch is an instance of a sketch declared in a script. It implements
// sketch.Sketch.
type Sketch struct {
	typ      *sketchType
	params   map[string]cty.Value
	doc      *document.Document
	centered bool
	rand     *rand.Rand
	noise    *perlin.Perlin
}

var _ sketch.Sketch = (*Sketch)(nil)

func newSketch(typ *sketchType) *Sketch {
	return &Sketch{
		typ:      typ,
		params:   typ.defaults(),
		doc:      document.New(),
		centered: true,
		rand:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		noise:    newNoise(rand.Int64()),
	}
}

func newNoise(seed int64) *perlin.Perlin {
	return perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed)
}

// RandomSeed seeds the instance's primary randomness source.
func (s *Sketch) RandomSeed(seed int64) {
	s.rand = rand.New(rand.NewPCG(uint64(seed), instanceStream))
}

// NoiseSeed seeds the instance's noise source.
func (s *Sketch) NoiseSeed(seed int64) {
	s.noise = newNoise(seed)
}

// Centered reports the sketch's centered flag.
func (s *Sketch) Centered() bool { return s.centered }

// Document returns the drawing.
func (s *Sketch) Document() sketch.Document { return s.doc }

// Doc returns the concrete drawing, for serialization.
func (s *Sketch) Doc() *document.Document { return s.doc }

// noiseAt samples Perlin noise in 1 to 3 dimensions, mapped to [0, 1].
func (s *Sketch) noiseAt(coords ...float64) float64 {
	var v float64
	switch len(coords) {
	case 1:
		v = s.noise.Noise1D(coords[0])
	case 2:
		v = s.noise.Noise2D(coords[0], coords[1])
	default:
		v = s.noise.Noise3D(coords[0], coords[1], coords[2])
	}
	return math.Min(1, math.Max(0, (v+1)/2))
}

// SetParams overrides parameter values. Names the sketch does not declare
// are ignored; values must convert to the type of the declared default.
func (s *Sketch) SetParams(params map[string]any) error {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		current, ok := s.params[name]
		if !ok {
			continue
		}
		val, err := goToCty(params[name])
		if err != nil {
			return fmt.Errorf("parameter %q: %w", name, err)
		}
		converted, err := convert.Convert(val, current.Type())
		if err != nil {
			return fmt.Errorf("parameter %q: cannot use %s as %s: %w", name, val.Type().FriendlyName(), current.Type().FriendlyName(), err)
		}
		s.params[name] = converted
	}
	return nil
}

// Params returns the current parameter values as plain Go data.
func (s *Sketch) Params() map[string]any {
	out := make(map[string]any, len(s.params))
	for name, val := range s.params {
		goVal, err := ctyToGo(val)
		if err != nil {
			continue
		}
		out[name] = goVal
	}
	return out
}

// evalContext builds the evaluation context of drawing code.
func (s *Sketch) evalContext() *hcl.EvalContext {
	vars := map[string]cty.Value{
		"local": s.typ.locals,
		"param": cty.ObjectVal(maps.Clone(s.params)),
	}
	if size, ok := s.doc.PageSize(); ok {
		vars["page"] = cty.ObjectVal(map[string]cty.Value{
			"width":  cty.NumberFloatVal(size.Width),
			"height": cty.NumberFloatVal(size.Height),
		})
	}
	return &hcl.EvalContext{
		Variables: vars,
		Functions: merged(pureFunctions(), globalRandomFunctions(), s.instanceFunctions()),
	}
}

// Draw evaluates the page settings and runs the draw block.
func (s *Sketch) Draw() error {
	if diags := s.setup(s.evalContext()); diags.HasErrors() {
		return diags
	}
	if diags := s.drawBody(s.typ.draw, mgl64.Ident3(), s.evalContext()); diags.HasErrors() {
		return diags
	}
	return nil
}

// setup evaluates page_size, landscape and centered.
func (s *Sketch) setup(ctx *hcl.EvalContext) hcl.Diagnostics {
	var diags hcl.Diagnostics

	landscape := false
	if s.typ.landscape != nil {
		val, d := s.typ.landscape.Value(ctx)
		diags = append(diags, d...)
		if !d.HasErrors() {
			if err := decode(val, &landscape); err != nil {
				diags = append(diags, exprError(s.typ.landscape, "Invalid landscape value", err))
			}
		}
	}

	if s.typ.centered != nil {
		val, d := s.typ.centered.Value(ctx)
		diags = append(diags, d...)
		if !d.HasErrors() {
			if err := decode(val, &s.centered); err != nil {
				diags = append(diags, exprError(s.typ.centered, "Invalid centered value", err))
			}
		}
	}

	if s.typ.pageSize != nil {
		val, d := s.typ.pageSize.Value(ctx)
		diags = append(diags, d...)
		if !d.HasErrors() {
			size, err := pageSizeFromValue(val)
			if err != nil {
				diags = append(diags, exprError(s.typ.pageSize, "Invalid page size", err))
			} else {
				if landscape {
					size = size.Landscape()
				}
				s.doc.SetPageSize(size)
			}
		}
	}
	return diags
}

// pageSizeFromValue accepts a format name or a [width, height] pair.
func pageSizeFromValue(val cty.Value) (document.Size, error) {
	if val.Type() == cty.String {
		return document.PageSizeByName(val.AsString())
	}
	var wh []float64
	if err := decode(val, &wh); err != nil {
		return document.Size{}, fmt.Errorf("expected a format name or [width, height]: %w", err)
	}
	if len(wh) != 2 || wh[0] <= 0 || wh[1] <= 0 {
		return document.Size{}, fmt.Errorf("expected two positive numbers, got %v", wh)
	}
	return document.Size{Width: wh[0], Height: wh[1]}, nil
}

// drawBody runs the drawing statements of a body under transform m.
func (s *Sketch) drawBody(body *hclsyntax.Body, m mgl64.Mat3, parent *hcl.EvalContext) hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, block := range body.Blocks {
		st := statements.draw[block.Type]

		n, d := evalCount(block, parent)
		diags = append(diags, d...)
		if d.HasErrors() {
			return diags
		}

		for i := 0; i < n; i++ {
			ctx := parent.NewChild()
			ctx.Variables = map[string]cty.Value{
				attrCount: cty.ObjectVal(map[string]cty.Value{"index": cty.NumberIntVal(int64(i))}),
			}

			a, d := evalArgs(block, ctx)
			diags = append(diags, d...)
			if d.HasErrors() {
				return diags
			}

			if st.Transform != nil {
				local, err := st.Transform(a)
				if err != nil {
					return append(diags, blockError(block, err))
				}
				diags = append(diags, s.drawBody(block.Body, m.Mul3(local), ctx)...)
				if diags.HasErrors() {
					return diags
				}
				continue
			}

			layer, err := layerOf(a)
			if err != nil {
				return append(diags, blockError(block, err))
			}
			paths, err := st.Build(a)
			if err != nil {
				return append(diags, blockError(block, err))
			}
			for _, p := range paths {
				for j := range p {
					p[j] = document.Apply(m, p[j])
				}
				s.doc.Add(layer, p)
			}
		}
	}
	return diags
}

// Finalize runs the finalize block, if the sketch has one.
func (s *Sketch) Finalize() error {
	if s.typ.finalize == nil {
		return nil
	}
	ctx := s.evalContext()
	for _, block := range s.typ.finalize.Blocks {
		a, diags := evalArgs(block, ctx)
		if diags.HasErrors() {
			return diags
		}
		if err := statements.finalize[block.Type].Apply(s.doc, a); err != nil {
			return hcl.Diagnostics{blockError(block, err)}
		}
	}
	return nil
}

// evalCount evaluates the count attribute of a statement, 1 when absent.
func evalCount(block *hclsyntax.Block, ctx *hcl.EvalContext) (int, hcl.Diagnostics) {
	attr, ok := block.Body.Attributes[attrCount]
	if !ok {
		return 1, nil
	}
	val, diags := attr.Expr.Value(ctx)
	if diags.HasErrors() {
		return 0, diags
	}
	var n int
	if err := decode(val, &n); err != nil {
		return 0, append(diags, exprError(attr.Expr, "Invalid count value", err))
	}
	if n < 0 {
		return 0, append(diags, exprError(attr.Expr, "Invalid count value", fmt.Errorf("count must not be negative, got %d", n)))
	}
	return n, diags
}

// evalArgs evaluates the attributes of a statement in source order, so
// that random draws happen in a reproducible order. count is skipped.
func evalArgs(block *hclsyntax.Block, ctx *hcl.EvalContext) (args, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	a := make(args, len(block.Body.Attributes))
	for _, attr := range hclutil.SortedAttributes(block.Body.Attributes) {
		if attr.Name == attrCount {
			continue
		}
		val, d := attr.Expr.Value(ctx)
		diags = append(diags, d...)
		if d.HasErrors() {
			return nil, diags
		}
		a[attr.Name] = val
	}
	return a, diags
}

func layerOf(a args) (int, error) {
	f, err := a.optNumber(attrLayer, document.DefaultLayer)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f < 1 {
		return 0, fmt.Errorf("attribute %q: must be a positive whole number, got %v", attrLayer, f)
	}
	return int(f), nil
}

func exprError(expr hcl.Expression, summary string, err error) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   err.Error(),
		Subject:  expr.Range().Ptr(),
	}
}

func blockError(block *hclsyntax.Block, err error) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  fmt.Sprintf("Invalid %q statement", block.Type),
		Detail:   err.Error(),
		Subject:  block.DefRange().Ptr(),
	}
}
