// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package script

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/hclsketch/internal/hclutil"
	"github.com/zclconf/go-cty/cty"
)

// Attributes of a sketch block.
const (
	attrPageSize  = "page_size"
	attrLandscape = "landscape"
	attrCentered  = "centered"
)

// param is a declared sketch parameter and its default value.
type param struct {
	Name        string
	Description string
	Default     cty.Value
}

// sketchType is a compiled sketch declaration, shared by all its instances.
type sketchType struct {
	name   string
	path   string
	locals cty.Value
	params []param

	pageSize  hcl.Expression
	landscape hcl.Expression
	centered  hcl.Expression

	draw     *hclsyntax.Body
	finalize *hclsyntax.Body
}

// defaults returns a fresh copy of the parameter defaults.
func (t *sketchType) defaults() map[string]cty.Value {
	out := make(map[string]cty.Value, len(t.params))
	for _, p := range t.params {
		out[p.Name] = p.Default
	}
	return out
}

// compileSketch checks a conforming declaration and evaluates its parameter
// defaults with the script's top-level context.
func compileSketch(prog *program, decl *declaration) (*sketchType, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	body := decl.Block.Body

	t := &sketchType{
		name:   decl.Name,
		path:   prog.path,
		locals: prog.localsValue(),
	}

	for name, attr := range body.Attributes {
		switch name {
		case attrPageSize:
			t.pageSize = attr.Expr
		case attrLandscape:
			t.landscape = attr.Expr
		case attrCentered:
			t.centered = attr.Expr
		default:
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unsupported argument",
				Detail:   fmt.Sprintf("An argument named %q is not expected in a sketch.", name),
				Subject:  attr.NameRange.Ptr(),
			})
		}
	}

	drawBlock, d := hclutil.FindUniqueBlock(body.Blocks, blockDraw)
	diags = append(diags, d...)
	if drawBlock != nil {
		t.draw = drawBlock.Body
		diags = append(diags, validateDraw(drawBlock.Body)...)
	}

	finalizeBlock, d := hclutil.FindUniqueBlock(body.Blocks, blockFinalize)
	diags = append(diags, d...)
	if finalizeBlock != nil {
		t.finalize = finalizeBlock.Body
		diags = append(diags, validateFinalize(finalizeBlock.Body)...)
	}

	seen := make(map[string]bool)
	for _, block := range body.Blocks {
		switch block.Type {
		case blockDraw, blockFinalize:
			continue
		case blockParam:
			p, d := compileParam(prog, block)
			diags = append(diags, d...)
			if d.HasErrors() {
				continue
			}
			if seen[p.Name] {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Duplicate parameter",
					Detail:   fmt.Sprintf("A parameter named %q was already declared.", p.Name),
					Subject:  block.LabelRanges[0].Ptr(),
				})
				continue
			}
			seen[p.Name] = true
			t.params = append(t.params, p)
		default:
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unsupported block type",
				Detail:   fmt.Sprintf("Blocks of type %q are not expected in a sketch.", block.Type),
				Subject:  block.DefRange().Ptr(),
			})
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return t, diags
}

func compileParam(prog *program, block *hclsyntax.Block) (param, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	if len(block.Labels) != 1 {
		return param{}, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid parameter",
			Detail:   "A param block takes exactly one name label.",
			Subject:  block.DefRange().Ptr(),
		})
	}
	p := param{Name: block.Labels[0]}

	for name, attr := range block.Body.Attributes {
		val, valDiags := attr.Expr.Value(prog.evalContext())
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			continue
		}
		switch name {
		case "default":
			if val.IsNull() {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Invalid parameter default",
					Detail:   fmt.Sprintf("Parameter %q needs a non-null default.", p.Name),
					Subject:  attr.Expr.Range().Ptr(),
				})
				continue
			}
			p.Default = val
		case "description":
			if err := decode(val, &p.Description); err != nil {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Invalid parameter description",
					Detail:   err.Error(),
					Subject:  attr.Expr.Range().Ptr(),
				})
			}
		default:
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unsupported argument",
				Detail:   fmt.Sprintf("An argument named %q is not expected in a param block.", name),
				Subject:  attr.NameRange.Ptr(),
			})
		}
	}
	if _, ok := block.Body.Attributes["default"]; !ok {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing parameter default",
			Detail:   fmt.Sprintf("Parameter %q needs a default value.", p.Name),
			Subject:  block.DefRange().Ptr(),
		})
	}
	return p, diags
}
