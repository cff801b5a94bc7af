// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file runs the top-level code of a script and records what it
// declares.
//
// Running a script means parsing it into a fresh namespace, evaluating its
// locals blocks top to bottom, and recording every other top-level block as
// a declaration, in literal source order. Discovery later walks that order
// to pick the first declaration that satisfies the sketch contract.

package script

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/hclsketch/internal/hclutil"
	"github.com/zclconf/go-cty/cty"
)

// Top-level and sketch-level block types.
const (
	blockLocals   = "locals"
	blockSketch   = "sketch"
	blockParam    = "param"
	blockDraw     = "draw"
	blockFinalize = "finalize"
)

// declaration is a top-level block other than locals.
type declaration struct {
	Kind  string
	Name  string
	Block *hclsyntax.Block
}

// conforms reports whether the declaration satisfies the sketch contract,
// and if not, why.
func (d *declaration) conforms() (bool, string) {
	if d.Kind != blockSketch {
		return false, fmt.Sprintf("%q blocks are not sketches", d.Kind)
	}
	if len(d.Block.Labels) != 1 {
		return false, "a sketch takes exactly one name label"
	}
	draws, finalizes := 0, 0
	for _, b := range d.Block.Body.Blocks {
		switch b.Type {
		case blockDraw:
			draws++
		case blockFinalize:
			finalizes++
		}
	}
	if draws != 1 {
		return false, fmt.Sprintf("a sketch needs exactly one draw block, found %d", draws)
	}
	if finalizes > 1 {
		return false, fmt.Sprintf("a sketch allows at most one finalize block, found %d", finalizes)
	}
	return true, ""
}

// program is a script after its top-level code has run.
type program struct {
	path   string
	locals map[string]cty.Value
	decls  []*declaration
}

// localsValue returns the locals as the object bound to `local`.
func (p *program) localsValue() cty.Value {
	return cty.ObjectVal(p.locals)
}

// runProgram parses the script at path and runs its top-level code.
func runProgram(parser *hclparse.Parser, path string) (*program, hcl.Diagnostics) {
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, diags
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported script syntax",
			Detail:   "Scripts must use native HCL syntax.",
		})
	}

	prog := &program{
		path:   path,
		locals: make(map[string]cty.Value),
	}

	for _, attr := range hclutil.SortedAttributes(body.Attributes) {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unexpected top-level attribute",
			Detail:   fmt.Sprintf("Attribute %q must be declared inside a locals block.", attr.Name),
			Subject:  attr.NameRange.Ptr(),
		})
	}

	for _, block := range body.Blocks {
		if block.Type == blockLocals {
			diags = append(diags, prog.evalLocals(block)...)
			continue
		}
		decl := &declaration{Kind: block.Type, Block: block}
		if len(block.Labels) > 0 {
			decl.Name = block.Labels[0]
		}
		prog.decls = append(prog.decls, decl)
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return prog, diags
}

// evalLocals evaluates one locals block. A local sees every local defined
// before it.
func (p *program) evalLocals(block *hclsyntax.Block) hcl.Diagnostics {
	var diags hcl.Diagnostics
	if len(block.Labels) > 0 || len(block.Body.Blocks) > 0 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid locals block",
			Detail:   "A locals block takes no labels and contains only attributes.",
			Subject:  block.DefRange().Ptr(),
		})
	}

	for _, attr := range hclutil.SortedAttributes(block.Body.Attributes) {
		if _, exists := p.locals[attr.Name]; exists {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate local value",
				Detail:   fmt.Sprintf("A local value named %q was already defined.", attr.Name),
				Subject:  attr.NameRange.Ptr(),
			})
			continue
		}
		val, valDiags := attr.Expr.Value(p.evalContext())
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			continue
		}
		p.locals[attr.Name] = val
	}
	return diags
}

// evalContext is the context of top-level code: locals and the pure
// functions, no randomness.
func (p *program) evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"local": p.localsValue()},
		Functions: pureFunctions(),
	}
}
