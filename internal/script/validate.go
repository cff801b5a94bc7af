// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package script

import (
	"fmt"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// validateDraw statically checks the statements of a draw body, recursing
// into groups.
func validateDraw(body *hclsyntax.Body) hcl.Diagnostics {
	var diags hcl.Diagnostics
	for name, attr := range body.Attributes {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unexpected attribute",
			Detail:   fmt.Sprintf("Attribute %q is not allowed here; only drawing statements are.", name),
			Subject:  attr.NameRange.Ptr(),
		})
	}

	for _, block := range body.Blocks {
		st, ok := statements.draw[block.Type]
		if !ok {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unknown drawing statement",
				Detail:   fmt.Sprintf("There is no drawing statement named %q.", block.Type),
				Subject:  block.DefRange().Ptr(),
			})
			continue
		}
		diags = append(diags, checkLabels(block)...)

		allowed := append([]string{attrCount}, st.Optional...)
		if st.Transform == nil {
			allowed = append(allowed, attrLayer)
			if len(block.Body.Blocks) > 0 {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Unexpected nested block",
					Detail:   fmt.Sprintf("Statement %q cannot contain blocks; use a group.", block.Type),
					Subject:  block.Body.Blocks[0].DefRange().Ptr(),
				})
			}
		} else {
			diags = append(diags, validateDraw(&hclsyntax.Body{
				Blocks:   block.Body.Blocks,
				SrcRange: block.Body.SrcRange,
				EndRange: block.Body.EndRange,
			})...)
		}
		diags = append(diags, checkAttributes(block, st.Required, allowed)...)
	}
	return diags
}

// validateFinalize statically checks the statements of a finalize body.
func validateFinalize(body *hclsyntax.Body) hcl.Diagnostics {
	var diags hcl.Diagnostics
	for name, attr := range body.Attributes {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unexpected attribute",
			Detail:   fmt.Sprintf("Attribute %q is not allowed here; only finalize statements are.", name),
			Subject:  attr.NameRange.Ptr(),
		})
	}
	for _, block := range body.Blocks {
		st, ok := statements.finalize[block.Type]
		if !ok {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unknown finalize statement",
				Detail:   fmt.Sprintf("There is no finalize statement named %q.", block.Type),
				Subject:  block.DefRange().Ptr(),
			})
			continue
		}
		diags = append(diags, checkLabels(block)...)
		diags = append(diags, checkAttributes(block, st.Required, st.Optional)...)
	}
	return diags
}

func checkLabels(block *hclsyntax.Block) hcl.Diagnostics {
	if len(block.Labels) == 0 {
		return nil
	}
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Unexpected label",
		Detail:   fmt.Sprintf("Statement %q takes no labels.", block.Type),
		Subject:  block.LabelRanges[0].Ptr(),
	}}
}

// checkAttributes reports unknown and missing attributes of a block.
func checkAttributes(block *hclsyntax.Block, required, optional []string) hcl.Diagnostics {
	var diags hcl.Diagnostics
	for name, attr := range block.Body.Attributes {
		if slices.Contains(required, name) || slices.Contains(optional, name) {
			continue
		}
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported argument",
			Detail:   fmt.Sprintf("An argument named %q is not expected in a %q statement.", name, block.Type),
			Subject:  attr.NameRange.Ptr(),
		})
	}
	for _, name := range required {
		if _, ok := block.Body.Attributes[name]; !ok {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Missing required argument",
				Detail:   fmt.Sprintf("The argument %q is required in a %q statement.", name, block.Type),
				Subject:  block.DefRange().Ptr(),
			})
		}
	}
	return diags
}
