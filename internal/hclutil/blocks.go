// Package hclutil holds small helpers over the hclsyntax tree shared by the
// script runtime.
package hclutil

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// FindUniqueBlock searches a slice of blocks for all blocks of a given name.
// It returns a diagnostic error if more than one block of that name is found.
// If no block is found, it returns nil.
func FindUniqueBlock(blocks hclsyntax.Blocks, name string) (*hclsyntax.Block, hcl.Diagnostics) {
	var found *hclsyntax.Block
	var diags hcl.Diagnostics

	for _, block := range blocks {
		if block.Type != name {
			continue
		}
		if found != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate \"" + name + "\" block",
				Detail:   "Only one \"" + name + "\" block is allowed.",
				Subject:  block.DefRange().Ptr(),
			})
			continue
		}
		found = block
	}

	return found, diags
}

// SortedAttributes returns the attributes of a body in source order. The
// body stores them in a map, so ranging over it directly is unordered.
func SortedAttributes(attrs hclsyntax.Attributes) []*hclsyntax.Attribute {
	sorted := make([]*hclsyntax.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		sorted = append(sorted, attr)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].SrcRange.Start.Byte < sorted[j].SrcRange.Start.Byte
	})
	return sorted
}
