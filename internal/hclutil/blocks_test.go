package hclutil

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/require"
)

func parseBody(t *testing.T, src string) *hclsyntax.Body {
	t.Helper()
	file, diags := hclsyntax.ParseConfig([]byte(src), "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())
	return file.Body.(*hclsyntax.Body)
}

func TestFindUniqueBlock(t *testing.T) {
	body := parseBody(t, `
draw {}
finalize {}
finalize {}
`)

	draw, diags := FindUniqueBlock(body.Blocks, "draw")
	require.False(t, diags.HasErrors())
	require.NotNil(t, draw)

	missing, diags := FindUniqueBlock(body.Blocks, "param")
	require.False(t, diags.HasErrors())
	require.Nil(t, missing)

	_, diags = FindUniqueBlock(body.Blocks, "finalize")
	require.True(t, diags.HasErrors())
	require.Contains(t, diags.Error(), `Duplicate "finalize" block`)
}

func TestSortedAttributes_SourceOrder(t *testing.T) {
	body := parseBody(t, `
zeta  = 1
alpha = 2
mid   = 3
`)
	var names []string
	for _, attr := range SortedAttributes(body.Attributes) {
		names = append(names, attr.Name)
	}
	require.Equal(t, []string{"zeta", "alpha", "mid"}, names)
}
