package console

import (
	"bytes"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/require"
)

func TestPrint_PlainWhenColorDisabled(t *testing.T) {
	prev := color.Enable
	color.Enable = false
	t.Cleanup(func() { color.Enable = prev })

	var buf bytes.Buffer
	PrintError(&buf, "Could not load script: ", "sketch.hcl")
	PrintInfo(&buf, "Saved: ", "out.svg")

	require.Equal(t, "Could not load script: sketch.hcl\nSaved: out.svg\n", buf.String())
}
