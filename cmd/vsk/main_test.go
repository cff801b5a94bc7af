package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_LoadFailure(t *testing.T) {
	// --- Arrange ---
	// A script with a syntax error cannot yield a sketch.
	invalidHCL := `
		sketch "broken" {
			draw {
		// Missing closing braces here
	`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "sketch_broken.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(invalidHCL), 0600), "failed to set up test file")

	out, errW := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	runErr := run(out, errW, []string{filePath})

	// --- Assert ---
	require.Error(t, runErr, "run() should fail when the script does not load")
	require.Contains(t, runErr.Error(), "no sketch could be loaded")
	require.Contains(t, errW.String(), "Could not load script due to previous error.")
}

func TestRun_Renders(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "sketch_dot.hcl")
	script := `
		sketch "dot" {
			page_size = "a6"
			draw {
				circle {
					x      = 0
					y      = 0
					radius = 10
				}
			}
		}
	`
	require.NoError(t, os.WriteFile(filePath, []byte(script), 0600))
	out, errW := &bytes.Buffer{}, &bytes.Buffer{}

	err := run(out, errW, []string{"-seed", "1", filePath})

	require.NoError(t, err, errW.String())
	_, statErr := os.Stat(filepath.Join(tempDir, "output", "dot_s1.svg"))
	require.NoError(t, statErr)
}

func TestRun_ShouldExit(t *testing.T) {
	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	// --- Arrange ---
	// Providing an unknown flag will cause cli.Parse to return an error.
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
