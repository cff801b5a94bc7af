package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name       string
		args       []string
		shouldExit bool
		errCode    int
		errMsg     string
	}{
		{name: "no path prints usage", args: nil, shouldExit: true},
		{name: "help", args: []string{"-h"}, shouldExit: true},
		{name: "bad seed", args: []string{"-seed", "abc", "s.hcl"}, errCode: 2, errMsg: "invalid seed"},
		{name: "bad log format", args: []string{"-log-format", "xml", "s.hcl"}, errCode: 2, errMsg: "log-format"},
		{name: "bad log level", args: []string{"-log-level", "loud", "s.hcl"}, errCode: 2, errMsg: "log-level"},
		{name: "two paths", args: []string{"a.hcl", "b.hcl"}, errCode: 2, errMsg: "single SKETCH_PATH"},
		{name: "list with save", args: []string{"-list", "-save-config", "."}, errCode: 2, errMsg: "cannot be combined"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			cfg, shouldExit, err := Parse(tc.args, out)

			require.Nil(t, cfg)
			require.Equal(t, tc.shouldExit, shouldExit)
			if tc.errCode == 0 {
				require.NoError(t, err)
				require.Contains(t, out.String(), "Usage:")
				return
			}
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			require.Equal(t, tc.errCode, exitErr.Code)
			require.Contains(t, exitErr.Message, tc.errMsg)
		})
	}
}

func TestParse_FullConfig(t *testing.T) {
	cfg, shouldExit, err := Parse([]string{
		"-seed", "-12", "-finalize", "-config", "big", "-save-config",
		"-output", "out", "-log-level", "DEBUG", "-log-format", "json", "sketch_a.hcl",
	}, &bytes.Buffer{})

	require.NoError(t, err)
	require.False(t, shouldExit)
	require.Equal(t, "sketch_a.hcl", cfg.SketchPath)
	require.NotNil(t, cfg.Seed)
	require.Equal(t, int64(-12), *cfg.Seed)
	require.True(t, cfg.Finalize)
	require.Equal(t, "big", cfg.ConfigName)
	require.True(t, cfg.SaveConfig)
	require.Equal(t, "out", cfg.OutputDir)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "json", cfg.LogFormat)
}

func TestParse_SeedIsOptional(t *testing.T) {
	cfg, _, err := Parse([]string{"sketch_a.hcl"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Nil(t, cfg.Seed)
	require.False(t, cfg.Finalize)
}
