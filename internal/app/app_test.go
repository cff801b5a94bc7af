package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gookit/color"
	"github.com/specialistvlad/hclsketch/internal/testutil"
	"github.com/stretchr/testify/require"
)

const boxScript = `
sketch "box" {
	page_size = [200, 100]

	param "size" { default = 20 }

	draw {
		rect {
			x      = random(50)
			y      = 0
			width  = param.size
			height = param.size
		}
	}
}
`

func newTestApp(t *testing.T, cfg Config) (*App, *bytes.Buffer, *testutil.SafeBuffer) {
	t.Helper()
	color.Enable = false
	t.Cleanup(func() { color.Enable = true })

	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	c, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	errW := &testutil.SafeBuffer{}
	return NewApp(out, errW, c), out, errW
}

func seedOf(v int64) *int64 { return &v }

func TestNewConfig_Validation(t *testing.T) {
	_, err := NewConfig(Config{})
	require.Error(t, err)

	_, err = NewConfig(Config{SketchPath: ".", List: true, SaveConfig: true})
	require.Error(t, err)

	cfg, err := NewConfig(Config{SketchPath: "sketch_a.hcl"})
	require.NoError(t, err)
	require.Equal(t, "sketch_a.hcl", cfg.SketchPath)
}

func TestRun_WritesSVG(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{"sketch_box.hcl": boxScript})
	a, out, _ := newTestApp(t, Config{SketchPath: filepath.Join(root, "sketch_box.hcl"), Seed: seedOf(3)})

	res, err := a.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, outputDirName, "box_s3.svg"), res.OutputPath)
	require.Contains(t, out.String(), "Saved: "+res.OutputPath)

	svg, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)
	require.Contains(t, string(svg), "<svg")

	again, err := a.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, outputDirName, "box_s3_2.svg"), again.OutputPath)

	first, err := os.ReadFile(again.OutputPath)
	require.NoError(t, err)
	require.Equal(t, string(svg), string(first), "the same seed renders the same drawing")
}

func TestRun_LogsPlotStats(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{"sketch_box.hcl": boxScript})
	a, _, logs := newTestApp(t, Config{SketchPath: filepath.Join(root, "sketch_box.hcl"), Seed: seedOf(1), OutputDir: t.TempDir()})

	_, err := a.Run(context.Background())

	require.NoError(t, err)
	require.Contains(t, logs.String(), "Sketch saved.")
	require.Contains(t, logs.String(), "paths=1")
	require.Contains(t, logs.String(), "pen_up_distance=")
}

func TestRun_ParamSets(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{
		"sketch_box.hcl":   boxScript,
		"config/big.json":  `{"size": 40}`,
		"config/tall.toml": "size = 60\n",
	})
	path := filepath.Join(root, "sketch_box.hcl")

	t.Run("by name", func(t *testing.T) {
		a, _, logs := newTestApp(t, Config{SketchPath: path, ConfigName: "big", SaveConfig: true, OutputDir: t.TempDir()})

		res, err := a.Run(context.Background())
		require.NoError(t, err)
		require.Contains(t, logs.String(), "Param set applied.")
		require.Equal(t, filepath.Join(root, "config", "box_1.json"), res.ConfigPath)

		saved, err := os.ReadFile(res.ConfigPath)
		require.NoError(t, err)
		var got map[string]any
		require.NoError(t, json.Unmarshal(saved, &got))
		require.Equal(t, map[string]any{"size": float64(40)}, got)
	})

	t.Run("toml by file name", func(t *testing.T) {
		a, _, _ := newTestApp(t, Config{SketchPath: path, ConfigName: "tall.toml", OutputDir: t.TempDir()})
		_, err := a.Run(context.Background())
		require.NoError(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		a, _, _ := newTestApp(t, Config{SketchPath: path, ConfigName: "nope", OutputDir: t.TempDir()})
		_, err := a.Run(context.Background())
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestRun_LoadFailure(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{"sketch_bad.hcl": `sketch "bad" {`})
	a, _, errW := newTestApp(t, Config{SketchPath: filepath.Join(root, "sketch_bad.hcl")})

	_, err := a.Run(context.Background())

	require.ErrorIs(t, err, ErrNoSketch)
	require.Contains(t, errW.String(), "Could not load script due to previous error.")
}

func TestRun_List(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{
		"sketch_a.hcl": boxScript,
		"sketch_b.hcl": boxScript,
		"notes.hcl":    "",
	})
	a, out, _ := newTestApp(t, Config{SketchPath: root, List: true})

	_, err := a.Run(context.Background())

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "a "))
	require.True(t, strings.HasPrefix(lines[1], "b "))
}

func TestNewLogger_Levels(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := newLogger("warn", "json", buf)

	logger.Info("hidden")
	logger.Warn("shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"msg":"shown"`)
}
