package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Formats(t *testing.T) {
	testCases := []struct {
		name    string
		file    string
		content string
		want    ParamSet
	}{
		{
			name:    "json",
			file:    "set.json",
			content: `{"count": 3, "title": "waves", "closed": true, "offsets": [1, 2.5]}`,
			want:    ParamSet{"count": float64(3), "title": "waves", "closed": true, "offsets": []any{float64(1), 2.5}},
		},
		{
			name:    "json utf-8",
			file:    "set.json",
			content: `{"label": "été"}`,
			want:    ParamSet{"label": "été"},
		},
		{
			name:    "toml",
			file:    "set.toml",
			content: "count = 3\ntitle = \"waves\"\nratio = 0.5\n",
			want:    ParamSet{"count": int64(3), "title": "waves", "ratio": 0.5},
		},
		{
			name:    "yaml",
			file:    "set.yaml",
			content: "count: 3\ntitle: waves\nratio: 0.5\n",
			want:    ParamSet{"count": 3, "title": "waves", "ratio": 0.5},
		},
		{
			name:    "empty object",
			file:    "set.json",
			content: `{}`,
			want:    ParamSet{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Load(writeFile(t, tc.file, tc.content))
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		file    string
		content string
	}{
		{name: "invalid json", file: "set.json", content: `{"count": `},
		{name: "json array", file: "set.json", content: `[1, 2]`},
		{name: "trailing data", file: "set.json", content: `{} {}`},
		{name: "invalid toml", file: "set.toml", content: "count = = 3"},
		{name: "yaml list", file: "set.yml", content: "- 1\n- 2\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeFile(t, tc.file, tc.content))
			require.Error(t, err)
			require.Contains(t, err.Error(), "failed to parse param set")
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSave_RoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "saved"+Ext)
	ps := ParamSet{"count": float64(4), "title": "grid"}

	require.NoError(t, Save(path, ps))
	got, err := Load(path)

	require.NoError(t, err)
	require.Equal(t, ps, got)
	require.Equal(t, []string{"count", "title"}, got.Names())
}
