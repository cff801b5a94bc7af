package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}
}

func TestFindUniquePath(t *testing.T) {
	testCases := []struct {
		name         string
		existing     []string
		alwaysNumber bool
		want         string
	}{
		{name: "empty dir, collision only", want: "sketch.svg"},
		{name: "empty dir, always numbered", alwaysNumber: true, want: "sketch_1.svg"},
		{name: "collision", existing: []string{"sketch.svg"}, want: "sketch_2.svg"},
		{name: "two collisions", existing: []string{"sketch.svg", "sketch_2.svg"}, want: "sketch_3.svg"},
		{name: "numbered collision", existing: []string{"sketch_1.svg", "sketch_2.svg"}, alwaysNumber: true, want: "sketch_3.svg"},
		{name: "plain name does not matter when numbered", existing: []string{"sketch.svg"}, alwaysNumber: true, want: "sketch_1.svg"},
		{name: "gap is reused", existing: []string{"sketch.svg", "sketch_3.svg"}, want: "sketch_2.svg"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			touch(t, dir, tc.existing...)

			got, err := FindUniquePath("sketch.svg", dir, tc.alwaysNumber)

			require.NoError(t, err)
			require.Equal(t, filepath.Join(dir, tc.want), got)
			_, statErr := os.Stat(got)
			require.True(t, os.IsNotExist(statErr), "returned path must not exist")
		})
	}
}

func TestFindUniquePath_NoExtension(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	touch(t, dir, "notes")

	got, err := FindUniquePath("notes", dir, false)

	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "notes_2"), got)
}

func TestConfigPath(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	sketchPath := filepath.Join(dir, "sketch_waves.hcl")

	got, err := ConfigPath(sketchPath)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, ConfigDirName), got)

	info, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, info.IsDir())

	again, err := ConfigPath(sketchPath)
	require.NoError(t, err, "an existing config directory is reused")
	require.Equal(t, got, again)
}

func TestCanonicalName(t *testing.T) {
	t.Parallel()
	require.Equal(t, "waves", CanonicalName("/art/sketch_waves.hcl"))
	require.Equal(t, "grid", CanonicalName("grid.hcl"))
	require.Equal(t, "sketch", CanonicalName("sketch.hcl"))
}

func TestFindSketches(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	touch(t, dir, "sketch_b.hcl", "sketch_a.hcl", "other.hcl", "sketch_c.txt", "nested/sketch_d.hcl")

	got, err := FindSketches(dir)

	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "nested", "sketch_d.hcl"),
		filepath.Join(dir, "sketch_a.hcl"),
		filepath.Join(dir, "sketch_b.hcl"),
	}, got)
}
