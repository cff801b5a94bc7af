// Package fsutil provides file system utility functions for sketch files and
// their outputs.
package fsutil

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// SketchPrefix is the file name prefix of sketch scripts in a sketch
// collection, e.g. sketch_waves.hcl.
const SketchPrefix = "sketch_"

// ScriptExt is the extension of sketch scripts.
const ScriptExt = ".hcl"

// FindFilesByExtension recursively searches the given root path for all files ending
// with the specified extension. It returns a slice of their full paths.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// FindSketches lists the sketch scripts below rootPath, i.e. the files named
// sketch_*.hcl, sorted by path.
func FindSketches(rootPath string) ([]string, error) {
	files, err := FindFilesByExtension(rootPath, ScriptExt)
	if err != nil {
		return nil, err
	}

	var sketches []string
	for _, f := range files {
		if strings.HasPrefix(filepath.Base(f), SketchPrefix) {
			sketches = append(sketches, f)
		}
	}
	sort.Strings(sketches)
	return sketches, nil
}

// CanonicalName returns the short name of a sketch script: its file name
// without the sketch_ prefix and the script extension.
func CanonicalName(path string) string {
	name := strings.TrimPrefix(filepath.Base(path), SketchPrefix)
	return strings.TrimSuffix(name, ScriptExt)
}
