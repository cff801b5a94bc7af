package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

// ConfigDirName is the directory, next to a sketch script, holding its saved
// parameter sets.
const ConfigDirName = "config"

// FindUniquePath returns a path in dir for filename that does not currently
// exist.
//
// With alwaysNumber, a numeric suffix is always added before the extension,
// starting at 1 (name_1.ext, name_2.ext, ...). Otherwise the plain name is
// tried first and suffixes start at 2 (name.ext, name_2.ext, ...).
//
// The result reflects the directory at call time only; nothing is created.
func FindUniquePath(filename, dir string, alwaysNumber bool) (string, error) {
	ext := filepath.Ext(filename)
	base := filename[:len(filename)-len(ext)]

	index := 2
	candidate := filename
	if alwaysNumber {
		index = 1
		candidate = base + "_1" + ext
	}

	for {
		path := filepath.Join(dir, candidate)
		_, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check %s: %w", path, err)
		}
		if alwaysNumber {
			index++
		}
		candidate = base + "_" + strconv.Itoa(index) + ext
		if !alwaysNumber {
			index++
		}
	}
}

// ConfigPath returns the config directory of the sketch at sketchPath,
// creating it if needed.
func ConfigPath(sketchPath string) (string, error) {
	dir := filepath.Join(filepath.Dir(sketchPath), ConfigDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}
