package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Ext is the extension of param sets written by Save.
const Ext = ".json"

// ParamSet maps parameter names to values. Values are plain decoded data:
// bool, string, numbers, []any and map[string]any.
type ParamSet map[string]any

// Names returns the parameter names, sorted.
func (ps ParamSet) Names() []string {
	names := make([]string, 0, len(ps))
	for name := range ps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load reads the param set at path. The format follows the extension:
// .toml, .yaml and .yml are decoded accordingly, anything else as JSON.
func Load(path string) (ParamSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read param set: %w", err)
	}

	ps := ParamSet{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &ps)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &ps)
	default:
		err = decodeJSON(data, &ps)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse param set %s: %w", path, err)
	}
	if ps == nil {
		ps = ParamSet{}
	}
	return ps, nil
}

func decodeJSON(data []byte, ps *ParamSet) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(ps); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after the top-level object")
	}
	return nil
}

// Save writes ps to path as indented JSON.
func Save(path string, ps ParamSet) error {
	data, err := json.MarshalIndent(ps, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode param set: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write param set: %w", err)
	}
	return nil
}
