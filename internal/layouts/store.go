package layouts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// file is the on-disk document.
type file struct {
	Presets []Preset `yaml:"presets"`
}

// Load reads presets from a YAML file. Missing files return the defaults.
func Load(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults(), nil
		}
		return nil, err
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := Validate(f.Presets); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f.Presets, nil
}

// Save writes presets to disk, creating parent directories as needed.
func Save(path string, presets []Preset) error {
	if err := Validate(presets); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(file{Presets: presets})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
