// Package layouts names keyboard layouts so callers can ask for "de" instead of "00000407".
package layouts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/frudas24/keyslice/internal/keyboard"
)

// Preset maps a short name to a keyboard layout identifier (KLID).
type Preset struct {
	Name        string `yaml:"name" json:"name"`
	KLID        string `yaml:"klid" json:"klid"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Defaults returns the built-in presets.
func Defaults() []Preset {
	return []Preset{
		{Name: "us", KLID: "00000409", Description: "English (United States)"},
		{Name: "uk", KLID: "00000809", Description: "English (United Kingdom)"},
		{Name: "de", KLID: "00000407", Description: "German"},
		{Name: "fr", KLID: "0000040C", Description: "French"},
		{Name: "es", KLID: "0000040A", Description: "Spanish"},
		{Name: "it", KLID: "00000410", Description: "Italian"},
		{Name: "ru", KLID: "00000419", Description: "Russian"},
		{Name: "ja", KLID: "00000411", Description: "Japanese"},
		{Name: "us-dvorak", KLID: "00010409", Description: "United States-Dvorak"},
	}
}

// Validate checks names are unique and KLIDs are well formed.
func Validate(presets []Preset) error {
	seen := make(map[string]bool, len(presets))
	for _, p := range presets {
		name := normalizeName(p.Name)
		if name == "" {
			return fmt.Errorf("preset with klid %q has no name", p.KLID)
		}
		if seen[name] {
			return fmt.Errorf("duplicate preset %q", p.Name)
		}
		seen[name] = true
		if !keyboard.ValidKLID(p.KLID) {
			return fmt.Errorf("preset %q: %w", p.Name, keyboard.ErrInvalidLayoutID)
		}
	}
	return nil
}

// Resolve returns the KLID for a preset name. A raw KLID is returned as-is.
func Resolve(presets []Preset, nameOrKLID string) (string, error) {
	want := normalizeName(nameOrKLID)
	for _, p := range presets {
		if normalizeName(p.Name) == want {
			return strings.ToUpper(p.KLID), nil
		}
	}
	if keyboard.ValidKLID(strings.TrimSpace(nameOrKLID)) {
		return strings.ToUpper(strings.TrimSpace(nameOrKLID)), nil
	}
	return "", fmt.Errorf("unknown layout %q", nameOrKLID)
}

// Sorted returns a copy of presets ordered by name.
func Sorted(presets []Preset) []Preset {
	out := append([]Preset(nil), presets...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// normalizeName folds case and surrounding whitespace.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
