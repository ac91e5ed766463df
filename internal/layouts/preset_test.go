package layouts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaults_Valid verifies the built-in presets pass validation.
func TestDefaults_Valid(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

// TestResolve covers names, case folding and raw KLIDs.
func TestResolve(t *testing.T) {
	presets := Defaults()
	tests := []struct {
		in   string
		want string
	}{
		{"us", "00000409"},
		{" DE ", "00000407"},
		{"fr", "0000040C"},
		{"0000040c", "0000040C"},
		{"00010409", "00010409"},
	}
	for _, tt := range tests {
		got, err := Resolve(presets, tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := Resolve(presets, "klingon")
	assert.ErrorContains(t, err, "unknown layout")
}

// TestSorted verifies ordering by name without touching the input.
func TestSorted(t *testing.T) {
	in := []Preset{{Name: "ru"}, {Name: "de"}, {Name: "us"}}
	out := Sorted(in)
	assert.Equal(t, []string{"de", "ru", "us"}, []string{out[0].Name, out[1].Name, out[2].Name})
	assert.Equal(t, "ru", in[0].Name)
}
