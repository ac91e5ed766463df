package main

import (
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frudas24/keyslice/internal/keyboard"
	"github.com/frudas24/keyslice/internal/layouts"
	"github.com/frudas24/keyslice/internal/testutil"
	"github.com/frudas24/keyslice/internal/wininput"
)

// TestFindUserConfig covers both flag spellings and the env fallback.
func TestFindUserConfig(t *testing.T) {
	t.Setenv("KEYSLICE_CONFIG", "")
	assert.Equal(t, "a.yaml", findUserConfig([]string{"serve", "--config=a.yaml"}))
	assert.Equal(t, "b.toml", findUserConfig([]string{"--config", "b.toml", "serve"}))
	assert.Empty(t, findUserConfig([]string{"serve", "--config"}))

	t.Setenv("KEYSLICE_CONFIG", "env.json")
	assert.Equal(t, "env.json", findUserConfig(nil))
}

// TestConfigCandidatePaths verifies the user file is routed by extension and listed first.
func TestConfigCandidatePaths(t *testing.T) {
	jsonPaths, yamlPaths, tomlPaths := configCandidatePaths("x.yml")
	assert.Equal(t, "x.yml", yamlPaths[0])
	assert.Len(t, yamlPaths, 3)
	assert.Len(t, jsonPaths, 1)
	assert.Equal(t, "keyslice.toml", filepath.Base(tomlPaths[0]))

	jsonPaths, _, _ = configCandidatePaths("x.conf")
	assert.Equal(t, "x.conf", jsonPaths[0])
}

// TestParseCommands verifies the kong command tree parses representative invocations.
func TestParseCommands(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"press", "ctrl", "c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ctrl", "c"}, cli.Press.Keys)
	assert.Equal(t, "info", cli.Log.Level)

	_, err = parser.Parse([]string{"--log.level=debug", "layout", "load", "de", "--no-activate"})
	require.NoError(t, err)
	assert.Equal(t, "de", cli.Layout.Load.Layout)
	assert.Equal(t, "debug", cli.Log.Level)
	assert.Equal(t, uint32(0), cli.Layout.Load.flags())

	_, err = parser.Parse([]string{"caps", "maybe"})
	assert.Error(t, err)
}

// TestLoadFlags verifies option to KLF flag mapping.
func TestLoadFlags(t *testing.T) {
	assert.Equal(t, keyboard.LayoutActivate, (&layoutLoadCmd{}).flags())
	assert.Equal(t, keyboard.LayoutActivate|keyboard.LayoutSetForProcess, (&layoutLoadCmd{Process: true}).flags())
}

// TestParseHandle covers hex handles and cycle keywords.
func TestParseHandle(t *testing.T) {
	l, err := parseHandle("04070407")
	require.NoError(t, err)
	assert.Equal(t, wininput.Layout(0x04070407), l)

	l, err = parseHandle("next")
	require.NoError(t, err)
	assert.Equal(t, keyboard.LayoutNext, l)

	_, err = parseHandle("zz")
	assert.Error(t, err)
}

// TestPressChord verifies held keys wrap the final key and are released.
func TestPressChord(t *testing.T) {
	fake := testutil.NewFakePlatform()
	kb := keyboard.New(fake)

	require.NoError(t, pressChord(kb, []keyboard.SpecialKey{keyboard.KeyControl, keyboard.KeyShift, keyboard.KeyEscape}))
	assert.Equal(t, []string{"+CONTROL", "+SHIFT", "+ESCAPE", "-ESCAPE", "-CONTROL", "-SHIFT"}, fake.VKs())
	assert.Empty(t, kb.HeldKeys())
}

// TestPressChord_ReleasesOnFailure verifies a failed press still lifts held keys.
func TestPressChord_ReleasesOnFailure(t *testing.T) {
	fake := testutil.NewFakePlatform()
	kb := keyboard.New(fake)
	require.NoError(t, kb.HoldKey(keyboard.KeyShift))
	fake.Reset()

	err := pressChord(kb, []keyboard.SpecialKey{keyboard.KeyShift, keyboard.KeyA})
	assert.ErrorIs(t, err, keyboard.ErrKeyAlreadyHeld)
	assert.Equal(t, []string{"-SHIFT"}, fake.VKs())
}

// TestLayoutPresets_Write verifies --write seeds the preset file with the built-in set.
func TestLayoutPresets_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "layouts.yaml")
	cmd := &layoutPresetCmd{Store: presetFile{PresetFile: path}, Write: true}
	require.NoError(t, cmd.Run())

	saved, err := layouts.Load(path)
	require.NoError(t, err)
	assert.Equal(t, layouts.Sorted(layouts.Defaults()), saved)
}
