package log

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseLevel covers known names and the fallback.
func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelTrace, ParseLevel("trace"))
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}

// TestNew_SplitsByLevel verifies errors go only to stderr and the level filter applies.
func TestNew_SplitsByLevel(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := New(&out, &errOut, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("typed", "chars", 3)
	logger.Error("inject failed")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "chars=3")
	assert.NotContains(t, out.String(), "inject failed")
	assert.Contains(t, errOut.String(), "inject failed")
	assert.NotContains(t, errOut.String(), "typed")
}

// TestNew_WithAttrs verifies attributes survive the fan-out.
func TestNew_WithAttrs(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := New(&out, &errOut, slog.LevelDebug).With("component", "control")
	logger.Debug("message")
	assert.Contains(t, out.String(), "component=control")
}

// TestSetupLogger_File verifies records reach the log file.
func TestSetupLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyslice.log")
	logger, closers, err := SetupLogger("info", path)
	require.NoError(t, err)
	require.Len(t, closers, 1)
	logger.Info("to file")
	require.NoError(t, closers[0].Close())
}
