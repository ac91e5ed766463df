// Package log builds the slog.Logger shared by the CLI and the control server.
//
// Without a log file, records below error go to stdout and errors go to
// stderr. With a file, everything is written to both stderr and the file.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelTrace is below Debug; the control server logs raw messages at this level.
const LevelTrace slog.Level = -8

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// fanout sends each record to every handler that accepts its level.
type fanout []slog.Handler

// Enabled reports whether any handler accepts level.
func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle passes a clone of r to each handler enabled for its level.
func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			_ = h.Handle(ctx, r.Clone())
		}
	}
	return nil
}

// WithAttrs applies attrs to every handler.
func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

// WithGroup opens the group on every handler.
func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

// below only passes records under a ceiling level.
type below struct {
	ceiling slog.Level
	slog.Handler
}

// Enabled rejects levels at or above the ceiling.
func (b below) Enabled(ctx context.Context, level slog.Level) bool {
	return level < b.ceiling && b.Handler.Enabled(ctx, level)
}

// WithAttrs keeps the ceiling on the derived handler.
func (b below) WithAttrs(attrs []slog.Attr) slog.Handler {
	return below{ceiling: b.ceiling, Handler: b.Handler.WithAttrs(attrs)}
}

// WithGroup keeps the ceiling on the derived handler.
func (b below) WithGroup(name string) slog.Handler {
	return below{ceiling: b.ceiling, Handler: b.Handler.WithGroup(name)}
}

// New builds a logger writing to stdout/stderr split by level.
func New(stdout, stderr io.Writer, level slog.Level) *slog.Logger {
	return slog.New(fanout{
		below{ceiling: slog.LevelError, Handler: slog.NewTextHandler(stdout, &slog.HandlerOptions{Level: level})},
		slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: max(level, slog.LevelError)}),
	})
}

// SetupLogger builds the process logger. The returned closers must be closed on exit.
func SetupLogger(level, file string) (*slog.Logger, []io.Closer, error) {
	lvl := ParseLevel(level)
	if file == "" {
		return New(os.Stdout, os.Stderr, lvl), nil, nil
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}
	logger := slog.New(fanout{
		slog.NewTextHandler(os.Stderr, opts),
		slog.NewTextHandler(f, opts),
	})
	return logger, []io.Closer{f}, nil
}
