// Package app wires HTTP, the control websocket, and keyboard state together.
package app

import (
	"errors"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/frudas24/keyslice/internal/config"
	"github.com/frudas24/keyslice/internal/control"
	"github.com/frudas24/keyslice/internal/keyboard"
	"github.com/frudas24/keyslice/internal/layouts"
	"github.com/frudas24/keyslice/internal/session"
	"github.com/frudas24/keyslice/internal/wininput"
)

// App coordinates the HTTP API, the control websocket, and the keyboard controller.
type App struct {
	cfg      config.Config
	session  *session.Session
	keyboard *keyboard.Controller
	control  *control.Server
	presets  []layouts.Preset
	logger   *slog.Logger
	actions  atomic.Int64
}

// New creates a new application with its dependencies wired.
func New(cfg config.Config, sess *session.Session, platform wininput.Platform, presets []layouts.Preset, logger *slog.Logger) (*App, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	if platform == nil {
		return nil, errors.New("platform is required")
	}
	if err := layouts.Validate(presets); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	app := &App{
		cfg:     cfg,
		session: sess,
		presets: presets,
		logger:  logger,
	}
	app.keyboard = keyboard.New(platform,
		keyboard.WithLogger(logger.With("component", "keyboard")),
		keyboard.WithListener(app),
		keyboard.WithCapsLockNormalization(cfg.NormalizeCapsLock),
	)
	app.control = control.NewServer(sess, app.keyboard, presets, uint32(cfg.LayoutThreadID), logger.With("component", "control"))
	return app, nil
}

// ActionPerformed counts completed keyboard operations.
func (a *App) ActionPerformed(action keyboard.Action) {
	n := a.actions.Add(1)
	a.logger.Debug("keyboard action performed", "action", action, "total", n)
}

// ActionsPerformed returns how many keyboard operations completed.
func (a *App) ActionsPerformed() int64 {
	return a.actions.Load()
}

// Shutdown releases any keys still held so the desktop is not left with a stuck modifier.
func (a *App) Shutdown() error {
	return a.control.ReleaseAll()
}

// Control returns the control websocket handler.
func (a *App) Control() *control.Server {
	return a.control
}
