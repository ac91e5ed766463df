package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/frudas24/keyslice/internal/app"
	"github.com/frudas24/keyslice/internal/config"
	"github.com/frudas24/keyslice/internal/layouts"
	"github.com/frudas24/keyslice/internal/session"
	"github.com/frudas24/keyslice/internal/wininput"
)

type serveCmd struct {
	DataDir string `help:"Directory holding .env and layouts.yaml." default:"./data" type:"path" env:"DATA_DIR"`
	Listen  string `help:"Override LISTEN_ADDR."`
}

// Run wires the application and blocks until shutdown.
func (c *serveCmd) Run(logger *slog.Logger) error {
	cfg, err := config.LoadFrom(c.DataDir)
	if err != nil {
		return err
	}
	if c.Listen != "" {
		cfg.ListenAddr = c.Listen
	}
	logStartup(logger, cfg)

	presets, err := layouts.Load(cfg.PresetsPath)
	if err != nil {
		return err
	}
	platform, err := wininput.NewPlatform()
	if err != nil {
		return err
	}

	appInstance, err := app.New(cfg, session.New(cfg.UIPassword), platform, presets, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := appInstance.Shutdown(); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	mux := http.NewServeMux()
	appInstance.RegisterRoutes(mux)
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// logStartup prints startup checks and connection info.
func logStartup(logger *slog.Logger, cfg config.Config) {
	logger.Info("keyslice starting")
	logEnvStatus(logger, cfg)
	if fileExists(cfg.PresetsPath) {
		logger.Info("layout presets", "path", cfg.PresetsPath)
	} else {
		logger.Info("layout presets: built-in", "missing", cfg.PresetsPath)
	}
	logListenStatus(logger, cfg.ListenAddr)
}

// logEnvStatus reports whether a .env file was found and the password is set.
func logEnvStatus(logger *slog.Logger, cfg config.Config) {
	envPath := filepath.Join(cfg.DataDir, ".env")
	if fileExists(envPath) {
		logger.Info("env check: ok", "path", envPath)
	} else {
		logger.Warn("env check: missing", "path", envPath)
	}
	if !cfg.PasswordMode {
		logger.Warn("PASSWORD_MODE disabled, control is open to anyone who can reach the listener")
	}
}

// logListenStatus reports the listen address and a local URL helper.
func logListenStatus(logger *slog.Logger, addr string) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		logger.Info("listening", "addr", addr)
		return
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	logger.Info("listening", "addr", addr, "url", "http://"+net.JoinHostPort(host, port))
}

// fileExists reports whether a path exists and is a file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
