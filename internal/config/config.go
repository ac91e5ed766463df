// Package config loads environment configuration for the keyslice server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	defaultListenAddr   = "127.0.0.1:8788"
	defaultDataDir      = "./data"
	defaultPresetsFile  = "layouts.yaml"
	defaultPasswordMode = true
	defaultNormalizeCap = true
	defaultThreadID     = 0
)

// Config holds runtime configuration values.
type Config struct {
	ListenAddr        string
	UIPassword        string
	PasswordMode      bool
	DataDir           string
	PresetsPath       string
	NormalizeCapsLock bool
	LayoutThreadID    int
}

// LoadFrom reads configuration from dataDir/.env and environment variables.
// An empty dataDir means ./data.
func LoadFrom(dataDir string) (Config, error) {
	if dataDir == "" {
		dataDir = defaultDataDir
	}
	cfg := Config{
		ListenAddr:        defaultListenAddr,
		PasswordMode:      defaultPasswordMode,
		DataDir:           dataDir,
		PresetsPath:       filepath.Join(dataDir, defaultPresetsFile),
		NormalizeCapsLock: defaultNormalizeCap,
		LayoutThreadID:    defaultThreadID,
	}

	if err := loadEnvFile(filepath.Join(cfg.DataDir, ".env")); err != nil {
		return Config{}, err
	}

	cfg.ListenAddr = envString("LISTEN_ADDR", cfg.ListenAddr)
	cfg.DataDir = envString("DATA_DIR", cfg.DataDir)
	cfg.PresetsPath = envString("PRESETS_PATH", filepath.Join(cfg.DataDir, defaultPresetsFile))
	cfg.UIPassword = strings.TrimSpace(os.Getenv("UI_PASSWORD"))
	cfg.PasswordMode = envBool("PASSWORD_MODE", cfg.PasswordMode)
	cfg.NormalizeCapsLock = envBool("NORMALIZE_CAPS_LOCK", cfg.NormalizeCapsLock)

	threadID, err := envInt("LAYOUT_THREAD_ID", cfg.LayoutThreadID)
	if err != nil {
		return Config{}, err
	}
	if threadID < 0 {
		return Config{}, fmt.Errorf("LAYOUT_THREAD_ID must be >= 0")
	}
	cfg.LayoutThreadID = threadID

	if cfg.PasswordMode && cfg.UIPassword == "" {
		return Config{}, errors.New("UI_PASSWORD is required")
	}
	if !cfg.PasswordMode {
		cfg.UIPassword = ""
	}

	return cfg, nil
}

// envString returns an env override when present, otherwise a default.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt returns an int env override when present, otherwise a default.
func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

// envBool returns a bool env override when present, otherwise a default.
func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// loadEnvFile loads KEY=VALUE pairs from a .env file.
func loadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}
	}

	return nil
}

// parseEnvLine parses a single .env line into key/value.
func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	if strings.HasPrefix(line, "export ") {
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
	}
	parts := strings.SplitN(line, "=", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", false
	}
	value = strings.Trim(value, `"'`)
	return key, value, true
}
