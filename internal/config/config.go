// Package config loads estimo settings from ESTIMO_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const envPrefix = "ESTIMO_"

// Config holds process-wide settings.
type Config struct {
	APIBase     string        `env:"API_BASE" envDefault:"http://localhost:8000/api"`
	DBPath      string        `env:"DB" envDefault:"~/.estimo/estimo.db"`
	TokenFile   string        `env:"TOKEN_FILE" envDefault:"~/.estimo/auth_token"`
	Token       string        `env:"TOKEN"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	LogLevel    slog.Level    `env:"LOG_LEVEL" envDefault:"warn"`
}

// Load reads configuration from the process environment.
func Load() (Config, error) {
	return parse(env.Options{Prefix: envPrefix})
}

// LoadFrom reads configuration from the given variables instead of the
// process environment. Keys carry the ESTIMO_ prefix.
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Prefix: envPrefix, Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.HTTPTimeout <= 0 {
		return Config{}, fmt.Errorf("%sHTTP_TIMEOUT must be positive, got %s", envPrefix, cfg.HTTPTimeout)
	}
	cfg.APIBase = strings.TrimRight(cfg.APIBase, "/")

	var err error
	if cfg.DBPath, err = expandHome(cfg.DBPath); err != nil {
		return Config{}, err
	}
	if cfg.TokenFile, err = expandHome(cfg.TokenFile); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
