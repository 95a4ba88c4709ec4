package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.APIBase)
	assert.Equal(t, filepath.Join(home, ".estimo", "estimo.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(home, ".estimo", "auth_token"), cfg.TokenFile)
	assert.Empty(t, cfg.Token)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"ESTIMO_API_BASE":     "https://estimates.example.com/api/",
		"ESTIMO_DB":           "/tmp/e.db",
		"ESTIMO_TOKEN":        "abc",
		"ESTIMO_HTTP_TIMEOUT": "250ms",
		"ESTIMO_LOG_LEVEL":    "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://estimates.example.com/api", cfg.APIBase)
	assert.Equal(t, "/tmp/e.db", cfg.DBPath)
	assert.Equal(t, "abc", cfg.Token)
	assert.Equal(t, 250*time.Millisecond, cfg.HTTPTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadFrom_InvalidTimeout(t *testing.T) {
	_, err := LoadFrom(map[string]string{"ESTIMO_HTTP_TIMEOUT": "soon"})
	require.Error(t, err)

	_, err = LoadFrom(map[string]string{"ESTIMO_HTTP_TIMEOUT": "0s"})
	require.Error(t, err)
}

func TestLoadFrom_InvalidLogLevel(t *testing.T) {
	_, err := LoadFrom(map[string]string{"ESTIMO_LOG_LEVEL": "loud"})
	require.Error(t, err)
}

func TestLoad_ReadsProcessEnv(t *testing.T) {
	t.Setenv("ESTIMO_DB", "/var/lib/estimo.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/estimo.db", cfg.DBPath)
}
