package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	require.NoError(t, statErr, "missing config file should be created")

	assert.Equal(t, "1", cfg.ConfigFormatVersion)
	assert.Equal(t, 30, cfg.Defaults.TimeoutSeconds)
	assert.Equal(t, 200, cfg.Defaults.ExpectedStatus)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.History.Enabled)
	assert.NotContains(t, cfg.History.Path, "~", "paths must be expanded")
}

func TestLoadHydratesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defaults:\n  base_url: https://svc.example.com\n"), 0o600))

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "https://svc.example.com", cfg.Defaults.BaseURL)
	assert.Equal(t, 30, cfg.Defaults.TimeoutSeconds, "unset values fall back to defaults")
	assert.NotEmpty(t, cfg.Logging.File.Filename)
	assert.Equal(t, 10, cfg.Logging.File.MaxSizeMB)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defaults: [not a mapping"), 0o600))

	_, err := NewFileLoader(path).Load(context.Background())
	assert.Error(t, err)
}

func TestResetRestoresDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)
	require.NoError(t, os.WriteFile(path, []byte("defaults:\n  timeout: 99\n"), 0o600))

	require.NoError(t, loader.Reset())

	cfg, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Defaults.TimeoutSeconds)
}

func TestPathHonorsEnvOverride(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "alt.yaml")
	t.Setenv("SPRINGPROBE_CONFIG", custom)

	assert.Equal(t, custom, NewFileLoader("").Path())
}
