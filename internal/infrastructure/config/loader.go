package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/springprobe/assets"
	"github.com/doeshing/springprobe/internal/domain"
	"github.com/doeshing/springprobe/internal/ports"
)

// FileLoader loads YAML configuration from ~/.springprobe/config.yaml
// (overridable via SPRINGPROBE_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing config file is created
// from the embedded default before loading.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			data = assets.DefaultConfigYAML
			if err := os.WriteFile(path, data, domain.SecureFilePermissions); err != nil {
				return domain.Config{}, err
			}
		} else {
			return domain.Config{}, err
		}
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return hydrateDefaults(cfg), nil
}

// Reset rewrites the config file with the embedded default.
func (l *FileLoader) Reset() error {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions)
}

// Path returns the resolved config file location.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("SPRINGPROBE_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(userHomeDir(), ".springprobe", "config.yaml")
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
}

// DefaultConfig returns the embedded default configuration, hydrated.
func DefaultConfig() (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		return domain.Config{}, err
	}
	return hydrateDefaults(cfg), nil
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Defaults.TimeoutSeconds == 0 {
		cfg.Defaults.TimeoutSeconds = int(domain.DefaultProbeTimeout.Seconds())
	}
	if cfg.Defaults.ExpectedStatus == 0 {
		cfg.Defaults.ExpectedStatus = domain.DefaultExpectedStatus
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Logging.File.Filename == "" {
		cfg.Logging.File.Filename = filepath.Join(userHomeDir(), ".springprobe", "springprobe.log")
	} else {
		cfg.Logging.File.Filename = expandPath(cfg.Logging.File.Filename)
	}
	if cfg.Logging.File.MaxSizeMB == 0 {
		cfg.Logging.File.MaxSizeMB = 10
	}
	if cfg.Logging.File.MaxBackups == 0 {
		cfg.Logging.File.MaxBackups = 3
	}
	if cfg.Logging.File.MaxAgeDays == 0 {
		cfg.Logging.File.MaxAgeDays = 30
	}
	if cfg.History.Path == "" {
		cfg.History.Path = filepath.Join(userHomeDir(), ".springprobe", "history", "checks.db")
	} else {
		cfg.History.Path = expandPath(cfg.History.Path)
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
