// Package config holds application-level configuration checks used by the
// `config validate` command.
package config

import (
	"fmt"
	"strings"

	"github.com/doeshing/springprobe/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if cfg.Defaults.TimeoutSeconds < 0 {
		return fmt.Errorf("defaults.timeout must not be negative, got %d", cfg.Defaults.TimeoutSeconds)
	}
	if status := cfg.Defaults.ExpectedStatus; status != 0 && (status < 100 || status > 599) {
		return fmt.Errorf("defaults.expected_status must be a valid HTTP status code, got %d", status)
	}
	if cfg.Defaults.BaseURL != "" &&
		!strings.HasPrefix(cfg.Defaults.BaseURL, "http://") &&
		!strings.HasPrefix(cfg.Defaults.BaseURL, "https://") {
		return fmt.Errorf("defaults.base_url must start with http:// or https://")
	}
	if err := validateLogging(cfg.Logging); err != nil {
		return err
	}
	return validateHistory(cfg.History)
}

func validateLogging(logging domain.LoggingSettings) error {
	switch strings.ToLower(logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug|info|warn|error, got %s", logging.Level)
	}
	switch strings.ToLower(logging.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console|json, got %s", logging.Format)
	}
	if logging.File.MaxSizeMB < 0 || logging.File.MaxBackups < 0 || logging.File.MaxAgeDays < 0 {
		return fmt.Errorf("logging.file rotation settings must not be negative")
	}
	return nil
}

func validateHistory(history domain.HistorySettings) error {
	if history.Enabled && history.Path == "" {
		return fmt.Errorf("history.path must be set when history is enabled")
	}
	return nil
}
