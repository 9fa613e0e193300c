package config

import (
	"testing"

	"github.com/doeshing/springprobe/internal/domain"
)

func validConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Defaults: domain.CheckDefaults{
			BaseURL:        "https://svc.example.com",
			TimeoutSeconds: 30,
			ExpectedStatus: 200,
		},
		Logging: domain.LoggingSettings{Level: "info", Format: "console"},
		History: domain.HistorySettings{Enabled: true, Path: "/tmp/checks.db"},
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := Validate(domain.Config{}); err != nil {
		t.Fatalf("zero config should validate, got %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Config)
	}{
		{"negative timeout", func(c *domain.Config) { c.Defaults.TimeoutSeconds = -1 }},
		{"status out of range", func(c *domain.Config) { c.Defaults.ExpectedStatus = 42 }},
		{"schemeless base url", func(c *domain.Config) { c.Defaults.BaseURL = "svc.example.com" }},
		{"unknown log level", func(c *domain.Config) { c.Logging.Level = "loud" }},
		{"unknown log format", func(c *domain.Config) { c.Logging.Format = "xml" }},
		{"negative rotation", func(c *domain.Config) { c.Logging.File.MaxBackups = -1 }},
		{"history enabled without path", func(c *domain.Config) { c.History = domain.HistorySettings{Enabled: true} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			if err := Validate(cfg); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
