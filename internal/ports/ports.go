// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and
// external adapters (infrastructure). Following the Ports and Adapters
// (Hexagonal) pattern, these interfaces allow the application to remain
// independent of specific implementations like HTTP clients, databases, or
// CLI frameworks.
package ports

import (
	"context"

	"github.com/doeshing/springprobe/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.springprobe/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// Prober issues a single outbound HTTP request and reports the outcome.
// Implementations must never return a transport failure as an error; the
// failure is captured inside the ProbeOutcome so callers can keep going.
type Prober interface {
	Probe(ctx context.Context, req domain.ProbeRequest) domain.ProbeOutcome
}

// HistoryRepository persists deployment-check records.
type HistoryRepository interface {
	Save(record domain.CheckRecord) error
	Records(limit int, search string) ([]domain.CheckRecord, error)
	Clear() error
	ExportJSON(dest string) error
	Path() string
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (console, files).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
