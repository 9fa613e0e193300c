package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Probe constants
const (
	// DefaultProbeTimeout bounds each individual HTTP call
	DefaultProbeTimeout = 30 * time.Second
	// DefaultExpectedStatus is compared against custom API check responses
	DefaultExpectedStatus = 200
	// HealthEndpointSuffix is the Spring Boot actuator health path
	HealthEndpointSuffix = "/actuator/health"
	// InfoEndpointSuffix is the Spring Boot actuator info path
	InfoEndpointSuffix = "/actuator/info"
)

// History constants
const (
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 20
	// DefaultHistorySearchLimit is the default number of search results to return
	DefaultHistorySearchLimit = 50
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
