package domain

import "time"

// ModuleCheckResult aggregates one deployment-status check. Constructed once
// per orchestrator invocation, read-only afterwards.
type ModuleCheckResult struct {
	ID        string           `json:"id"`
	Module    string           `json:"module"`
	Status    DeploymentStatus `json:"deployment_status"`
	Health    ProbeOutcome     `json:"health"`
	Info      ProbeOutcome     `json:"info"`
	Timestamp time.Time        `json:"timestamp"`
}

// APICheckResult is the outcome of probing one custom endpoint. Success
// means the probe returned exactly the expected status code.
type APICheckResult struct {
	Outcome        ProbeOutcome `json:"outcome"`
	ExpectedStatus int          `json:"expected_status"`
	Success        bool         `json:"success"`
}

// CheckRecord is the persisted trace of one deployment check.
type CheckRecord struct {
	ID               string           `json:"id"`
	Timestamp        time.Time        `json:"timestamp"`
	Module           string           `json:"module"`
	BaseURL          string           `json:"base_url"`
	Status           DeploymentStatus `json:"status"`
	HealthStatusCode int              `json:"health_status_code"`
	InfoStatusCode   int              `json:"info_status_code"`
	ElapsedMS        int64            `json:"elapsed_ms"`
	Error            string           `json:"error,omitempty"`
}
