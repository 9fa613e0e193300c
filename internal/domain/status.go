package domain

import "net/http"

// DeploymentStatus is the coarse classification of a module's deployment.
type DeploymentStatus string

const (
	StatusHealthy  DeploymentStatus = "HEALTHY"
	StatusDegraded DeploymentStatus = "DEGRADED"
	StatusDown     DeploymentStatus = "DOWN"
	StatusUnknown  DeploymentStatus = "UNKNOWN"
)

// Classify derives a deployment status from the health and info probe
// outcomes. Rules are checked in order, first match wins:
//
//  1. health has no status code, or it is not 200 -> DOWN
//  2. health 200 and info 200 -> HEALTHY
//  3. health 200 and info returned some other code -> DEGRADED
//  4. anything else (info produced no status at all) -> UNKNOWN
//
// Pure function of the two outcomes, no I/O.
func Classify(health, info ProbeOutcome) DeploymentStatus {
	switch {
	case !health.HasStatus() || health.StatusCode != http.StatusOK:
		return StatusDown
	case info.HasStatus() && info.StatusCode == http.StatusOK:
		return StatusHealthy
	case info.HasStatus():
		return StatusDegraded
	default:
		return StatusUnknown
	}
}
