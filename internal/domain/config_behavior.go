package domain

import "time"

// Timeout returns the configured per-probe timeout as a duration, falling
// back to the standard 30 seconds when unset.
func (c Config) Timeout() time.Duration {
	if c.Defaults.TimeoutSeconds <= 0 {
		return DefaultProbeTimeout
	}
	return time.Duration(c.Defaults.TimeoutSeconds) * time.Second
}

// VerifyTLS reports whether certificate validation is enabled.
func (c Config) VerifyTLS() bool {
	return !c.Defaults.InsecureSkipVerify
}

// ExpectedStatus returns the status code custom API checks compare against.
func (c Config) ExpectedStatus() int {
	if c.Defaults.ExpectedStatus == 0 {
		return DefaultExpectedStatus
	}
	return c.Defaults.ExpectedStatus
}
