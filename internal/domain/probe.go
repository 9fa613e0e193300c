package domain

import "time"

// FailureKind classifies a transport-level probe failure.
type FailureKind string

const (
	FailureTimeout    FailureKind = "timeout"
	FailureConnection FailureKind = "connection"
	FailureTLS        FailureKind = "tls"
	FailureOther      FailureKind = "other"
)

// ProbeRequest describes a single outbound HTTP request.
type ProbeRequest struct {
	URL     string
	Method  string
	Headers map[string]string
	// Body, when non-nil, is serialized as JSON and sent with
	// Content-Type: application/json.
	Body      any
	Timeout   time.Duration
	VerifyTLS bool
}

// ProbeOutcome captures the result of one probe. Immutable once constructed:
// it is created by the prober and only read afterwards.
//
// StatusCode is 0 when no HTTP response was received (transport failure).
// Either StatusCode or Error is always populated, never neither.
type ProbeOutcome struct {
	URL        string        `json:"url"`
	Method     string        `json:"method"`
	StatusCode int           `json:"status_code,omitempty"`
	Elapsed    time.Duration `json:"elapsed"`
	// RawBody is the response body as received.
	RawBody string `json:"raw_body,omitempty"`
	// Body holds the JSON-decoded response body (numbers as json.Number),
	// or nil when the body did not parse as JSON.
	Body any `json:"body,omitempty"`
	// ParseWarning notes a non-fatal JSON decode failure.
	ParseWarning string      `json:"parse_warning,omitempty"`
	Error        string      `json:"error,omitempty"`
	Failure      FailureKind `json:"failure,omitempty"`
}

// HasStatus reports whether an HTTP response was received at all.
func (o ProbeOutcome) HasStatus() bool {
	return o.StatusCode != 0
}

// OK reports whether the probe got a 2xx response.
func (o ProbeOutcome) OK() bool {
	return o.StatusCode >= 200 && o.StatusCode < 300
}
