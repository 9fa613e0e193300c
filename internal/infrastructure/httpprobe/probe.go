// Package httpprobe is the net/http adapter behind ports.Prober.
package httpprobe

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/doeshing/springprobe/internal/domain"
	"github.com/doeshing/springprobe/internal/ports"
)

// Prober issues blocking HTTP requests one at a time. Timeout and TLS
// verification are per-request; the two transports (verifying and
// non-verifying) are shared across calls.
type Prober struct {
	userAgent string
	logger    ports.Logger
	verified  http.RoundTripper
	insecure  http.RoundTripper
}

// New builds a Prober that tags requests with the given User-Agent.
func New(logger ports.Logger, userAgent string) *Prober {
	verified := http.DefaultTransport.(*http.Transport).Clone()
	insecure := http.DefaultTransport.(*http.Transport).Clone()
	insecure.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}

	return &Prober{
		userAgent: userAgent,
		logger:    logger,
		verified:  verified,
		insecure:  insecure,
	}
}

// Probe implements ports.Prober. Transport failures are captured inside the
// outcome, never returned; a failed probe still reports elapsed time and a
// failure kind so the orchestrator can proceed.
func (p *Prober) Probe(ctx context.Context, req domain.ProbeRequest) domain.ProbeOutcome {
	outcome := domain.ProbeOutcome{URL: req.URL, Method: req.Method}

	var bodyReader io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			outcome.Failure = domain.FailureOther
			outcome.Error = fmt.Sprintf("encoding request body: %v", err)
			p.logger.Error("probe request body not serializable", err, p.fields(req, 0))
			return outcome
		}
		bodyReader = bytes.NewReader(payload)
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		outcome.Failure = domain.FailureOther
		outcome.Error = fmt.Sprintf("building request: %v", err)
		p.logger.Error("probe request invalid", err, p.fields(req, 0))
		return outcome
	}

	httpReq.Header.Set("User-Agent", p.userAgent)
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	client := &http.Client{Transport: p.transport(req.VerifyTLS)}
	start := time.Now()
	resp, err := client.Do(httpReq)
	outcome.Elapsed = time.Since(start)

	if err != nil {
		outcome.Failure, outcome.Error = classifyFailure(err)
		p.logger.Error("probe failed", err, p.fields(req, 0))
		return outcome
	}
	defer resp.Body.Close()

	outcome.StatusCode = resp.StatusCode
	raw, readErr := io.ReadAll(resp.Body)
	outcome.RawBody = string(raw)
	if readErr != nil {
		outcome.Error = fmt.Sprintf("reading response body: %v", readErr)
	} else if !outcome.OK() {
		outcome.Error = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	if trimmed := strings.TrimSpace(outcome.RawBody); trimmed != "" {
		value, parseErr := decodeJSON(trimmed)
		if parseErr != nil {
			outcome.ParseWarning = fmt.Sprintf("response is not JSON: %v", parseErr)
		} else {
			outcome.Body = value
		}
	}

	fields := p.fields(req, resp.StatusCode)
	fields["elapsed_ms"] = outcome.Elapsed.Milliseconds()
	if outcome.ParseWarning != "" {
		fields["parse_warning"] = outcome.ParseWarning
	}
	if outcome.OK() {
		p.logger.Info("probe completed", fields)
	} else {
		p.logger.Warn("probe returned non-2xx status", fields)
	}
	return outcome
}

func (p *Prober) transport(verifyTLS bool) http.RoundTripper {
	if verifyTLS {
		return p.verified
	}
	return p.insecure
}

func (p *Prober) fields(req domain.ProbeRequest, status int) map[string]interface{} {
	fields := map[string]interface{}{
		"url":    req.URL,
		"method": req.Method,
	}
	if status != 0 {
		fields["status"] = status
	}
	return fields
}

// decodeJSON parses a response body with UseNumber so the contract
// validator can tell ints and floats apart by their lexical form.
func decodeJSON(raw string) (any, error) {
	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	return value, nil
}

// classifyFailure maps a transport error to one of the four failure kinds.
// Order matters: timeouts beat TLS, TLS beats generic connection errors.
func classifyFailure(err error) (domain.FailureKind, string) {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return domain.FailureTimeout, fmt.Sprintf("request timed out: %v", err)
	}

	var certErr *tls.CertificateVerificationError
	var headerErr tls.RecordHeaderError
	var hostErr x509.HostnameError
	var authErr x509.UnknownAuthorityError
	if errors.As(err, &certErr) || errors.As(err, &headerErr) ||
		errors.As(err, &hostErr) || errors.As(err, &authErr) ||
		strings.Contains(err.Error(), "tls:") {
		return domain.FailureTLS, fmt.Sprintf("TLS handshake failed: %v", err)
	}

	var dnsErr *net.DNSError
	var opErr *net.OpError
	if errors.As(err, &dnsErr) || errors.As(err, &opErr) {
		return domain.FailureConnection, fmt.Sprintf("connection failed: %v", err)
	}

	return domain.FailureOther, err.Error()
}

var _ ports.Prober = (*Prober)(nil)
