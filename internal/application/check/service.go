// Package check implements the orchestrator that sequences probes into
// deployment-status, custom-API, and contract checks.
package check

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/springprobe/internal/domain"
	"github.com/doeshing/springprobe/internal/ports"
)

// Service runs health checks against one Spring Boot service. Each call is a
// fresh, independent sequence of probes; the service holds no state between
// invocations beyond its collaborators.
type Service struct {
	Prober ports.Prober
	Logger ports.Logger
	// History, when set, records every deployment check. Failures to
	// persist never fail the check itself.
	History ports.HistoryRepository
	// Now overrides the clock in tests; nil means time.Now.
	Now func() time.Time
}

// DeploymentRequest parameterizes a deployment-status check.
type DeploymentRequest struct {
	BaseURL   string
	Module    string
	Timeout   time.Duration
	VerifyTLS bool
}

// APIRequest parameterizes a custom endpoint check. Endpoint may be a path
// relative to BaseURL or an absolute URL.
type APIRequest struct {
	BaseURL        string
	Endpoint       string
	Method         string
	Headers        map[string]string
	Body           any
	ExpectedStatus int
	Timeout        time.Duration
	VerifyTLS      bool
}

// ContractRequest parameterizes a request/response contract validation.
type ContractRequest struct {
	APIRequest
	Expected domain.ContractExpectation
}

// CheckDeploymentStatus probes the actuator health and info endpoints in
// order, classifies the result, and stamps the current time. Transport
// failures surface as DOWN/UNKNOWN through the classifier; the only error
// path is caller misuse.
func (s *Service) CheckDeploymentStatus(ctx context.Context, req DeploymentRequest) (domain.ModuleCheckResult, error) {
	base, err := normalizeBaseURL(req.BaseURL)
	if err != nil {
		return domain.ModuleCheckResult{}, err
	}
	if req.Module == "" {
		return domain.ModuleCheckResult{}, fmt.Errorf("module name is required")
	}

	s.Logger.Info("starting deployment check", map[string]interface{}{
		"module": req.Module,
		"url":    base,
	})

	health := s.Prober.Probe(ctx, domain.ProbeRequest{
		URL:       base + domain.HealthEndpointSuffix,
		Method:    http.MethodGet,
		Timeout:   req.Timeout,
		VerifyTLS: req.VerifyTLS,
	})
	info := s.Prober.Probe(ctx, domain.ProbeRequest{
		URL:       base + domain.InfoEndpointSuffix,
		Method:    http.MethodGet,
		Timeout:   req.Timeout,
		VerifyTLS: req.VerifyTLS,
	})

	status := domain.Classify(health, info)
	result := domain.ModuleCheckResult{
		ID:        uuid.NewString(),
		Module:    req.Module,
		Status:    status,
		Health:    health,
		Info:      info,
		Timestamp: s.now(),
	}

	s.Logger.Info("deployment check completed", map[string]interface{}{
		"module": req.Module,
		"status": string(status),
	})

	s.record(base, result)
	return result, nil
}

// CheckCustomAPI probes a single arbitrary endpoint. Success means the probe
// returned exactly the expected status code (default 200); a probe with no
// status code is never a success but still carries elapsed time and error
// details.
func (s *Service) CheckCustomAPI(ctx context.Context, req APIRequest) (domain.APICheckResult, error) {
	target, method, err := s.resolveTarget(req)
	if err != nil {
		return domain.APICheckResult{}, err
	}

	expected := req.ExpectedStatus
	if expected == 0 {
		expected = domain.DefaultExpectedStatus
	}

	outcome := s.Prober.Probe(ctx, domain.ProbeRequest{
		URL:       target,
		Method:    method,
		Headers:   req.Headers,
		Body:      req.Body,
		Timeout:   req.Timeout,
		VerifyTLS: req.VerifyTLS,
	})

	return domain.APICheckResult{
		Outcome:        outcome,
		ExpectedStatus: expected,
		Success:        outcome.HasStatus() && outcome.StatusCode == expected,
	}, nil
}

// ValidateContract performs one probe and compares the response body against
// the expected field/type pairs.
func (s *Service) ValidateContract(ctx context.Context, req ContractRequest) (domain.ContractResult, error) {
	target, method, err := s.resolveTarget(req.APIRequest)
	if err != nil {
		return domain.ContractResult{}, err
	}

	s.Logger.Info("validating contract", map[string]interface{}{
		"endpoint": target,
		"method":   method,
		"fields":   len(req.Expected),
	})

	outcome := s.Prober.Probe(ctx, domain.ProbeRequest{
		URL:       target,
		Method:    method,
		Headers:   req.Headers,
		Body:      req.Body,
		Timeout:   req.Timeout,
		VerifyTLS: req.VerifyTLS,
	})

	result := domain.ValidateContract(outcome, req.Expected)
	s.Logger.Info("contract validation completed", map[string]interface{}{
		"endpoint": target,
		"valid":    result.Valid,
	})
	return result, nil
}

func (s *Service) resolveTarget(req APIRequest) (url, method string, err error) {
	url = req.Endpoint
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		base, err := normalizeBaseURL(req.BaseURL)
		if err != nil {
			return "", "", err
		}
		if !strings.HasPrefix(url, "/") {
			url = "/" + url
		}
		url = base + url
	}

	method = strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions:
	default:
		return "", "", fmt.Errorf("unsupported HTTP method %q", req.Method)
	}
	return url, method, nil
}

func (s *Service) record(base string, result domain.ModuleCheckResult) {
	if s.History == nil {
		return
	}
	rec := domain.CheckRecord{
		ID:               result.ID,
		Timestamp:        result.Timestamp,
		Module:           result.Module,
		BaseURL:          base,
		Status:           result.Status,
		HealthStatusCode: result.Health.StatusCode,
		InfoStatusCode:   result.Info.StatusCode,
		ElapsedMS:        (result.Health.Elapsed + result.Info.Elapsed).Milliseconds(),
		Error:            firstError(result.Health, result.Info),
	}
	if err := s.History.Save(rec); err != nil {
		s.Logger.Warn("failed to record check history", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func normalizeBaseURL(raw string) (string, error) {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if base == "" {
		return "", fmt.Errorf("base URL is required")
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		return "", fmt.Errorf("base URL must start with http:// or https://, got %q", raw)
	}
	return base, nil
}

func firstError(outcomes ...domain.ProbeOutcome) string {
	for _, o := range outcomes {
		if o.Error != "" {
			return o.Error
		}
	}
	return ""
}
