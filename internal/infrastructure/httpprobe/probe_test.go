package httpprobe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/springprobe/internal/domain"
	"github.com/doeshing/springprobe/internal/pkg/logger"
)

func newTestProber() *Prober {
	return New(logger.NewNop(), "springprobe/test")
}

func TestProbeSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "springprobe/test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "UP", "build": 42}`))
	}))
	defer server.Close()

	outcome := newTestProber().Probe(context.Background(), domain.ProbeRequest{
		URL:       server.URL,
		Method:    http.MethodGet,
		Timeout:   5 * time.Second,
		VerifyTLS: true,
	})

	require.Equal(t, 200, outcome.StatusCode)
	assert.True(t, outcome.HasStatus())
	assert.Empty(t, outcome.Error)
	assert.Empty(t, outcome.ParseWarning)
	assert.Greater(t, outcome.Elapsed, time.Duration(0))

	body, ok := outcome.Body.(map[string]any)
	require.True(t, ok, "body should decode to an object")
	assert.Equal(t, "UP", body["status"])
	assert.Equal(t, json.Number("42"), body["build"])
}

func TestProbeSendsJSONBody(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	outcome := newTestProber().Probe(context.Background(), domain.ProbeRequest{
		URL:       server.URL,
		Method:    http.MethodPost,
		Body:      map[string]any{"name": "Jo"},
		Timeout:   5 * time.Second,
		VerifyTLS: true,
	})

	require.Equal(t, http.StatusCreated, outcome.StatusCode)
	assert.Equal(t, map[string]any{"name": "Jo"}, received)
}

func TestProbeNon2xxKeepsBodyAndRecordsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status": "DOWN"}`))
	}))
	defer server.Close()

	outcome := newTestProber().Probe(context.Background(), domain.ProbeRequest{
		URL:       server.URL,
		Method:    http.MethodGet,
		Timeout:   5 * time.Second,
		VerifyTLS: true,
	})

	require.Equal(t, http.StatusServiceUnavailable, outcome.StatusCode)
	assert.Contains(t, outcome.Error, "HTTP 503")
	body, ok := outcome.Body.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "DOWN", body["status"])
}

func TestProbeNonJSONBodyIsAWarningNotAFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	outcome := newTestProber().Probe(context.Background(), domain.ProbeRequest{
		URL:       server.URL,
		Method:    http.MethodGet,
		Timeout:   5 * time.Second,
		VerifyTLS: true,
	})

	require.Equal(t, 200, outcome.StatusCode)
	assert.Nil(t, outcome.Body)
	assert.Equal(t, "<html>not json</html>", outcome.RawBody)
	assert.Contains(t, outcome.ParseWarning, "not JSON")
	assert.Empty(t, outcome.Error, "parse problems must not fail the probe")
}

func TestProbeTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	outcome := newTestProber().Probe(context.Background(), domain.ProbeRequest{
		URL:       server.URL,
		Method:    http.MethodGet,
		Timeout:   30 * time.Millisecond,
		VerifyTLS: true,
	})

	assert.False(t, outcome.HasStatus())
	assert.Equal(t, domain.FailureTimeout, outcome.Failure)
	assert.NotEmpty(t, outcome.Error)
}

func TestProbeConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	target := server.URL
	server.Close()

	outcome := newTestProber().Probe(context.Background(), domain.ProbeRequest{
		URL:       target,
		Method:    http.MethodGet,
		Timeout:   time.Second,
		VerifyTLS: true,
	})

	assert.False(t, outcome.HasStatus())
	assert.Equal(t, domain.FailureConnection, outcome.Failure)
	assert.NotEmpty(t, outcome.Error)
}

func TestProbeTLSVerificationToggle(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "UP"}`))
	}))
	defer server.Close()

	prober := newTestProber()

	strict := prober.Probe(context.Background(), domain.ProbeRequest{
		URL:       server.URL,
		Method:    http.MethodGet,
		Timeout:   5 * time.Second,
		VerifyTLS: true,
	})
	assert.False(t, strict.HasStatus())
	assert.Equal(t, domain.FailureTLS, strict.Failure, "self-signed cert must fail verification")

	relaxed := prober.Probe(context.Background(), domain.ProbeRequest{
		URL:       server.URL,
		Method:    http.MethodGet,
		Timeout:   5 * time.Second,
		VerifyTLS: false,
	})
	assert.Equal(t, 200, relaxed.StatusCode)
}

func TestProbeUnserializableBody(t *testing.T) {
	outcome := newTestProber().Probe(context.Background(), domain.ProbeRequest{
		URL:     "http://unused.invalid",
		Method:  http.MethodPost,
		Body:    make(chan int),
		Timeout: time.Second,
	})

	assert.False(t, outcome.HasStatus())
	assert.Equal(t, domain.FailureOther, outcome.Failure)
	assert.Contains(t, outcome.Error, "encoding request body")
}
