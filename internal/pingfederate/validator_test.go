package pingfederate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pingcheck/pingcheck/internal/logging"
	"github.com/pingcheck/pingcheck/internal/metrics"
)

func newTestValidator(t *testing.T, handler http.HandlerFunc, collector metrics.Collector) (*Validator, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, "genie", "secret", WithCollector(collector))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return NewValidator(client, collector, logging.NewLogger("error")), srv
}

func respondJSON(t *testing.T, attrs map[string]any) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(attrs)
	}
}

func TestValidateRoundTrip(t *testing.T) {
	collector := &recordingCollector{}
	v, _ := newTestValidator(t, respondJSON(t, map[string]any{
		"client_id": "abc",
		"scope":     "read write",
	}), collector)

	auth, err := v.Validate(context.Background(), "sometoken")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if auth.Principal != "abc" {
		t.Errorf("expected principal 'abc', got %q", auth.Principal)
	}
	if !auth.Authorities.Has("read") || !auth.Authorities.Has("write") {
		t.Errorf("expected authorities {read, write}, got %v", auth.Authorities.Values())
	}
	if len(auth.Authorities) != 2 {
		t.Errorf("expected 2 authorities, got %d", len(auth.Authorities))
	}
	if auth.Attributes["client_id"] != "abc" {
		t.Errorf("expected client_id attribute 'abc', got %v", auth.Attributes["client_id"])
	}

	if len(collector.results) != 1 || collector.results[0] != metrics.ResultValid {
		t.Errorf("expected one valid result, got %v", collector.results)
	}
}

func TestValidateAuthorities(t *testing.T) {
	collector := &recordingCollector{}
	v, _ := newTestValidator(t, respondJSON(t, map[string]any{
		"client_id": "genie",
		"scope":     "read write admin",
	}), collector)

	auth, err := v.Validate(context.Background(), "sometoken")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, scope := range []string{"read", "write", "admin"} {
		if !auth.Authorities.Has(scope) {
			t.Errorf("expected authority %q, got %v", scope, auth.Authorities.Values())
		}
	}
}

func TestValidateProviderError(t *testing.T) {
	collector := &recordingCollector{}
	v, _ := newTestValidator(t, respondJSON(t, map[string]any{
		"error":     "token_expired",
		"client_id": "genie",
		"scope":     "read",
	}), collector)

	_, err := v.Validate(context.Background(), "sometoken")

	var invalid *InvalidTokenError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTokenError, got %v", err)
	}
	if invalid.Reason != "token_expired" {
		t.Errorf("expected reason 'token_expired', got %q", invalid.Reason)
	}

	if len(collector.results) != 1 || collector.results[0] != metrics.ResultInvalid {
		t.Errorf("expected one invalid result, got %v", collector.results)
	}
}

func TestValidateMissingClientID(t *testing.T) {
	collector := &recordingCollector{}
	v, _ := newTestValidator(t, respondJSON(t, map[string]any{
		"scope": "read write",
	}), collector)

	_, err := v.Validate(context.Background(), "sometoken")

	var invalid *InvalidTokenError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTokenError, got %v", err)
	}
	if invalid.Reason != "missing client id" {
		t.Errorf("expected reason 'missing client id', got %q", invalid.Reason)
	}
}

func TestValidateBlankScope(t *testing.T) {
	collector := &recordingCollector{}
	v, _ := newTestValidator(t, respondJSON(t, map[string]any{
		"client_id": "genie",
		"scope":     "  ",
	}), collector)

	_, err := v.Validate(context.Background(), "sometoken")

	var invalid *InvalidTokenError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTokenError, got %v", err)
	}
	if invalid.Reason != "no scopes found" {
		t.Errorf("expected reason 'no scopes found', got %q", invalid.Reason)
	}
}

func TestValidateBlankToken(t *testing.T) {
	requested := false
	collector := &recordingCollector{}
	v, _ := newTestValidator(t, func(w http.ResponseWriter, r *http.Request) {
		requested = true
	}, collector)

	for _, token := range []string{"", "   ", "\t\n"} {
		_, err := v.Validate(context.Background(), token)

		var invalid *InvalidTokenError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected InvalidTokenError for %q, got %v", token, err)
		}
	}

	if requested {
		t.Error("expected no remote call for blank tokens")
	}
	// End-to-end latency is still recorded for rejected calls.
	if len(collector.authDurs) != 3 {
		t.Errorf("expected 3 latency observations, got %d", len(collector.authDurs))
	}
	for _, d := range collector.authDurs {
		if d < 0 {
			t.Errorf("expected non-negative duration, got %v", d)
		}
	}
}

func TestValidateTransportFailureNotReclassified(t *testing.T) {
	collector := &recordingCollector{}
	v, _ := newTestValidator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, collector)

	_, err := v.Validate(context.Background(), "sometoken")

	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	var invalid *InvalidTokenError
	if errors.As(err, &invalid) {
		t.Error("transport failure must not be reclassified as an invalid token")
	}

	if len(collector.results) != 1 || collector.results[0] != metrics.ResultTransportError {
		t.Errorf("expected one transport_error result, got %v", collector.results)
	}
}

func TestValidate400WithClassifiableBody(t *testing.T) {
	collector := &recordingCollector{}
	v, _ := newTestValidator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": "invalid_grant"})
	}, collector)

	_, err := v.Validate(context.Background(), "sometoken")

	var invalid *InvalidTokenError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTokenError from a classifiable 400, got %v", err)
	}
	if invalid.Reason != "invalid_grant" {
		t.Errorf("expected reason 'invalid_grant', got %q", invalid.Reason)
	}
}

func TestValidateLatencyRecordedOnAllPaths(t *testing.T) {
	collector := &recordingCollector{}
	v, _ := newTestValidator(t, respondJSON(t, map[string]any{
		"client_id": "genie",
		"scope":     "read",
	}), collector)

	// Success path
	if _, err := v.Validate(context.Background(), "sometoken"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Failure path (blank token)
	if _, err := v.Validate(context.Background(), ""); err == nil {
		t.Fatal("expected error for blank token")
	}

	if len(collector.authDurs) != 2 {
		t.Fatalf("expected 2 end-to-end observations, got %d", len(collector.authDurs))
	}
	for _, d := range collector.authDurs {
		if d < 0 {
			t.Errorf("expected non-negative duration, got %v", d)
		}
	}
	// The remote call was only made once.
	if len(collector.apiDurs) != 1 {
		t.Errorf("expected 1 remote-call observation, got %d", len(collector.apiDurs))
	}
}

func TestReadTokenAlwaysFails(t *testing.T) {
	v, _ := newTestValidator(t, respondJSON(t, map[string]any{
		"client_id": "genie",
		"scope":     "read",
	}), &recordingCollector{})

	for _, token := range []string{"", "sometoken", "valid-looking-token"} {
		_, err := v.ReadToken(token)
		if !errors.Is(err, ErrReadTokenUnsupported) {
			t.Errorf("expected ErrReadTokenUnsupported for %q, got %v", token, err)
		}
	}
}

func TestNewValidatorNilFallbacks(t *testing.T) {
	client, err := NewClient("https://idp.example.com", "genie", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v := NewValidator(client, nil, nil)
	if v.collector == nil {
		t.Error("expected fallback collector")
	}
	if v.logger == nil {
		t.Error("expected fallback logger")
	}
}
