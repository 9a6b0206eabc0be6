package pingfederate

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pingcheck/pingcheck/internal/logging"
	"github.com/pingcheck/pingcheck/internal/metrics"
)

// Validator validates bearer access tokens by introspecting them against a
// Ping Federate endpoint. Each Validate call performs a fresh remote round
// trip; results are never cached and transport failures are never retried.
// A Validator is safe for concurrent use.
type Validator struct {
	client    *Client
	collector metrics.Collector
	logger    *slog.Logger
}

// NewValidator creates a Validator around an introspection client.
// A nil collector or logger falls back to no-op/default implementations.
func NewValidator(client *Client, collector metrics.Collector, logger *slog.Logger) *Validator {
	if collector == nil {
		collector = &metrics.NoopCollector{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{
		client:    client,
		collector: collector,
		logger:    logger,
	}
}

// Validate checks an access token against the provider and returns the
// authenticated principal. It fails with *InvalidTokenError when the
// provider rejects the token or the response is missing required fields,
// and propagates *TransportError unchanged. The end-to-end wall time is
// recorded on every exit path.
func (v *Validator) Validate(ctx context.Context, accessToken string) (*Authentication, error) {
	start := time.Now()
	defer func() {
		v.collector.AuthenticationDuration(time.Since(start))
	}()

	logger := logging.WithValidation(v.logger, uuid.NewString())

	if strings.TrimSpace(accessToken) == "" {
		v.collector.ValidationCompleted(metrics.ResultInvalid)
		logger.Debug("rejecting blank token")
		return nil, &InvalidTokenError{Reason: "token is blank"}
	}

	attrs, err := v.client.Introspect(ctx, accessToken)
	if err != nil {
		v.collector.ValidationCompleted(metrics.ResultTransportError)
		logger.Error("introspection call failed", "error", err)
		return nil, err
	}

	clean, err := Classify(attrs)
	if err != nil {
		v.collector.ValidationCompleted(metrics.ResultInvalid)
		var invalid *InvalidTokenError
		if errors.As(err, &invalid) {
			logger.Debug("token rejected", "reason", invalid.Reason)
		}
		return nil, err
	}

	auth := buildAuthentication(clean)
	v.collector.ValidationCompleted(metrics.ResultValid)
	logger.Info("token validated",
		"principal", auth.Principal,
		"authorities", auth.Authorities.Values(),
	)
	return auth, nil
}

// ReadToken would retrieve a token object by its string value rather than
// validating a live bearer. Ping Federate has no such capability, so it
// fails unconditionally with ErrReadTokenUnsupported.
func (v *Validator) ReadToken(string) (*Authentication, error) {
	return nil, ErrReadTokenUnsupported
}
