// Package metrics provides interfaces and implementations for collecting
// token validation metrics. This package defines the Collector interface for
// recording metrics and the Server interface for exposing them.
package metrics

import (
	"context"
	"time"
)

// Validation result labels recorded by ValidationCompleted.
const (
	ResultValid          = "valid"
	ResultInvalid        = "invalid"
	ResultTransportError = "transport_error"
)

// Collector defines the interface for recording token validation metrics.
type Collector interface {
	// IntrospectionResponse records the HTTP status code of a response from
	// the introspection endpoint. Called once per response, success or not.
	IntrospectionResponse(statusCode int)

	// IntrospectionDuration records the wall time of a full introspection
	// request/response cycle, regardless of outcome.
	IntrospectionDuration(d time.Duration)

	// AuthenticationDuration records the end-to-end wall time of a validate
	// call, including the remote round trip, regardless of outcome.
	AuthenticationDuration(d time.Duration)

	// ValidationCompleted records the outcome of a validate call.
	// result should be ResultValid, ResultInvalid, or ResultTransportError.
	ValidationCompleted(result string)
}

// Server defines the interface for a metrics HTTP server.
type Server interface {
	// Start begins serving metrics. It blocks until the context is canceled
	// or an error occurs.
	Start(ctx context.Context) error

	// Shutdown gracefully stops the metrics server.
	Shutdown(ctx context.Context) error
}
