// Package pingfederate validates bearer access tokens against a Ping
// Federate token introspection endpoint.
package pingfederate

import (
	"errors"
	"fmt"
)

// ErrReadTokenUnsupported is returned by ReadToken for every input.
// Ping Federate offers no way to look up a token object by its value.
var ErrReadTokenUnsupported = errors.New("reading access tokens by value is not supported by Ping Federate")

// InvalidTokenError is returned when the provider's response rejects the
// token: an explicit error field, a missing required field, or an unusable
// scope value. Reason is always human-readable.
type InvalidTokenError struct {
	Reason string
}

func (e *InvalidTokenError) Error() string {
	return "invalid token: " + e.Reason
}

// TransportError is returned when the introspection call fails at the
// network or HTTP level: a non-classifiable status code, a connection
// failure, or an undecodable body. StatusCode is zero when no response
// was received.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("introspection transport failure (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("introspection transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
