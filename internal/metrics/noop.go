package metrics

import "time"

// NoopCollector is a no-op implementation of the Collector interface.
// All methods are empty stubs that do nothing.
type NoopCollector struct{}

// IntrospectionResponse is a no-op.
func (n *NoopCollector) IntrospectionResponse(statusCode int) {}

// IntrospectionDuration is a no-op.
func (n *NoopCollector) IntrospectionDuration(d time.Duration) {}

// AuthenticationDuration is a no-op.
func (n *NoopCollector) AuthenticationDuration(d time.Duration) {}

// ValidationCompleted is a no-op.
func (n *NoopCollector) ValidationCompleted(result string) {}
