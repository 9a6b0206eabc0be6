package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements the Collector interface using Prometheus metrics.
type PrometheusCollector struct {
	// Introspection endpoint metrics
	validationErrorsTotal *prometheus.CounterVec
	introspectionSeconds  prometheus.Histogram

	// End-to-end validation metrics
	authenticationSeconds prometheus.Histogram
	validationsTotal      *prometheus.CounterVec
}

// NewPrometheusCollector creates a new PrometheusCollector with all metrics registered.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		validationErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pingcheckd_token_validation_errors_total",
			Help: "Total number of introspection responses, by HTTP status code.",
		}, []string{"status"}),
		introspectionSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pingcheckd_introspection_duration_seconds",
			Help:    "Wall time of introspection round trips to the identity provider.",
			Buckets: prometheus.DefBuckets,
		}),

		authenticationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pingcheckd_authentication_duration_seconds",
			Help:    "End-to-end wall time of token validation calls.",
			Buckets: prometheus.DefBuckets,
		}),
		validationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pingcheckd_validations_total",
			Help: "Total number of token validation calls, by result.",
		}, []string{"result"}),
	}

	// Register all metrics
	reg.MustRegister(
		c.validationErrorsTotal,
		c.introspectionSeconds,
		c.authenticationSeconds,
		c.validationsTotal,
	)

	return c
}

// IntrospectionResponse increments the status-labeled response counter.
func (c *PrometheusCollector) IntrospectionResponse(statusCode int) {
	c.validationErrorsTotal.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// IntrospectionDuration observes the remote-call latency.
func (c *PrometheusCollector) IntrospectionDuration(d time.Duration) {
	c.introspectionSeconds.Observe(d.Seconds())
}

// AuthenticationDuration observes the end-to-end validation latency.
func (c *PrometheusCollector) AuthenticationDuration(d time.Duration) {
	c.authenticationSeconds.Observe(d.Seconds())
}

// ValidationCompleted increments the result-labeled validation counter.
func (c *PrometheusCollector) ValidationCompleted(result string) {
	c.validationsTotal.WithLabelValues(result).Inc()
}
