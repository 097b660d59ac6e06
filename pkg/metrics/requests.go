package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics records per-resource API call outcomes.
type RequestMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewRequestMetrics registers the API request metrics on the provided
// registerer. A nil registerer yields a no-op recorder.
func NewRequestMetrics(reg prometheus.Registerer) *RequestMetrics {
	if reg == nil {
		return &RequestMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "api_request_duration_seconds",
		Help:    "Duration of API requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource", "method"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "api_request_success",
		Help: "Successful API requests.",
	}, []string{"resource", "method"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "api_request_failure",
		Help: "Failed API requests.",
	}, []string{"resource", "method"})
	reg.MustRegister(duration, success, failure)
	return &RequestMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration of one request against a resource.
func (m *RequestMetrics) ObserveDuration(resource, method string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(resource), normalizeLabel(method)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for a resource.
func (m *RequestMetrics) IncSuccess(resource, method string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(resource), normalizeLabel(method)).Inc()
}

// IncFailure increments the failure counter for a resource.
func (m *RequestMetrics) IncFailure(resource, method string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(resource), normalizeLabel(method)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
