package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics instruments the HTTP API.
type RequestMetrics struct {
	// Counts of requests made to each service endpoint, by outcome.
	RequestCounts *prometheus.CounterVec

	// Latencies of serving incoming requests.
	RequestLatencies *prometheus.HistogramVec
}

// NewDefaultRequestMetrics creates Prometheus metric instrumentation for
// the API: counts of endpoints hit and request latencies. Calling it twice
// with the same pkg returns the already registered collectors.
func NewDefaultRequestMetrics(pkg string) RequestMetrics {
	metrics := RequestMetrics{
		RequestCounts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: fmt.Sprintf("%s_requests", pkg),
				Help: "How many service requests were made, partitioned by request endpoint and status.",
			},
			[]string{"endpoint", "status"}, // Labels.
		),
		RequestLatencies: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: fmt.Sprintf("%s_request_latencies", pkg),
				Help: "How long requests take to process, partitioned by request endpoint.",
			},
			[]string{"endpoint"}, // Labels.
		),
	}
	metrics.RequestCounts = registerOnce(metrics.RequestCounts)
	metrics.RequestLatencies = registerOnce(metrics.RequestLatencies)
	return metrics
}

// RequestCounter returns the counter for a finished request.
func (m *RequestMetrics) RequestCounter(endpoint, status string) prometheus.Counter {
	return m.RequestCounts.WithLabelValues(endpoint, status)
}

// RequestTimer starts a latency timer for the endpoint.
func (m *RequestMetrics) RequestTimer(endpoint string) *prometheus.Timer {
	return prometheus.NewTimer(m.RequestLatencies.WithLabelValues(endpoint))
}
