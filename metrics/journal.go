package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// JournalOutcome partitions sign journal checks.
type JournalOutcome string

const (
	// JournalRecorded means a new sign request was recorded.
	JournalRecorded JournalOutcome = "recorded"
	// JournalRepeat means an identical request was seen before.
	JournalRepeat JournalOutcome = "repeat"
	// JournalConflict means a different request for the same slot was refused.
	JournalConflict JournalOutcome = "conflict"
	// JournalError is any store failure.
	JournalError JournalOutcome = "error"
)

// JournalMetrics instruments the sign journal.
type JournalMetrics struct {
	// Counts of journal checks, partitioned by chain and outcome.
	checks *prometheus.CounterVec

	// Latencies of journal store operations.
	latencies *prometheus.HistogramVec
}

// NewDefaultJournalMetrics creates Prometheus metric instrumentation for the
// sign journal.
func NewDefaultJournalMetrics(pkg string) JournalMetrics {
	metrics := JournalMetrics{
		checks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: fmt.Sprintf("%s_journal_checks", pkg),
				Help: "How many sign requests were checked against the journal, partitioned by chain and outcome.",
			},
			[]string{"chain_id", "outcome"}, // Labels.
		),
		latencies: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: fmt.Sprintf("%s_journal_latencies", pkg),
				Help: "How long journal store operations take, partitioned by operation.",
			},
			[]string{"operation"}, // Labels.
		),
	}
	metrics.checks = registerOnce(metrics.checks)
	metrics.latencies = registerOnce(metrics.latencies)
	return metrics
}

// Checks returns the counter for a journal check.
func (m *JournalMetrics) Checks(chainID string, outcome JournalOutcome) prometheus.Counter {
	return m.checks.WithLabelValues(chainID, string(outcome))
}

// Latency returns a new latency timer for the store operation.
func (m *JournalMetrics) Latency(operation string) *prometheus.Timer {
	return prometheus.NewTimer(m.latencies.WithLabelValues(operation))
}
