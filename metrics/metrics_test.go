package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/oasisprotocol/deepspace/log"
)

func TestRequestMetricsRegisterOnce(t *testing.T) {
	m1 := NewDefaultRequestMetrics("metrics_test")
	m2 := NewDefaultRequestMetrics("metrics_test")
	require.Same(t, m1.RequestCounts, m2.RequestCounts)

	m1.RequestCounter("/v1/vote_hash", "success").Inc()
	m1.RequestCounter("/v1/vote_hash", "success").Inc()
	require.Equal(t, 2.0, testutil.ToFloat64(m2.RequestCounter("/v1/vote_hash", "success")))
	require.Equal(t, 0.0, testutil.ToFloat64(m2.RequestCounter("/v1/vote_hash", "failure_4xx")))

	m1.RequestTimer("/v1/vote_hash").ObserveDuration()
}

func TestJournalMetrics(t *testing.T) {
	m := NewDefaultJournalMetrics("metrics_test")
	m.Checks("columbus-5", JournalConflict).Inc()
	m.Checks("columbus-5", JournalConflict).Inc()
	again := NewDefaultJournalMetrics("metrics_test")
	require.Equal(t, 2.0, testutil.ToFloat64(again.Checks("columbus-5", JournalConflict)))
	require.Equal(t, 0.0, testutil.ToFloat64(m.Checks("columbus-5", JournalRecorded)))
	m.Latency("put").ObserveDuration()
}

func TestPullServiceScrape(t *testing.T) {
	m := NewDefaultJournalMetrics("metrics_scrape_test")
	m.Checks("columbus-5", JournalRecorded).Inc()

	s := NewPullService("localhost:0", log.NewNopLogger())
	require.Equal(t, "localhost:0", s.server.Addr)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, ScrapePath, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `metrics_scrape_test_journal_checks{chain_id="columbus-5",outcome="recorded"} 1`)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
