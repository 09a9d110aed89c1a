package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	start := time.Unix(1714564800, 0)
	end := start.Add(2 * time.Second)

	m.FetchFailed()
	m.CycleDone(OutcomeFetchError, start, end)
	m.Fetched(50)
	m.AnalysisFailed()
	m.SinkFailed("csv")
	m.SinkFailed("csv")
	m.CycleDone(OutcomeSuccess, start, end)

	if got := testutil.ToFloat64(m.FetchErrors); got != 1 {
		t.Errorf("fetch_errors_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ListingsFetched); got != 50 {
		t.Errorf("listings_fetched = %v, want 50", got)
	}
	if got := testutil.ToFloat64(m.AnalysisFailures); got != 1 {
		t.Errorf("analysis_failures_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.SinkErrors.WithLabelValues("csv")); got != 2 {
		t.Errorf("sink_errors_total{sink=csv} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Cycles.WithLabelValues(OutcomeSuccess)); got != 1 {
		t.Errorf("cycles_total{outcome=success} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Cycles.WithLabelValues(OutcomeFetchError)); got != 1 {
		t.Errorf("cycles_total{outcome=fetch_error} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.LastSuccess); got != float64(end.Unix()) {
		t.Errorf("last_success_timestamp_seconds = %v, want %v", got, end.Unix())
	}

	if n := testutil.CollectAndCount(m.CycleDuration); n != 1 {
		t.Errorf("cycle_duration_seconds series = %d, want 1", n)
	}
}

func TestMetrics_Registered(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.SinkFailed("redis")
	m.Cycles.WithLabelValues(OutcomeSuccess)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"tracker_cycles_total",
		"tracker_fetch_errors_total",
		"tracker_listings_fetched",
		"tracker_analysis_failures_total",
		"tracker_sink_errors_total",
		"tracker_cycle_duration_seconds",
		"tracker_last_success_timestamp_seconds",
	} {
		if !names[want] {
			t.Errorf("metric %s not registered", want)
		}
	}
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	m.FetchFailed()
	m.Fetched(1)
	m.AnalysisFailed()
	m.SinkFailed("csv")
	m.CycleDone(OutcomeSuccess, time.Now(), time.Now())
}
