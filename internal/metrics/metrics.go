package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tracker"

// Cycle outcomes.
const (
	OutcomeSuccess    = "success"
	OutcomeFetchError = "fetch_error"
	OutcomeSinkError  = "sink_error"
	OutcomePanic      = "panic"
)

// Metrics holds the tracker's collectors. A nil *Metrics records nothing.
type Metrics struct {
	Cycles           *prometheus.CounterVec
	FetchErrors      prometheus.Counter
	ListingsFetched  prometheus.Gauge
	AnalysisFailures prometheus.Counter
	SinkErrors       *prometheus.CounterVec
	CycleDuration    prometheus.Histogram
	LastSuccess      prometheus.Gauge
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Cycles: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Completed fetch-analyze-persist cycles by outcome.",
		}, []string{"outcome"}),
		FetchErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_errors_total",
			Help:      "Failed listings fetches.",
		}),
		ListingsFetched: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "listings_fetched",
			Help:      "Listings returned by the most recent successful fetch.",
		}),
		AnalysisFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_failures_total",
			Help:      "Non-empty listing sets that produced no summary.",
		}),
		SinkErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sink_errors_total",
			Help:      "Failed sink writes by strategy.",
		}, []string{"sink"}),
		CycleDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Wall time of one cycle.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		LastSuccess: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last cycle that persisted successfully.",
		}),
	}
}

// FetchFailed records a failed fetch.
func (m *Metrics) FetchFailed() {
	if m == nil {
		return
	}
	m.FetchErrors.Inc()
}

// Fetched records the size of a successful fetch.
func (m *Metrics) Fetched(n int) {
	if m == nil {
		return
	}
	m.ListingsFetched.Set(float64(n))
}

// AnalysisFailed records a set that produced no summary.
func (m *Metrics) AnalysisFailed() {
	if m == nil {
		return
	}
	m.AnalysisFailures.Inc()
}

// SinkFailed records a failed write to the named sink.
func (m *Metrics) SinkFailed(sink string) {
	if m == nil {
		return
	}
	m.SinkErrors.WithLabelValues(sink).Inc()
}

// CycleDone records a finished cycle. A "success" outcome also sets the
// last success time to end.
func (m *Metrics) CycleDone(outcome string, start, end time.Time) {
	if m == nil {
		return
	}
	m.Cycles.WithLabelValues(outcome).Inc()
	m.CycleDuration.Observe(end.Sub(start).Seconds())
	if outcome == OutcomeSuccess {
		m.LastSuccess.Set(float64(end.Unix()))
	}
}
