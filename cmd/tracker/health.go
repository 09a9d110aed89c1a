package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rickgao/cryptotracker/internal/metrics"
	"github.com/rickgao/cryptotracker/internal/poller"
	"github.com/rickgao/cryptotracker/internal/version"
)

// cycleStatus is implemented by *poller.Poller.
type cycleStatus interface {
	State() poller.State
	LastCycle() (poller.CycleResult, bool)
}

// newHandler creates the HTTP handler for metrics, health checks and the
// latest summary.
func newHandler(status cycleStatus, gatherer prometheus.Gatherer, metricsPath string) http.Handler {
	mux := http.NewServeMux()

	mux.Handle(metricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		health := struct {
			Status     string         `json:"status"`
			Build      version.Info   `json:"build"`
			Components map[string]any `json:"components"`
		}{
			Status:     "healthy",
			Build:      version.Get(),
			Components: make(map[string]any),
		}

		scheduler := map[string]any{
			"state": status.State().String(),
		}
		if last, ok := status.LastCycle(); ok {
			scheduler["last_cycle_id"] = last.ID.String()
			scheduler["last_outcome"] = last.Outcome
			scheduler["last_finished"] = last.End.UTC().Format(time.RFC3339)
			scheduler["last_listings"] = last.Listings
			if last.Err != nil {
				scheduler["last_error"] = last.Err.Error()
			}
			if last.Outcome != metrics.OutcomeSuccess {
				health.Status = "degraded"
			}
		}
		health.Components["scheduler"] = scheduler

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(health)
	})

	mux.HandleFunc("/debug/summary", func(w http.ResponseWriter, r *http.Request) {
		last, ok := status.LastCycle()
		if !ok {
			http.Error(w, "no cycle has finished yet", http.StatusNotFound)
			return
		}

		type metric struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		}
		out := make([]metric, 0, last.Summary.Len())
		for _, m := range last.Summary.Metrics() {
			out = append(out, metric{Name: m.Name, Value: m.String()})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"cycle_id": last.ID.String(),
			"listings": last.Listings,
			"metrics":  out,
		})
	})

	return mux
}
