// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - Cycle outcomes and durations
//   - Fetch errors and listings per fetch
//   - Analysis failures
//   - Sink write errors by strategy
//   - Time of the last successful cycle
package metrics
