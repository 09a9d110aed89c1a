// Package poller implements the scheduler loop.
//
// The Poller:
//   - Runs one fetch, analyze, persist cycle at startup
//   - Waits a fixed interval measured from the end of each cycle
//   - Tags every cycle with a uuid carried in logs and the sink context
//   - Logs and contains cycle failures, including panics, so the loop
//     only stops when its context is cancelled
//
// State is Idle between cycles and Running while one is in flight.
package poller
