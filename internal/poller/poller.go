package poller

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/cryptotracker/internal/metrics"
	"github.com/rickgao/cryptotracker/internal/model"
)

// Fetcher retrieves the current listings.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) (model.ListingSet, error)
}

// Analyzer summarizes a listing set. It never fails outward.
type Analyzer interface {
	Analyze(set model.ListingSet) model.Summary
}

// Sink persists one cycle.
type Sink interface {
	Name() string
	Write(ctx context.Context, set model.ListingSet, summary model.Summary) error
}

// State is the scheduler state.
type State int32

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	default:
		return "idle"
	}
}

// Config holds poller configuration.
type Config struct {
	Interval time.Duration // Delay from the end of one cycle to the next (default: 5m)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval: 300 * time.Second,
	}
}

// CycleResult describes one finished cycle.
type CycleResult struct {
	ID       uuid.UUID
	Start    time.Time
	End      time.Time
	Outcome  string // One of the metrics.Outcome* values
	Listings int
	Summary  model.Summary
	Err      error
}

// Poller drives Fetcher, Analyzer and Sink once per interval.
type Poller struct {
	cfg      Config
	fetcher  Fetcher
	analyzer Analyzer
	sink     Sink
	metrics  *metrics.Metrics
	logger   *slog.Logger

	state  atomic.Int32
	lastMu sync.RWMutex
	last   *CycleResult

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new Poller. m may be nil.
func New(cfg Config, fetcher Fetcher, analyzer Analyzer, sink Sink, m *metrics.Metrics, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	return &Poller{
		cfg:      cfg,
		fetcher:  fetcher,
		analyzer: analyzer,
		sink:     sink,
		metrics:  m,
		logger:   logger,
	}
}

// Start runs the loop in a background goroutine.
func (p *Poller) Start(ctx context.Context) error {
	p.ctx, p.cancel = context.WithCancel(ctx)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.Run(p.ctx)
	}()

	return nil
}

// Stop cancels the loop and waits for the cycle in flight to finish.
func (p *Poller) Stop(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run runs cycles until ctx is cancelled. The first cycle starts
// immediately.
func (p *Poller) Run(ctx context.Context) {
	p.logger.Info("scheduler started",
		"interval", p.cfg.Interval,
		"fetcher", p.fetcher.Name(),
		"sink", p.sink.Name(),
	)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("scheduler stopped")
			return
		case <-timer.C:
			p.RunCycle(ctx)
			timer.Reset(p.cfg.Interval)
		}
	}
}

// State returns the current scheduler state.
func (p *Poller) State() State {
	return State(p.state.Load())
}

// LastCycle returns the most recent finished cycle.
func (p *Poller) LastCycle() (CycleResult, bool) {
	p.lastMu.RLock()
	defer p.lastMu.RUnlock()
	if p.last == nil {
		return CycleResult{}, false
	}
	return *p.last, true
}

// RunCycle performs one fetch, analyze, persist pass. Failures are logged
// and reported in the result, never returned or propagated as panics.
func (p *Poller) RunCycle(ctx context.Context) (res CycleResult) {
	res.ID = uuid.New()
	res.Start = time.Now()
	p.state.Store(int32(StateRunning))

	ctx = model.WithCycleID(ctx, res.ID)
	logger := p.logger.With("cycle_id", res.ID)

	defer func() {
		if r := recover(); r != nil {
			res.Outcome = metrics.OutcomePanic
			res.Err = fmt.Errorf("cycle panic: %v", r)
			logger.Error("cycle panicked", "panic", r, "stack", string(debug.Stack()))
		}
		res.End = time.Now()

		p.metrics.CycleDone(res.Outcome, res.Start, res.End)
		p.lastMu.Lock()
		p.last = &res
		p.lastMu.Unlock()
		p.state.Store(int32(StateIdle))

		logger.Info("cycle complete",
			"outcome", res.Outcome,
			"listings", res.Listings,
			"metrics", res.Summary.Len(),
			"duration", res.End.Sub(res.Start),
		)
	}()

	set, err := p.fetcher.Fetch(ctx)
	if err != nil {
		p.metrics.FetchFailed()
		res.Outcome = metrics.OutcomeFetchError
		res.Err = err
		logger.Error("cycle fetch failed", "kind", model.KindOf(err), "err", err)
		return res
	}
	p.metrics.Fetched(set.Len())
	res.Listings = set.Len()

	if set.Empty() {
		logger.Warn("no data retrieved from the api")
	}

	summary := p.analyzer.Analyze(set)
	if !set.Empty() && summary.Empty() {
		p.metrics.AnalysisFailed()
	}
	res.Summary = summary

	if err := p.sink.Write(ctx, set, summary); err != nil {
		p.metrics.SinkFailed(p.sink.Name())
		res.Outcome = metrics.OutcomeSinkError
		res.Err = err
		logger.Error("cycle persist failed", "sink", p.sink.Name(), "kind", model.KindOf(err), "err", err)
		return res
	}

	res.Outcome = metrics.OutcomeSuccess
	return res
}
