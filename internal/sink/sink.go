package sink

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rickgao/cryptotracker/internal/config"
	"github.com/rickgao/cryptotracker/internal/database"
	"github.com/rickgao/cryptotracker/internal/model"
)

// Sink writes one cycle's results to a persistent target.
type Sink interface {
	// Name returns the strategy name (e.g., "csv").
	Name() string

	// Write replaces the target's contents with set and summary.
	Write(ctx context.Context, set model.ListingSet, summary model.Summary) error

	// Close releases the target. It is safe to call more than once.
	Close() error
}

// New creates the Sink selected by cfg.Kind.
func New(ctx context.Context, cfg config.SinkConfig, logger *slog.Logger) (Sink, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Kind {
	case config.SinkCSV:
		return NewCSV(cfg.CSV, logger), nil

	case config.SinkXLSX:
		s, err := NewXLSX(cfg.XLSX, logger)
		if err != nil {
			return nil, err
		}
		return s, nil

	case config.SinkPostgres:
		pool, err := database.Connect(ctx, cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		s := NewPostgres(pool, logger)
		if err := s.Init(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return s, nil

	case config.SinkRedis:
		s := NewRedis(cfg.Redis, logger)
		if err := s.Ping(ctx); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unknown sink kind %q", cfg.Kind)
	}
}
