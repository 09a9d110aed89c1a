package sink

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rickgao/cryptotracker/internal/config"
	"github.com/rickgao/cryptotracker/internal/database"
	"github.com/rickgao/cryptotracker/internal/model"
)

// PostgresSink replaces the crypto_listings and crypto_analysis tables with
// the latest cycle.
type PostgresSink struct {
	db     *pgxpool.Pool
	logger *slog.Logger
	now    func() time.Time
}

// listingRow is one crypto_listings row.
type listingRow struct {
	listingRecord
	Source    string
	CycleID   uuid.UUID
	FetchedAt time.Time
}

// analysisRow is one crypto_analysis row.
type analysisRow struct {
	metricRecord
	CycleID   uuid.UUID
	UpdatedAt time.Time
}

// NewPostgres creates a PostgresSink on an open pool. The sink owns the pool.
func NewPostgres(db *pgxpool.Pool, logger *slog.Logger) *PostgresSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSink{db: db, logger: logger, now: time.Now}
}

// Name returns "postgres".
func (s *PostgresSink) Name() string { return config.SinkPostgres }

// Init creates the tables if they do not exist.
func (s *PostgresSink) Init(ctx context.Context) error {
	if err := database.Migrate(ctx, s.db); err != nil {
		return model.PersistenceError("migrate postgres", err)
	}
	return nil
}

// Write deletes the previous cycle and inserts this one in a single
// transaction.
func (s *PostgresSink) Write(ctx context.Context, set model.ListingSet, summary model.Summary) error {
	start := time.Now()

	cycleID := model.CycleID(ctx)
	if cycleID == uuid.Nil {
		cycleID = uuid.New()
	}

	listings := s.transformListings(cycleID, set)
	analysis := s.transformAnalysis(cycleID, summary)

	if err := s.replace(ctx, listings, analysis); err != nil {
		return model.PersistenceError("write postgres", err)
	}

	s.logger.Info("data successfully updated in postgres",
		"rows", len(listings),
		"metrics", len(analysis),
		"cycle_id", cycleID,
		"duration", time.Since(start),
	)
	return nil
}

// transformListings converts a ListingSet to crypto_listings rows.
func (s *PostgresSink) transformListings(cycleID uuid.UUID, set model.ListingSet) []listingRow {
	records := toRecords(set)
	rows := make([]listingRow, len(records))
	for i, r := range records {
		rows[i] = listingRow{
			listingRecord: r,
			Source:        set.Source(),
			CycleID:       cycleID,
			FetchedAt:     set.FetchedAt(),
		}
	}
	return rows
}

// transformAnalysis converts a Summary to crypto_analysis rows.
func (s *PostgresSink) transformAnalysis(cycleID uuid.UUID, summary model.Summary) []analysisRow {
	records := toMetricRecords(summary)
	now := s.now()
	rows := make([]analysisRow, len(records))
	for i, r := range records {
		rows[i] = analysisRow{metricRecord: r, CycleID: cycleID, UpdatedAt: now}
	}
	return rows
}

// replace runs the delete and inserts through one pgx.Batch inside a
// transaction.
func (s *PostgresSink) replace(ctx context.Context, listings []listingRow, analysis []analysisRow) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM crypto_listings`)
	batch.Queue(`DELETE FROM crypto_analysis`)
	for _, r := range listings {
		batch.Queue(`
			INSERT INTO crypto_listings (rank, name, symbol, price, market_cap, volume_24h, percent_change_24h, source, cycle_id, fetched_at)
			VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6::numeric, $7::numeric, $8, $9, $10)
		`, r.Rank, r.Name, r.Symbol, r.Price, r.MarketCap, r.Volume24h, r.PercentChange24h, r.Source, r.CycleID, r.FetchedAt)
	}
	for _, r := range analysis {
		batch.Queue(`
			INSERT INTO crypto_analysis (position, metric, value, cycle_id, updated_at)
			VALUES ($1, $2, $3, $4, $5)
		`, r.Position, r.Name, r.Value, r.CycleID, r.UpdatedAt)
	}

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("batch statement %d: %w", i+1, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Close closes the pool. Safe to call more than once.
func (s *PostgresSink) Close() error {
	if s.db != nil {
		s.db.Close()
	}
	return nil
}
