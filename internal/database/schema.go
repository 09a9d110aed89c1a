package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Schema statements, applied in order. Each is idempotent.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS crypto_listings (
		rank               INTEGER PRIMARY KEY,
		name               TEXT,
		symbol             TEXT,
		price              NUMERIC,
		market_cap         NUMERIC,
		volume_24h         NUMERIC,
		percent_change_24h NUMERIC,
		source             TEXT        NOT NULL,
		cycle_id           UUID        NOT NULL,
		fetched_at         TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS crypto_analysis (
		position   INTEGER PRIMARY KEY,
		metric     TEXT        NOT NULL,
		value      TEXT        NOT NULL,
		cycle_id   UUID        NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
}

// Migrate creates the sink tables if they do not exist.
func Migrate(ctx context.Context, db Execer) error {
	for i, stmt := range Schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
