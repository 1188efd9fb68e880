package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres database schema.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init postgres schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`
	CREATE TABLE IF NOT EXISTS problems (
		name TEXT PRIMARY KEY,
		grid_rows BIGINT NOT NULL,
		grid_cols BIGINT NOT NULL,
		vehicles INTEGER NOT NULL,
		rides INTEGER NOT NULL,
		bonus BIGINT NOT NULL,
		steps BIGINT NOT NULL
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS rides (
		problem TEXT NOT NULL REFERENCES problems(name) ON DELETE CASCADE,
		ride_id INTEGER NOT NULL,
		start_row BIGINT NOT NULL,
		start_col BIGINT NOT NULL,
		finish_row BIGINT NOT NULL,
		finish_col BIGINT NOT NULL,
		earliest BIGINT NOT NULL,
		latest BIGINT NOT NULL,
		PRIMARY KEY (problem, ride_id)
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS plan_cache (
		plan_key TEXT PRIMARY KEY,
		assignment JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		problem TEXT NOT NULL,
		score BIGINT NOT NULL,
		assigned_rides INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS run_errors (
		run_id TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		message TEXT NOT NULL,
		PRIMARY KEY (run_id, seq)
	);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_runs_created_at
	ON runs(created_at DESC);
	`,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init postgres schema: commit tx: %w", err)
	}

	return nil
}
