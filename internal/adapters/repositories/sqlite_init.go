package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"ride-schedule-service/internal/adapters/problemfile"
	"ride-schedule-service/internal/domain"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createProblemsQuery := `
	CREATE TABLE IF NOT EXISTS problems (
		name TEXT PRIMARY KEY,
		grid_rows INTEGER NOT NULL,
		grid_cols INTEGER NOT NULL,
		vehicles INTEGER NOT NULL,
		rides INTEGER NOT NULL,
		bonus INTEGER NOT NULL,
		steps INTEGER NOT NULL
	);
	`

	createRidesQuery := `
	CREATE TABLE IF NOT EXISTS rides (
		problem TEXT NOT NULL REFERENCES problems(name) ON DELETE CASCADE,
		ride_id INTEGER NOT NULL,
		start_row INTEGER NOT NULL,
		start_col INTEGER NOT NULL,
		finish_row INTEGER NOT NULL,
		finish_col INTEGER NOT NULL,
		earliest INTEGER NOT NULL,
		latest INTEGER NOT NULL,
		PRIMARY KEY (problem, ride_id)
	);
	`

	createPlanCacheQuery := `
	CREATE TABLE IF NOT EXISTS plan_cache (
		plan_key TEXT PRIMARY KEY,
		assignment TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	`

	createRunsQuery := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		problem TEXT NOT NULL,
		score INTEGER NOT NULL,
		assigned_rides INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);
	`

	createRunErrorsQuery := `
	CREATE TABLE IF NOT EXISTS run_errors (
		run_id TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		message TEXT NOT NULL,
		PRIMARY KEY (run_id, seq)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_runs_created_at
	ON runs(created_at);
	`

	statements := []string{
		createProblemsQuery,
		createRidesQuery,
		createPlanCacheQuery,
		createRunsQuery,
		createRunErrorsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// ProblemSaver is implemented by the SQL problem repositories.
type ProblemSaver interface {
	SaveProblem(ctx context.Context, inst *domain.Instance) error
}

// Import every *.in file under dir into the database.
// Returns the number of problems stored.
func SeedFromDir(ctx context.Context, saver ProblemSaver, dir string) (int, error) {
	src := problemfile.NewDirRepository(dir)

	names, err := src.ListProblems(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed problems: %w", err)
	}

	for _, name := range names {
		inst, err := src.LoadProblem(ctx, name)
		if err != nil {
			return 0, fmt.Errorf("seed problems: %w", err)
		}

		if err := saver.SaveProblem(ctx, inst); err != nil {
			return 0, fmt.Errorf("seed problems: %w", err)
		}
		log.Printf("seeded problem=%s vehicles=%d rides=%d", name, inst.Problem.VehicleCount, len(inst.Rides))
	}

	return len(names), nil
}
