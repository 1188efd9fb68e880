package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ride-schedule-service/internal/domain"
	"strings"
	"time"
)

const (
	defaultRunLimit = 20
	maxRunLimit     = 1000
)

// SQLite-backed RunStore. Timestamps are stored as unix milliseconds.
type SqliteRunStore struct{ DB *sql.DB }

func NewSqliteRunStore(db *sql.DB) *SqliteRunStore {
	return &SqliteRunStore{DB: db}
}

// Persist a run and its violation messages in one transaction.
func (s *SqliteRunStore) SaveRun(ctx context.Context, run domain.RunResult) error {
	if s.DB == nil {
		return errors.New("sqlite run store: DB is nil")
	}

	insertRunQuery := `
	INSERT INTO runs (
		run_id,
		problem,
		score,
		assigned_rides,
		created_at
	)
	VALUES (?, ?, ?, ?, ?);
	`
	insertErrorQuery := `
	INSERT INTO run_errors (
		run_id,
		seq,
		message
	)
	VALUES (?, ?, ?);
	`
	return saveRun(ctx, s.DB, run, run.CreatedAt.UnixMilli(), insertRunQuery, insertErrorQuery)
}

// Return the most recent runs, newest first.
func (s *SqliteRunStore) ListRuns(ctx context.Context, limit int) ([]domain.RunResult, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite run store: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		run_id,
		problem,
		score,
		assigned_rides,
		created_at
	FROM runs
	ORDER BY created_at DESC, run_id
	LIMIT ?;
	`, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list runs: query runs table: %w", err)
	}
	defer rows.Close()

	runs := make([]domain.RunResult, 0, 16)
	for rows.Next() {
		var r domain.RunResult
		var createdMillis int64
		if err := rows.Scan(&r.RunID, &r.ProblemName, &r.Score, &r.AssignedRides, &createdMillis); err != nil {
			return nil, fmt.Errorf("list runs: scan row: %w", err)
		}
		r.CreatedAt = time.UnixMilli(createdMillis).UTC()
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	if len(runs) == 0 {
		return runs, nil
	}

	ph := make([]string, 0, len(runs))
	args := make([]any, 0, len(runs))
	for _, r := range runs {
		ph = append(ph, "?")
		args = append(args, r.RunID)
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT
		run_id,
		message
	FROM run_errors
	WHERE run_id IN (%s)
	ORDER BY run_id, seq;
	`, strings.Join(ph, ","))

	if err := attachErrors(ctx, s.DB, runs, q, args...); err != nil {
		return nil, err
	}
	return runs, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultRunLimit
	}
	if limit > maxRunLimit {
		return maxRunLimit
	}
	return limit
}

func saveRun(ctx context.Context, db *sql.DB, run domain.RunResult, createdAt any, insertRunQuery, insertErrorQuery string) error {
	if strings.TrimSpace(run.RunID) == "" {
		return errors.New("save run: empty run id")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save run: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, insertRunQuery,
		run.RunID, run.ProblemName, run.Score, run.AssignedRides, createdAt,
	); err != nil {
		return fmt.Errorf("save run %s: insert run: %w", run.RunID, err)
	}

	if len(run.Errors) > 0 {
		stmt, err := tx.PrepareContext(ctx, insertErrorQuery)
		if err != nil {
			return fmt.Errorf("save run %s: db prepare: %w", run.RunID, err)
		}
		defer stmt.Close()

		for i, msg := range run.Errors {
			if _, err := stmt.ExecContext(ctx, run.RunID, i, msg); err != nil {
				return fmt.Errorf("save run %s: insert error #%d: %w", run.RunID, i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save run %s: commit: %w", run.RunID, err)
	}

	return nil
}

func attachErrors(ctx context.Context, db *sql.DB, runs []domain.RunResult, query string, args ...any) error {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("list runs: query run_errors table: %w", err)
	}
	defer rows.Close()

	byID := make(map[string][]string, len(runs))
	for rows.Next() {
		var id, msg string
		if err := rows.Scan(&id, &msg); err != nil {
			return fmt.Errorf("list runs: scan error row: %w", err)
		}
		byID[id] = append(byID[id], msg)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("list runs: error row iteration: %w", err)
	}

	for i := range runs {
		msgs := byID[runs[i].RunID]
		if msgs == nil {
			msgs = []string{}
		}
		runs[i].Errors = msgs
	}
	return nil
}
