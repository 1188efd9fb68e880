package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ride-schedule-service/internal/domain"
	"ride-schedule-service/internal/platform/obs"
)

// SQLRunStore is a Postgres-backed RunStore.
type SQLRunStore struct {
	DB *sql.DB
}

func NewSQLRunStore(db *sql.DB) *SQLRunStore {
	return &SQLRunStore{DB: db}
}

func (s *SQLRunStore) SaveRun(ctx context.Context, run domain.RunResult) (err error) {
	defer obs.Time(ctx, "runs.Save")(&err)

	if s.DB == nil {
		return errors.New("sql run store: db is nil")
	}

	return saveRun(ctx, s.DB, run, run.CreatedAt,
		`INSERT INTO runs (run_id, problem, score, assigned_rides, created_at) VALUES ($1, $2, $3, $4, $5);`,
		`INSERT INTO run_errors (run_id, seq, message) VALUES ($1, $2, $3);`,
	)
}

func (s *SQLRunStore) ListRuns(ctx context.Context, limit int) (_ []domain.RunResult, err error) {
	defer obs.Time(ctx, "runs.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql run store: db is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT run_id, problem, score, assigned_rides, created_at
	FROM runs
	ORDER BY created_at DESC, run_id
	LIMIT $1;
	`, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list runs: query runs table: %w", err)
	}
	defer rows.Close()

	runs := make([]domain.RunResult, 0, 16)
	ids := make([]string, 0, 16)
	for rows.Next() {
		var r domain.RunResult
		if err := rows.Scan(&r.RunID, &r.ProblemName, &r.Score, &r.AssignedRides, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("list runs: scan row: %w", err)
		}
		r.CreatedAt = r.CreatedAt.UTC()
		runs = append(runs, r)
		ids = append(ids, r.RunID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	if len(runs) == 0 {
		return runs, nil
	}

	q := `
	SELECT run_id, message
	FROM run_errors
	WHERE run_id = ANY($1::text[])
	ORDER BY run_id, seq;
	`
	if err := attachErrors(ctx, s.DB, runs, q, ids); err != nil {
		return nil, err
	}
	return runs, nil
}
