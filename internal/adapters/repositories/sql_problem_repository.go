package repositories

import (
	"context"
	"database/sql"
	"errors"
	"ride-schedule-service/internal/domain"
	"ride-schedule-service/internal/platform/obs"
)

// SQLProblemRepository is the Postgres implementation of the ProblemRepository port.
type SQLProblemRepository struct{ DB *sql.DB }

func NewSQLProblemRepository(db *sql.DB) *SQLProblemRepository {
	return &SQLProblemRepository{DB: db}
}

func (s *SQLProblemRepository) ListProblems(ctx context.Context) (_ []string, err error) {
	defer obs.Time(ctx, "problems.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql problem repository: DB is nil")
	}

	// Same query in both dialects.
	return (&SqliteProblemRepository{DB: s.DB}).ListProblems(ctx)
}

func (s *SQLProblemRepository) LoadProblem(ctx context.Context, name string) (_ *domain.Instance, err error) {
	defer obs.Time(ctx, "problems.Load")(&err)

	if s.DB == nil {
		return nil, errors.New("sql problem repository: DB is nil")
	}

	headerQuery := `
	SELECT grid_rows, grid_cols, vehicles, rides, bonus, steps
	FROM problems
	WHERE name = $1;
	`
	ridesQuery := `
	SELECT ride_id, start_row, start_col, finish_row, finish_col, earliest, latest
	FROM rides
	WHERE problem = $1
	ORDER BY ride_id;
	`
	return loadProblem(ctx, s.DB, name, headerQuery, ridesQuery)
}

func (s *SQLProblemRepository) SaveProblem(ctx context.Context, inst *domain.Instance) (err error) {
	defer obs.Time(ctx, "problems.Save")(&err)

	if s.DB == nil {
		return errors.New("sql problem repository: DB is nil")
	}

	upsertQuery := `
	INSERT INTO problems (name, grid_rows, grid_cols, vehicles, rides, bonus, steps)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (name) DO UPDATE SET
		grid_rows = EXCLUDED.grid_rows,
		grid_cols = EXCLUDED.grid_cols,
		vehicles = EXCLUDED.vehicles,
		rides = EXCLUDED.rides,
		bonus = EXCLUDED.bonus,
		steps = EXCLUDED.steps;
	`
	deleteRidesQuery := `DELETE FROM rides WHERE problem = $1;`
	insertRideQuery := `
	INSERT INTO rides (problem, ride_id, start_row, start_col, finish_row, finish_col, earliest, latest)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	return saveProblem(ctx, s.DB, inst, upsertQuery, deleteRidesQuery, insertRideQuery)
}
