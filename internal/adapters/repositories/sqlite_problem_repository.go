package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ride-schedule-service/internal/domain"
	"ride-schedule-service/internal/ports"
)

// SQLite-backed implementation of the ProblemRepository port.
type SqliteProblemRepository struct{ DB *sql.DB }

func NewSqliteProblemRepository(db *sql.DB) *SqliteProblemRepository {
	return &SqliteProblemRepository{DB: db}
}

// Return the names of all problems stored in the database.
func (s *SqliteProblemRepository) ListProblems(ctx context.Context) ([]string, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite problem repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT name FROM problems ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("list problems: query problems table: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0, 8)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list problems: scan row: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list problems: row iteration: %w", err)
	}

	return names, nil
}

// Load a problem header and its rides. The fleet is rebuilt from the header.
func (s *SqliteProblemRepository) LoadProblem(ctx context.Context, name string) (*domain.Instance, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite problem repository: DB is nil")
	}

	headerQuery := `
	SELECT
		grid_rows,
		grid_cols,
		vehicles,
		rides,
		bonus,
		steps
	FROM problems
	WHERE name = ?;
	`
	ridesQuery := `
	SELECT
		ride_id,
		start_row,
		start_col,
		finish_row,
		finish_col,
		earliest,
		latest
	FROM rides
	WHERE problem = ?
	ORDER BY ride_id;
	`
	return loadProblem(ctx, s.DB, name, headerQuery, ridesQuery)
}

// Store a problem, replacing any previous version with the same name.
func (s *SqliteProblemRepository) SaveProblem(ctx context.Context, inst *domain.Instance) error {
	if s.DB == nil {
		return errors.New("sqlite problem repository: DB is nil")
	}

	upsertQuery := `
	INSERT OR REPLACE INTO problems (
		name,
		grid_rows,
		grid_cols,
		vehicles,
		rides,
		bonus,
		steps
	)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`
	deleteRidesQuery := `DELETE FROM rides WHERE problem = ?;`
	insertRideQuery := `
	INSERT INTO rides (
		problem,
		ride_id,
		start_row,
		start_col,
		finish_row,
		finish_col,
		earliest,
		latest
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`
	return saveProblem(ctx, s.DB, inst, upsertQuery, deleteRidesQuery, insertRideQuery)
}

// loadProblem and saveProblem hold the dialect-independent parts; callers
// pass queries written for their driver's placeholder style.
func loadProblem(ctx context.Context, db *sql.DB, name, headerQuery, ridesQuery string) (*domain.Instance, error) {
	var p domain.Problem
	err := db.QueryRowContext(ctx, headerQuery, name).Scan(
		&p.Rows,
		&p.Cols,
		&p.VehicleCount,
		&p.RideCount,
		&p.Bonus,
		&p.SimSteps,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load problem %q: %w", name, ports.ErrProblemNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load problem %q: query problems table: %w", name, err)
	}

	rows, err := db.QueryContext(ctx, ridesQuery, name)
	if err != nil {
		return nil, fmt.Errorf("load problem %q: query rides table: %w", name, err)
	}
	defer rows.Close()

	if err := p.CheckFleet(); err != nil {
		return nil, fmt.Errorf("load problem %q: %w", name, err)
	}

	rides := []domain.Ride{}
	for rows.Next() {
		var r domain.Ride
		if err := rows.Scan(
			&r.RideID,
			&r.Start.Row,
			&r.Start.Col,
			&r.Finish.Row,
			&r.Finish.Col,
			&r.Earliest,
			&r.Latest,
		); err != nil {
			return nil, fmt.Errorf("load problem %q: scan ride: %w", name, err)
		}
		if r.RideID != len(rides) {
			return nil, fmt.Errorf("load problem %q: ride ids not contiguous at %d", name, r.RideID)
		}
		rides = append(rides, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load problem %q: row iteration: %w", name, err)
	}

	if len(rides) != p.RideCount {
		return nil, fmt.Errorf("load problem %q: header declares %d rides, found %d", name, p.RideCount, len(rides))
	}

	return &domain.Instance{
		Name:     name,
		Problem:  p,
		Vehicles: domain.NewFleet(p.VehicleCount),
		Rides:    rides,
	}, nil
}

func saveProblem(ctx context.Context, db *sql.DB, inst *domain.Instance, upsertQuery, deleteRidesQuery, insertRideQuery string) error {
	if inst == nil || inst.Name == "" {
		return errors.New("save problem: instance must have a name")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save problem %q: begin tx: %w", inst.Name, err)
	}
	defer func() { _ = tx.Rollback() }()

	p := inst.Problem
	if _, err := tx.ExecContext(ctx, upsertQuery,
		inst.Name, p.Rows, p.Cols, p.VehicleCount, p.RideCount, p.Bonus, p.SimSteps,
	); err != nil {
		return fmt.Errorf("save problem %q: upsert header: %w", inst.Name, err)
	}

	if _, err := tx.ExecContext(ctx, deleteRidesQuery, inst.Name); err != nil {
		return fmt.Errorf("save problem %q: clear rides: %w", inst.Name, err)
	}

	stmt, err := tx.PrepareContext(ctx, insertRideQuery)
	if err != nil {
		return fmt.Errorf("save problem %q: prepare insert: %w", inst.Name, err)
	}
	defer stmt.Close()

	for _, r := range inst.Rides {
		if _, err := stmt.ExecContext(ctx,
			inst.Name, r.RideID,
			r.Start.Row, r.Start.Col,
			r.Finish.Row, r.Finish.Col,
			r.Earliest, r.Latest,
		); err != nil {
			return fmt.Errorf("save problem %q: insert ride_id=%d: %w", inst.Name, r.RideID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save problem %q: commit tx: %w", inst.Name, err)
	}

	return nil
}
