package ports

import (
	"context"
	"ride-schedule-service/internal/domain"
)

// Port: persistence for solve/score run results.
type RunStore interface {
	SaveRun(ctx context.Context, run domain.RunResult) error
	// Return the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]domain.RunResult, error)
}
