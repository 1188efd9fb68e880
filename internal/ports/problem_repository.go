package ports

import (
	"context"
	"errors"
	"ride-schedule-service/internal/domain"
)

// ErrProblemNotFound is returned when a named problem does not exist.
var ErrProblemNotFound = errors.New("problem not found")

// Port: a boundary for retrieving problem instances from a data source.
type ProblemRepository interface {
	// Return the names of all stored problems, sorted.
	ListProblems(ctx context.Context) ([]string, error)
	// Load one problem with its initial fleet and rides.
	LoadProblem(ctx context.Context, name string) (*domain.Instance, error)
}
