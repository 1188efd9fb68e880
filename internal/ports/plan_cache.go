package ports

import (
	"context"
	"ride-schedule-service/internal/domain"
)

// Cache of solver output keyed by instance fingerprint.
// Cached plans are replayed by the simulator before use, never trusted.
type PlanCache interface {
	Get(ctx context.Context, key string) (domain.Assignment, bool, error)
	Put(ctx context.Context, key string, a domain.Assignment) error
}
