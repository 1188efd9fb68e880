package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ride-schedule-service/internal/domain"
	"ride-schedule-service/internal/platform/obs"
)

// SQLPlanCache is a Postgres-backed plan cache. Plans are stored as JSONB.
type SQLPlanCache struct {
	DB *sql.DB
}

func NewSQLPlanCache(db *sql.DB) *SQLPlanCache {
	return &SQLPlanCache{DB: db}
}

func (s *SQLPlanCache) Get(ctx context.Context, key string) (_ domain.Assignment, _ bool, err error) {
	defer obs.Time(ctx, "plan.cache.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("plan cache: db is nil")
	}
	if err := checkKey(key); err != nil {
		return nil, false, err
	}

	var raw []byte
	err = s.DB.QueryRowContext(ctx, `
	SELECT assignment
	FROM plan_cache
	WHERE plan_key = $1;
	`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache: query plan_cache table: %w", err)
	}

	a, err := decodePlan(raw)
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache key=%s: %w", key, err)
	}
	return a, true, nil
}

func (s *SQLPlanCache) Put(ctx context.Context, key string, a domain.Assignment) (err error) {
	defer obs.Time(ctx, "plan.cache.Put")(&err)

	if s.DB == nil {
		return errors.New("plan cache: db is nil")
	}
	if err := checkKey(key); err != nil {
		return err
	}

	b, err := encodePlan(a)
	if err != nil {
		return fmt.Errorf("insert plan cache key=%s: %w", key, err)
	}

	if _, err := s.DB.ExecContext(ctx, `
	INSERT INTO plan_cache (plan_key, assignment)
	VALUES ($1, $2::jsonb)
	ON CONFLICT (plan_key) DO UPDATE
	SET assignment = EXCLUDED.assignment,
		created_at = now();
	`, key, string(b)); err != nil {
		return fmt.Errorf("insert plan cache key=%s: %w", key, err)
	}

	return nil
}
