package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ride-schedule-service/internal/domain"
	"time"
)

// SQLite backed cache mapping instance fingerprints to solver output.
type SqlitePlanCache struct {
	DB *sql.DB
}

func NewSqlitePlanCache(db *sql.DB) *SqlitePlanCache {
	return &SqlitePlanCache{DB: db}
}

// Fetch the cached plan for key. A miss is (nil, false, nil).
func (s *SqlitePlanCache) Get(ctx context.Context, key string) (domain.Assignment, bool, error) {
	if s.DB == nil {
		return nil, false, errors.New("plan cache: db is nil")
	}
	if err := checkKey(key); err != nil {
		return nil, false, err
	}

	var raw string
	err := s.DB.QueryRowContext(ctx, `
	SELECT assignment
	FROM plan_cache
	WHERE plan_key = ?;
	`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache: query plan_cache table: %w", err)
	}

	a, err := decodePlan([]byte(raw))
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache key=%s: %w", key, err)
	}
	return a, true, nil
}

// Store the plan for key, replacing any previous entry.
func (s *SqlitePlanCache) Put(ctx context.Context, key string, a domain.Assignment) error {
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
	INSERT OR REPLACE INTO plan_cache (
		plan_key,
		assignment,
		created_at
	)
	VALUES (?, ?, ?);
	`, key, string(b), time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("insert plan cache key=%s: %w", key, err)
	}

	return nil
}
