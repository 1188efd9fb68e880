package cache

import (
	"context"
	"errors"
	"fmt"
	"ride-schedule-service/internal/domain"
	"ride-schedule-service/internal/platform/obs"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "ride-plan:"

// RedisPlanCache stores plans as JSON strings with an optional TTL.
type RedisPlanCache struct {
	Client *redis.Client
	Prefix string
	TTL    time.Duration // zero keeps entries until evicted
}

func NewRedisPlanCache(client *redis.Client, ttl time.Duration) *RedisPlanCache {
	return &RedisPlanCache{Client: client, Prefix: defaultKeyPrefix, TTL: ttl}
}

func (c *RedisPlanCache) Get(ctx context.Context, key string) (_ domain.Assignment, _ bool, err error) {
	defer obs.Time(ctx, "plan.redis.Get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("plan cache: redis client is nil")
	}
	if err := checkKey(key); err != nil {
		return nil, false, err
	}

	raw, err := c.Client.Get(ctx, c.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache: redis get: %w", err)
	}

	a, err := decodePlan(raw)
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache key=%s: %w", key, err)
	}
	return a, true, nil
}

func (c *RedisPlanCache) Put(ctx context.Context, key string, a domain.Assignment) (err error) {
	defer obs.Time(ctx, "plan.redis.Put")(&err)

	if c.Client == nil {
		return errors.New("plan cache: redis client is nil")
	}
	if err := checkKey(key); err != nil {
		return err
	}

	b, err := encodePlan(a)
	if err != nil {
		return fmt.Errorf("insert plan cache key=%s: %w", key, err)
	}

	if err := c.Client.Set(ctx, c.Prefix+key, b, c.TTL).Err(); err != nil {
		return fmt.Errorf("insert plan cache key=%s: redis set: %w", key, err)
	}
	return nil
}
