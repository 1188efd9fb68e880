package cache

import (
	"context"
	"os"
	"ride-schedule-service/internal/adapters/repositories"
	"ride-schedule-service/internal/domain"
	"ride-schedule-service/internal/platform/db"
	"ride-schedule-service/internal/ports"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ ports.PlanCache = (*SqlitePlanCache)(nil)
	_ ports.PlanCache = (*SQLPlanCache)(nil)
	_ ports.PlanCache = (*RedisPlanCache)(nil)
)

// exercisePlanCache runs the behaviour every PlanCache must share.
func exercisePlanCache(t *testing.T, c ports.PlanCache, key string) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok, "fresh cache should miss")

	plan := domain.Assignment{{0, 3}, {}, {2, 1}}
	require.NoError(t, c.Put(ctx, key, plan))

	got, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, plan, got)

	replacement := domain.Assignment{{1}}
	require.NoError(t, c.Put(ctx, key, replacement))
	got, ok, err = c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, replacement, got)

	_, _, err = c.Get(ctx, "  ")
	assert.Error(t, err)
	assert.Error(t, c.Put(ctx, "", plan))
	assert.Error(t, c.Put(ctx, key, nil))
}

func TestSqlitePlanCache(t *testing.T) {
	conn, err := db.OpenSqlite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, repositories.InitSchema(conn))

	exercisePlanCache(t, NewSqlitePlanCache(conn), "00000000deadbeef")
}

func TestSqlitePlanCacheCorruptEntry(t *testing.T) {
	conn, err := db.OpenSqlite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, repositories.InitSchema(conn))

	_, err = conn.Exec(`INSERT INTO plan_cache (plan_key, assignment, created_at) VALUES ('k', 'not json', 0)`)
	require.NoError(t, err)

	_, _, err = NewSqlitePlanCache(conn).Get(context.Background(), "k")
	assert.Error(t, err)
}

func TestRedisPlanCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	exercisePlanCache(t, NewRedisPlanCache(client, 0), "00000000deadbeef")
	assert.True(t, mr.Exists(defaultKeyPrefix+"00000000deadbeef"))
}

func TestRedisPlanCacheExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	c := NewRedisPlanCache(client, time.Minute)
	ctx := context.Background()
	require.NoError(t, c.Put(ctx, "k", domain.Assignment{{0}}))
	assert.Equal(t, time.Minute, mr.TTL(defaultKeyPrefix+"k"))

	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisPlanCacheUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	_, _, err := NewRedisPlanCache(client, 0).Get(context.Background(), "k")
	assert.Error(t, err)
}

func TestSQLPlanCache(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(url) == "" {
		t.Skip("DATABASE_URL not set")
	}

	conn, err := db.Open(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, repositories.InitPostgresSchema(context.Background(), conn))

	key := "test-" + uuid.NewString()
	t.Cleanup(func() { _, _ = conn.Exec(`DELETE FROM plan_cache WHERE plan_key = $1`, key) })

	exercisePlanCache(t, NewSQLPlanCache(conn), key)
}
