package repositories

import (
	"context"
	"database/sql"
	"os"
	"ride-schedule-service/internal/adapters/problemfile"
	"ride-schedule-service/internal/domain"
	"ride-schedule-service/internal/platform/db"
	"ride-schedule-service/internal/ports"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestPostgres connects to DATABASE_URL or skips the test.
func openTestPostgres(t *testing.T) *sql.DB {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(url) == "" {
		t.Skip("DATABASE_URL not set")
	}

	conn, err := db.Open(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, InitPostgresSchema(context.Background(), conn))
	return conn
}

func TestSQLProblemRepositoryRoundTrip(t *testing.T) {
	conn := openTestPostgres(t)
	ctx := context.Background()

	inst, err := problemfile.Parse("test_"+uuid.NewString(), strings.NewReader(exampleInput))
	require.NoError(t, err)

	repo := NewSQLProblemRepository(conn)
	require.NoError(t, repo.SaveProblem(ctx, inst))
	t.Cleanup(func() {
		_, _ = conn.Exec(`DELETE FROM problems WHERE name = $1`, inst.Name)
	})

	got, err := repo.LoadProblem(ctx, inst.Name)
	require.NoError(t, err)
	assert.Equal(t, inst.Problem, got.Problem)
	assert.Equal(t, inst.Rides, got.Rides)

	names, err := repo.ListProblems(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, inst.Name)

	_, err = repo.LoadProblem(ctx, "missing_"+uuid.NewString())
	assert.ErrorIs(t, err, ports.ErrProblemNotFound)
}

func TestSQLRunStoreRoundTrip(t *testing.T) {
	conn := openTestPostgres(t)
	ctx := context.Background()

	run := domain.RunResult{
		RunID:         uuid.NewString(),
		ProblemName:   "a_example",
		Score:         6,
		Errors:        []string{"Ride 0 assigned to 1 already done."},
		AssignedRides: 2,
		CreatedAt:     time.Now().UTC().Add(time.Hour).Truncate(time.Microsecond),
	}

	store := NewSQLRunStore(conn)
	require.NoError(t, store.SaveRun(ctx, run))
	t.Cleanup(func() {
		_, _ = conn.Exec(`DELETE FROM runs WHERE run_id = $1`, run.RunID)
	})

	runs, err := store.ListRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.RunID, runs[0].RunID)
	assert.Equal(t, run.Errors, runs[0].Errors)
	assert.True(t, run.CreatedAt.Equal(runs[0].CreatedAt))
}
