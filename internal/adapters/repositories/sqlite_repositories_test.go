package repositories

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"ride-schedule-service/internal/domain"
	"ride-schedule-service/internal/platform/db"
	"ride-schedule-service/internal/ports"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleInput = `3 4 2 3 2 10
0 0 1 3 2 9
1 2 1 0 0 9
2 0 2 2 0 9
`

func openTestSqlite(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.OpenSqlite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, InitSchema(conn))
	return conn
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	conn := openTestSqlite(t)
	assert.NoError(t, InitSchema(conn))
	assert.Error(t, InitSchema(nil))
}

func TestSeedFromDirAndLoad(t *testing.T) {
	conn := openTestSqlite(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_example.in"), []byte(exampleInput), 0o644))

	repo := NewSqliteProblemRepository(conn)
	ctx := context.Background()

	n, err := SeedFromDir(ctx, repo, dir)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// seeding twice replaces rather than duplicates
	_, err = SeedFromDir(ctx, repo, dir)
	require.NoError(t, err)

	names, err := repo.ListProblems(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a_example"}, names)

	inst, err := repo.LoadProblem(ctx, "a_example")
	require.NoError(t, err)
	assert.Equal(t, domain.Problem{Rows: 3, Cols: 4, VehicleCount: 2, RideCount: 3, Bonus: 2, SimSteps: 10}, inst.Problem)
	require.Len(t, inst.Rides, 3)
	assert.Equal(t, domain.Ride{
		RideID:   2,
		Start:    domain.Position{Row: 2, Col: 0},
		Finish:   domain.Position{Row: 2, Col: 2},
		Earliest: 0,
		Latest:   9,
	}, inst.Rides[2])
	assert.Len(t, inst.Vehicles, 2)
}

func TestSqliteLoadMissingProblem(t *testing.T) {
	repo := NewSqliteProblemRepository(openTestSqlite(t))

	_, err := repo.LoadProblem(context.Background(), "nope")
	assert.ErrorIs(t, err, ports.ErrProblemNotFound)
}

func TestSqliteLoadRejectsHugeFleet(t *testing.T) {
	conn := openTestSqlite(t)
	_, err := conn.Exec(`INSERT INTO problems (name, grid_rows, grid_cols, vehicles, rides, bonus, steps)
		VALUES ('huge', 1, 1, 999999999999999999, 0, 1, 1)`)
	require.NoError(t, err)

	_, err = NewSqliteProblemRepository(conn).LoadProblem(context.Background(), "huge")
	assert.Error(t, err)
}

func TestSqliteSaveProblemRequiresName(t *testing.T) {
	repo := NewSqliteProblemRepository(openTestSqlite(t))

	err := repo.SaveProblem(context.Background(), &domain.Instance{})
	assert.Error(t, err)
}

func TestSqliteRunStore(t *testing.T) {
	store := NewSqliteRunStore(openTestSqlite(t))
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	older := domain.RunResult{
		RunID:         "run-1",
		ProblemName:   "a_example",
		Score:         10,
		Errors:        []string{},
		AssignedRides: 3,
		CreatedAt:     base,
	}
	newer := domain.RunResult{
		RunID:         "run-2",
		ProblemName:   "a_example",
		Score:         6,
		Errors:        []string{"Ride 0 assigned to 1 already done.", "second"},
		AssignedRides: 2,
		CreatedAt:     base.Add(time.Minute),
	}
	require.NoError(t, store.SaveRun(ctx, older))
	require.NoError(t, store.SaveRun(ctx, newer))

	runs, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, newer, runs[0])
	assert.Equal(t, older, runs[1])

	runs, err = store.ListRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-2", runs[0].RunID)

	assert.Error(t, store.SaveRun(ctx, older), "duplicate run id")
	assert.Error(t, store.SaveRun(ctx, domain.RunResult{}), "empty run id")
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, defaultRunLimit, clampLimit(0))
	assert.Equal(t, defaultRunLimit, clampLimit(-3))
	assert.Equal(t, 7, clampLimit(7))
	assert.Equal(t, maxRunLimit, clampLimit(maxRunLimit+1))
}
