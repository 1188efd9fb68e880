package services

import (
	"context"
	"errors"
	"reflect"
	"ride-schedule-service/internal/adapters/problemfile"
	"ride-schedule-service/internal/domain"
	"ride-schedule-service/internal/ports"
	"strings"
	"sync"
	"testing"
)

const exampleInput = `3 4 2 3 2 10
0 0 1 3 2 9
1 2 1 0 0 9
2 0 2 2 0 9
`

type memoryCache struct {
	mu    sync.Mutex
	plans map[string]domain.Assignment
	gets  int
	puts  int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{plans: map[string]domain.Assignment{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) (domain.Assignment, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	a, ok := c.plans[key]
	return a, ok, nil
}

func (c *memoryCache) Put(ctx context.Context, key string, a domain.Assignment) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.puts++
	c.plans[key] = a
	return nil
}

type memoryStore struct {
	mu   sync.Mutex
	runs []domain.RunResult
}

func (s *memoryStore) SaveRun(ctx context.Context, run domain.RunResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, run)
	return nil
}

func (s *memoryStore) ListRuns(ctx context.Context, limit int) ([]domain.RunResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.RunResult(nil), s.runs...), nil
}

func exampleInstance(t *testing.T, name string) *domain.Instance {
	t.Helper()
	inst, err := problemfile.Parse(name, strings.NewReader(exampleInput))
	if err != nil {
		t.Fatalf("parse example: %v", err)
	}
	return inst
}

func TestSolveAndScoreExample(t *testing.T) {
	inst := exampleInstance(t, "a_example")

	a, run := SolveAndScore(context.Background(), inst)

	want := domain.Assignment{{0}, {2, 1}}
	if !reflect.DeepEqual(a, want) {
		t.Fatalf("assignment = %v, want %v", a, want)
	}
	if run.Score != 10 {
		t.Fatalf("score = %d, want 10", run.Score)
	}
	if !run.Valid() {
		t.Fatalf("unexpected errors: %v", run.Errors)
	}
	if run.AssignedRides != 3 || run.ProblemName != "a_example" || run.RunID == "" {
		t.Fatalf("unexpected run metadata: %+v", run)
	}
	for _, r := range inst.Rides {
		if r.Done {
			t.Fatalf("instance ride %d was mutated", r.RideID)
		}
	}
}

func TestScorePlanReportsViolations(t *testing.T) {
	inst := exampleInstance(t, "a_example")

	run := ScorePlan(context.Background(), inst, domain.Assignment{{0}, {0}})
	if run.Score != 6 {
		t.Fatalf("score = %d, want 6", run.Score)
	}
	if len(run.Errors) != 1 || run.Errors[0] != "Ride 0 assigned to 1 already done." {
		t.Fatalf("errors = %q", run.Errors)
	}
}

func TestRunnerRunTotalsAndStores(t *testing.T) {
	repo := problemfile.NewMemoryRepository(
		exampleInstance(t, "a_example"),
		exampleInstance(t, "a_copy"),
	)
	store := &memoryStore{}
	r := &Runner{Repo: repo, Store: store, Concurrency: 2}

	res, err := r.Run(context.Background(), []string{"a_example", "a_copy"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.TotalScore != 20 {
		t.Fatalf("total = %d, want 20", res.TotalScore)
	}
	if len(res.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(res.Results))
	}
	if res.Results[0].Run.ProblemName != "a_example" || res.Results[1].Run.ProblemName != "a_copy" {
		t.Fatalf("results out of request order: %q, %q", res.Results[0].Run.ProblemName, res.Results[1].Run.ProblemName)
	}
	if len(store.runs) != 2 {
		t.Fatalf("stored %d runs, want 2", len(store.runs))
	}
}

func TestRunnerUsesPlanCache(t *testing.T) {
	repo := problemfile.NewMemoryRepository(exampleInstance(t, "a_example"))
	cache := newMemoryCache()
	r := &Runner{Repo: repo, Cache: cache}
	ctx := context.Background()

	first, err := r.RunOne(ctx, "a_example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Cached {
		t.Fatalf("first run should miss the cache")
	}
	if cache.puts != 1 {
		t.Fatalf("puts = %d, want 1", cache.puts)
	}

	second, err := r.RunOne(ctx, "a_example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.Cached {
		t.Fatalf("second run should hit the cache")
	}
	if second.Run.Score != first.Run.Score {
		t.Fatalf("cached score = %d, want %d", second.Run.Score, first.Run.Score)
	}
	if second.Run.RunID == first.Run.RunID {
		t.Fatalf("cached run reused run id %s", first.Run.RunID)
	}
}

func TestRunnerReplacesInvalidCachedPlan(t *testing.T) {
	inst := exampleInstance(t, "a_example")
	repo := problemfile.NewMemoryRepository(inst)
	cache := newMemoryCache()
	key := PlanKey(inst)
	cache.plans[key] = domain.Assignment{{0}, {0}}
	r := &Runner{Repo: repo, Cache: cache}

	res, err := r.RunOne(context.Background(), "a_example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Cached {
		t.Fatalf("invalid cached plan should not be reported as cached")
	}
	if !res.Run.Valid() || res.Run.Score != 10 {
		t.Fatalf("run = score %d errors %v, want score 10 and no errors", res.Run.Score, res.Run.Errors)
	}

	want := domain.Assignment{{0}, {2, 1}}
	if !reflect.DeepEqual(cache.plans[key], want) {
		t.Fatalf("cache entry = %v, want %v", cache.plans[key], want)
	}

	again, err := r.RunOne(context.Background(), "a_example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !again.Cached || !again.Run.Valid() {
		t.Fatalf("repaired entry should be served from cache: cached=%v errors=%v", again.Cached, again.Run.Errors)
	}
}

func TestRunnerMissingProblem(t *testing.T) {
	r := &Runner{Repo: problemfile.NewMemoryRepository()}

	_, err := r.Run(context.Background(), []string{"missing"})
	if !errors.Is(err, ports.ErrProblemNotFound) {
		t.Fatalf("err = %v, want ErrProblemNotFound", err)
	}
}

func TestRunnerWithoutRepository(t *testing.T) {
	if _, err := (&Runner{}).Run(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil repository")
	}
}

func TestPlanKeyIgnoresName(t *testing.T) {
	a := exampleInstance(t, "one")
	b := exampleInstance(t, "two")
	if PlanKey(a) != PlanKey(b) {
		t.Fatalf("keys differ for identical instances")
	}
	if len(PlanKey(a)) != 16 {
		t.Fatalf("key %q is not 16 hex chars", PlanKey(a))
	}

	b.Rides[0].Latest++
	if PlanKey(a) == PlanKey(b) {
		t.Fatalf("keys equal for different instances")
	}
}
