package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"ride-schedule-service/internal/domain"
	"ride-schedule-service/internal/platform/metrics"
	"ride-schedule-service/internal/platform/obs"
	"ride-schedule-service/internal/ports"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ProblemResult is the plan and validated outcome for one problem.
type ProblemResult struct {
	Assignment domain.Assignment
	Run        domain.RunResult
	Cached     bool
}

// BatchResult aggregates a run over several problems, in request order.
type BatchResult struct {
	Results    []ProblemResult
	TotalScore int
}

// SolveAndScore solves an instance and replays the plan through the simulator.
// Solver and simulator each get their own clones of the instance.
func SolveAndScore(ctx context.Context, inst *domain.Instance) (domain.Assignment, domain.RunResult) {
	assignment := Solve(inst.Problem, inst.CloneVehicles(), inst.CloneRides())
	metrics.RidesAssigned.Add(float64(assignment.RideCount()))

	return assignment, ScorePlan(ctx, inst, assignment)
}

// ScorePlan validates an assignment from any source against the instance.
func ScorePlan(ctx context.Context, inst *domain.Instance, assignment domain.Assignment) domain.RunResult {
	defer obs.Time(ctx, "simulation.Score")(nil)

	rep := Simulate(inst.Problem, inst.CloneVehicles(), inst.CloneRides(), assignment)
	for _, v := range rep.Violations {
		metrics.PlanViolations.WithLabelValues(string(v.Kind)).Inc()
	}
	metrics.RunScore.WithLabelValues(inst.Name).Set(float64(rep.Score))

	log.Printf("problem=%s score=%d rides=%d violations=%d", inst.Name, rep.Score, assignment.RideCount(), len(rep.Violations))

	return domain.RunResult{
		RunID:         uuid.NewString(),
		ProblemName:   inst.Name,
		Score:         rep.Score,
		Errors:        rep.Errors(),
		AssignedRides: assignment.RideCount(),
		CreatedAt:     time.Now().UTC(),
	}
}

// PlanKey is the plan cache key for an instance.
func PlanKey(inst *domain.Instance) string {
	return fmt.Sprintf("%016x", inst.Fingerprint())
}

// Runner solves and scores stored problems.
// Cache and Store are optional.
type Runner struct {
	Repo        ports.ProblemRepository
	Cache       ports.PlanCache
	Store       ports.RunStore
	Concurrency int
}

// Run processes the named problems and sums their validated scores.
// Problems are independent, so up to Concurrency of them run at once;
// each solve and replay is itself sequential.
func (r *Runner) Run(ctx context.Context, names []string) (_ BatchResult, err error) {
	defer obs.Time(ctx, "runner.Run")(&err)

	if r.Repo == nil {
		return BatchResult{}, errors.New("run batch: problem repository is nil")
	}

	limit := r.Concurrency
	if limit < 1 {
		limit = 1
	}

	results := make([]ProblemResult, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			res, err := r.RunOne(gctx, name)
			if err != nil {
				return fmt.Errorf("run batch: %w", err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BatchResult{}, err
	}

	out := BatchResult{Results: results}
	for _, res := range results {
		out.TotalScore += res.Run.Score
	}
	return out, nil
}

// RunOne loads, plans and scores a single problem.
// A cached plan skips the solver but is still replayed by the simulator;
// one that replays with violations is replaced by a fresh solve.
func (r *Runner) RunOne(ctx context.Context, name string) (ProblemResult, error) {
	if r.Repo == nil {
		return ProblemResult{}, errors.New("run problem: problem repository is nil")
	}

	inst, err := r.Repo.LoadProblem(ctx, name)
	if err != nil {
		return ProblemResult{}, fmt.Errorf("run problem %q: load: %w", name, err)
	}

	key := PlanKey(inst)

	var (
		assignment domain.Assignment
		cached     bool
	)
	if r.Cache != nil {
		a, ok, err := r.Cache.Get(ctx, key)
		if err != nil {
			return ProblemResult{}, fmt.Errorf("run problem %q: plan cache get: %w", name, err)
		}
		if ok {
			metrics.PlanCacheLookups.WithLabelValues("hit").Inc()
			assignment, cached = a, true
		} else {
			metrics.PlanCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	var run domain.RunResult
	if cached {
		run = ScorePlan(ctx, inst, assignment)
		if !run.Valid() {
			log.Printf("cached plan rejected: problem=%s key=%s violations=%d", name, key, len(run.Errors))
			metrics.PlanCacheLookups.WithLabelValues("invalid").Inc()
			cached = false
		}
	}
	if !cached {
		assignment, run = SolveAndScore(ctx, inst)
		if r.Cache != nil {
			if err := r.Cache.Put(ctx, key, assignment); err != nil {
				log.Printf("plan cache write failed: problem=%s err=%v", name, err)
			}
		}
	}

	if r.Store != nil {
		if err := r.Store.SaveRun(ctx, run); err != nil {
			return ProblemResult{}, fmt.Errorf("run problem %q: save run: %w", name, err)
		}
	}

	return ProblemResult{Assignment: assignment, Run: run, Cached: cached}, nil
}
