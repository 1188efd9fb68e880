package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"ride-schedule-service/internal/adapters/cache"
	"ride-schedule-service/internal/adapters/problemfile"
	"ride-schedule-service/internal/config"
	"ride-schedule-service/internal/ports"
	"ride-schedule-service/internal/services"
	"syscall"

	"github.com/redis/go-redis/v9"
)

// planner solves every problem in a manifest, writes one .out plan per
// problem and prints the validated scores. With -validate it scores the
// existing plans in the output directory instead of solving.
func main() {
	config.LoadEnv()

	manifestPath := flag.String("manifest", config.Get("MANIFEST_PATH", ""), "YAML batch manifest (default: the five bundled problems)")
	inDir := flag.String("in", "", "override the manifest's input directory")
	outDir := flag.String("out", "", "override the manifest's output directory")
	concurrency := flag.Int("concurrency", 0, "override the manifest's concurrency")
	validate := flag.Bool("validate", false, "score existing plans instead of solving")
	flag.Parse()

	m, err := loadManifest(*manifestPath)
	if err != nil {
		log.Fatal(err)
	}
	if *inDir != "" {
		m.InputDir = *inDir
	}
	if *outDir != "" {
		m.OutputDir = *outDir
	}
	if *concurrency != 0 {
		m.Concurrency = *concurrency
	}
	if args := flag.Args(); len(args) > 0 {
		m.Problems = args
	}
	if err := m.Validate(); err != nil {
		log.Fatalf("invalid batch: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo := problemfile.NewDirRepository(m.InputDir)

	var total int
	if *validate {
		total, err = validatePlans(ctx, repo, m)
	} else {
		total, err = solvePlans(ctx, repo, m)
	}
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Total score: %d\n", total)
}

func loadManifest(path string) (config.Manifest, error) {
	if path == "" {
		return config.DefaultManifest(), nil
	}
	return config.LoadManifest(path)
}

func solvePlans(ctx context.Context, repo ports.ProblemRepository, m config.Manifest) (int, error) {
	runner := &services.Runner{
		Repo:        repo,
		Cache:       planCache(),
		Concurrency: m.Concurrency,
	}

	res, err := runner.Run(ctx, m.Problems)
	if err != nil {
		return 0, err
	}

	for _, r := range res.Results {
		name := r.Run.ProblemName
		if err := problemfile.WriteAssignmentFile(m.OutputPath(name), r.Assignment); err != nil {
			return 0, err
		}
		report(name, r.Run.Score, r.Run.Errors)
	}
	return res.TotalScore, nil
}

func validatePlans(ctx context.Context, repo ports.ProblemRepository, m config.Manifest) (int, error) {
	total := 0
	for _, name := range m.Problems {
		inst, err := repo.LoadProblem(ctx, name)
		if err != nil {
			return 0, err
		}

		a, err := problemfile.ReadAssignmentFile(m.OutputPath(name), inst)
		if err != nil {
			return 0, err
		}

		run := services.ScorePlan(ctx, inst, a)
		report(name, run.Score, run.Errors)
		total += run.Score
	}
	return total, nil
}

func report(name string, score int, errs []string) {
	for _, e := range errs {
		fmt.Println(e)
	}
	fmt.Printf("Score %s: %d\n", name, score)
}

// planCache returns a redis-backed cache when REDIS_ADDR is set.
func planCache() ports.PlanCache {
	addr := config.Get("REDIS_ADDR", "")
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	return cache.NewRedisPlanCache(client, config.GetDuration("PLAN_CACHE_TTL", 0))
}
