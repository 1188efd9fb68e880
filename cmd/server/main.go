package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"ride-schedule-service/internal/adapters/cache"
	"ride-schedule-service/internal/adapters/problemfile"
	"ride-schedule-service/internal/adapters/repositories"
	"ride-schedule-service/internal/api"
	"ride-schedule-service/internal/config"
	"ride-schedule-service/internal/platform/db"
	"ride-schedule-service/internal/ports"
	"ride-schedule-service/internal/services"
	"time"

	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, Redis, problem files)
// behind ports and starts the HTTP server.
func main() {
	config.LoadEnv()

	driver := config.Get("DB_DRIVER", "sqlite")
	port := config.Get("PORT", "8080")

	conn, err := openDB(driver)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	runner, err := wire(context.Background(), driver, conn)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(runner)

	// Solving the large problems takes seconds, hence the long write timeout.
	log.Printf("Server listening addr=:%s driver=%s", port, driver)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openDB(driver string) (*sql.DB, error) {
	switch driver {
	case "sqlite":
		return db.OpenSqlite(config.Get("DB_PATH", "data/app.db"))
	case "postgres":
		url := config.Get("DATABASE_URL", "")
		if url == "" {
			return nil, fmt.Errorf("openDB: DATABASE_URL is required for driver %q", driver)
		}
		return db.Open(url)
	default:
		return nil, fmt.Errorf("openDB: unknown DB_DRIVER %q", driver)
	}
}

// wire builds the runner. PROBLEM_DIR serves problems straight from files;
// otherwise problems come from the database, seeded from SEED_DIR on startup.
func wire(ctx context.Context, driver string, conn *sql.DB) (*services.Runner, error) {
	var (
		problems  ports.ProblemRepository
		saver     repositories.ProblemSaver
		store     ports.RunStore
		planCache ports.PlanCache
	)

	switch driver {
	case "postgres":
		if err := repositories.InitPostgresSchema(ctx, conn); err != nil {
			return nil, fmt.Errorf("wire: %w", err)
		}
		repo := repositories.NewSQLProblemRepository(conn)
		problems, saver = repo, repo
		store = repositories.NewSQLRunStore(conn)
		planCache = cache.NewSQLPlanCache(conn)
	default:
		if err := repositories.InitSchema(conn); err != nil {
			return nil, fmt.Errorf("wire: %w", err)
		}
		repo := repositories.NewSqliteProblemRepository(conn)
		problems, saver = repo, repo
		store = repositories.NewSqliteRunStore(conn)
		planCache = cache.NewSqlitePlanCache(conn)
	}

	if dir := config.Get("PROBLEM_DIR", ""); dir != "" {
		problems = problemfile.NewDirRepository(dir)
	} else if dir := config.Get("SEED_DIR", ""); dir != "" {
		n, err := repositories.SeedFromDir(ctx, saver, dir)
		if err != nil {
			return nil, fmt.Errorf("wire: %w", err)
		}
		log.Printf("seeded problems=%d dir=%s", n, dir)
	}

	if addr := config.Get("REDIS_ADDR", ""); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("wire: ping redis %s: %w", addr, err)
		}
		planCache = cache.NewRedisPlanCache(client, config.GetDuration("PLAN_CACHE_TTL", 24*time.Hour))
	}

	return &services.Runner{
		Repo:        problems,
		Cache:       planCache,
		Store:       store,
		Concurrency: 1,
	}, nil
}
