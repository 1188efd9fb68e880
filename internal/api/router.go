package api

import (
	"net/http"
	"ride-schedule-service/internal/api/handlers"
	"ride-schedule-service/internal/platform/metrics"
	"ride-schedule-service/internal/services"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// The runner's repository and run store back the read endpoints as well.
func NewRouter(runner *services.Runner) http.Handler {
	metrics.RegisterDefault()

	mux := http.NewServeMux()

	problemHandler := &handlers.ProblemHandler{Repo: runner.Repo}
	planHandler := &handlers.PlanHandler{Runner: runner}
	scoreHandler := &handlers.ScoreHandler{Repo: runner.Repo, Store: runner.Store}
	runHandler := &handlers.RunHandler{Store: runner.Store}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/problems", problemHandler.List)
	mux.HandleFunc("/plans", planHandler.Plan)
	mux.HandleFunc("/scores", scoreHandler.Score)
	mux.HandleFunc("/runs", runHandler.List)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return requestIDMiddleware(loggingMiddleware(mux))
}
