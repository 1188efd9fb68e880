package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for planner and API metrics.
	Registry = prometheus.NewRegistry()

	// RidesAssigned counts rides placed into plans by the solver.
	RidesAssigned = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "rides_assigned_total", Help: "Rides assigned by the greedy solver."},
	)
	// PlanViolations counts simulator violations by kind.
	PlanViolations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "plan_violations_total", Help: "Plan violations recorded by the simulator."},
		[]string{"kind"},
	)
	// RunScore holds the latest validated score per problem.
	RunScore = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "run_score", Help: "Latest validated score per problem."},
		[]string{"problem"},
	)
	// PlanCacheLookups counts plan cache hits and misses.
	PlanCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "plan_cache_lookups_total", Help: "Plan cache lookups by result."},
		[]string{"result"},
	)
	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path"},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on Registry. Safe to call more than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(RidesAssigned)
		Registry.MustRegister(PlanViolations)
		Registry.MustRegister(RunScore)
		Registry.MustRegister(PlanCacheLookups)
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
