package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts failed Redis commands by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "momentzero_redis_errors_total",
		Help: "Total number of failed Redis commands",
	}, []string{"command"})

	// MomentOperations counts moment API operations by operation and outcome.
	MomentOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "momentzero_moment_operations_total",
		Help: "Total number of moment operations by outcome",
	}, []string{"operation", "outcome"})

	// BlockedProbes counts requests rejected by the probe guard.
	BlockedProbes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "momentzero_blocked_probes_total",
		Help: "Total number of requests rejected as vulnerability probes",
	})
)

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// InitMetrics returns the process-wide Prometheus middleware.
// fiberprometheus registers its collectors globally, so it is built once.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.New(serviceName)
	})
	return prom
}

// MetricsMiddleware records request metrics through p.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}

// RecordMomentOperation increments the operation counter.
func RecordMomentOperation(operation, outcome string) {
	MomentOperations.WithLabelValues(operation, outcome).Inc()
}
