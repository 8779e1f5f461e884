package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "uplift_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// PledgesCreated counts accepted pledges.
	PledgesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uplift_pledges_created_total",
		Help: "Total number of pledges accepted by the API",
	})

	// PetitionsCreated counts petitions created through the API.
	PetitionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uplift_petitions_created_total",
		Help: "Total number of petitions created through the API",
	})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the Fiber handler recording HTTP request metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
