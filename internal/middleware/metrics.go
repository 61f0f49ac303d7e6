package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trenai_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// GenerationRequests counts content generation attempts by platform and outcome.
	GenerationRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trenai_generation_requests_total",
		Help: "Total content generation requests by platform and outcome",
	}, []string{"platform", "outcome"})

	// GenerationLatency records content generation latency.
	GenerationLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trenai_generation_latency_seconds",
		Help:    "Content generation latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// ActiveNotifications is the gauge of live toast notifications across sessions.
	ActiveNotifications = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "trenai_active_notifications",
		Help: "Number of active toast notifications across all sessions",
	})

	// WebSocketConnections is the gauge of open toast-feed connections.
	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "trenai_websocket_connections",
		Help: "Number of open websocket toast-feed connections",
	})

	// WebSocketDrops counts messages dropped due to backpressure.
	WebSocketDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trenai_websocket_drops_total",
		Help: "Total websocket messages dropped due to backpressure",
	}, []string{"reason"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
