package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitpass",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fitpass",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fitpass",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Check-in business metrics
	CheckInsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fitpass",
		Subsystem: "checkins",
		Name:      "created_total",
		Help:      "Total check-ins created",
	})

	CheckInsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitpass",
		Subsystem: "checkins",
		Name:      "rejected_total",
		Help:      "Total check-in attempts rejected, by reason",
	}, []string{"reason"})

	CheckInsValidated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fitpass",
		Subsystem: "checkins",
		Name:      "validated_total",
		Help:      "Total check-ins validated by an admin",
	})

	UsersRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fitpass",
		Subsystem: "users",
		Name:      "registered_total",
		Help:      "Total users registered",
	})

	GymsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fitpass",
		Subsystem: "gyms",
		Name:      "created_total",
		Help:      "Total gyms registered",
	})

	// Database pool metrics
	DBPoolConnsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "fitpass",
		Subsystem: "db",
		Name:      "pool_conns_open",
		Help:      "Total connections in the pgx pool",
	})

	DBPoolConnsAcquired = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "fitpass",
		Subsystem: "db",
		Name:      "pool_conns_acquired",
		Help:      "Connections currently in use",
	})

	DBPoolConnsIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "fitpass",
		Subsystem: "db",
		Name:      "pool_conns_idle",
		Help:      "Idle connections in the pgx pool",
	})
)

// Middleware records request count, latency, and response size for every request.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start).Seconds()

		method := c.Method()
		// Use the route pattern, not the raw path, to keep cardinality bounded.
		path := c.Route().Path
		status := strconv.Itoa(c.Response().StatusCode())

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(elapsed)
		httpResponseSize.WithLabelValues(method, path).Observe(float64(len(c.Response().Body())))

		return err
	}
}

// Handler exposes the Prometheus scrape endpoint through Fiber.
func Handler() fiber.Handler {
	h := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		h(c.Context())
		return nil
	}
}

// UpdateDBPoolMetrics updates database pool gauges from pgx pool stats.
func UpdateDBPoolMetrics(stat interface{}) {
	// Accept anything that looks like pgxpool.Stat so the metrics package
	// stays free of a pgx import.
	type poolStat interface {
		AcquiredConns() int32
		IdleConns() int32
		TotalConns() int32
	}

	if s, ok := stat.(poolStat); ok {
		DBPoolConnsAcquired.Set(float64(s.AcquiredConns()))
		DBPoolConnsIdle.Set(float64(s.IdleConns()))
		DBPoolConnsOpen.Set(float64(s.TotalConns()))
	}
}
