package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"
	"github.com/samirrijal/fitpass/internal/pkg/metrics"
)

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // Balance speed vs compression ratio
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error":   "rate limit exceeded",
				"message": "too many requests, please try again later",
			})
		},
		SkipFailedRequests: false,
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// Health & readiness (no timeout — fast internal checks)
	app.Get("/health", HealthHandler(deps))
	app.Get("/ready", ReadyHandler(deps))

	withTimeout := func(h fiber.Handler) fiber.Handler {
		return timeout.NewWithContext(h, 15*time.Second)
	}

	auth := AuthRequired(deps)
	admin := AdminOnly()

	// Accounts & sessions
	app.Post("/users", withTimeout(RegisterHandler(deps)))
	app.Post("/sessions", withTimeout(AuthenticateHandler(deps)))
	app.Patch("/token/refresh", withTimeout(RefreshHandler(deps)))
	app.Get("/me", auth, withTimeout(ProfileHandler(deps)))

	// Gyms
	app.Post("/gyms", auth, admin, withTimeout(CreateGymHandler(deps)))
	app.Get("/gyms/search", auth, withTimeout(SearchGymsHandler(deps)))
	app.Get("/gyms/nearby", auth, withTimeout(NearbyGymsHandler(deps)))

	// Check-ins
	app.Post("/gyms/:gymId/check-ins", auth, withTimeout(CreateCheckInHandler(deps)))
	app.Patch("/check-ins/:checkInId/validate", auth, admin, withTimeout(ValidateCheckInHandler(deps)))
	app.Get("/check-ins/history", auth, withTimeout(CheckInHistoryHandler(deps)))
	app.Get("/check-ins/metrics", auth, withTimeout(CheckInCountHandler(deps)))

	// GraphQL
	app.Post("/graphql", auth, GraphQLHandler(deps))

	// API documentation (Swagger UI)
	SetupDocs(app)

	// WebSocket; without a NATS connection there is nothing to relay, so
	// the endpoint reports unavailable instead of upgrading.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if deps.NATS == nil {
			return newError(c, fiber.StatusServiceUnavailable, "service_unavailable", "live updates are not available")
		}
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps.NATS)))
}
