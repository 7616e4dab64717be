package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control headers on GET responses based on endpoint.
// Adds sensible defaults if not already set by the handler.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != "GET" {
			return err
		}

		// Don't override if already set
		if existing := c.Get("Cache-Control"); existing != "" {
			return err
		}

		path := c.Path()
		var ttl string

		switch {
		case path == "/health" || path == "/ready":
			ttl = "public, max-age=10" // Very short for system checks

		case strings.HasPrefix(path, "/gyms"):
			// Gyms are immutable, but search and nearby results change as
			// new gyms register.
			ttl = "public, max-age=60"

		default:
			// Everything else is per-user and must never be shared.
			ttl = "private, no-store"
		}

		c.Set("Cache-Control", ttl)
		return err
	}
}
