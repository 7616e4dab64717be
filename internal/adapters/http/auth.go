package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/fitpass/internal/core/domain"
)

const (
	localsUserID = "auth_user_id"
	localsRole   = "auth_role"
)

// AuthRequired verifies the Bearer token and stores the caller's identity in
// request locals.
func AuthRequired(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return errUnauthorized(c, "missing Authorization header")
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return errUnauthorized(c, "Authorization header must be a Bearer token")
		}

		claims, err := deps.Tokens.Verify(raw)
		if err != nil {
			return errUnauthorized(c, "invalid or expired token")
		}
		// Refresh tokens carry a JTI and must not be used as access tokens.
		if claims.ID != "" {
			return errUnauthorized(c, "refresh token not accepted here")
		}

		c.Locals(localsUserID, claims.UserID)
		c.Locals(localsRole, claims.Role)
		return c.Next()
	}
}

// AdminOnly rejects callers whose token does not carry the ADMIN role.
// Must run after AuthRequired.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role, _ := c.Locals(localsRole).(string); role != string(domain.RoleAdmin) {
			return errForbidden(c, "admin role required")
		}
		return c.Next()
	}
}

// callerID returns the authenticated user's ID from request locals.
func callerID(c *fiber.Ctx) string {
	id, _ := c.Locals(localsUserID).(string)
	return id
}
