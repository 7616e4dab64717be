package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/fitpass/internal/core/domain"
	"github.com/samirrijal/fitpass/internal/pkg/metrics"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type tokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type userResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// RegisterHandler creates a new member account.
func RegisterHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.Name == "" || req.Email == "" {
			return errBadRequest(c, "name and email are required")
		}
		if len(req.Password) < 6 {
			return errBadRequest(c, "password must be at least 6 characters")
		}

		user, err := deps.Users.Register(c.UserContext(), req.Name, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, domain.ErrUserAlreadyExists) {
				return errConflict(c, "email already in use")
			}
			return domainError(c, err)
		}

		metrics.UsersRegistered.Inc()

		return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
	}
}

// AuthenticateHandler exchanges credentials for an access/refresh token pair.
func AuthenticateHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req credentialsRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.Email == "" || req.Password == "" {
			return errBadRequest(c, "email and password are required")
		}

		pair, err := deps.Auth.Authenticate(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return domainError(c, err)
		}

		return c.JSON(tokenResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		})
	}
}

// RefreshHandler rotates a refresh token and issues a fresh pair.
func RefreshHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req refreshRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.RefreshToken == "" {
			return errBadRequest(c, "refreshToken is required")
		}

		pair, err := deps.Auth.Refresh(c.UserContext(), req.RefreshToken)
		if err != nil {
			return errUnauthorized(c, "invalid refresh token")
		}

		return c.JSON(tokenResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		})
	}
}

// ProfileHandler returns the authenticated user's profile.
func ProfileHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := deps.Users.Profile(c.UserContext(), callerID(c))
		if err != nil {
			return domainError(c, err)
		}

		return c.JSON(toUserResponse(user))
	}
}
