package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/fitpass/internal/core/domain"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // Error code: bad_request, not_found, internal_error, etc.
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, 400, "bad_request", msg)
}

// errUnauthorized returns a 401 error.
func errUnauthorized(c *fiber.Ctx, msg string) error {
	return newError(c, 401, "unauthorized", msg)
}

// errForbidden returns a 403 error.
func errForbidden(c *fiber.Ctx, msg string) error {
	return newError(c, 403, "forbidden", msg)
}

// errNotFound returns a 404 error.
func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, 404, "not_found", msg)
}

// errConflict returns a 409 error.
func errConflict(c *fiber.Ctx, msg string) error {
	return newError(c, 409, "conflict", msg)
}

// errUnprocessable returns a 422 error.
func errUnprocessable(c *fiber.Ctx, msg string) error {
	return newError(c, 422, "unprocessable", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, 500, "internal_error", msg)
}

// domainError maps a domain error to its HTTP status. Anything unrecognised
// is a 500; storage and unexpected failures are fatal to the request.
func domainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return errConflict(c, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return errUnauthorized(c, err.Error())
	case errors.Is(err, domain.ErrResourceNotFound):
		return errNotFound(c, err.Error())
	case errors.Is(err, domain.ErrMaxDistance):
		return errUnprocessable(c, err.Error())
	case errors.Is(err, domain.ErrMaxNumberOfCheckIns):
		return errConflict(c, err.Error())
	case errors.Is(err, domain.ErrLateCheckInValidation):
		return errUnprocessable(c, err.Error())
	case errors.Is(err, domain.ErrCheckInAlreadyValidated):
		return errConflict(c, err.Error())
	default:
		return errInternal(c, err.Error())
	}
}
