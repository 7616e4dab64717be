package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/fitpass/internal/core/domain"
	"github.com/samirrijal/fitpass/internal/core/usecases"
	"github.com/samirrijal/fitpass/internal/pkg/metrics"
)

type createCheckInRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type checkInResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	GymID       string  `json:"gymId"`
	CreatedAt   string  `json:"createdAt"`
	ValidatedAt *string `json:"validatedAt,omitempty"`
}

func toCheckInResponse(ci *domain.CheckIn) checkInResponse {
	resp := checkInResponse{
		ID:        ci.ID,
		UserID:    ci.UserID,
		GymID:     ci.GymID,
		CreatedAt: ci.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if ci.ValidatedAt != nil {
		v := ci.ValidatedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
		resp.ValidatedAt = &v
	}
	return resp
}

// CreateCheckInHandler records a check-in at a gym for the authenticated user.
func CreateCheckInHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		gymID := c.Params("gymId")

		var req createCheckInRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		point := domain.GeoPoint{Lat: req.Latitude, Lon: req.Longitude}
		if !point.Valid() {
			return errBadRequest(c, "coordinates out of range")
		}

		checkIn, err := deps.CheckIns.Create(c.UserContext(), callerID(c), gymID, point)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrMaxDistance):
				metrics.CheckInsRejected.WithLabelValues("too_far").Inc()
			case errors.Is(err, domain.ErrMaxNumberOfCheckIns):
				metrics.CheckInsRejected.WithLabelValues("daily_limit").Inc()
			case errors.Is(err, domain.ErrResourceNotFound):
				metrics.CheckInsRejected.WithLabelValues("gym_not_found").Inc()
			}
			return domainError(c, err)
		}

		metrics.CheckInsCreated.Inc()

		return c.Status(fiber.StatusCreated).JSON(toCheckInResponse(checkIn))
	}
}

// ValidateCheckInHandler marks a check-in as validated. Admin only.
func ValidateCheckInHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		checkInID := c.Params("checkInId")

		if _, err := deps.CheckIns.Validate(c.UserContext(), checkInID); err != nil {
			return domainError(c, err)
		}

		metrics.CheckInsValidated.Inc()

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// CheckInHistoryHandler lists the authenticated user's check-ins, newest first.
func CheckInHistoryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := parsePage(c)

		checkIns, total, err := deps.CheckIns.History(c.UserContext(), callerID(c), page)
		if err != nil {
			return domainError(c, err)
		}

		out := make([]checkInResponse, len(checkIns))
		for i := range checkIns {
			out[i] = toCheckInResponse(&checkIns[i])
		}

		SetLinkHeaders(c, Pagination{Page: page, PerPage: usecases.PageSize, Total: total})

		return c.JSON(fiber.Map{
			"checkIns": out,
			"page":     page,
			"total":    total,
		})
	}
}

// CheckInCountHandler returns the authenticated user's total check-in count.
func CheckInCountHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, err := deps.CheckIns.Count(c.UserContext(), callerID(c))
		if err != nil {
			return domainError(c, err)
		}

		return c.JSON(fiber.Map{"checkInsCount": count})
	}
}
