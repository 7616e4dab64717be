package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/fitpass/internal/core/domain"
	"github.com/samirrijal/fitpass/internal/core/usecases"
	"github.com/samirrijal/fitpass/internal/pkg/metrics"
)

type createGymRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Phone       string  `json:"phone"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type gymResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Distance    *float64 `json:"distanceMeters,omitempty"`
}

func toGymResponse(g domain.Gym) gymResponse {
	return gymResponse{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Phone:       g.Phone,
		Latitude:    g.Location.Lat,
		Longitude:   g.Location.Lon,
		Distance:    g.Distance,
	}
}

func toGymResponses(gyms []domain.Gym) []gymResponse {
	out := make([]gymResponse, len(gyms))
	for i, g := range gyms {
		out[i] = toGymResponse(g)
	}
	return out
}

// CreateGymHandler registers a new gym. Admin only.
func CreateGymHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createGymRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		if req.Title == "" {
			return errBadRequest(c, "title is required")
		}
		point := domain.GeoPoint{Lat: req.Latitude, Lon: req.Longitude}
		if !point.Valid() {
			return errBadRequest(c, "coordinates out of range")
		}

		gym := &domain.Gym{
			Title:       req.Title,
			Description: req.Description,
			Phone:       req.Phone,
			Location:    point,
		}
		if err := deps.Gyms.Create(c.UserContext(), gym); err != nil {
			return domainError(c, err)
		}

		metrics.GymsCreated.Inc()

		return c.Status(fiber.StatusCreated).JSON(toGymResponse(*gym))
	}
}

// SearchGymsHandler searches gyms by title, paginated.
func SearchGymsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := c.Query("q")
		if query == "" {
			return errBadRequest(c, "query parameter 'q' is required")
		}

		page := parsePage(c)

		gyms, total, err := deps.Gyms.SearchByTitle(c.UserContext(), query, page)
		if err != nil {
			return domainError(c, err)
		}

		SetLinkHeaders(c, Pagination{Page: page, PerPage: usecases.PageSize, Total: total})

		return c.JSON(fiber.Map{
			"gyms":  toGymResponses(gyms),
			"page":  page,
			"total": total,
		})
	}
}

// NearbyGymsHandler lists gyms within the nearby radius of the given point.
func NearbyGymsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat, err := strconv.ParseFloat(c.Query("latitude"), 64)
		if err != nil {
			return errBadRequest(c, "latitude must be a number")
		}
		lon, err := strconv.ParseFloat(c.Query("longitude"), 64)
		if err != nil {
			return errBadRequest(c, "longitude must be a number")
		}

		point := domain.GeoPoint{Lat: lat, Lon: lon}
		if !point.Valid() {
			return errBadRequest(c, "coordinates out of range")
		}

		limit, _ := strconv.Atoi(c.Query("limit", "0"))

		gyms, err := deps.Gyms.FindNearby(c.UserContext(), lat, lon, limit)
		if err != nil {
			return domainError(c, err)
		}

		return c.JSON(fiber.Map{"gyms": toGymResponses(gyms)})
	}
}

func parsePage(c *fiber.Ctx) int {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
