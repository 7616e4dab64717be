package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Pagination contains 1-based page pagination info.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
}

// lastPage returns the highest page number that still has items.
func (p Pagination) lastPage() int {
	if p.Total == 0 {
		return 1
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}

// SetLinkHeaders adds RFC 8288 Link headers for paginated responses.
// It uses the current request path and the page query parameter.
func SetLinkHeaders(c *fiber.Ctx, p Pagination) {
	base := c.Path()
	var links []string

	links = append(links, fmt.Sprintf(`<%s?page=1>; rel="first"`, base))

	if p.Page > 1 {
		links = append(links, fmt.Sprintf(`<%s?page=%d>; rel="prev"`, base, p.Page-1))
	}

	if p.Page < p.lastPage() {
		links = append(links, fmt.Sprintf(`<%s?page=%d>; rel="next"`, base, p.Page+1))
	}

	links = append(links, fmt.Sprintf(`<%s?page=%d>; rel="last"`, base, p.lastPage()))

	c.Set("Link", strings.Join(links, ", "))
}
