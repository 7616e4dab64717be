package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/samirrijal/fitpass/internal/core/domain"
	"github.com/samirrijal/fitpass/internal/core/ports"
)

// PageSize is the fixed page length for gym search and check-in history.
const PageSize = 20

// NearbyRadiusMeters is how far out the nearby-gyms listing looks.
const NearbyRadiusMeters = 10_000

// GymService handles gym registration and lookups.
type GymService struct {
	gyms  ports.GymRepository
	cache ports.CacheService
}

// NewGymService creates a new GymService.
func NewGymService(gyms ports.GymRepository, cache ports.CacheService) *GymService {
	return &GymService{gyms: gyms, cache: cache}
}

// Create registers a new gym. Coordinates must be valid WGS 84 values.
func (s *GymService) Create(ctx context.Context, gym *domain.Gym) error {
	if gym.Title == "" {
		return fmt.Errorf("gym title must not be empty")
	}
	if !gym.Location.Valid() {
		return fmt.Errorf("invalid coordinates: lat %f, lon %f", gym.Location.Lat, gym.Location.Lon)
	}
	return s.gyms.Create(ctx, gym)
}

// GetByID returns a single gym.
func (s *GymService) GetByID(ctx context.Context, id string) (*domain.Gym, error) {
	return s.gyms.GetByID(ctx, id)
}

type gymPage struct {
	Gyms  []domain.Gym `json:"gyms"`
	Total int          `json:"total"`
}

// SearchByTitle returns one page of gyms matching the query plus the total
// match count. Pages are 1-based, PageSize items each.
func (s *GymService) SearchByTitle(ctx context.Context, query string, page int) ([]domain.Gym, int, error) {
	if query == "" {
		return nil, 0, fmt.Errorf("search query must not be empty")
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * PageSize

	cacheKey := fmt.Sprintf("gyms:search:%s:%d", query, page)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var cached gymPage
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached.Gyms, cached.Total, nil
			}
		}
	}

	gyms, total, err := s.gyms.SearchByTitle(ctx, query, PageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	// Gyms are immutable, so a short TTL only bounds staleness of new entries.
	if s.cache != nil {
		if data, err := json.Marshal(gymPage{Gyms: gyms, Total: total}); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 60)
		}
	}

	return gyms, total, nil
}

// FindNearby returns gyms within NearbyRadiusMeters of the given point.
func (s *GymService) FindNearby(ctx context.Context, lat, lon float64, limit int) ([]domain.Gym, error) {
	if limit <= 0 || limit > 50 {
		limit = PageSize
	}

	cacheKey := fmt.Sprintf("gyms:nearby:%.4f:%.4f:%d", lat, lon, limit)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var gyms []domain.Gym
			if err := json.Unmarshal(data, &gyms); err == nil {
				return gyms, nil
			}
		}
	}

	gyms, err := s.gyms.FindNearby(ctx, lat, lon, NearbyRadiusMeters, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(gyms); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 60)
		}
	}

	return gyms, nil
}
