package ports

import (
	"context"
	"time"

	"github.com/samirrijal/fitpass/internal/core/domain"
)

// UserRepository persists users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// GymRepository persists gyms.
type GymRepository interface {
	Create(ctx context.Context, gym *domain.Gym) error
	GetByID(ctx context.Context, id string) (*domain.Gym, error)
	// SearchByTitle returns one page of gyms matching the query plus the
	// total match count.
	SearchByTitle(ctx context.Context, query string, limit, offset int) ([]domain.Gym, int, error)
	FindNearby(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]domain.Gym, error)
}

// CheckInRepository persists check-ins.
type CheckInRepository interface {
	Create(ctx context.Context, checkIn *domain.CheckIn) error
	GetByID(ctx context.Context, id string) (*domain.CheckIn, error)
	// FindByUserOnDay returns the user's check-in whose creation date falls
	// on the given UTC calendar day, or nil if there is none.
	FindByUserOnDay(ctx context.Context, userID string, day time.Time) (*domain.CheckIn, error)
	// ListByUser returns one page of the user's check-ins, newest first,
	// plus the total count.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.CheckIn, int, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	SetValidated(ctx context.Context, id string, at time.Time) error
}
