package ports

import (
	"context"
	"time"

	"github.com/samirrijal/fitpass/internal/core/domain"
)

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishCheckInCreated(ctx context.Context, checkIn *domain.CheckIn) error
	PublishCheckInValidated(ctx context.Context, checkIn *domain.CheckIn) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// TokenStore tracks live refresh token IDs so they can be rotated and revoked.
type TokenStore interface {
	Store(ctx context.Context, tokenID, userID string, ttl time.Duration) error
	// Lookup returns the user ID the token was issued to, or an error if the
	// token is unknown or revoked.
	Lookup(ctx context.Context, tokenID string) (string, error)
	Revoke(ctx context.Context, tokenID string) error
}
