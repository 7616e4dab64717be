package valkey

import (
	"context"
	"fmt"
	"time"
)

const refreshTokenKeyPrefix = "auth:refresh:"

// TokenStore keeps live refresh token IDs in Valkey so tokens can be rotated
// and revoked before their JWT expiry.
type TokenStore struct {
	cache *Cache
}

// NewTokenStore creates a token store on top of the shared Valkey client.
func NewTokenStore(cache *Cache) *TokenStore {
	return &TokenStore{cache: cache}
}

// Store registers a refresh token ID for the user with the token's lifetime
// as TTL; expired entries vanish on their own.
func (s *TokenStore) Store(ctx context.Context, tokenID, userID string, ttl time.Duration) error {
	return s.cache.Set(ctx, refreshTokenKeyPrefix+tokenID, []byte(userID), int(ttl.Seconds()))
}

// Lookup returns the user ID the token was issued to. Unknown or revoked
// tokens return an error.
func (s *TokenStore) Lookup(ctx context.Context, tokenID string) (string, error) {
	data, err := s.cache.Get(ctx, refreshTokenKeyPrefix+tokenID)
	if err != nil || len(data) == 0 {
		return "", fmt.Errorf("refresh token not found")
	}
	return string(data), nil
}

// Revoke removes a refresh token ID.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string) error {
	return s.cache.Delete(ctx, refreshTokenKeyPrefix+tokenID)
}
