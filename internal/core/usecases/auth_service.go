package usecases

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/samirrijal/fitpass/internal/core/domain"
	"github.com/samirrijal/fitpass/internal/core/ports"
	"github.com/samirrijal/fitpass/internal/pkg/token"
)

// TokenPair is an access/refresh token set returned on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService handles authentication and refresh token rotation.
type AuthService struct {
	users  ports.UserRepository
	tokens *token.Service
	store  ports.TokenStore
}

// NewAuthService creates a new AuthService.
func NewAuthService(users ports.UserRepository, tokens *token.Service, store ports.TokenStore) *AuthService {
	return &AuthService{users: users, tokens: tokens, store: store}
}

// Authenticate checks the credentials and issues a token pair.
// Any failure surfaces as ErrInvalidCredentials; callers never learn whether
// the email or the password was wrong.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrResourceNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issuePair(ctx, user)
}

// Refresh rotates a refresh token: the presented token's JTI must still be
// live in the store, and is revoked before a new pair is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil || claims.ID == "" {
		return nil, domain.ErrInvalidCredentials
	}

	userID, err := s.store.Lookup(ctx, claims.ID)
	if err != nil || userID != claims.UserID {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.store.Revoke(ctx, claims.ID); err != nil {
		return nil, err
	}

	return s.issuePair(ctx, user)
}

func (s *AuthService) issuePair(ctx context.Context, user *domain.User) (*TokenPair, error) {
	access, err := s.tokens.IssueAccessToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	tokenID, refresh, err := s.tokens.IssueRefreshToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	if err := s.store.Store(ctx, tokenID, user.ID, s.tokens.RefreshTTL()); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
