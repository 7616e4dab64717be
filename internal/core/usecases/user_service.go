package usecases

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/samirrijal/fitpass/internal/core/domain"
	"github.com/samirrijal/fitpass/internal/core/ports"
)

// UserService handles registration and profile lookups.
type UserService struct {
	users ports.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users ports.UserRepository) *UserService {
	return &UserService{users: users}
}

// normalizeEmail canonicalizes an email the same way at registration and
// login, so the stored form and the lookup form always agree.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new MEMBER account. The email must not be in use;
// uniqueness is enforced by the storage layer, not just this check.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" {
		return nil, fmt.Errorf("name and email must not be empty")
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        normalizeEmail(email),
		PasswordHash: string(hash),
		Role:         domain.RoleMember,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Profile returns the user's profile.
func (s *UserService) Profile(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
