package usecases_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/samirrijal/fitpass/internal/core/domain"
	"github.com/samirrijal/fitpass/internal/core/usecases"
	"github.com/samirrijal/fitpass/internal/pkg/token"
)

// memoryTokenStore is an in-process ports.TokenStore for tests.
type memoryTokenStore struct {
	mu    sync.Mutex
	users map[string]string // tokenID -> userID
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{users: make(map[string]string)}
}

func (s *memoryTokenStore) Store(ctx context.Context, tokenID, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[tokenID] = userID
	return nil
}

func (s *memoryTokenStore) Lookup(ctx context.Context, tokenID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.users[tokenID]
	if !ok {
		return "", errors.New("unknown token")
	}
	return userID, nil
}

func (s *memoryTokenStore) Revoke(ctx context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, tokenID)
	return nil
}

func userWithPassword(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &domain.User{
		ID:           "user-1",
		Email:        "jane@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleMember,
	}
}

func newAuthFixture(t *testing.T, user *domain.User) (*usecases.AuthService, *memoryTokenStore) {
	t.Helper()
	repo := &mockUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			if user != nil && email == user.Email {
				return user, nil
			}
			return nil, domain.ErrResourceNotFound
		},
		getByIDFn: func(ctx context.Context, id string) (*domain.User, error) {
			if user != nil && id == user.ID {
				return user, nil
			}
			return nil, domain.ErrResourceNotFound
		},
	}
	store := newMemoryTokenStore()
	tokens := token.NewService("test-secret", 15*time.Minute, time.Hour)
	return usecases.NewAuthService(repo, tokens, store), store
}

func TestAuthService_Authenticate(t *testing.T) {
	user := userWithPassword(t, "s3cret-pw")
	svc, store := newAuthFixture(t, user)

	pair, err := svc.Authenticate(context.Background(), "jane@example.com", "s3cret-pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens to be issued")
	}
	if len(store.users) != 1 {
		t.Errorf("expected 1 live refresh token, got %d", len(store.users))
	}
}

func TestAuthService_Authenticate_MixedCaseEmail(t *testing.T) {
	// Registration stores the email lowercased and trimmed; logging in with
	// the original casing (and stray whitespace) must still find the account.
	user := userWithPassword(t, "s3cret-pw")
	svc, _ := newAuthFixture(t, user)

	pair, err := svc.Authenticate(context.Background(), "  Jane@Example.COM ", "s3cret-pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens to be issued")
	}
}

func TestAuthService_Authenticate_WrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t, userWithPassword(t, "s3cret-pw"))

	_, err := svc.Authenticate(context.Background(), "jane@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Authenticate_UnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t, nil)

	_, err := svc.Authenticate(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Refresh_Rotates(t *testing.T) {
	user := userWithPassword(t, "s3cret-pw")
	svc, store := newAuthFixture(t, user)

	pair, err := svc.Authenticate(context.Background(), "jane@example.com", "s3cret-pw")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	rotated, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Error("refresh must issue a new refresh token")
	}

	// The old token's JTI is revoked, so replaying it fails.
	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected replay to fail with ErrInvalidCredentials, got %v", err)
	}

	if len(store.users) != 1 {
		t.Errorf("expected exactly 1 live refresh token after rotation, got %d", len(store.users))
	}
}

func TestAuthService_Refresh_Garbage(t *testing.T) {
	svc, _ := newAuthFixture(t, nil)

	_, err := svc.Refresh(context.Background(), "not-a-token")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Refresh_AccessTokenRejected(t *testing.T) {
	// An access token carries no JTI, so it cannot be used to refresh.
	user := userWithPassword(t, "s3cret-pw")
	svc, _ := newAuthFixture(t, user)

	tokens := token.NewService("test-secret", 15*time.Minute, time.Hour)
	access, err := tokens.IssueAccessToken(user.ID, string(user.Role))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), access); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
