package token

import (
	"testing"
	"time"
)

func newTestService() *Service {
	return NewService("test-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestIssueAndVerifyAccessToken(t *testing.T) {
	svc := newTestService()

	signed, err := svc.IssueAccessToken("user-1", "MEMBER")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := svc.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("expected user-1, got %s", claims.UserID)
	}
	if claims.Role != "MEMBER" {
		t.Errorf("expected MEMBER, got %s", claims.Role)
	}
}

func TestRefreshTokenCarriesJTI(t *testing.T) {
	svc := newTestService()

	tokenID, signed, err := svc.IssueRefreshToken("user-2", "ADMIN")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if tokenID == "" {
		t.Fatal("expected a non-empty token ID")
	}

	claims, err := svc.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.ID != tokenID {
		t.Errorf("expected JTI %s, got %s", tokenID, claims.ID)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	signed, err := newTestService().IssueAccessToken("user-3", "MEMBER")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other := NewService("different-secret", 15*time.Minute, time.Hour)
	if _, err := other.Verify(signed); err == nil {
		t.Error("expected verification to fail with a different secret")
	}
}

func TestVerify_Expired(t *testing.T) {
	svc := NewService("test-secret", -time.Minute, time.Hour)

	signed, err := svc.IssueAccessToken("user-4", "MEMBER")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.Verify(signed); err == nil {
		t.Error("expected expired token to fail verification")
	}
}

func TestVerify_Garbage(t *testing.T) {
	if _, err := newTestService().Verify("not-a-token"); err == nil {
		t.Error("expected error for malformed token")
	}
}
