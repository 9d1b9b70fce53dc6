package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/abdullahsadik00/craftconnect/domain"
)

func newTestJWTService(accessTTL, refreshTTL time.Duration) domain.TokenService {
	return NewJWTService("test-access-secret", "test-refresh-secret", "craftconnect-test", accessTTL, refreshTTL)
}

func TestJWTServiceImpl_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService(time.Hour, 24*time.Hour)

	access, err := svc.GenerateAccessToken(42, domain.RoleProvider)
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}

	claims, err := svc.ValidateAccessToken(access)
	if err != nil {
		t.Fatalf("ValidateAccessToken returned error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user ID 42, got %d", claims.UserID)
	}
	if claims.Role != domain.RoleProvider {
		t.Errorf("expected role %s, got %s", domain.RoleProvider, claims.Role)
	}
	if claims.ExpiresAt <= claims.IssuedAt {
		t.Error("expiry should be after issuance")
	}
}

func TestJWTServiceImpl_SecretsAreNotInterchangeable(t *testing.T) {
	svc := newTestJWTService(time.Hour, 24*time.Hour)

	access, err := svc.GenerateAccessToken(1, domain.RoleCustomer)
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}
	refresh, err := svc.GenerateRefreshToken(1, domain.RoleCustomer)
	if err != nil {
		t.Fatalf("GenerateRefreshToken returned error: %v", err)
	}

	if _, err := svc.ValidateRefreshToken(access); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("access token should fail refresh validation with ErrTokenInvalid, got %v", err)
	}
	if _, err := svc.ValidateAccessToken(refresh); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("refresh token should fail access validation with ErrTokenInvalid, got %v", err)
	}
}

func TestJWTServiceImpl_ExpiredToken(t *testing.T) {
	svc := newTestJWTService(-time.Minute, 24*time.Hour)

	token, err := svc.GenerateAccessToken(1, domain.RoleProvider)
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}

	_, err = svc.ValidateAccessToken(token)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTServiceImpl_TamperedToken(t *testing.T) {
	svc := newTestJWTService(time.Hour, 24*time.Hour)
	other := NewJWTService("other-access", "other-refresh", "craftconnect-test", time.Hour, 24*time.Hour)

	forged, err := other.GenerateAccessToken(1, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}

	if _, err := svc.ValidateAccessToken(forged); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for foreign signature, got %v", err)
	}
	if _, err := svc.ValidateAccessToken("not-a-token"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for garbage input, got %v", err)
	}
}

func TestJWTServiceImpl_TokensAreUnique(t *testing.T) {
	svc := newTestJWTService(time.Hour, 24*time.Hour)

	first, err := svc.GenerateAccessToken(1, domain.RoleProvider)
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}
	second, err := svc.GenerateAccessToken(1, domain.RoleProvider)
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}

	if first == second {
		t.Error("two tokens for the same user should differ via their JTI")
	}
}

func TestJWTServiceImpl_Decode(t *testing.T) {
	svc := newTestJWTService(time.Hour, 24*time.Hour)

	token, err := svc.GenerateRefreshToken(7, domain.RoleCustomer)
	if err != nil {
		t.Fatalf("GenerateRefreshToken returned error: %v", err)
	}

	claims, err := svc.Decode(token)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if claims.UserID != 7 || claims.Role != domain.RoleCustomer {
		t.Errorf("unexpected decoded claims: %+v", claims)
	}

	if _, err := svc.Decode("garbage"); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Errorf("expected ErrTokenMalformed, got %v", err)
	}
}
