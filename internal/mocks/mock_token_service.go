package mocks

import (
	"time"

	"github.com/abdullahsadik00/craftconnect/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateAccessTokenFunc  func(userID uint, role string) (string, error)
	GenerateRefreshTokenFunc func(userID uint, role string) (string, error)
	ValidateAccessTokenFunc  func(token string) (*domain.TokenClaims, error)
	ValidateRefreshTokenFunc func(token string) (*domain.TokenClaims, error)
	DecodeFunc               func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateAccessToken generates an access token
func (m *MockTokenService) GenerateAccessToken(userID uint, role string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID, role)
	}
	// Default behavior: fixed token
	return "mock_access_token", nil
}

// GenerateRefreshToken generates a refresh token
func (m *MockTokenService) GenerateRefreshToken(userID uint, role string) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(userID, role)
	}
	// Default behavior: fixed token
	return "mock_refresh_token", nil
}

// ValidateAccessToken validates an access token
func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	// Default behavior: valid claims for user 1
	return defaultClaims(), nil
}

// ValidateRefreshToken validates a refresh token
func (m *MockTokenService) ValidateRefreshToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateRefreshTokenFunc != nil {
		return m.ValidateRefreshTokenFunc(token)
	}
	// Default behavior: valid claims for user 1
	return defaultClaims(), nil
}

// Decode parses a token without verifying its signature
func (m *MockTokenService) Decode(token string) (*domain.TokenClaims, error) {
	if m.DecodeFunc != nil {
		return m.DecodeFunc(token)
	}
	// Default behavior: valid claims for user 1
	return defaultClaims(), nil
}

func defaultClaims() *domain.TokenClaims {
	now := time.Now()
	return &domain.TokenClaims{
		UserID:    1,
		Role:      domain.RoleProvider,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(time.Hour).Unix(),
	}
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
