package mocks

import (
	"context"

	"github.com/abdullahsadik00/craftconnect/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterWithEmailFunc      func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	LoginWithEmailFunc         func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	SendPhoneOtpFunc           func(ctx context.Context, phone string) (*domain.OtpDispatch, error)
	SendEmailOtpFunc           func(ctx context.Context, userID uint, email, otpType string) (*domain.OtpDispatch, error)
	VerifyOtpFunc              func(ctx context.Context, phone, email, code string) (*domain.AuthResult, error)
	RefreshTokenFunc           func(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	LogoutFunc                 func(ctx context.Context, refreshToken string) error
	LogoutAllFunc              func(ctx context.Context, userID uint) error
	GetProfileFunc             func(ctx context.Context, userID uint) (*domain.User, error)
	CleanupExpiredOtpsFunc     func(ctx context.Context) (int64, error)
	CleanupExpiredSessionsFunc func(ctx context.Context) (int64, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// RegisterWithEmail registers a new email/password user
func (m *MockAuthService) RegisterWithEmail(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.RegisterWithEmailFunc != nil {
		return m.RegisterWithEmailFunc(ctx, email, password)
	}
	// Default behavior: fresh unverified user
	return defaultAuthResult(email), nil
}

// LoginWithEmail authenticates an email/password user
func (m *MockAuthService) LoginWithEmail(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginWithEmailFunc != nil {
		return m.LoginWithEmailFunc(ctx, email, password)
	}
	// Default behavior: success
	return defaultAuthResult(email), nil
}

// SendPhoneOtp issues an OTP to a phone number
func (m *MockAuthService) SendPhoneOtp(ctx context.Context, phone string) (*domain.OtpDispatch, error) {
	if m.SendPhoneOtpFunc != nil {
		return m.SendPhoneOtpFunc(ctx, phone)
	}
	// Default behavior: dispatched
	return &domain.OtpDispatch{Message: "Verification code sent", OtpID: "mock-otp-id"}, nil
}

// SendEmailOtp issues an OTP to an email address
func (m *MockAuthService) SendEmailOtp(ctx context.Context, userID uint, email, otpType string) (*domain.OtpDispatch, error) {
	if m.SendEmailOtpFunc != nil {
		return m.SendEmailOtpFunc(ctx, userID, email, otpType)
	}
	// Default behavior: dispatched
	return &domain.OtpDispatch{Message: "Verification code sent", OtpID: "mock-otp-id"}, nil
}

// VerifyOtp verifies a submitted code
func (m *MockAuthService) VerifyOtp(ctx context.Context, phone, email, code string) (*domain.AuthResult, error) {
	if m.VerifyOtpFunc != nil {
		return m.VerifyOtpFunc(ctx, phone, email, code)
	}
	// Default behavior: success
	return defaultAuthResult(email), nil
}

// RefreshToken rotates a refresh token
func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshToken)
	}
	// Default behavior: new pair
	return &domain.TokenPair{AccessToken: "mock_access_token", RefreshToken: "mock_refresh_token"}, nil
}

// Logout invalidates the session bound to the refresh token
func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, refreshToken)
	}
	// Default behavior: success
	return nil
}

// LogoutAll invalidates every session of the user
func (m *MockAuthService) LogoutAll(ctx context.Context, userID uint) error {
	if m.LogoutAllFunc != nil {
		return m.LogoutAllFunc(ctx, userID)
	}
	// Default behavior: success
	return nil
}

// GetProfile returns the user's profile
func (m *MockAuthService) GetProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// CleanupExpiredOtps deletes expired OTP records
func (m *MockAuthService) CleanupExpiredOtps(ctx context.Context) (int64, error) {
	if m.CleanupExpiredOtpsFunc != nil {
		return m.CleanupExpiredOtpsFunc(ctx)
	}
	// Default behavior: nothing deleted
	return 0, nil
}

// CleanupExpiredSessions deletes expired sessions
func (m *MockAuthService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	if m.CleanupExpiredSessionsFunc != nil {
		return m.CleanupExpiredSessionsFunc(ctx)
	}
	// Default behavior: nothing deleted
	return 0, nil
}

func defaultAuthResult(email string) *domain.AuthResult {
	return &domain.AuthResult{
		User: &domain.User{
			ID:    1,
			Email: email,
			Role:  domain.RoleProvider,
		},
		Tokens: domain.TokenPair{
			AccessToken:  "mock_access_token",
			RefreshToken: "mock_refresh_token",
		},
		SessionID: "mock-session-id",
		ExpiresIn: 604800,
	}
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
