package mocks

import (
	"context"
	"time"

	"github.com/abdullahsadik00/craftconnect/domain"
)

// MockOtpRepository implements domain.OtpRepository interface for testing
type MockOtpRepository struct {
	CreateFunc            func(ctx context.Context, otp *domain.Otp) error
	FindLatestPendingFunc func(ctx context.Context, userID uint) (*domain.Otp, error)
	IncrementAttemptsFunc func(ctx context.Context, otpID string) error
	MarkVerifiedFunc      func(ctx context.Context, otpID string) error
	DeleteExpiredFunc     func(ctx context.Context, now time.Time) (int64, error)
}

// NewMockOtpRepository creates a new MockOtpRepository with default behaviors
func NewMockOtpRepository() *MockOtpRepository {
	return &MockOtpRepository{}
}

// Create stores a new OTP record
func (m *MockOtpRepository) Create(ctx context.Context, otp *domain.Otp) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, otp)
	}
	// Default behavior: success
	return nil
}

// FindLatestPending returns the newest unverified OTP for the user
func (m *MockOtpRepository) FindLatestPending(ctx context.Context, userID uint) (*domain.Otp, error) {
	if m.FindLatestPendingFunc != nil {
		return m.FindLatestPendingFunc(ctx, userID)
	}
	// Default behavior: no pending OTP
	return nil, domain.ErrOTPNotFound
}

// IncrementAttempts bumps the OTP's failed attempt counter
func (m *MockOtpRepository) IncrementAttempts(ctx context.Context, otpID string) error {
	if m.IncrementAttemptsFunc != nil {
		return m.IncrementAttemptsFunc(ctx, otpID)
	}
	// Default behavior: success
	return nil
}

// MarkVerified sets the OTP's one-time verified flag
func (m *MockOtpRepository) MarkVerified(ctx context.Context, otpID string) error {
	if m.MarkVerifiedFunc != nil {
		return m.MarkVerifiedFunc(ctx, otpID)
	}
	// Default behavior: success
	return nil
}

// DeleteExpired removes OTPs whose expiry has passed
func (m *MockOtpRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx, now)
	}
	// Default behavior: nothing deleted
	return 0, nil
}

// Compile-time interface compliance verification
var _ domain.OtpRepository = (*MockOtpRepository)(nil)
