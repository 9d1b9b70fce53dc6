package mocks

import (
	"context"
	"time"

	"github.com/abdullahsadik00/craftconnect/domain"
)

// MockOtpService implements domain.OtpService interface for testing
type MockOtpService struct {
	IssueFunc func(ctx context.Context, userID uint, destination, otpType string) (*domain.Otp, error)
	CheckFunc func(ctx context.Context, userID uint, code string) error
}

// NewMockOtpService creates a new MockOtpService with default behaviors
func NewMockOtpService() *MockOtpService {
	return &MockOtpService{}
}

// Issue creates and dispatches an OTP
func (m *MockOtpService) Issue(ctx context.Context, userID uint, destination, otpType string) (*domain.Otp, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, userID, destination, otpType)
	}
	// Default behavior: fixed code
	return &domain.Otp{
		ID:        "mock-otp-id",
		UserID:    userID,
		Code:      "123456",
		Type:      otpType,
		ExpiresAt: time.Now().Add(10 * time.Minute),
		CreatedAt: time.Now(),
	}, nil
}

// Check verifies a submitted code against the user's live OTP
func (m *MockOtpService) Check(ctx context.Context, userID uint, code string) error {
	if m.CheckFunc != nil {
		return m.CheckFunc(ctx, userID, code)
	}
	// Default behavior: accepts the fixed code
	if code != "123456" {
		return domain.ErrOTPInvalid
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.OtpService = (*MockOtpService)(nil)
