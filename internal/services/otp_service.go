package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/abdullahsadik00/craftconnect/domain"
)

// OTPServiceImpl implements domain.OtpService. Codes are persisted records;
// the Redis client only backs the per-destination resend throttle.
type OTPServiceImpl struct {
	otpRepo         domain.OtpRepository
	notificationSvc domain.NotificationService
	redisClient     *redis.Client
	config          OTPConfig
}

type OTPConfig struct {
	Length       int
	TTL          time.Duration
	MaxAttempts  int
	ResendWindow time.Duration
}

// NewOTPService creates a new OTP service
func NewOTPService(otpRepo domain.OtpRepository, notificationSvc domain.NotificationService, redisClient *redis.Client, config OTPConfig) domain.OtpService {
	return &OTPServiceImpl{
		otpRepo:         otpRepo,
		notificationSvc: notificationSvc,
		redisClient:     redisClient,
		config:          config,
	}
}

// Issue implements domain.OtpService. Older unverified codes are not
// invalidated; the newest one wins on verification.
func (s *OTPServiceImpl) Issue(ctx context.Context, userID uint, destination, otpType string) (*domain.Otp, error) {
	resendKey := "otp:res:" + destination

	ttl, err := s.redisClient.TTL(ctx, resendKey).Result()
	if err == nil && ttl > 0 {
		return nil, domain.ErrOTPResendLimit
	}

	code, err := s.generateSecureCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	otp := &domain.Otp{
		ID:        uuid.NewString(),
		UserID:    userID,
		Code:      code,
		Type:      otpType,
		ExpiresAt: time.Now().Add(s.config.TTL),
	}
	if err := s.otpRepo.Create(ctx, otp); err != nil {
		return nil, fmt.Errorf("failed to store OTP: %w", err)
	}

	if err := s.redisClient.Set(ctx, resendKey, 1, s.config.ResendWindow).Err(); err != nil {
		return nil, fmt.Errorf("failed to set resend throttle: %w", err)
	}

	message := fmt.Sprintf("Your verification code is: %s. Valid for %d minutes.", code, int(s.config.TTL.Minutes()))
	if strings.Contains(destination, "@") {
		err = s.notificationSvc.SendEmail(destination, "Your verification code", message)
	} else {
		err = s.notificationSvc.SendSMS(destination, message)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to send OTP: %w", err)
	}

	log.Printf("OTP_ISSUED: user_id=%d type=%s code=%s", userID, otpType, MaskCode(code))

	return otp, nil
}

// Check implements domain.OtpService. Attempt lockout is evaluated before
// the code comparison, so an exhausted OTP never matches even when the
// submitted code is correct.
func (s *OTPServiceImpl) Check(ctx context.Context, userID uint, code string) error {
	otp, err := s.otpRepo.FindLatestPending(ctx, userID)
	if err != nil {
		return err
	}

	if otp.IsExpired(time.Now()) {
		return domain.ErrOTPExpired
	}

	if otp.Attempts >= s.config.MaxAttempts {
		return domain.ErrOTPMaxAttempts
	}

	if otp.Code != code {
		if err := s.otpRepo.IncrementAttempts(ctx, otp.ID); err != nil {
			return fmt.Errorf("failed to record attempt: %w", err)
		}
		return domain.ErrOTPInvalid
	}

	if err := s.otpRepo.MarkVerified(ctx, otp.ID); err != nil {
		return fmt.Errorf("failed to mark OTP verified: %w", err)
	}

	return nil
}

// generateSecureCode generates a cryptographically secure OTP code
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)

	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}

// MaskCode hides all but the last two digits of a code for display.
func MaskCode(code string) string {
	if len(code) <= 2 {
		return code
	}
	return strings.Repeat("*", len(code)-2) + code[len(code)-2:]
}
