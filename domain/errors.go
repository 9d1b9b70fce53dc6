package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password does not meet policy")
)

// OTP errors
var (
	ErrOTPNotFound    = errors.New("no pending otp")
	ErrOTPExpired     = errors.New("otp has expired")
	ErrOTPInvalid     = errors.New("invalid otp code")
	ErrOTPMaxAttempts = errors.New("maximum otp attempts exceeded")
	ErrOTPResendLimit = errors.New("otp resend limit exceeded")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// Authorization errors
var (
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrInsufficientRole = errors.New("insufficient role permissions")
)

// Marketplace errors
var (
	ErrProviderNotFound  = errors.New("provider not found")
	ErrProviderExists    = errors.New("provider profile already exists")
	ErrInquiryNotFound   = errors.New("inquiry not found")
	ErrNotInquiryOwner   = errors.New("inquiry belongs to another provider")
	ErrInvalidStatus     = errors.New("invalid inquiry status")
	ErrPortfolioNotFound = errors.New("portfolio item not found")
)

// FieldErrors maps field paths to every validation message that applies,
// so a single 422 response can surface all violations at once.
type FieldErrors map[string][]string

// Error implements the error interface.
func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msgs := range fe {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Add appends a message for the given field.
func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}
