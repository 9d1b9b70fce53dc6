package domain

import "time"

// User roles
const (
	RoleProvider = "PROVIDER"
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

// OTP purposes
const (
	OtpTypeLogin         = "LOGIN"
	OtpTypeRegister      = "REGISTER"
	OtpTypeResetPassword = "RESET_PASSWORD"
)

// Inquiry statuses
const (
	InquiryStatusOpen      = "OPEN"
	InquiryStatusResponded = "RESPONDED"
	InquiryStatusClosed    = "CLOSED"
)

// User represents an identity in the system. Email, Phone and PasswordHash
// are optional; the empty string means absent. A user must have at least one
// of email or phone, and a user without a password hash authenticates via
// OTP only.
type User struct {
	ID           uint
	Email        string
	Phone        string
	PasswordHash string
	Role         string
	IsVerified   bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword reports whether the user can authenticate with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// Otp is an ephemeral verification code bound to a user and purpose.
// Multiple unverified codes may coexist per user; only the most recently
// created one is live. Once Verified is set the code must never match again.
type Otp struct {
	ID        string
	UserID    uint
	Code      string
	Type      string
	ExpiresAt time.Time
	Verified  bool
	Attempts  int
	CreatedAt time.Time
}

// IsExpired reports whether the code's validity window has passed.
func (o *Otp) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// Session binds a user to their currently valid refresh token. The stored
// token is the sole credential that can mint a new token pair; rotation
// overwrites it so the previous value becomes permanently unusable.
type Session struct {
	ID           string
	UserID       uint
	RefreshToken string
	UserAgent    string
	IPAddress    string
	ExpiresAt    time.Time
	CreatedAt    time.Time
}

// TokenPair is the issued access/refresh token couple. Not persisted.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User        *User
	Tokens      TokenPair
	SessionID   string
	HasProvider bool
	ExpiresIn   int64
}

// OtpDispatch reports an issued OTP back to the caller.
type OtpDispatch struct {
	Message string
	OtpID   string
}

// Provider is a service-provider business profile linked one-to-one
// with a User.
type Provider struct {
	ID           uint
	UserID       uint
	BusinessName string
	Description  string
	Category     string
	City         string
	ContactEmail string
	ContactPhone string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PortfolioItem is an ordered work sample owned by a provider.
type PortfolioItem struct {
	ID         uint
	ProviderID uint
	Title      string
	ImageURL   string
	Position   int
	CreatedAt  time.Time
}

// Inquiry is a customer message to a provider with status tracking.
type Inquiry struct {
	ID         uint
	ProviderID uint
	CustomerID uint
	Subject    string
	Message    string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
