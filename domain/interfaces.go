package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
	MarkVerified(ctx context.Context, userID uint) error
	UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error
}

// OtpRepository defines OTP data access operations
type OtpRepository interface {
	Create(ctx context.Context, otp *Otp) error
	// FindLatestPending returns the most recently created unverified OTP
	// for the user, regardless of how many older ones coexist.
	FindLatestPending(ctx context.Context, userID uint) (*Otp, error)
	IncrementAttempts(ctx context.Context, otpID string) error
	MarkVerified(ctx context.Context, otpID string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SessionRepository defines session data access operations. Sessions are
// looked up by their refresh token: the token value is the key.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByToken(ctx context.Context, refreshToken string) (*Session, error)
	// Rotate replaces the session's stored refresh token with the one in
	// session, invalidating oldToken entirely.
	Rotate(ctx context.Context, oldToken string, session *Session) error
	DeleteByToken(ctx context.Context, refreshToken string) error
	DeleteByUser(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// ProviderRepository defines provider profile and portfolio data access
type ProviderRepository interface {
	Create(ctx context.Context, provider *Provider) error
	FindByID(ctx context.Context, id uint) (*Provider, error)
	FindByUserID(ctx context.Context, userID uint) (*Provider, error)
	ExistsByUserID(ctx context.Context, userID uint) (bool, error)
	Update(ctx context.Context, provider *Provider) error
	List(ctx context.Context, filter ProviderFilter) ([]*Provider, error)

	AddPortfolioItem(ctx context.Context, item *PortfolioItem) error
	DeletePortfolioItem(ctx context.Context, providerID, itemID uint) error
	ListPortfolio(ctx context.Context, providerID uint) ([]*PortfolioItem, error)
	ReorderPortfolio(ctx context.Context, providerID uint, itemIDs []uint) error
}

// ProviderFilter narrows provider listings.
type ProviderFilter struct {
	Category string
	City     string
	Limit    int
	Offset   int
}

// InquiryRepository defines inquiry data access operations
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *Inquiry) error
	FindByID(ctx context.Context, id uint) (*Inquiry, error)
	ListByProvider(ctx context.Context, providerID uint, filter InquiryFilter) ([]*Inquiry, int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

// InquiryFilter narrows inquiry listings.
type InquiryFilter struct {
	Status string
	Limit  int
	Offset int
}

// AuthService defines the authentication engine's public contract
type AuthService interface {
	RegisterWithEmail(ctx context.Context, email, password string) (*AuthResult, error)
	LoginWithEmail(ctx context.Context, email, password string) (*AuthResult, error)
	SendPhoneOtp(ctx context.Context, phone string) (*OtpDispatch, error)
	SendEmailOtp(ctx context.Context, userID uint, email, otpType string) (*OtpDispatch, error)
	VerifyOtp(ctx context.Context, phone, email, code string) (*AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	LogoutAll(ctx context.Context, userID uint) error
	GetProfile(ctx context.Context, userID uint) (*User, error)
	CleanupExpiredOtps(ctx context.Context) (int64, error)
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}

// OtpService defines the OTP lifecycle operations
type OtpService interface {
	// Issue creates and dispatches a fresh OTP. Older unverified codes for
	// the same user are left in place; only the newest one is live.
	Issue(ctx context.Context, userID uint, destination, otpType string) (*Otp, error)
	// Check runs the verification state machine against the user's live
	// OTP: pending lookup, expiry, attempt lockout, code match, and the
	// one-time verified flag.
	Check(ctx context.Context, userID uint, code string) error
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
	// Validate returns every violated policy rule, not just the first.
	Validate(password string) []string
}

// TokenService defines token operations. Access and refresh tokens are
// signed with distinct secrets so one class cannot be used to forge the
// other.
type TokenService interface {
	GenerateAccessToken(userID uint, role string) (string, error)
	GenerateRefreshToken(userID uint, role string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
	// Decode parses without verifying the signature. Diagnostics only;
	// never authorize from its result.
	Decode(token string) (*TokenClaims, error)
}

// NotificationService defines notification operations
type NotificationService interface {
	SendSMS(to, message string) error
	SendEmail(to, subject, body string) error
}

// ProviderService defines marketplace business logic
type ProviderService interface {
	CreateProfile(ctx context.Context, userID uint, provider *Provider) (*Provider, error)
	GetByID(ctx context.Context, id uint) (*Provider, error)
	GetByUser(ctx context.Context, userID uint) (*Provider, error)
	UpdateProfile(ctx context.Context, userID uint, provider *Provider) (*Provider, error)
	List(ctx context.Context, filter ProviderFilter) ([]*Provider, error)

	AddPortfolioItem(ctx context.Context, userID uint, item *PortfolioItem) (*PortfolioItem, error)
	RemovePortfolioItem(ctx context.Context, userID, itemID uint) error
	Portfolio(ctx context.Context, providerID uint) ([]*PortfolioItem, error)
	ReorderPortfolio(ctx context.Context, userID uint, itemIDs []uint) error

	SubmitInquiry(ctx context.Context, customerID, providerID uint, subject, message string) (*Inquiry, error)
	ListInquiries(ctx context.Context, userID uint, filter InquiryFilter) ([]*Inquiry, int64, error)
	UpdateInquiryStatus(ctx context.Context, userID, inquiryID uint, status string) error
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// CasbinEnforcer defines the methods we need from the Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
