package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abdullahsadik00/craftconnect/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo     domain.UserRepository
	sessionRepo  domain.SessionRepository
	otpRepo      domain.OtpRepository
	providerRepo domain.ProviderRepository
	passwordSvc  domain.PasswordService
	tokenSvc     domain.TokenService
	otpSvc       domain.OtpService
	accessTTL    time.Duration
	refreshTTL   time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	otpRepo domain.OtpRepository,
	providerRepo domain.ProviderRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OtpService,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		otpRepo:      otpRepo,
		providerRepo: providerRepo,
		passwordSvc:  passwordSvc,
		tokenSvc:     tokenSvc,
		otpSvc:       otpSvc,
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
	}
}

// RegisterWithEmail implements domain.AuthService. The new user receives a
// valid token pair before OTP verification completes: verification is
// soft-gated to keep onboarding friction-free.
func (s *AuthServiceImpl) RegisterWithEmail(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existingUser != nil {
		return nil, domain.ErrEmailTaken
	}

	if violations := s.passwordSvc.Validate(password); len(violations) > 0 {
		return nil, domain.FieldErrors{"password": violations}
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         domain.RoleProvider,
		IsVerified:   false,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	result, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	if _, err := s.otpSvc.Issue(ctx, user.ID, email, domain.OtpTypeRegister); err != nil {
		return nil, fmt.Errorf("failed to send OTP: %w", err)
	}

	return result, nil
}

// LoginWithEmail implements domain.AuthService. Unknown email, a
// phone-only account and a wrong password all collapse into
// ErrInvalidCredentials so callers cannot enumerate accounts.
func (s *AuthServiceImpl) LoginWithEmail(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.HasPassword() {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	user.LastLoginAt = &now

	return s.issueSession(ctx, user)
}

// SendPhoneOtp implements domain.AuthService. Phone login doubles as
// implicit registration: an unknown number gets a fresh unverified
// password-less account.
func (s *AuthServiceImpl) SendPhoneOtp(ctx context.Context, phone string) (*domain.OtpDispatch, error) {
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err == domain.ErrUserNotFound {
		user = &domain.User{
			Phone:      phone,
			Role:       domain.RoleProvider,
			IsVerified: false,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	} else if err != nil {
		return nil, err
	}

	otp, err := s.otpSvc.Issue(ctx, user.ID, phone, domain.OtpTypeLogin)
	if err != nil {
		return nil, err
	}

	return &domain.OtpDispatch{Message: "OTP sent", OtpID: otp.ID}, nil
}

// SendEmailOtp implements domain.AuthService
func (s *AuthServiceImpl) SendEmailOtp(ctx context.Context, userID uint, email, otpType string) (*domain.OtpDispatch, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	otp, err := s.otpSvc.Issue(ctx, userID, email, otpType)
	if err != nil {
		return nil, err
	}

	return &domain.OtpDispatch{Message: "OTP sent", OtpID: otp.ID}, nil
}

// VerifyOtp implements domain.AuthService. Exactly one of phone or email
// identifies the user. A successful check marks the user verified and
// issues a fresh session.
func (s *AuthServiceImpl) VerifyOtp(ctx context.Context, phone, email, code string) (*domain.AuthResult, error) {
	var user *domain.User
	var err error
	if phone != "" {
		user, err = s.userRepo.FindByPhone(ctx, phone)
	} else {
		user, err = s.userRepo.FindByEmail(ctx, email)
	}
	if err != nil {
		return nil, err
	}

	if err := s.otpSvc.Check(ctx, user.ID, code); err != nil {
		return nil, err
	}

	if err := s.userRepo.MarkVerified(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to mark user verified: %w", err)
	}
	user.IsVerified = true

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	user.LastLoginAt = &now

	return s.issueSession(ctx, user)
}

// RefreshToken implements domain.AuthService. Rotation: the session's
// stored token is overwritten with a new value and its expiry pushed
// forward, so the presented token becomes permanently unusable.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	// FindByToken lazily deletes a session found past its expiry.
	session, err := s.sessionRepo.FindByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	newRefreshToken, err := s.tokenSvc.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	session.RefreshToken = newRefreshToken
	session.ExpiresAt = time.Now().Add(s.refreshTTL)
	if err := s.sessionRepo.Rotate(ctx, refreshToken, session); err != nil {
		return nil, fmt.Errorf("failed to rotate session: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	return s.sessionRepo.DeleteByToken(ctx, refreshToken)
}

// LogoutAll implements domain.AuthService
func (s *AuthServiceImpl) LogoutAll(ctx context.Context, userID uint) error {
	return s.sessionRepo.DeleteByUser(ctx, userID)
}

// GetProfile implements domain.AuthService
func (s *AuthServiceImpl) GetProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// CleanupExpiredOtps implements domain.AuthService
func (s *AuthServiceImpl) CleanupExpiredOtps(ctx context.Context) (int64, error) {
	return s.otpRepo.DeleteExpired(ctx, time.Now())
}

// CleanupExpiredSessions implements domain.AuthService
func (s *AuthServiceImpl) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessionRepo.DeleteExpired(ctx)
}

// issueSession mints a token pair, persists the session binding the
// refresh token, and reports whether a provider profile exists.
func (s *AuthServiceImpl) issueSession(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokenSvc.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	meta := domain.SessionMetaFromContext(ctx)
	session := &domain.Session{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		RefreshToken: refreshToken,
		UserAgent:    meta.UserAgent,
		IPAddress:    meta.IPAddress,
		ExpiresAt:    time.Now().Add(s.refreshTTL),
		CreatedAt:    time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	hasProvider, err := s.providerRepo.ExistsByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check provider profile: %w", err)
	}

	return &domain.AuthResult{
		User: user,
		Tokens: domain.TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
		SessionID:   session.ID,
		HasProvider: hasProvider,
		ExpiresIn:   int64(s.accessTTL.Seconds()),
	}, nil
}
