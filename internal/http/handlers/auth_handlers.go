package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/abdullahsadik00/craftconnect/domain"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// EmailRegisterRequest represents email registration request
type EmailRegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// EmailLoginRequest represents email login request
type EmailLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// PhoneRequest represents phone registration and login requests
type PhoneRequest struct {
	Phone string `json:"phone" binding:"required,e164"`
}

// OTPVerifyRequest represents OTP verification request. Exactly one of
// phone or email identifies the account.
type OTPVerifyRequest struct {
	Phone string `json:"phone" binding:"omitempty,e164"`
	Email string `json:"email" binding:"omitempty,email"`
	OTP   string `json:"otp" binding:"required"`
}

// RefreshRequest represents token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest represents logout request
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RegisterEmail handles email/password registration
func (h *AuthHandlers) RegisterEmail(c *gin.Context) {
	var req EmailRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ctx := withSessionMeta(c)
	result, err := h.authSvc.RegisterWithEmail(ctx, strings.ToLower(req.Email), req.Password)
	if err != nil {
		var fieldErrs domain.FieldErrors
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered", "code": "CONFLICT"})
		case errors.As(err, &fieldErrs):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed", "fields": fieldErrs})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		}
		return
	}

	c.JSON(http.StatusCreated, authResultJSON(result))
}

// LoginEmail handles email/password login
func (h *AuthHandlers) LoginEmail(c *gin.Context) {
	var req EmailLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ctx := withSessionMeta(c)
	result, err := h.authSvc.LoginWithEmail(ctx, strings.ToLower(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, authResultJSON(result))
}

// SendPhoneOTP handles phone registration and phone login. Both issue an
// OTP; unknown phone numbers are registered implicitly.
func (h *AuthHandlers) SendPhoneOTP(c *gin.Context) {
	var req PhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	dispatch, err := h.authSvc.SendPhoneOtp(c.Request.Context(), req.Phone)
	if err != nil {
		if errors.Is(err, domain.ErrOTPResendLimit) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Please wait before requesting another code"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": dispatch.Message,
		"otpId":   dispatch.OtpID,
	})
}

// VerifyOTP handles OTP verification for both phone and email flows
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if req.Phone == "" && req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone or email is required"})
		return
	}

	ctx := withSessionMeta(c)
	result, err := h.authSvc.VerifyOtp(ctx, req.Phone, strings.ToLower(req.Email), req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, domain.ErrOTPNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No pending verification code"})
		case errors.Is(err, domain.ErrOTPExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Verification code has expired"})
		case errors.Is(err, domain.ErrOTPMaxAttempts):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Too many incorrect attempts, please request a new code"})
		case errors.Is(err, domain.ErrOTPInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verification code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		}
		return
	}

	c.JSON(http.StatusOK, authResultJSON(result))
}

// Refresh handles refresh token rotation
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	pair, err := h.authSvc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrTokenExpired), errors.Is(err, domain.ErrTokenMalformed):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrSessionExpired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token refresh failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

// Logout invalidates the session bound to the supplied refresh token.
// Unknown tokens are treated as already logged out.
func (h *AuthHandlers) Logout(c *gin.Context) {
	// The body is optional; an absent or malformed body logs out nothing
	// but still succeeds.
	var req LogoutRequest
	_ = c.ShouldBindJSON(&req)

	if req.RefreshToken != "" {
		if err := h.authSvc.Logout(c.Request.Context(), req.RefreshToken); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// LogoutAll invalidates every session of the authenticated user
func (h *AuthHandlers) LogoutAll(c *gin.Context) {
	userID, ok := contextUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	if err := h.authSvc.LogoutAll(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}

	log.Printf("LOGOUT_ALL: user_id=%d timestamp=%s", userID, time.Now().UTC().Format(time.RFC3339))
	c.JSON(http.StatusOK, gin.H{"message": "All sessions terminated"})
}

// Me returns the authenticated user's profile
func (h *AuthHandlers) Me(c *gin.Context) {
	userID, ok := contextUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	user, err := h.authSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userJSON(user)})
}

// authResultJSON shapes the shared login/register/verify response body.
func authResultJSON(result *domain.AuthResult) gin.H {
	return gin.H{
		"tokens": gin.H{
			"accessToken":  result.Tokens.AccessToken,
			"refreshToken": result.Tokens.RefreshToken,
			"tokenType":    "Bearer",
			"expiresIn":    result.ExpiresIn,
		},
		"user":        userJSON(result.User),
		"hasProvider": result.HasProvider,
	}
}

// userJSON serializes a user without the password hash.
func userJSON(user *domain.User) gin.H {
	return gin.H{
		"id":          user.ID,
		"email":       user.Email,
		"phone":       user.Phone,
		"role":        user.Role,
		"isVerified":  user.IsVerified,
		"lastLoginAt": user.LastLoginAt,
		"createdAt":   user.CreatedAt,
		"updatedAt":   user.UpdatedAt,
	}
}

// contextUserID reads the user ID the auth middleware stored in context.
func contextUserID(c *gin.Context) (uint, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, err := strconv.ParseUint(raw.(string), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// withSessionMeta attaches the request's user agent and client IP to the
// context so the engine can record them on the session.
func withSessionMeta(c *gin.Context) context.Context {
	return domain.WithSessionMeta(c.Request.Context(), domain.SessionMeta{
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
}

// bindError translates gin binding failures into either a 422 with a
// field map (validator violations) or a 400 (malformed JSON).
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := domain.FieldErrors{}
		for _, fe := range verrs {
			fields.Add(jsonFieldName(fe), validationMessage(fe))
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed", "fields": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
}

// jsonFieldName lowercases the struct field name to match the JSON tags.
func jsonFieldName(fe validator.FieldError) string {
	return strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
}

// validationMessage renders a human readable message per violated tag.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "e164":
		return "must be a valid phone number in E.164 format"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}
