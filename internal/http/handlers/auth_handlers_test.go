package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/abdullahsadik00/craftconnect/domain"
	"github.com/abdullahsadik00/craftconnect/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(authSvc domain.AuthService) *gin.Engine {
	h := NewAuthHandlers(authSvc)
	r := gin.New()
	r.POST("/auth/register/email", h.RegisterEmail)
	r.POST("/auth/register/phone", h.SendPhoneOTP)
	r.POST("/auth/login/email", h.LoginEmail)
	r.POST("/auth/login/phone", h.SendPhoneOTP)
	r.POST("/auth/verify-otp", h.VerifyOTP)
	r.POST("/auth/refresh-token", h.Refresh)
	r.POST("/auth/logout", h.Logout)
	r.POST("/auth/logout-all", fakeIdentity("7", domain.RoleProvider), h.LogoutAll)
	r.GET("/auth/me", fakeIdentity("7", domain.RoleProvider), h.Me)
	return r
}

// fakeIdentity stands in for the JWT middleware.
func fakeIdentity(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("user_role", role)
	}
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	return body
}

func TestAuthHandlers_RegisterEmail_Success(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	var gotEmail string
	authSvc.RegisterWithEmailFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
		gotEmail = email
		meta := domain.SessionMetaFromContext(ctx)
		if meta.UserAgent == "" {
			t.Error("session metadata should be attached to the context")
		}
		return &domain.AuthResult{
			User:      &domain.User{ID: 9, Email: email, Role: domain.RoleProvider},
			Tokens:    domain.TokenPair{AccessToken: "at", RefreshToken: "rt"},
			ExpiresIn: 604800,
		}, nil
	}
	router := newAuthRouter(authSvc)

	w := doJSONWithAgent(router, http.MethodPost, "/auth/register/email", gin.H{
		"email":    "New.User@Example.COM",
		"password": "Str0ng!Pass",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if gotEmail != "new.user@example.com" {
		t.Errorf("email should be lowercased, got %q", gotEmail)
	}

	body := parseBody(t, w)
	tokens, ok := body["tokens"].(map[string]any)
	if !ok {
		t.Fatalf("response should contain tokens, got %v", body)
	}
	if tokens["accessToken"] != "at" || tokens["refreshToken"] != "rt" {
		t.Errorf("unexpected tokens: %v", tokens)
	}
	if tokens["tokenType"] != "Bearer" {
		t.Errorf("expected Bearer token type, got %v", tokens["tokenType"])
	}
	if tokens["expiresIn"] != float64(604800) {
		t.Errorf("expected expiresIn 604800, got %v", tokens["expiresIn"])
	}
	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("response should contain user, got %v", body)
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Error("password hash must never be serialized")
	}
}

func doJSONWithAgent(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "test-client/1.0")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandlers_RegisterEmail_Conflict(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.RegisterWithEmailFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
		return nil, domain.ErrEmailTaken
	}
	router := newAuthRouter(authSvc)

	w := doJSON(router, http.MethodPost, "/auth/register/email", gin.H{
		"email":    "taken@example.com",
		"password": "Str0ng!Pass",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	body := parseBody(t, w)
	if body["code"] != "CONFLICT" {
		t.Errorf("expected code CONFLICT, got %v", body["code"])
	}
}

func TestAuthHandlers_RegisterEmail_WeakPassword(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.RegisterWithEmailFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
		errs := domain.FieldErrors{}
		errs.Add("password", "must be at least 8 characters")
		errs.Add("password", "must contain an uppercase letter")
		return nil, errs
	}
	router := newAuthRouter(authSvc)

	w := doJSON(router, http.MethodPost, "/auth/register/email", gin.H{
		"email":    "a@example.com",
		"password": "weak",
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	body := parseBody(t, w)
	fields, ok := body["fields"].(map[string]any)
	if !ok {
		t.Fatalf("response should contain fields, got %v", body)
	}
	violations, ok := fields["password"].([]any)
	if !ok || len(violations) != 2 {
		t.Errorf("expected 2 password violations, got %v", fields["password"])
	}
}

func TestAuthHandlers_RegisterEmail_InvalidBody(t *testing.T) {
	router := newAuthRouter(mocks.NewMockAuthService())

	tests := []struct {
		name     string
		body     any
		wantCode int
	}{
		{"missing password", gin.H{"email": "a@example.com"}, http.StatusUnprocessableEntity},
		{"invalid email", gin.H{"email": "not-an-email", "password": "Str0ng!Pass"}, http.StatusUnprocessableEntity},
		{"empty body", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/auth/register/email", tt.body)
			if w.Code != tt.wantCode {
				t.Errorf("expected %d, got %d: %s", tt.wantCode, w.Code, w.Body.String())
			}
		})
	}
}

func TestAuthHandlers_LoginEmail_InvalidCredentials(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.LoginWithEmailFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
		return nil, domain.ErrInvalidCredentials
	}
	router := newAuthRouter(authSvc)

	w := doJSON(router, http.MethodPost, "/auth/login/email", gin.H{
		"email":    "a@example.com",
		"password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	body := parseBody(t, w)
	// Unknown account and wrong password produce the same message.
	if body["error"] != "Invalid email or password" {
		t.Errorf("unexpected message: %v", body["error"])
	}
}

func TestAuthHandlers_SendPhoneOTP(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.SendPhoneOtpFunc = func(ctx context.Context, phone string) (*domain.OtpDispatch, error) {
		return &domain.OtpDispatch{Message: "Verification code sent", OtpID: "otp-123"}, nil
	}
	router := newAuthRouter(authSvc)

	// Registration and login share the same dispatch behavior.
	for _, path := range []string{"/auth/register/phone", "/auth/login/phone"} {
		w := doJSON(router, http.MethodPost, path, gin.H{"phone": "+15551234567"})
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, w.Code)
		}
		body := parseBody(t, w)
		if body["otpId"] != "otp-123" {
			t.Errorf("%s: expected otpId otp-123, got %v", path, body["otpId"])
		}
		if body["message"] != "Verification code sent" {
			t.Errorf("%s: unexpected message: %v", path, body["message"])
		}
	}
}

func TestAuthHandlers_SendPhoneOTP_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     gin.H
		svcErr   error
		wantCode int
	}{
		{"resend throttled", gin.H{"phone": "+15551234567"}, domain.ErrOTPResendLimit, http.StatusTooManyRequests},
		{"delivery failure", gin.H{"phone": "+15551234567"}, errors.New("sms delivery failed"), http.StatusInternalServerError},
		{"invalid phone format", gin.H{"phone": "555-1234"}, nil, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			if tt.svcErr != nil {
				authSvc.SendPhoneOtpFunc = func(ctx context.Context, phone string) (*domain.OtpDispatch, error) {
					return nil, tt.svcErr
				}
			}
			router := newAuthRouter(authSvc)

			w := doJSON(router, http.MethodPost, "/auth/register/phone", tt.body)
			if w.Code != tt.wantCode {
				t.Errorf("expected %d, got %d: %s", tt.wantCode, w.Code, w.Body.String())
			}
		})
	}
}

func TestAuthHandlers_VerifyOTP(t *testing.T) {
	tests := []struct {
		name     string
		body     gin.H
		svcErr   error
		wantCode int
	}{
		{"phone flow success", gin.H{"phone": "+15551234567", "otp": "123456"}, nil, http.StatusOK},
		{"email flow success", gin.H{"email": "a@example.com", "otp": "123456"}, nil, http.StatusOK},
		{"neither identifier", gin.H{"otp": "123456"}, nil, http.StatusBadRequest},
		{"unknown user", gin.H{"phone": "+15551234567", "otp": "123456"}, domain.ErrUserNotFound, http.StatusNotFound},
		{"no pending code", gin.H{"phone": "+15551234567", "otp": "123456"}, domain.ErrOTPNotFound, http.StatusBadRequest},
		{"expired code", gin.H{"phone": "+15551234567", "otp": "123456"}, domain.ErrOTPExpired, http.StatusBadRequest},
		{"wrong code", gin.H{"phone": "+15551234567", "otp": "000000"}, domain.ErrOTPInvalid, http.StatusBadRequest},
		{"locked out", gin.H{"phone": "+15551234567", "otp": "123456"}, domain.ErrOTPMaxAttempts, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			if tt.svcErr != nil {
				authSvc.VerifyOtpFunc = func(ctx context.Context, phone, email, code string) (*domain.AuthResult, error) {
					return nil, tt.svcErr
				}
			}
			router := newAuthRouter(authSvc)

			w := doJSON(router, http.MethodPost, "/auth/verify-otp", tt.body)
			if w.Code != tt.wantCode {
				t.Errorf("expected %d, got %d: %s", tt.wantCode, w.Code, w.Body.String())
			}
		})
	}
}

func TestAuthHandlers_Refresh(t *testing.T) {
	tests := []struct {
		name     string
		svcErr   error
		wantCode int
	}{
		{"success", nil, http.StatusOK},
		{"invalid token", domain.ErrTokenInvalid, http.StatusUnauthorized},
		{"expired token", domain.ErrTokenExpired, http.StatusUnauthorized},
		{"replayed token", domain.ErrSessionNotFound, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			if tt.svcErr != nil {
				authSvc.RefreshTokenFunc = func(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
					return nil, tt.svcErr
				}
			}
			router := newAuthRouter(authSvc)

			w := doJSON(router, http.MethodPost, "/auth/refresh-token", gin.H{"refreshToken": "some-token"})
			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, w.Code)
			}
			if tt.wantCode == http.StatusOK {
				body := parseBody(t, w)
				if body["accessToken"] != "mock_access_token" || body["refreshToken"] != "mock_refresh_token" {
					t.Errorf("unexpected pair: %v", body)
				}
			}
		})
	}
}

func TestAuthHandlers_Logout(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	var loggedOut string
	authSvc.LogoutFunc = func(ctx context.Context, refreshToken string) error {
		loggedOut = refreshToken
		return nil
	}
	router := newAuthRouter(authSvc)

	w := doJSON(router, http.MethodPost, "/auth/logout", gin.H{"refreshToken": "rt-1"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if loggedOut != "rt-1" {
		t.Errorf("expected rt-1 logged out, got %q", loggedOut)
	}

	// A missing body still succeeds without touching any session.
	loggedOut = ""
	w = doJSON(router, http.MethodPost, "/auth/logout", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty body, got %d", w.Code)
	}
	if loggedOut != "" {
		t.Errorf("no session should be touched, got %q", loggedOut)
	}
}

func TestAuthHandlers_LogoutAll(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	var gotUserID uint
	authSvc.LogoutAllFunc = func(ctx context.Context, userID uint) error {
		gotUserID = userID
		return nil
	}
	router := newAuthRouter(authSvc)

	w := doJSON(router, http.MethodPost, "/auth/logout-all", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotUserID != 7 {
		t.Errorf("expected user 7, got %d", gotUserID)
	}
}

func TestAuthHandlers_Me(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.GetProfileFunc = func(ctx context.Context, userID uint) (*domain.User, error) {
		return &domain.User{ID: userID, Email: "me@example.com", Role: domain.RoleProvider, PasswordHash: "secret-hash"}, nil
	}
	router := newAuthRouter(authSvc)

	w := doJSON(router, http.MethodGet, "/auth/me", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := parseBody(t, w)
	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("response should contain user, got %v", body)
	}
	if user["email"] != "me@example.com" {
		t.Errorf("unexpected email: %v", user["email"])
	}
	if raw := w.Body.String(); bytes.Contains([]byte(raw), []byte("secret-hash")) {
		t.Error("password hash must never be serialized")
	}
}
