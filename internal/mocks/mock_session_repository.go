package mocks

import (
	"context"

	"github.com/abdullahsadik00/craftconnect/domain"
)

// MockSessionRepository implements domain.SessionRepository interface for testing
type MockSessionRepository struct {
	CreateFunc        func(ctx context.Context, session *domain.Session) error
	FindByTokenFunc   func(ctx context.Context, refreshToken string) (*domain.Session, error)
	RotateFunc        func(ctx context.Context, oldToken string, session *domain.Session) error
	DeleteByTokenFunc func(ctx context.Context, refreshToken string) error
	DeleteByUserFunc  func(ctx context.Context, userID uint) error
	DeleteExpiredFunc func(ctx context.Context) (int64, error)
}

// NewMockSessionRepository creates a new MockSessionRepository with default behaviors
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{}
}

// Create stores a new session
func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	// Default behavior: success
	return nil
}

// FindByToken looks up a session by its refresh token
func (m *MockSessionRepository) FindByToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, refreshToken)
	}
	// Default behavior: not found
	return nil, domain.ErrSessionNotFound
}

// Rotate replaces the session's refresh token
func (m *MockSessionRepository) Rotate(ctx context.Context, oldToken string, session *domain.Session) error {
	if m.RotateFunc != nil {
		return m.RotateFunc(ctx, oldToken, session)
	}
	// Default behavior: success
	return nil
}

// DeleteByToken removes the session holding the given refresh token
func (m *MockSessionRepository) DeleteByToken(ctx context.Context, refreshToken string) error {
	if m.DeleteByTokenFunc != nil {
		return m.DeleteByTokenFunc(ctx, refreshToken)
	}
	// Default behavior: success
	return nil
}

// DeleteByUser removes every session belonging to the user
func (m *MockSessionRepository) DeleteByUser(ctx context.Context, userID uint) error {
	if m.DeleteByUserFunc != nil {
		return m.DeleteByUserFunc(ctx, userID)
	}
	// Default behavior: success
	return nil
}

// DeleteExpired removes sessions whose expiry has passed
func (m *MockSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx)
	}
	// Default behavior: nothing deleted
	return 0, nil
}

// Compile-time interface compliance verification
var _ domain.SessionRepository = (*MockSessionRepository)(nil)
