package mocks

import (
	"github.com/abdullahsadik00/craftconnect/domain"
)

// MockPasswordService implements domain.PasswordService interface for testing
type MockPasswordService struct {
	HashFunc     func(password string) (string, error)
	VerifyFunc   func(hashedPassword, password string) bool
	ValidateFunc func(password string) []string
}

// NewMockPasswordService creates a new MockPasswordService with default behaviors
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

// Hash hashes a password
func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	// Default behavior: deterministic fake hash
	return "hashed_" + password, nil
}

// Verify verifies a password against its hash
func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	// Default behavior: matches the fake hash scheme
	return hashedPassword == "hashed_"+password
}

// Validate checks a password against the policy
func (m *MockPasswordService) Validate(password string) []string {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(password)
	}
	// Default behavior: no violations
	return nil
}

// Compile-time interface compliance verification
var _ domain.PasswordService = (*MockPasswordService)(nil)
