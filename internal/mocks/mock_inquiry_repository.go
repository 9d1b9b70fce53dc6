package mocks

import (
	"context"

	"github.com/abdullahsadik00/craftconnect/domain"
)

// MockInquiryRepository implements domain.InquiryRepository interface for testing
type MockInquiryRepository struct {
	CreateFunc         func(ctx context.Context, inquiry *domain.Inquiry) error
	FindByIDFunc       func(ctx context.Context, id uint) (*domain.Inquiry, error)
	ListByProviderFunc func(ctx context.Context, providerID uint, filter domain.InquiryFilter) ([]*domain.Inquiry, int64, error)
	UpdateStatusFunc   func(ctx context.Context, id uint, status string) error
}

// NewMockInquiryRepository creates a new MockInquiryRepository with default behaviors
func NewMockInquiryRepository() *MockInquiryRepository {
	return &MockInquiryRepository{}
}

// Create stores a new inquiry
func (m *MockInquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, inquiry)
	}
	// Default behavior: success
	return nil
}

// FindByID finds an inquiry by ID
func (m *MockInquiryRepository) FindByID(ctx context.Context, id uint) (*domain.Inquiry, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrInquiryNotFound
}

// ListByProvider returns a page of the provider's inquiries plus the total count
func (m *MockInquiryRepository) ListByProvider(ctx context.Context, providerID uint, filter domain.InquiryFilter) ([]*domain.Inquiry, int64, error) {
	if m.ListByProviderFunc != nil {
		return m.ListByProviderFunc(ctx, providerID, filter)
	}
	// Default behavior: empty inbox
	return nil, 0, nil
}

// UpdateStatus moves an inquiry to a new status
func (m *MockInquiryRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.InquiryRepository = (*MockInquiryRepository)(nil)
