package mocks

import (
	"context"

	"github.com/abdullahsadik00/craftconnect/domain"
)

// MockProviderService implements domain.ProviderService interface for testing
type MockProviderService struct {
	CreateProfileFunc       func(ctx context.Context, userID uint, provider *domain.Provider) (*domain.Provider, error)
	GetByIDFunc             func(ctx context.Context, id uint) (*domain.Provider, error)
	GetByUserFunc           func(ctx context.Context, userID uint) (*domain.Provider, error)
	UpdateProfileFunc       func(ctx context.Context, userID uint, provider *domain.Provider) (*domain.Provider, error)
	ListFunc                func(ctx context.Context, filter domain.ProviderFilter) ([]*domain.Provider, error)
	AddPortfolioItemFunc    func(ctx context.Context, userID uint, item *domain.PortfolioItem) (*domain.PortfolioItem, error)
	RemovePortfolioItemFunc func(ctx context.Context, userID, itemID uint) error
	PortfolioFunc           func(ctx context.Context, providerID uint) ([]*domain.PortfolioItem, error)
	ReorderPortfolioFunc    func(ctx context.Context, userID uint, itemIDs []uint) error
	SubmitInquiryFunc       func(ctx context.Context, customerID, providerID uint, subject, message string) (*domain.Inquiry, error)
	ListInquiriesFunc       func(ctx context.Context, userID uint, filter domain.InquiryFilter) ([]*domain.Inquiry, int64, error)
	UpdateInquiryStatusFunc func(ctx context.Context, userID, inquiryID uint, status string) error
}

// NewMockProviderService creates a new MockProviderService with default behaviors
func NewMockProviderService() *MockProviderService {
	return &MockProviderService{}
}

// CreateProfile creates a provider profile
func (m *MockProviderService) CreateProfile(ctx context.Context, userID uint, provider *domain.Provider) (*domain.Provider, error) {
	if m.CreateProfileFunc != nil {
		return m.CreateProfileFunc(ctx, userID, provider)
	}
	// Default behavior: echo with IDs assigned
	provider.ID = 1
	provider.UserID = userID
	return provider, nil
}

// GetByID returns a provider by ID
func (m *MockProviderService) GetByID(ctx context.Context, id uint) (*domain.Provider, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrProviderNotFound
}

// GetByUser returns a provider by owning user
func (m *MockProviderService) GetByUser(ctx context.Context, userID uint) (*domain.Provider, error) {
	if m.GetByUserFunc != nil {
		return m.GetByUserFunc(ctx, userID)
	}
	// Default behavior: not found
	return nil, domain.ErrProviderNotFound
}

// UpdateProfile updates a provider profile
func (m *MockProviderService) UpdateProfile(ctx context.Context, userID uint, provider *domain.Provider) (*domain.Provider, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, provider)
	}
	// Default behavior: echo
	return provider, nil
}

// List returns providers matching the filter
func (m *MockProviderService) List(ctx context.Context, filter domain.ProviderFilter) ([]*domain.Provider, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	// Default behavior: empty listing
	return nil, nil
}

// AddPortfolioItem appends a work sample
func (m *MockProviderService) AddPortfolioItem(ctx context.Context, userID uint, item *domain.PortfolioItem) (*domain.PortfolioItem, error) {
	if m.AddPortfolioItemFunc != nil {
		return m.AddPortfolioItemFunc(ctx, userID, item)
	}
	// Default behavior: echo with ID assigned
	item.ID = 1
	return item, nil
}

// RemovePortfolioItem deletes a work sample
func (m *MockProviderService) RemovePortfolioItem(ctx context.Context, userID, itemID uint) error {
	if m.RemovePortfolioItemFunc != nil {
		return m.RemovePortfolioItemFunc(ctx, userID, itemID)
	}
	// Default behavior: success
	return nil
}

// Portfolio returns a provider's portfolio in display order
func (m *MockProviderService) Portfolio(ctx context.Context, providerID uint) ([]*domain.PortfolioItem, error) {
	if m.PortfolioFunc != nil {
		return m.PortfolioFunc(ctx, providerID)
	}
	// Default behavior: empty portfolio
	return nil, nil
}

// ReorderPortfolio rewrites the portfolio's display order
func (m *MockProviderService) ReorderPortfolio(ctx context.Context, userID uint, itemIDs []uint) error {
	if m.ReorderPortfolioFunc != nil {
		return m.ReorderPortfolioFunc(ctx, userID, itemIDs)
	}
	// Default behavior: success
	return nil
}

// SubmitInquiry creates an inquiry
func (m *MockProviderService) SubmitInquiry(ctx context.Context, customerID, providerID uint, subject, message string) (*domain.Inquiry, error) {
	if m.SubmitInquiryFunc != nil {
		return m.SubmitInquiryFunc(ctx, customerID, providerID, subject, message)
	}
	// Default behavior: open inquiry
	return &domain.Inquiry{
		ID:         1,
		ProviderID: providerID,
		CustomerID: customerID,
		Subject:    subject,
		Message:    message,
		Status:     domain.InquiryStatusOpen,
	}, nil
}

// ListInquiries returns the provider's inbox
func (m *MockProviderService) ListInquiries(ctx context.Context, userID uint, filter domain.InquiryFilter) ([]*domain.Inquiry, int64, error) {
	if m.ListInquiriesFunc != nil {
		return m.ListInquiriesFunc(ctx, userID, filter)
	}
	// Default behavior: empty inbox
	return nil, 0, nil
}

// UpdateInquiryStatus moves an inquiry through its lifecycle
func (m *MockProviderService) UpdateInquiryStatus(ctx context.Context, userID, inquiryID uint, status string) error {
	if m.UpdateInquiryStatusFunc != nil {
		return m.UpdateInquiryStatusFunc(ctx, userID, inquiryID, status)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.ProviderService = (*MockProviderService)(nil)
