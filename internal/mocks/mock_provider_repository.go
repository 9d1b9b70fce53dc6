package mocks

import (
	"context"

	"github.com/abdullahsadik00/craftconnect/domain"
)

// MockProviderRepository implements domain.ProviderRepository interface for testing
type MockProviderRepository struct {
	CreateFunc              func(ctx context.Context, provider *domain.Provider) error
	FindByIDFunc            func(ctx context.Context, id uint) (*domain.Provider, error)
	FindByUserIDFunc        func(ctx context.Context, userID uint) (*domain.Provider, error)
	ExistsByUserIDFunc      func(ctx context.Context, userID uint) (bool, error)
	UpdateFunc              func(ctx context.Context, provider *domain.Provider) error
	ListFunc                func(ctx context.Context, filter domain.ProviderFilter) ([]*domain.Provider, error)
	AddPortfolioItemFunc    func(ctx context.Context, item *domain.PortfolioItem) error
	DeletePortfolioItemFunc func(ctx context.Context, providerID, itemID uint) error
	ListPortfolioFunc       func(ctx context.Context, providerID uint) ([]*domain.PortfolioItem, error)
	ReorderPortfolioFunc    func(ctx context.Context, providerID uint, itemIDs []uint) error
}

// NewMockProviderRepository creates a new MockProviderRepository with default behaviors
func NewMockProviderRepository() *MockProviderRepository {
	return &MockProviderRepository{}
}

// Create stores a new provider profile
func (m *MockProviderRepository) Create(ctx context.Context, provider *domain.Provider) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, provider)
	}
	// Default behavior: success
	return nil
}

// FindByID finds a provider by ID
func (m *MockProviderRepository) FindByID(ctx context.Context, id uint) (*domain.Provider, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrProviderNotFound
}

// FindByUserID finds a provider by owning user ID
func (m *MockProviderRepository) FindByUserID(ctx context.Context, userID uint) (*domain.Provider, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	// Default behavior: not found
	return nil, domain.ErrProviderNotFound
}

// ExistsByUserID reports whether the user already owns a profile
func (m *MockProviderRepository) ExistsByUserID(ctx context.Context, userID uint) (bool, error) {
	if m.ExistsByUserIDFunc != nil {
		return m.ExistsByUserIDFunc(ctx, userID)
	}
	// Default behavior: no profile
	return false, nil
}

// Update updates an existing provider profile
func (m *MockProviderRepository) Update(ctx context.Context, provider *domain.Provider) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, provider)
	}
	// Default behavior: success
	return nil
}

// List returns providers matching the filter
func (m *MockProviderRepository) List(ctx context.Context, filter domain.ProviderFilter) ([]*domain.Provider, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	// Default behavior: empty listing
	return nil, nil
}

// AddPortfolioItem appends a portfolio item
func (m *MockProviderRepository) AddPortfolioItem(ctx context.Context, item *domain.PortfolioItem) error {
	if m.AddPortfolioItemFunc != nil {
		return m.AddPortfolioItemFunc(ctx, item)
	}
	// Default behavior: success
	return nil
}

// DeletePortfolioItem removes a portfolio item
func (m *MockProviderRepository) DeletePortfolioItem(ctx context.Context, providerID, itemID uint) error {
	if m.DeletePortfolioItemFunc != nil {
		return m.DeletePortfolioItemFunc(ctx, providerID, itemID)
	}
	// Default behavior: success
	return nil
}

// ListPortfolio returns the provider's portfolio in display order
func (m *MockProviderRepository) ListPortfolio(ctx context.Context, providerID uint) ([]*domain.PortfolioItem, error) {
	if m.ListPortfolioFunc != nil {
		return m.ListPortfolioFunc(ctx, providerID)
	}
	// Default behavior: empty portfolio
	return nil, nil
}

// ReorderPortfolio rewrites the portfolio's display order
func (m *MockProviderRepository) ReorderPortfolio(ctx context.Context, providerID uint, itemIDs []uint) error {
	if m.ReorderPortfolioFunc != nil {
		return m.ReorderPortfolioFunc(ctx, providerID, itemIDs)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.ProviderRepository = (*MockProviderRepository)(nil)
