package services

import (
	"context"

	"github.com/abdullahsadik00/craftconnect/domain"
)

// ProviderServiceImpl implements domain.ProviderService
type ProviderServiceImpl struct {
	providerRepo domain.ProviderRepository
	inquiryRepo  domain.InquiryRepository
}

// NewProviderService creates a new provider service
func NewProviderService(providerRepo domain.ProviderRepository, inquiryRepo domain.InquiryRepository) domain.ProviderService {
	return &ProviderServiceImpl{
		providerRepo: providerRepo,
		inquiryRepo:  inquiryRepo,
	}
}

// CreateProfile implements domain.ProviderService. One profile per user.
func (s *ProviderServiceImpl) CreateProfile(ctx context.Context, userID uint, provider *domain.Provider) (*domain.Provider, error) {
	exists, err := s.providerRepo.ExistsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrProviderExists
	}

	provider.UserID = userID
	if err := s.providerRepo.Create(ctx, provider); err != nil {
		return nil, err
	}
	return provider, nil
}

// GetByID implements domain.ProviderService
func (s *ProviderServiceImpl) GetByID(ctx context.Context, id uint) (*domain.Provider, error) {
	return s.providerRepo.FindByID(ctx, id)
}

// GetByUser implements domain.ProviderService
func (s *ProviderServiceImpl) GetByUser(ctx context.Context, userID uint) (*domain.Provider, error) {
	return s.providerRepo.FindByUserID(ctx, userID)
}

// UpdateProfile implements domain.ProviderService
func (s *ProviderServiceImpl) UpdateProfile(ctx context.Context, userID uint, provider *domain.Provider) (*domain.Provider, error) {
	existing, err := s.providerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing.BusinessName = provider.BusinessName
	existing.Description = provider.Description
	existing.Category = provider.Category
	existing.City = provider.City
	existing.ContactEmail = provider.ContactEmail
	existing.ContactPhone = provider.ContactPhone

	if err := s.providerRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// List implements domain.ProviderService
func (s *ProviderServiceImpl) List(ctx context.Context, filter domain.ProviderFilter) ([]*domain.Provider, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.providerRepo.List(ctx, filter)
}

// AddPortfolioItem implements domain.ProviderService
func (s *ProviderServiceImpl) AddPortfolioItem(ctx context.Context, userID uint, item *domain.PortfolioItem) (*domain.PortfolioItem, error) {
	provider, err := s.providerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	item.ProviderID = provider.ID
	if err := s.providerRepo.AddPortfolioItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemovePortfolioItem implements domain.ProviderService
func (s *ProviderServiceImpl) RemovePortfolioItem(ctx context.Context, userID, itemID uint) error {
	provider, err := s.providerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return s.providerRepo.DeletePortfolioItem(ctx, provider.ID, itemID)
}

// Portfolio implements domain.ProviderService
func (s *ProviderServiceImpl) Portfolio(ctx context.Context, providerID uint) ([]*domain.PortfolioItem, error) {
	if _, err := s.providerRepo.FindByID(ctx, providerID); err != nil {
		return nil, err
	}
	return s.providerRepo.ListPortfolio(ctx, providerID)
}

// ReorderPortfolio implements domain.ProviderService
func (s *ProviderServiceImpl) ReorderPortfolio(ctx context.Context, userID uint, itemIDs []uint) error {
	provider, err := s.providerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return s.providerRepo.ReorderPortfolio(ctx, provider.ID, itemIDs)
}

// SubmitInquiry implements domain.ProviderService
func (s *ProviderServiceImpl) SubmitInquiry(ctx context.Context, customerID, providerID uint, subject, message string) (*domain.Inquiry, error) {
	if _, err := s.providerRepo.FindByID(ctx, providerID); err != nil {
		return nil, err
	}

	inquiry := &domain.Inquiry{
		ProviderID: providerID,
		CustomerID: customerID,
		Subject:    subject,
		Message:    message,
		Status:     domain.InquiryStatusOpen,
	}
	if err := s.inquiryRepo.Create(ctx, inquiry); err != nil {
		return nil, err
	}
	return inquiry, nil
}

// ListInquiries implements domain.ProviderService. userID is the provider's
// owning user; only their own inbox is visible.
func (s *ProviderServiceImpl) ListInquiries(ctx context.Context, userID uint, filter domain.InquiryFilter) ([]*domain.Inquiry, int64, error) {
	provider, err := s.providerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.inquiryRepo.ListByProvider(ctx, provider.ID, filter)
}

// UpdateInquiryStatus implements domain.ProviderService. Only the owning
// provider may move an inquiry through OPEN -> RESPONDED -> CLOSED.
func (s *ProviderServiceImpl) UpdateInquiryStatus(ctx context.Context, userID, inquiryID uint, status string) error {
	if status != domain.InquiryStatusOpen &&
		status != domain.InquiryStatusResponded &&
		status != domain.InquiryStatusClosed {
		return domain.ErrInvalidStatus
	}

	provider, err := s.providerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}

	inquiry, err := s.inquiryRepo.FindByID(ctx, inquiryID)
	if err != nil {
		return err
	}
	if inquiry.ProviderID != provider.ID {
		return domain.ErrNotInquiryOwner
	}

	return s.inquiryRepo.UpdateStatus(ctx, inquiryID, status)
}
