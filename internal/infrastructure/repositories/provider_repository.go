package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/abdullahsadik00/craftconnect/domain"
)

// ProviderRepositoryImpl implements domain.ProviderRepository using GORM
type ProviderRepositoryImpl struct {
	db *gorm.DB
}

// DBProvider represents the database model for Provider
type DBProvider struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"uniqueIndex"`
	BusinessName string `gorm:"size:255"`
	Description  string
	Category     string `gorm:"index;size:64"`
	City         string `gorm:"index;size:128"`
	ContactEmail string `gorm:"size:255"`
	ContactPhone string `gorm:"size:32"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBProvider) TableName() string {
	return "providers"
}

// DBPortfolioItem represents the database model for PortfolioItem
type DBPortfolioItem struct {
	ID         uint `gorm:"primaryKey"`
	ProviderID uint `gorm:"index"`
	Title      string
	ImageURL   string
	Position   int `gorm:"index"`
	CreatedAt  time.Time
}

// TableName returns the table name for GORM
func (DBPortfolioItem) TableName() string {
	return "portfolio_items"
}

// NewProviderRepository creates a new provider repository
func NewProviderRepository(db *gorm.DB) domain.ProviderRepository {
	return &ProviderRepositoryImpl{db: db}
}

// Create implements domain.ProviderRepository
func (r *ProviderRepositoryImpl) Create(ctx context.Context, provider *domain.Provider) error {
	dbProvider := providerToDB(provider)
	if err := r.db.WithContext(ctx).Create(dbProvider).Error; err != nil {
		return err
	}
	provider.ID = dbProvider.ID
	provider.CreatedAt = dbProvider.CreatedAt
	provider.UpdatedAt = dbProvider.UpdatedAt
	return nil
}

// FindByID implements domain.ProviderRepository
func (r *ProviderRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Provider, error) {
	var dbProvider DBProvider
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbProvider).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrProviderNotFound
		}
		return nil, err
	}
	return providerToDomain(&dbProvider), nil
}

// FindByUserID implements domain.ProviderRepository
func (r *ProviderRepositoryImpl) FindByUserID(ctx context.Context, userID uint) (*domain.Provider, error) {
	var dbProvider DBProvider
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&dbProvider).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrProviderNotFound
		}
		return nil, err
	}
	return providerToDomain(&dbProvider), nil
}

// ExistsByUserID implements domain.ProviderRepository
func (r *ProviderRepositoryImpl) ExistsByUserID(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBProvider{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}

// Update implements domain.ProviderRepository
func (r *ProviderRepositoryImpl) Update(ctx context.Context, provider *domain.Provider) error {
	return r.db.WithContext(ctx).Save(providerToDB(provider)).Error
}

// List implements domain.ProviderRepository
func (r *ProviderRepositoryImpl) List(ctx context.Context, filter domain.ProviderFilter) ([]*domain.Provider, error) {
	q := r.db.WithContext(ctx).Model(&DBProvider{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.City != "" {
		q = q.Where("city = ?", filter.City)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var dbProviders []DBProvider
	if err := q.Order("created_at DESC").Find(&dbProviders).Error; err != nil {
		return nil, err
	}

	providers := make([]*domain.Provider, len(dbProviders))
	for i := range dbProviders {
		providers[i] = providerToDomain(&dbProviders[i])
	}
	return providers, nil
}

// AddPortfolioItem implements domain.ProviderRepository. New items go to
// the end of the provider's ordering.
func (r *ProviderRepositoryImpl) AddPortfolioItem(ctx context.Context, item *domain.PortfolioItem) error {
	var maxPos int
	r.db.WithContext(ctx).Model(&DBPortfolioItem{}).
		Where("provider_id = ?", item.ProviderID).
		Select("COALESCE(MAX(position), -1)").Scan(&maxPos)

	dbItem := &DBPortfolioItem{
		ProviderID: item.ProviderID,
		Title:      item.Title,
		ImageURL:   item.ImageURL,
		Position:   maxPos + 1,
	}
	if err := r.db.WithContext(ctx).Create(dbItem).Error; err != nil {
		return err
	}
	item.ID = dbItem.ID
	item.Position = dbItem.Position
	item.CreatedAt = dbItem.CreatedAt
	return nil
}

// DeletePortfolioItem implements domain.ProviderRepository
func (r *ProviderRepositoryImpl) DeletePortfolioItem(ctx context.Context, providerID, itemID uint) error {
	res := r.db.WithContext(ctx).
		Where("provider_id = ? AND id = ?", providerID, itemID).
		Delete(&DBPortfolioItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrPortfolioNotFound
	}
	return nil
}

// ListPortfolio implements domain.ProviderRepository
func (r *ProviderRepositoryImpl) ListPortfolio(ctx context.Context, providerID uint) ([]*domain.PortfolioItem, error) {
	var dbItems []DBPortfolioItem
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("position ASC").
		Find(&dbItems).Error
	if err != nil {
		return nil, err
	}

	items := make([]*domain.PortfolioItem, len(dbItems))
	for i := range dbItems {
		items[i] = portfolioToDomain(&dbItems[i])
	}
	return items, nil
}

// ReorderPortfolio implements domain.ProviderRepository. Positions are
// rewritten to match the given id order.
func (r *ProviderRepositoryImpl) ReorderPortfolio(ctx context.Context, providerID uint, itemIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for pos, id := range itemIDs {
			res := tx.Model(&DBPortfolioItem{}).
				Where("provider_id = ? AND id = ?", providerID, id).
				Update("position", pos)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return domain.ErrPortfolioNotFound
			}
		}
		return nil
	})
}

func providerToDB(p *domain.Provider) *DBProvider {
	return &DBProvider{
		ID:           p.ID,
		UserID:       p.UserID,
		BusinessName: p.BusinessName,
		Description:  p.Description,
		Category:     p.Category,
		City:         p.City,
		ContactEmail: p.ContactEmail,
		ContactPhone: p.ContactPhone,
	}
}

func providerToDomain(p *DBProvider) *domain.Provider {
	return &domain.Provider{
		ID:           p.ID,
		UserID:       p.UserID,
		BusinessName: p.BusinessName,
		Description:  p.Description,
		Category:     p.Category,
		City:         p.City,
		ContactEmail: p.ContactEmail,
		ContactPhone: p.ContactPhone,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func portfolioToDomain(i *DBPortfolioItem) *domain.PortfolioItem {
	return &domain.PortfolioItem{
		ID:         i.ID,
		ProviderID: i.ProviderID,
		Title:      i.Title,
		ImageURL:   i.ImageURL,
		Position:   i.Position,
		CreatedAt:  i.CreatedAt,
	}
}
