package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/abdullahsadik00/craftconnect/domain"
)

// InquiryRepositoryImpl implements domain.InquiryRepository using GORM
type InquiryRepositoryImpl struct {
	db *gorm.DB
}

// DBInquiry represents the database model for Inquiry
type DBInquiry struct {
	ID         uint `gorm:"primaryKey"`
	ProviderID uint `gorm:"index"`
	CustomerID uint `gorm:"index"`
	Subject    string
	Message    string
	Status     string `gorm:"index;size:32"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM
func (DBInquiry) TableName() string {
	return "inquiries"
}

// NewInquiryRepository creates a new inquiry repository
func NewInquiryRepository(db *gorm.DB) domain.InquiryRepository {
	return &InquiryRepositoryImpl{db: db}
}

// Create implements domain.InquiryRepository
func (r *InquiryRepositoryImpl) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	dbInquiry := inquiryToDB(inquiry)
	if err := r.db.WithContext(ctx).Create(dbInquiry).Error; err != nil {
		return err
	}
	inquiry.ID = dbInquiry.ID
	inquiry.CreatedAt = dbInquiry.CreatedAt
	inquiry.UpdatedAt = dbInquiry.UpdatedAt
	return nil
}

// FindByID implements domain.InquiryRepository
func (r *InquiryRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Inquiry, error) {
	var dbInquiry DBInquiry
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbInquiry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrInquiryNotFound
		}
		return nil, err
	}
	return inquiryToDomain(&dbInquiry), nil
}

// ListByProvider implements domain.InquiryRepository. Returns the filtered
// page plus the total match count for pagination.
func (r *InquiryRepositoryImpl) ListByProvider(ctx context.Context, providerID uint, filter domain.InquiryFilter) ([]*domain.Inquiry, int64, error) {
	q := r.db.WithContext(ctx).Model(&DBInquiry{}).Where("provider_id = ?", providerID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var dbInquiries []DBInquiry
	if err := q.Order("created_at DESC").Find(&dbInquiries).Error; err != nil {
		return nil, 0, err
	}

	inquiries := make([]*domain.Inquiry, len(dbInquiries))
	for i := range dbInquiries {
		inquiries[i] = inquiryToDomain(&dbInquiries[i])
	}
	return inquiries, total, nil
}

// UpdateStatus implements domain.InquiryRepository
func (r *InquiryRepositoryImpl) UpdateStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).Model(&DBInquiry{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInquiryNotFound
	}
	return nil
}

func inquiryToDB(i *domain.Inquiry) *DBInquiry {
	return &DBInquiry{
		ID:         i.ID,
		ProviderID: i.ProviderID,
		CustomerID: i.CustomerID,
		Subject:    i.Subject,
		Message:    i.Message,
		Status:     i.Status,
	}
}

func inquiryToDomain(i *DBInquiry) *domain.Inquiry {
	return &domain.Inquiry{
		ID:         i.ID,
		ProviderID: i.ProviderID,
		CustomerID: i.CustomerID,
		Subject:    i.Subject,
		Message:    i.Message,
		Status:     i.Status,
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  i.UpdatedAt,
	}
}
