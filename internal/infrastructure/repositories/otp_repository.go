package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/abdullahsadik00/craftconnect/domain"
)

// OtpRepositoryImpl implements domain.OtpRepository using GORM
type OtpRepositoryImpl struct {
	db *gorm.DB
}

// DBOtp represents the database model for Otp. Old unverified codes are
// never invalidated on reissue; the live one is the newest by created_at.
type DBOtp struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    uint      `gorm:"index"`
	Code      string    `gorm:"size:10"`
	Type      string    `gorm:"size:32"`
	ExpiresAt time.Time `gorm:"index"`
	Verified  bool
	Attempts  int
	CreatedAt time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBOtp) TableName() string {
	return "otps"
}

// NewOtpRepository creates a new OTP repository
func NewOtpRepository(db *gorm.DB) domain.OtpRepository {
	return &OtpRepositoryImpl{db: db}
}

// Create implements domain.OtpRepository
func (r *OtpRepositoryImpl) Create(ctx context.Context, otp *domain.Otp) error {
	dbOtp := r.domainToDB(otp)
	if err := r.db.WithContext(ctx).Create(dbOtp).Error; err != nil {
		return err
	}
	otp.CreatedAt = dbOtp.CreatedAt
	return nil
}

// FindLatestPending implements domain.OtpRepository. The lookup is scoped
// by user and ordered by creation time descending, not keyed by id.
func (r *OtpRepositoryImpl) FindLatestPending(ctx context.Context, userID uint) (*domain.Otp, error) {
	var dbOtp DBOtp
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND verified = ?", userID, false).
		Order("created_at DESC").
		First(&dbOtp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrOTPNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbOtp), nil
}

// IncrementAttempts implements domain.OtpRepository. The increment runs as
// a single UPDATE so concurrent attempts do not under-count.
func (r *OtpRepositoryImpl) IncrementAttempts(ctx context.Context, otpID string) error {
	return r.db.WithContext(ctx).Model(&DBOtp{}).
		Where("id = ?", otpID).
		UpdateColumn("attempts", gorm.Expr("attempts + 1")).Error
}

// MarkVerified implements domain.OtpRepository
func (r *OtpRepositoryImpl) MarkVerified(ctx context.Context, otpID string) error {
	return r.db.WithContext(ctx).Model(&DBOtp{}).
		Where("id = ?", otpID).
		Update("verified", true).Error
}

// DeleteExpired implements domain.OtpRepository
func (r *OtpRepositoryImpl) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&DBOtp{})
	return res.RowsAffected, res.Error
}

func (r *OtpRepositoryImpl) domainToDB(otp *domain.Otp) *DBOtp {
	return &DBOtp{
		ID:        otp.ID,
		UserID:    otp.UserID,
		Code:      otp.Code,
		Type:      otp.Type,
		ExpiresAt: otp.ExpiresAt,
		Verified:  otp.Verified,
		Attempts:  otp.Attempts,
	}
}

func (r *OtpRepositoryImpl) dbToDomain(dbOtp *DBOtp) *domain.Otp {
	return &domain.Otp{
		ID:        dbOtp.ID,
		UserID:    dbOtp.UserID,
		Code:      dbOtp.Code,
		Type:      dbOtp.Type,
		ExpiresAt: dbOtp.ExpiresAt,
		Verified:  dbOtp.Verified,
		Attempts:  dbOtp.Attempts,
		CreatedAt: dbOtp.CreatedAt,
	}
}
