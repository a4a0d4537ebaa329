package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "instantcredit-backend/internal/domain/application"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *domain.CreditApplication) error {
	// Documents are created through the association in the same insert.
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (*domain.CreditApplication, error) {
	var out domain.CreditApplication
	res := r.db.WithContext(ctx).
		Preload("Documents").
		Where("application_id = ?", applicationID).
		First(&out)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, res.Error
	}
	return &out, nil
}

func (r *ApplicationRepository) ListByStatus(ctx context.Context, s domain.Status) ([]domain.CreditApplication, error) {
	var out []domain.CreditApplication
	res := r.db.WithContext(ctx).
		Preload("Documents").
		Where("status = ?", s).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *ApplicationRepository) ListByCustomerID(ctx context.Context, customerID string) ([]domain.CreditApplication, error) {
	var out []domain.CreditApplication
	res := r.db.WithContext(ctx).
		Preload("Documents").
		Where("customer_id = ?", customerID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

// ApplyReview writes the review fields in one version-guarded UPDATE. A lost
// race bumps no rows; we then distinguish a vanished application from a
// stale version.
func (r *ApplicationRepository) ApplyReview(ctx context.Context, applicationID string, upd domain.ReviewUpdate) error {
	res := r.db.WithContext(ctx).
		Model(&domain.CreditApplication{}).
		Where("application_id = ? AND version = ?", applicationID, upd.ExpectedVersion).
		Updates(map[string]any{
			"status":         upd.Status,
			"reviewed_by":    upd.ReviewedBy,
			"admin_comments": upd.AdminComments,
			"version":        gorm.Expr("version + 1"),
			"updated_at":     time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := r.db.WithContext(ctx).
			Model(&domain.CreditApplication{}).
			Where("application_id = ?", applicationID).
			Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		return domain.ErrConflict
	}
	return nil
}

func (r *ApplicationRepository) AddDocument(ctx context.Context, applicationFK uint64, d *domain.Document) error {
	d.ApplicationFK = applicationFK
	return r.db.WithContext(ctx).Create(d).Error
}

// ApplyVerification updates only the targeted document row, atomically.
// Nothing else on the application is touched.
func (r *ApplicationRepository) ApplyVerification(ctx context.Context, applicationFK uint64, documentID string, upd domain.VerificationUpdate) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Document{}).
		Where("application_fk = ? AND document_id = ?", applicationFK, documentID).
		Updates(map[string]any{
			"is_verified": upd.IsVerified,
			"verified_by": upd.VerifiedBy,
			"verified_at": upd.VerifiedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *ApplicationRepository) DeleteByCustomerID(ctx context.Context, customerID string) error {
	sub := r.db.Model(&domain.CreditApplication{}).
		Select("id").
		Where("customer_id = ?", customerID)
	if err := r.db.WithContext(ctx).
		Where("application_fk IN (?)", sub).
		Delete(&domain.Document{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Delete(&domain.CreditApplication{}).Error
}
