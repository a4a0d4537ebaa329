package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	app "instantcredit-backend/internal/domain/application"
	domain "instantcredit-backend/internal/domain/profile"
)

type ProfileRepository struct{ db *gorm.DB }

func NewProfileRepository(db *gorm.DB) *ProfileRepository { return &ProfileRepository{db: db} }

func (r *ProfileRepository) Create(ctx context.Context, p *domain.CustomerProfile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.CustomerProfile, error) {
	var out domain.CustomerProfile
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, res.Error
	}
	return &out, nil
}

func (r *ProfileRepository) Save(ctx context.Context, p *domain.CustomerProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// UpdateScore touches only the score mirror columns. MySQL reports changed
// rows, not matched rows, so a resubmission that recomputes the same score
// can affect 0 rows on a row that exists; confirm the profile is really gone
// before reporting ErrNotFound.
func (r *ProfileRepository) UpdateScore(ctx context.Context, userID string, score int, risk app.RiskLevel) error {
	res := r.db.WithContext(ctx).
		Model(&domain.CustomerProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{"credit_score": score, "risk_level": risk})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := r.db.WithContext(ctx).
			Model(&domain.CustomerProfile{}).
			Where("user_id = ?", userID).
			Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotFound
		}
	}
	return nil
}

func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.CustomerProfile{}).Error
}
