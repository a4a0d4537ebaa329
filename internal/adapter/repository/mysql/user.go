package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "instantcredit-backend/internal/domain/user"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	// Needs TranslateError on the gorm config (see infrastructure/db).
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*domain.User, error) {
	var out domain.User
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, res.Error
	}
	return &out, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var out domain.User
	res := r.db.WithContext(ctx).Where("email = ?", email).First(&out)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, res.Error
	}
	return &out, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	res := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&out)
	return out, res.Error
}

func (r *UserRepository) Save(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).Save(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *UserRepository) Delete(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.User{}).Error
}
