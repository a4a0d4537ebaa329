package usermock

import (
	"context"

	domain "instantcredit-backend/internal/domain/user"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn      func(ctx context.Context, u *domain.User) error
	GetByUserIDFn func(ctx context.Context, userID string) (*domain.User, error)
	GetByEmailFn  func(ctx context.Context, email string) (*domain.User, error)
	ListFn        func(ctx context.Context) ([]domain.User, error)
	SaveFn        func(ctx context.Context, u *domain.User) error
	DeleteFn      func(ctx context.Context, userID string) error
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*domain.User, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, u *domain.User) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, u)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, userID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID)
	}
	return nil
}
