package profilemock

import (
	"context"

	app "instantcredit-backend/internal/domain/application"
	domain "instantcredit-backend/internal/domain/profile"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, p *domain.CustomerProfile) error
	GetByUserIDFn    func(ctx context.Context, userID string) (*domain.CustomerProfile, error)
	SaveFn           func(ctx context.Context, p *domain.CustomerProfile) error
	UpdateScoreFn    func(ctx context.Context, userID string, score int, risk app.RiskLevel) error
	DeleteByUserIDFn func(ctx context.Context, userID string) error
}

func (m *Repo) Create(ctx context.Context, p *domain.CustomerProfile) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*domain.CustomerProfile, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Save(ctx context.Context, p *domain.CustomerProfile) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) UpdateScore(ctx context.Context, userID string, score int, risk app.RiskLevel) error {
	if m.UpdateScoreFn != nil {
		return m.UpdateScoreFn(ctx, userID, score, risk)
	}
	return nil
}

func (m *Repo) DeleteByUserID(ctx context.Context, userID string) error {
	if m.DeleteByUserIDFn != nil {
		return m.DeleteByUserIDFn(ctx, userID)
	}
	return nil
}
