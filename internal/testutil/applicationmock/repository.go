package applicationmock

import (
	"context"

	domain "instantcredit-backend/internal/domain/application"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only set the funcs a test needs; the rest fall through to zero behavior.
type Repo struct {
	CreateFn             func(ctx context.Context, a *domain.CreditApplication) error
	GetByApplicationIDFn func(ctx context.Context, applicationID string) (*domain.CreditApplication, error)
	ListByStatusFn       func(ctx context.Context, s domain.Status) ([]domain.CreditApplication, error)
	ListByCustomerIDFn   func(ctx context.Context, customerID string) ([]domain.CreditApplication, error)
	ApplyReviewFn        func(ctx context.Context, applicationID string, upd domain.ReviewUpdate) error
	AddDocumentFn        func(ctx context.Context, applicationFK uint64, d *domain.Document) error
	ApplyVerificationFn  func(ctx context.Context, applicationFK uint64, documentID string, upd domain.VerificationUpdate) error
	DeleteByCustomerIDFn func(ctx context.Context, customerID string) error
}

func (m *Repo) Create(ctx context.Context, a *domain.CreditApplication) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.CreditApplication, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) ListByStatus(ctx context.Context, s domain.Status) ([]domain.CreditApplication, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, s)
	}
	return nil, nil
}

func (m *Repo) ListByCustomerID(ctx context.Context, customerID string) ([]domain.CreditApplication, error) {
	if m.ListByCustomerIDFn != nil {
		return m.ListByCustomerIDFn(ctx, customerID)
	}
	return nil, nil
}

func (m *Repo) ApplyReview(ctx context.Context, applicationID string, upd domain.ReviewUpdate) error {
	if m.ApplyReviewFn != nil {
		return m.ApplyReviewFn(ctx, applicationID, upd)
	}
	return nil
}

func (m *Repo) AddDocument(ctx context.Context, applicationFK uint64, d *domain.Document) error {
	if m.AddDocumentFn != nil {
		return m.AddDocumentFn(ctx, applicationFK, d)
	}
	return nil
}

func (m *Repo) ApplyVerification(ctx context.Context, applicationFK uint64, documentID string, upd domain.VerificationUpdate) error {
	if m.ApplyVerificationFn != nil {
		return m.ApplyVerificationFn(ctx, applicationFK, documentID, upd)
	}
	return nil
}

func (m *Repo) DeleteByCustomerID(ctx context.Context, customerID string) error {
	if m.DeleteByCustomerIDFn != nil {
		return m.DeleteByCustomerIDFn(ctx, customerID)
	}
	return nil
}
