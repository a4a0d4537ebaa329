package application

import (
	"context"
	"errors"
	"time"

	domain "instantcredit-backend/internal/domain/application"
	"instantcredit-backend/internal/domain/profile"
	"instantcredit-backend/internal/domain/uow"
	"instantcredit-backend/internal/usecase/scoring"
	"instantcredit-backend/pkg/id"
)

type Usecase struct {
	apps     domain.Repository
	profiles profile.Repository
	uow      uow.UnitOfWork
}

func NewUsecase(apps domain.Repository, profiles profile.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{apps: apps, profiles: profiles, uow: tx}
}

// Submit scores the submission and persists a new pending application. The
// customer profile's score mirror is refreshed in the same transaction.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*ApplicationDTO, error) {
	if in.CustomerID == "" {
		return nil, errors.New("customer id is required")
	}

	prof, err := u.profiles.GetByUserID(ctx, in.CustomerID)
	if err != nil {
		if !errors.Is(err, profile.ErrNotFound) {
			return nil, err
		}
		prof = nil // scoring works without historical context
	}

	result := scoring.Evaluate(in.Data, prof)

	app := &domain.CreditApplication{
		ApplicationID:   id.NewID32(),
		CustomerID:      in.CustomerID,
		ApplicationData: in.Data,
		CalculatedScore: result.CalculatedScore,
		RiskAssessment:  result.RiskAssessment,
		Recommendations: result.Recommendations,
		Status:          domain.StatusPending,
		Version:         1,
	}
	for _, d := range in.Documents {
		app.Documents = append(app.Documents, domain.Document{
			DocumentID: id.NewID32(),
			FileName:   d.FileName,
			FilePath:   d.FilePath,
		})
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Applications.Create(ctx, app); err != nil {
			return err
		}
		if prof == nil {
			return nil
		}
		return r.Profiles.UpdateScore(ctx, in.CustomerID, result.CalculatedScore, result.RiskAssessment)
	})
	if err != nil {
		return nil, err
	}
	return toDTO(app), nil
}

func (u *Usecase) Get(ctx context.Context, applicationID string) (*ApplicationDTO, error) {
	app, err := u.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	return toDTO(app), nil
}

func (u *Usecase) ListPending(ctx context.Context) ([]ApplicationDTO, error) {
	apps, err := u.apps.ListByStatus(ctx, domain.StatusPending)
	if err != nil {
		return nil, err
	}
	out := make([]ApplicationDTO, 0, len(apps))
	for i := range apps {
		out = append(out, *toDTO(&apps[i]))
	}
	return out, nil
}

func (u *Usecase) ListByCustomer(ctx context.Context, customerID string) ([]ApplicationDTO, error) {
	apps, err := u.apps.ListByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]ApplicationDTO, 0, len(apps))
	for i := range apps {
		out = append(out, *toDTO(&apps[i]))
	}
	return out, nil
}

// Review moves the application to the requested status. Any declared status
// is reachable from any other; undeclared values are rejected. The write is
// version-guarded: a concurrent review surfaces domain.ErrConflict and the
// caller retries.
func (u *Usecase) Review(ctx context.Context, in ReviewInput) (*ApplicationDTO, error) {
	status := domain.Status(in.Status)
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if in.ReviewerID == "" {
		return nil, errors.New("reviewer id is required")
	}

	app, err := u.apps.GetByApplicationID(ctx, in.ApplicationID)
	if err != nil {
		return nil, err
	}

	upd := domain.ReviewUpdate{
		Status:          status,
		ReviewedBy:      in.ReviewerID,
		AdminComments:   in.AdminComments,
		ExpectedVersion: app.Version,
	}
	if err := u.apps.ApplyReview(ctx, in.ApplicationID, upd); err != nil {
		return nil, err
	}
	return u.Get(ctx, in.ApplicationID)
}

// VerifyDocument records a verification decision on one document of one
// application. Re-verifying overwrites the previous verifier and timestamp;
// no history is kept. The write is a single atomic field update on the
// document row, so concurrent decisions serialize at the storage layer.
func (u *Usecase) VerifyDocument(ctx context.Context, in VerifyDocumentInput) (*DocumentDTO, error) {
	if in.VerifierID == "" {
		return nil, errors.New("verifier id is required")
	}

	app, err := u.apps.GetByApplicationID(ctx, in.ApplicationID)
	if err != nil {
		return nil, err
	}
	doc := app.FindDocument(in.DocumentID)
	if doc == nil {
		return nil, domain.ErrDocumentNotFound
	}

	now := time.Now().UTC()
	upd := domain.VerificationUpdate{
		IsVerified: in.IsVerified,
		VerifiedBy: in.VerifierID,
		VerifiedAt: now,
	}
	if err := u.apps.ApplyVerification(ctx, app.ID, in.DocumentID, upd); err != nil {
		return nil, err
	}

	dto := toDocumentDTO(doc)
	dto.IsVerified = upd.IsVerified
	dto.VerifiedBy = upd.VerifiedBy
	dto.VerifiedAt = &now
	return &dto, nil
}

// AddDocument appends uploaded document metadata to an existing application.
func (u *Usecase) AddDocument(ctx context.Context, applicationID string, in DocumentInput) (*DocumentDTO, error) {
	if in.FileName == "" || in.FilePath == "" {
		return nil, errors.New("file name and path are required")
	}
	app, err := u.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	doc := &domain.Document{
		DocumentID: id.NewID32(),
		FileName:   in.FileName,
		FilePath:   in.FilePath,
	}
	if err := u.apps.AddDocument(ctx, app.ID, doc); err != nil {
		return nil, err
	}
	dto := toDocumentDTO(doc)
	return &dto, nil
}
