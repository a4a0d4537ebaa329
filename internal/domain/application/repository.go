package application

import (
	"context"
	"time"
)

// ReviewUpdate is the field set a review writes. It is applied as a single
// version-guarded UPDATE so concurrent reviewers cannot silently overwrite
// each other.
type ReviewUpdate struct {
	Status          Status
	ReviewedBy      string
	AdminComments   string
	ExpectedVersion uint64
}

// VerificationUpdate is the field set a document verification writes. It is
// applied as a single UPDATE on the targeted document row only.
type VerificationUpdate struct {
	IsVerified bool
	VerifiedBy string
	VerifiedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, a *CreditApplication) error
	GetByApplicationID(ctx context.Context, applicationID string) (*CreditApplication, error)
	ListByStatus(ctx context.Context, s Status) ([]CreditApplication, error)
	ListByCustomerID(ctx context.Context, customerID string) ([]CreditApplication, error)

	// ApplyReview persists upd against the application with the given public
	// id. Returns ErrConflict when the stored version no longer matches
	// upd.ExpectedVersion, ErrNotFound when the application is gone.
	ApplyReview(ctx context.Context, applicationID string, upd ReviewUpdate) error

	// AddDocument appends a document row owned by the application numeric PK.
	AddDocument(ctx context.Context, applicationFK uint64, d *Document) error

	// ApplyVerification persists upd against one document of one application.
	// Returns ErrDocumentNotFound when the document id does not exist within
	// that application.
	ApplyVerification(ctx context.Context, applicationFK uint64, documentID string, upd VerificationUpdate) error

	DeleteByCustomerID(ctx context.Context, customerID string) error
}
