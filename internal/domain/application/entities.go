package application

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("application not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrConflict         = errors.New("application was modified concurrently")
	ErrInvalidStatus    = errors.New("invalid application status")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusInReview  Status = "in-review"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
)

// Valid reports whether s is one of the declared statuses. Any declared
// status may be set from any other; there is no transition table.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInReview, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

type RiskLevel string

const (
	RiskUnknown RiskLevel = "unknown"
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
)

// Financials is the income/debt slice of an application submission.
// Fields left out of the request stay zero and the scoring defaults apply.
type Financials struct {
	AnnualIncome     float64 `json:"annualIncome"`
	TotalMonthlyDebt float64 `json:"totalMonthlyDebt"`
}

// CreditHistory carries bureau-style inputs that the applicant self-reports.
// TotalCreditLimit of 0 is normalized to 1 by the scoring engine.
type CreditHistory struct {
	LatePayments         int     `json:"latePayments"`
	TotalCreditLimit     float64 `json:"totalCreditLimit"`
	UtilizedCredit       float64 `json:"utilizedCredit"`
	Years                float64 `json:"years"`
	HasDiverseCredit     bool    `json:"hasDiverseCredit"`
	InquiriesLast6Months int     `json:"inquiriesLast6Months"`
}

// ApplicationData is the structured snapshot taken at submission time.
// Immutable after the application is created. LoanType is informational
// only; the scoring engine ignores it.
type ApplicationData struct {
	Financials    Financials    `json:"financials"`
	CreditHistory CreditHistory `json:"creditHistory"`
	LoanType      string        `json:"loanType,omitempty"`
}

type LoanSuggestion struct {
	Type   string `json:"type"`
	Rate   string `json:"rate"`
	Amount string `json:"amount"`
}

type Recommendations struct {
	ImprovementTips []string         `json:"improvementTips"`
	LoanSuggestions []LoanSuggestion `json:"loanSuggestions"`
}

// Document is owned by its parent application; its public id is only
// resolvable within that application.
type Document struct {
	ID            uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	DocumentID    string     `gorm:"column:document_id;type:char(32);not null;index" json:"document_id"`
	ApplicationFK uint64     `gorm:"column:application_fk;not null;index" json:"-"`
	FileName      string     `gorm:"column:file_name;type:text" json:"file_name"`
	FilePath      string     `gorm:"column:file_path;type:text" json:"file_path"`
	IsVerified    bool       `gorm:"column:is_verified;default:false" json:"is_verified"`
	VerifiedBy    string     `gorm:"column:verified_by;type:char(32)" json:"verified_by,omitempty"`
	VerifiedAt    *time.Time `gorm:"column:verified_at" json:"verified_at,omitempty"`
	UploadedAt    time.Time  `gorm:"column:uploaded_at;autoCreateTime" json:"uploaded_at"`
}

func (Document) TableName() string { return "application_documents" }

type CreditApplication struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	ApplicationID   string          `gorm:"column:application_id;type:char(32);not null;uniqueIndex:ux_applications_application_id" json:"application_id"`
	CustomerID      string          `gorm:"column:customer_id;type:char(32);not null;index:idx_applications_customer" json:"customer_id"`
	ApplicationData ApplicationData `gorm:"column:application_data;serializer:json;type:json" json:"application_data"`
	CalculatedScore int             `gorm:"column:calculated_score" json:"calculated_score"`
	RiskAssessment  RiskLevel       `gorm:"column:risk_assessment;size:16;default:'unknown'" json:"risk_assessment"`
	Recommendations Recommendations `gorm:"column:recommendations;serializer:json;type:json" json:"recommendations"`
	Status          Status          `gorm:"column:status;size:16;default:'pending'" json:"status"`
	ReviewedBy      string          `gorm:"column:reviewed_by;type:char(32)" json:"reviewed_by,omitempty"`
	AdminComments   string          `gorm:"column:admin_comments;type:text" json:"admin_comments,omitempty"`
	// Optimistic-lock counter; bumped by every review update.
	Version   uint64     `gorm:"column:version;not null;default:1" json:"-"`
	Documents []Document `gorm:"foreignKey:ApplicationFK;references:ID" json:"documents"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CreditApplication) TableName() string { return "credit_applications" }

// FindDocument returns the embedded document with the given public id.
func (a *CreditApplication) FindDocument(documentID string) *Document {
	for i := range a.Documents {
		if a.Documents[i].DocumentID == documentID {
			return &a.Documents[i]
		}
	}
	return nil
}
