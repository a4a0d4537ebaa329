package application

import (
	"time"

	domain "instantcredit-backend/internal/domain/application"
)

type SubmitInput struct {
	CustomerID string
	Data       domain.ApplicationData
	Documents  []DocumentInput
}

type DocumentInput struct {
	FileName string `json:"file_name"`
	FilePath string `json:"file_path"`
}

type ReviewInput struct {
	ApplicationID string
	Status        string
	ReviewerID    string
	AdminComments string
}

type VerifyDocumentInput struct {
	ApplicationID string
	DocumentID    string
	IsVerified    bool
	VerifierID    string
}

type DocumentDTO struct {
	DocumentID string     `json:"document_id"`
	FileName   string     `json:"file_name"`
	FilePath   string     `json:"file_path"`
	IsVerified bool       `json:"is_verified"`
	VerifiedBy string     `json:"verified_by,omitempty"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	UploadedAt time.Time  `json:"uploaded_at"`
}

type ApplicationDTO struct {
	ApplicationID   string                 `json:"application_id"`
	CustomerID      string                 `json:"customer_id"`
	ApplicationData domain.ApplicationData `json:"application_data"`
	CalculatedScore int                    `json:"calculated_score"`
	RiskAssessment  string                 `json:"risk_assessment"`
	Recommendations domain.Recommendations `json:"recommendations"`
	Status          string                 `json:"status"`
	ReviewedBy      string                 `json:"reviewed_by,omitempty"`
	AdminComments   string                 `json:"admin_comments,omitempty"`
	Documents       []DocumentDTO          `json:"documents"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

func toDocumentDTO(d *domain.Document) DocumentDTO {
	return DocumentDTO{
		DocumentID: d.DocumentID,
		FileName:   d.FileName,
		FilePath:   d.FilePath,
		IsVerified: d.IsVerified,
		VerifiedBy: d.VerifiedBy,
		VerifiedAt: d.VerifiedAt,
		UploadedAt: d.UploadedAt,
	}
}

func toDTO(a *domain.CreditApplication) *ApplicationDTO {
	docs := make([]DocumentDTO, 0, len(a.Documents))
	for i := range a.Documents {
		docs = append(docs, toDocumentDTO(&a.Documents[i]))
	}
	return &ApplicationDTO{
		ApplicationID:   a.ApplicationID,
		CustomerID:      a.CustomerID,
		ApplicationData: a.ApplicationData,
		CalculatedScore: a.CalculatedScore,
		RiskAssessment:  string(a.RiskAssessment),
		Recommendations: a.Recommendations,
		Status:          string(a.Status),
		ReviewedBy:      a.ReviewedBy,
		AdminComments:   a.AdminComments,
		Documents:       docs,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
