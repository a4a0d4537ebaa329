package profile

import (
	"context"

	"instantcredit-backend/internal/domain/application"
)

type Repository interface {
	Create(ctx context.Context, p *CustomerProfile) error
	GetByUserID(ctx context.Context, userID string) (*CustomerProfile, error)
	Save(ctx context.Context, p *CustomerProfile) error
	// UpdateScore writes only the credit_score/risk_level mirror columns.
	UpdateScore(ctx context.Context, userID string, score int, risk application.RiskLevel) error
	DeleteByUserID(ctx context.Context, userID string) error
}
