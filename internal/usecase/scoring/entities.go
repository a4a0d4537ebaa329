package scoring

import (
	"instantcredit-backend/internal/domain/application"
)

// Factors are the raw measures the engine scores, already normalized to the
// documented defaults (zero income stays zero; a zero credit limit becomes 1
// so utilization is always defined).
type Factors struct {
	AnnualIncome     float64
	DTIRatio         float64
	LatePayments     int
	UtilizationRate  float64
	HistoryYears     float64
	HasDiverseCredit bool
	Inquiries        int
}

// SubScores holds the per-factor scores, each in [0,100].
type SubScores struct {
	Income         float64
	DebtToIncome   float64
	PaymentHistory float64
	Utilization    float64
	HistoryLength  float64
	Diversity      float64
	Inquiries      float64
}

// Result is the immutable output of one evaluation.
type Result struct {
	CalculatedScore int                         `json:"calculated_score"`
	RiskAssessment  application.RiskLevel       `json:"risk_assessment"`
	Recommendations application.Recommendations `json:"recommendations"`
}
