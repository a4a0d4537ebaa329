package scoring

import (
	"math"

	"instantcredit-backend/internal/domain/application"
	"instantcredit-backend/internal/domain/profile"
)

// Factor weights; they sum to 1.0.
const (
	weightIncome         = 0.25
	weightDebtToIncome   = 0.20
	weightPaymentHistory = 0.20
	weightUtilization    = 0.15
	weightHistoryLength  = 0.10
	weightDiversity      = 0.05
	weightInquiries      = 0.05
)

// Risk tier thresholds on the aggregate score, inclusive on the lower bound.
const (
	lowRiskFloor    = 70
	mediumRiskFloor = 50
)

// Evaluate runs the full scoring pipeline: factor extraction, weighted
// aggregation, risk classification and recommendations. It is pure and never
// fails; malformed numeric input degrades to documented defaults. The
// customer profile is accepted as read-side context only and does not
// influence the score.
func Evaluate(data application.ApplicationData, _ *profile.CustomerProfile) Result {
	factors := ExtractFactors(data)
	sub := factors.SubScores()

	aggregate := sub.Income*weightIncome +
		sub.DebtToIncome*weightDebtToIncome +
		sub.PaymentHistory*weightPaymentHistory +
		sub.Utilization*weightUtilization +
		sub.HistoryLength*weightHistoryLength +
		sub.Diversity*weightDiversity +
		sub.Inquiries*weightInquiries

	// Sub-scores are individually bounded, but cap the sum again before
	// rounding half-up to the final integer.
	score := int(math.Floor(math.Min(100, aggregate) + 0.5))

	risk := ClassifyRisk(score)

	return Result{
		CalculatedScore: score,
		RiskAssessment:  risk,
		Recommendations: application.Recommendations{
			ImprovementTips: improvementTips(factors),
			LoanSuggestions: loanSuggestions(risk),
		},
	}
}

// ClassifyRisk maps a 0-100 score to a risk tier. A score of exactly 70 is
// low risk, exactly 50 is medium.
func ClassifyRisk(score int) application.RiskLevel {
	switch {
	case score >= lowRiskFloor:
		return application.RiskLow
	case score >= mediumRiskFloor:
		return application.RiskMedium
	default:
		return application.RiskHigh
	}
}
