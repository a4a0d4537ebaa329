package scoring

import (
	"instantcredit-backend/internal/domain/application"
)

// Advisory thresholds. These intentionally differ from the scoring
// thresholds: income warns below $50k while the score caps at $80k, DTI warns
// above 0.40 while the score break-even is 0.36.
const (
	adviseIncomeBelow      = 50000.0
	adviseDTIAbove         = 0.40
	adviseUtilizationAbove = 0.30
	adviseHistoryBelow     = 5.0
	adviseInquiriesAbove   = 2
)

// improvementTips evaluates each factor against its advisory threshold, in
// fixed order: income, DTI, payment history, utilization, history length,
// diversity, inquiries.
func improvementTips(f Factors) []string {
	var tips []string
	if f.AnnualIncome < adviseIncomeBelow {
		tips = append(tips, "Consider ways to increase your verifiable annual income.")
	}
	if f.DTIRatio > adviseDTIAbove {
		tips = append(tips, "Reduce existing debt to improve your Debt-to-Income ratio.")
	}
	if f.LatePayments > 0 {
		tips = append(tips, "Make all future payments on time to improve your credit history.")
	}
	if f.UtilizationRate > adviseUtilizationAbove {
		tips = append(tips, "Pay down existing credit card balances to lower your utilization rate.")
	}
	if f.HistoryYears < adviseHistoryBelow {
		tips = append(tips, "Building a longer credit history over time will improve your score.")
	}
	if !f.HasDiverseCredit {
		tips = append(tips, "Consider diversifying your credit accounts, such as a mix of installment and revolving credit.")
	}
	if f.Inquiries > adviseInquiriesAbove {
		tips = append(tips, "Limit new credit applications to avoid a negative impact from hard inquiries.")
	}
	return tips
}

// loanSuggestions is a fixed lookup by tier; the list is replaced wholesale
// per tier, never filtered from a master list.
func loanSuggestions(risk application.RiskLevel) []application.LoanSuggestion {
	switch risk {
	case application.RiskLow:
		return []application.LoanSuggestion{
			{Type: "Personal Loan", Rate: "5-7%", Amount: "$10,000-$50,000"},
			{Type: "Mortgage Loan", Rate: "3-4%", Amount: "$200,000-$1,000,000"},
		}
	case application.RiskMedium:
		return []application.LoanSuggestion{
			{Type: "Personal Loan", Rate: "8-12%", Amount: "$5,000-$20,000"},
		}
	default:
		return []application.LoanSuggestion{
			{Type: "Secured Loan", Rate: "15-20%", Amount: "$1,000-$5,000"},
		}
	}
}
