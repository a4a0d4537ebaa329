package scoring

import (
	"math"

	"instantcredit-backend/internal/domain/application"
)

const (
	incomeCap          = 80000.0
	dtiComfortRatio    = 0.36
	utilizationComfort = 0.30
	fullHistoryYears   = 10.0
)

// ExtractFactors derives the raw measures from a submission. Absent or
// malformed numeric fields degrade to safe defaults; the result is always
// well-defined (no NaN, no infinities, no negatives).
func ExtractFactors(data application.ApplicationData) Factors {
	income := nonNeg(data.Financials.AnnualIncome, 0)
	monthlyDebt := nonNeg(data.Financials.TotalMonthlyDebt, 0)

	// Zero income makes the ratio 1 rather than dividing by zero.
	dti := 1.0
	if income > 0 {
		dti = monthlyDebt / (income / 12)
	}

	// Limit defaults to 1, not 0, so utilization stays defined.
	limit := nonNeg(data.CreditHistory.TotalCreditLimit, 1)
	if limit == 0 {
		limit = 1
	}
	utilized := nonNeg(data.CreditHistory.UtilizedCredit, 0)

	years := nonNeg(data.CreditHistory.Years, 1)
	if years == 0 {
		years = 1
	}

	late := data.CreditHistory.LatePayments
	if late < 0 {
		late = 0
	}
	inquiries := data.CreditHistory.InquiriesLast6Months
	if inquiries < 0 {
		inquiries = 0
	}

	return Factors{
		AnnualIncome:     income,
		DTIRatio:         dti,
		LatePayments:     late,
		UtilizationRate:  utilized / limit,
		HistoryYears:     years,
		HasDiverseCredit: data.CreditHistory.HasDiverseCredit,
		Inquiries:        inquiries,
	}
}

// SubScores maps each raw measure to its 0-100 score.
func (f Factors) SubScores() SubScores {
	s := SubScores{
		Income:         math.Min(100, f.AnnualIncome/incomeCap*100),
		DebtToIncome:   100,
		PaymentHistory: 100,
		Utilization:    100,
		HistoryLength:  math.Min(100, f.HistoryYears/fullHistoryYears*100),
		Diversity:      50,
		Inquiries:      100,
	}
	if f.DTIRatio >= dtiComfortRatio {
		s.DebtToIncome = math.Max(0, (1-f.DTIRatio)*100)
	}
	if f.LatePayments > 0 {
		s.PaymentHistory = math.Max(0, 100-float64(f.LatePayments)*20)
	}
	if f.UtilizationRate >= utilizationComfort {
		s.Utilization = math.Max(0, 100-f.UtilizationRate*100)
	}
	if f.HasDiverseCredit {
		s.Diversity = 100
	}
	if f.Inquiries >= 2 {
		s.Inquiries = math.Max(0, 100-float64(f.Inquiries)*10)
	}
	return s
}

// nonNeg clamps v to the default when it is negative or not a real number.
func nonNeg(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return def
	}
	return v
}
