package finance

import (
	"math"

	"github.com/Dan9191/wealth-tracker/internal/date"
	"github.com/Dan9191/wealth-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// monthlyRate returns the periodic rate as a fraction, e.g. 2% a year is 0.02/12.
func monthlyRate(loan models.RealEstateLoan) float64 {
	return loan.AnnualRatePercent.InexactFloat64() / 100 / 12
}

// RemainingBalance returns the outstanding principal of loan on the given date.
// Only whole calendar months count; the day of month is ignored.
//
// The result is rounded to the cent and always lies in [0, principal]. It is non-increasing
// as the date advances. DurationYears must be positive.
func RemainingBalance(loan models.RealEstateLoan, on date.Date) decimal.Decimal {
	p := loan.Principal
	total := loan.TotalMonths()
	elapsed := on.MonthsSince(loan.StartDate)

	if elapsed >= total {
		return decimal.Zero
	}
	if elapsed <= 0 {
		return p
	}

	r := monthlyRate(loan)
	var remaining decimal.Decimal
	if r == 0 {
		// straight line
		remaining = p.Mul(decimal.NewFromInt(int64(total - elapsed))).Div(decimal.NewFromInt(int64(total)))
	} else {
		growthTotal := math.Pow(1+r, float64(total))
		growthElapsed := math.Pow(1+r, float64(elapsed))
		ratio := (growthTotal - growthElapsed) / (growthTotal - 1)
		remaining = p.Mul(decimal.NewFromFloat(ratio))
	}
	return clamp(remaining.Round(2), decimal.Zero, p)
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}

// MonthlyPayment returns the constant installment of the loan, rounded to the cent.
// A zero-rate loan repays the principal in equal parts.
func MonthlyPayment(loan models.RealEstateLoan) decimal.Decimal {
	total := loan.TotalMonths()
	if total <= 0 {
		return decimal.Zero
	}
	r := monthlyRate(loan)
	if r == 0 {
		return loan.Principal.Div(decimal.NewFromInt(int64(total))).Round(2)
	}
	factor := r / (1 - math.Pow(1+r, -float64(total)))
	return loan.Principal.Mul(decimal.NewFromFloat(factor)).Round(2)
}

// Schedule lists every installment of the loan. Remaining balances come from RemainingBalance
// so that the schedule and the wealth report always agree.
func Schedule(loan models.RealEstateLoan) []models.Installment {
	total := loan.TotalMonths()
	if total <= 0 {
		return nil
	}
	r := decimal.NewFromFloat(monthlyRate(loan))
	out := make([]models.Installment, 0, total)
	prev := loan.Principal
	for k := 1; k <= total; k++ {
		on := loan.StartDate.AddMonths(k)
		remaining := RemainingBalance(loan, on)
		interest := prev.Mul(r).Round(2)
		principal := prev.Sub(remaining)
		out = append(out, models.Installment{
			Number:    k,
			Date:      on,
			Payment:   interest.Add(principal),
			Interest:  interest,
			Principal: principal,
			Remaining: remaining,
		})
		prev = remaining
	}
	return out
}
