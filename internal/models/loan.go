package models

import (
	"github.com/Dan9191/wealth-tracker/internal/date"
	"github.com/shopspring/decimal"
)

// RealEstateLoan represents a fixed-rate, fixed-term amortizing loan attached to a property.
type RealEstateLoan struct {
	Principal         decimal.Decimal `json:"loan_amount"`
	AnnualRatePercent decimal.Decimal `json:"loan_rate"`
	DurationYears     int             `json:"loan_duration_years"`
	StartDate         date.Date       `json:"loan_start_date"`
}

// TotalMonths returns the number of monthly installments.
func (l RealEstateLoan) TotalMonths() int { return l.DurationYears * 12 }

// EndDate returns the date of the last installment.
func (l RealEstateLoan) EndDate() date.Date { return l.StartDate.AddMonths(l.TotalMonths()) }
