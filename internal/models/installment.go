package models

import (
	"github.com/Dan9191/wealth-tracker/internal/date"
	"github.com/shopspring/decimal"
)

// Installment represents one month of a loan amortization schedule
type Installment struct {
	Number    int             `json:"number"`
	Date      date.Date       `json:"payment_date"`
	Payment   decimal.Decimal `json:"payment"`
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
	Remaining decimal.Decimal `json:"remaining"`
}
