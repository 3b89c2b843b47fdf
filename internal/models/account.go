package models

import (
	"github.com/Dan9191/wealth-tracker/internal/date"
	"github.com/shopspring/decimal"
)

// Account is the current account of a user. There is exactly one per user.
type Account struct {
	UserID             int64           `json:"-"`
	Balance            decimal.Decimal `json:"balance"`
	LastReconciledDate date.Date       `json:"last_update_at"`
}
