package models

import (
	"fmt"

	"github.com/Dan9191/wealth-tracker/internal/date"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultLabel is applied to entries recorded without a label.
const DefaultLabel = "Perso"

// Kind tells whether an entry adds to or removes from the account.
// Amounts are always stored non-negative.
type Kind string

const (
	Income  Kind = "INCOME"
	Expense Kind = "EXPENSE"
)

// ParseKind validates a kind read from user input.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case Income, Expense:
		return k, nil
	default:
		return "", fmt.Errorf("unknown entry type %q", s)
	}
}

// CashFlowEntry represents a dated income or expense. Entries are never updated in place.
type CashFlowEntry struct {
	ID     uuid.UUID       `json:"id"`
	UserID int64           `json:"-"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Kind   Kind            `json:"type"`
	Label  string          `json:"label"`
	Date   date.Date       `json:"date"`
}

// LabelOrDefault returns the entry label, or DefaultLabel when none was given.
func (e CashFlowEntry) LabelOrDefault() string {
	if e.Label == "" {
		return DefaultLabel
	}
	return e.Label
}

// Signed returns the amount with the sign implied by the kind.
func (e CashFlowEntry) Signed() decimal.Decimal {
	if e.Kind == Expense {
		return e.Amount.Neg()
	}
	return e.Amount
}
