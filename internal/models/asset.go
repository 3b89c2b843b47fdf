package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category classifies an asset in the wealth breakdown.
type Category string

const (
	Liquidity  Category = "LIQUIDITY"
	Investment Category = "INVESTMENT"
	RealEstate Category = "REAL_ESTATE"
	Crypto     Category = "CRYPTO"
)

// Categories lists every known category in display order.
var Categories = []Category{Liquidity, Investment, RealEstate, Crypto}

// ParseCategory validates a category read from user input.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown asset category %q", s)
}

var hundred = decimal.NewFromInt(100)

// Asset represents a holding valued by the user.
type Asset struct {
	ID          uuid.UUID       `json:"id"`
	UserID      int64           `json:"-"`
	Name        string          `json:"name"`
	Category    Category        `json:"category"`
	Value       decimal.Decimal `json:"value"`
	YieldRate   decimal.Decimal `json:"yield"` // annual percent, ignored for real estate
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
	Loan        *RealEstateLoan `json:"loan,omitempty"`
}

// Yield returns the annual yield in percent. For real estate it is derived from the rent.
func (a Asset) Yield() decimal.Decimal {
	if a.Category != RealEstate {
		return a.YieldRate
	}
	if !a.Value.IsPositive() {
		return decimal.Zero
	}
	return a.MonthlyRent.Mul(decimal.NewFromInt(12)).Div(a.Value).Mul(hundred)
}

// AnnualIncome returns the income the asset is expected to produce over a year.
func (a Asset) AnnualIncome() decimal.Decimal {
	if a.Category == RealEstate {
		return a.MonthlyRent.Mul(decimal.NewFromInt(12))
	}
	return a.Value.Mul(a.YieldRate).Div(hundred)
}
