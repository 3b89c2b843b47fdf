package utils

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatAmount renders a decimal amount with the currency symbol, e.g. "€1,234.56".
// Amounts are rounded to the minor unit of the currency.
func FormatAmount(amount decimal.Decimal, currency string) string {
	code := strings.ToUpper(currency)
	fraction := int32(2)
	if c := money.GetCurrency(code); c != nil {
		fraction = int32(c.Fraction)
	}
	minor := amount.Shift(fraction).Round(0).IntPart()
	return money.New(minor, code).Display()
}
