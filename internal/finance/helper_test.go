package finance

import (
	"testing"

	"github.com/Dan9191/wealth-tracker/internal/date"
	"github.com/Dan9191/wealth-tracker/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func entry(kind models.Kind, amount, on string) models.CashFlowEntry {
	return models.CashFlowEntry{
		Name:   string(kind) + " " + on,
		Amount: dec(amount),
		Kind:   kind,
		Date:   date.MustParse(on),
	}
}

func decFromInt(i int) decimal.Decimal { return decimal.NewFromInt(int64(i)) }
