package finance

import (
	"testing"
	"time"

	"github.com/Dan9191/wealth-tracker/internal/date"
	"github.com/Dan9191/wealth-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodRange(t *testing.T) {
	from, to := Period{Kind: PeriodMonth, Year: 2024, Month: time.February}.Range()
	assert.Equal(t, "2024-02-01", from.String())
	assert.Equal(t, "2024-02-29", to.String())

	from, to = Period{Kind: PeriodYear, Year: 2025}.Range()
	assert.Equal(t, "2025-01-01", from.String())
	assert.Equal(t, "2025-12-31", to.String())
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("MONTH", 2024, 7)
	require.NoError(t, err)
	assert.Equal(t, Period{Kind: PeriodMonth, Year: 2024, Month: time.July}, p)

	_, err = ParsePeriod("MONTH", 2024, 13)
	assert.Error(t, err)
	_, err = ParsePeriod("WEEK", 2024, 1)
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	salary := entry(models.Income, "2500", "2024-03-01")
	salary.Label = "Salaire"
	rent := entry(models.Expense, "850", "2024-03-05")
	rent.Label = "Loyer"
	food := entry(models.Expense, "120.40", "2024-03-31")
	gift := entry(models.Income, "50", "2024-03-12")
	outside := entry(models.Expense, "999", "2024-04-01")

	entries := []models.CashFlowEntry{salary, rent, food, gift, outside}
	s := Summarize(entries, PeriodOf(PeriodMonth, date.MustParse("2024-03-15")))

	assertDecimal(t, "2550", s.Income)
	assertDecimal(t, "970.40", s.Expense)
	assertDecimal(t, "1579.60", s.Balance)
	require.Len(t, s.ByLabel, 3)
	assert.Equal(t, "Loyer", s.ByLabel[0].Label)
	assert.Equal(t, models.DefaultLabel, s.ByLabel[1].Label)
	assertDecimal(t, "50", s.ByLabel[1].Income)
	assertDecimal(t, "120.40", s.ByLabel[1].Expense)
	assert.Equal(t, "Salaire", s.ByLabel[2].Label)

	year := Summarize(entries, Period{Kind: PeriodYear, Year: 2024})
	assertDecimal(t, "1969.40", year.Expense)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, Period{Kind: PeriodYear, Year: 2024})
	assertDecimal(t, "0", s.Income)
	assertDecimal(t, "0", s.Expense)
	assertDecimal(t, "0", s.Balance)
	assert.Empty(t, s.ByLabel)
}
