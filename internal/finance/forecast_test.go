package finance

import (
	"testing"

	"github.com/Dan9191/wealth-tracker/internal/date"
	"github.com/Dan9191/wealth-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecast(t *testing.T) {
	acc := account("1000", "2024-01-01")
	today := date.MustParse("2024-01-10")
	entries := []models.CashFlowEntry{
		entry(models.Income, "200", "2024-01-05"),  // pending, counted in the starting balance
		entry(models.Expense, "50", "2024-01-11"),
		entry(models.Expense, "25", "2024-01-11"),
		entry(models.Income, "1000", "2024-01-13"),
		entry(models.Expense, "500", "2024-01-20"), // beyond the horizon
	}
	f := Forecast(acc, entries, today, 5)

	assertDecimal(t, "1200", f.InitialBalance)
	assert.Equal(t, 5, f.ForecastedDays)
	require.Len(t, f.DailyForecast, 5)

	assert.Equal(t, "2024-01-11", f.DailyForecast[0].Date.String())
	assertDecimal(t, "-75", f.DailyForecast[0].Change)
	assertDecimal(t, "1125", f.DailyForecast[0].Balance)
	assertDecimal(t, "1125", f.DailyForecast[1].Balance)
	assertDecimal(t, "2125", f.DailyForecast[2].Balance)
	assertDecimal(t, "2125", f.DailyForecast[4].Balance)
	assert.Equal(t, "2024-01-15", f.DailyForecast[4].Date.String())
}

func TestForecast_NoDays(t *testing.T) {
	f := Forecast(account("10", "2024-01-01"), nil, date.MustParse("2024-01-02"), -3)
	assert.Equal(t, 0, f.ForecastedDays)
	assert.Empty(t, f.DailyForecast)
	assertDecimal(t, "10", f.InitialBalance)
}
