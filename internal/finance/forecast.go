package finance

import (
	"github.com/Dan9191/wealth-tracker/internal/date"
	"github.com/Dan9191/wealth-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// Forecast projects the account balance over the next days. It starts from the balance the
// account would have after reconciling today, then applies future entries day by day.
func Forecast(acc models.Account, entries []models.CashFlowEntry, today date.Date, days int) models.BalanceForecast {
	if days < 0 {
		days = 0
	}
	start := Reconcile(acc, entries, today).Account.Balance
	end := today.AddDays(days)

	changes := make(map[date.Date]decimal.Decimal)
	for _, e := range entries {
		if !InWindow(e.Date, today, end) {
			continue
		}
		changes[e.Date] = changes[e.Date].Add(e.Signed())
	}

	f := models.BalanceForecast{
		InitialBalance: start,
		ForecastedDays: days,
		DailyForecast:  make([]models.DailyBalance, 0, days),
	}
	balance := start
	for i := 1; i <= days; i++ {
		on := today.AddDays(i)
		change := changes[on]
		balance = balance.Add(change)
		f.DailyForecast = append(f.DailyForecast, models.DailyBalance{Date: on, Change: change, Balance: balance})
	}
	return f
}
