package finance

import (
	"github.com/Dan9191/wealth-tracker/internal/date"
	"github.com/Dan9191/wealth-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// RemainingLoan returns the outstanding loan of an asset on the given date, 0 when it has none.
func RemainingLoan(a models.Asset, on date.Date) decimal.Decimal {
	if a.Loan == nil {
		return decimal.Zero
	}
	return RemainingBalance(*a.Loan, on)
}

// Aggregate combines the current account balance and the assets into the wealth report.
// The current account is counted as debt-free liquidity in both distributions.
//
// The gross distribution always sums to GrossWealth. The net distribution clamps each asset at
// zero, so it sums to NetWealth + UnderwaterDebt.
func Aggregate(balance decimal.Decimal, assets []models.Asset, on date.Date) models.WealthReport {
	gross := models.NewDistribution()
	net := models.NewDistribution()
	gross.Add(models.Liquidity, balance)
	net.Add(models.Liquidity, balance)

	debt := decimal.Zero
	underwater := decimal.Zero
	income := decimal.Zero
	for _, a := range assets {
		remaining := RemainingLoan(a, on)
		debt = debt.Add(remaining)
		income = income.Add(a.AnnualIncome())

		gross.Add(a.Category, a.Value)
		equity := a.Value.Sub(remaining)
		if equity.IsNegative() {
			underwater = underwater.Sub(equity)
			equity = decimal.Zero
		}
		net.Add(a.Category, equity)
	}

	grossWealth := gross.Total()
	netWealth := grossWealth.Sub(debt)
	return models.WealthReport{
		GrossWealth:           grossWealth,
		NetWealth:             netWealth,
		TotalDebt:             debt,
		UnderwaterDebt:        underwater,
		ProjectedAnnualIncome: income.Round(2),
		DebtRatioPercent:      models.Percent(debt, grossWealth).Round(2),
		NetSharePercent:       models.Percent(netWealth, grossWealth).Round(2),
		GrossDistribution:     gross,
		NetDistribution:       net,
	}
}
