package models

import (
	"github.com/Dan9191/wealth-tracker/internal/date"
	"github.com/shopspring/decimal"
)

// LabelTotal represents income and expense totals for one label
type LabelTotal struct {
	Label   string          `json:"label"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// PeriodSummary represents income and expense statistics over a month or a year
type PeriodSummary struct {
	From    date.Date       `json:"from"`
	To      date.Date       `json:"to"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"` // Income - Expense
	ByLabel []LabelTotal    `json:"by_label"`
}

// Distribution holds an amount for every asset category.
// Use NewDistribution so that no category is ever missing.
type Distribution map[Category]decimal.Decimal

// NewDistribution returns a distribution with every category set to zero.
func NewDistribution() Distribution {
	d := make(Distribution, len(Categories))
	for _, c := range Categories {
		d[c] = decimal.Zero
	}
	return d
}

// Add accumulates amount into the category bucket.
func (d Distribution) Add(c Category, amount decimal.Decimal) {
	d[c] = d[c].Add(amount)
}

// Total returns the sum of all buckets.
func (d Distribution) Total() decimal.Decimal {
	total := decimal.Zero
	for _, c := range Categories {
		total = total.Add(d[c])
	}
	return total
}

// Share returns the percentage of total held by the category, or 0 when total is 0.
func (d Distribution) Share(c Category, total decimal.Decimal) decimal.Decimal {
	return Percent(d[c], total)
}

// Percent returns part/total*100, or 0 when total is 0.
func Percent(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred)
}

// WealthReport represents the gross and net worth breakdown of a user
type WealthReport struct {
	Currency              string          `json:"currency"`
	GrossWealth           decimal.Decimal `json:"gross_wealth"`
	NetWealth             decimal.Decimal `json:"net_wealth"`
	TotalDebt             decimal.Decimal `json:"total_debt"`
	UnderwaterDebt        decimal.Decimal `json:"underwater_debt"` // debt exceeding the value of its asset
	ProjectedAnnualIncome decimal.Decimal `json:"projected_annual_income"`
	DebtRatioPercent      decimal.Decimal `json:"debt_ratio_percent"`
	NetSharePercent       decimal.Decimal `json:"net_share_percent"`
	GrossDistribution     Distribution    `json:"gross_distribution"`
	NetDistribution       Distribution    `json:"net_distribution"`
}

// BalanceForecast represents the projected account balance over the next days
type BalanceForecast struct {
	InitialBalance decimal.Decimal `json:"initial_balance"`
	ForecastedDays int             `json:"forecasted_days"`
	DailyForecast  []DailyBalance  `json:"daily_forecast"`
}

// DailyBalance represents balance for a specific day
type DailyBalance struct {
	Date    date.Date       `json:"date"`
	Change  decimal.Decimal `json:"change"`
	Balance decimal.Decimal `json:"balance"`
}

// Convert returns the report expressed in another currency. Amounts are multiplied by rate and
// rounded to the cent; percentages are unchanged.
func (r WealthReport) Convert(currency string, rate decimal.Decimal) WealthReport {
	conv := func(v decimal.Decimal) decimal.Decimal { return v.Mul(rate).Round(2) }
	out := r
	out.Currency = currency
	out.GrossWealth = conv(r.GrossWealth)
	out.NetWealth = conv(r.NetWealth)
	out.TotalDebt = conv(r.TotalDebt)
	out.UnderwaterDebt = conv(r.UnderwaterDebt)
	out.ProjectedAnnualIncome = conv(r.ProjectedAnnualIncome)
	out.GrossDistribution = NewDistribution()
	out.NetDistribution = NewDistribution()
	for _, c := range Categories {
		out.GrossDistribution[c] = conv(r.GrossDistribution[c])
		out.NetDistribution[c] = conv(r.NetDistribution[c])
	}
	return out
}
