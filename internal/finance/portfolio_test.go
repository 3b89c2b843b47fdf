package finance

import (
	"testing"

	"github.com/Dan9191/wealth-tracker/internal/date"
	"github.com/Dan9191/wealth-tracker/internal/models"
	"github.com/stretchr/testify/assert"
)

func sampleAssets() []models.Asset {
	l := loan("200000", "2", 20, "2020-01-01")
	return []models.Asset{
		{Name: "Livret A", Category: models.Liquidity, Value: dec("10000"), YieldRate: dec("3")},
		{Name: "PEA", Category: models.Investment, Value: dec("25000"), YieldRate: dec("6")},
		{Name: "Bitcoin", Category: models.Crypto, Value: dec("4000"), YieldRate: dec("0")},
		{Name: "Studio Lyon", Category: models.RealEstate, Value: dec("250000"), MonthlyRent: dec("900"), Loan: &l},
	}
}

func TestAggregate(t *testing.T) {
	on := date.MustParse("2025-01-01")
	r := Aggregate(dec("1500"), sampleAssets(), on)

	assertDecimal(t, "290500", r.GrossWealth)
	assertDecimal(t, "157226.57", r.TotalDebt)
	assertDecimal(t, "133273.43", r.NetWealth)
	assertDecimal(t, "0", r.UnderwaterDebt)
	// 10000*3% + 25000*6% + 0 + 900*12
	assertDecimal(t, "12600", r.ProjectedAnnualIncome)

	assertDecimal(t, "11500", r.GrossDistribution[models.Liquidity])
	assertDecimal(t, "25000", r.GrossDistribution[models.Investment])
	assertDecimal(t, "250000", r.GrossDistribution[models.RealEstate])
	assertDecimal(t, "4000", r.GrossDistribution[models.Crypto])

	assertDecimal(t, "11500", r.NetDistribution[models.Liquidity])
	assertDecimal(t, "92773.43", r.NetDistribution[models.RealEstate])

	assertDecimal(t, r.GrossWealth.String(), r.GrossDistribution.Total())
	assertDecimal(t, r.NetWealth.String(), r.NetDistribution.Total())

	assertDecimal(t, "54.12", r.DebtRatioPercent)
	assertDecimal(t, "45.88", r.NetSharePercent)
}

func TestAggregate_EmptyAssets(t *testing.T) {
	r := Aggregate(dec("0"), nil, date.MustParse("2025-01-01"))
	assertDecimal(t, "0", r.GrossWealth)
	assertDecimal(t, "0", r.NetWealth)
	assertDecimal(t, "0", r.TotalDebt)
	assertDecimal(t, "0", r.ProjectedAnnualIncome)
	assertDecimal(t, "0", r.DebtRatioPercent)
	assertDecimal(t, "0", r.NetSharePercent)
	for _, c := range models.Categories {
		assertDecimal(t, "0", r.GrossDistribution[c])
		assertDecimal(t, "0", r.NetDistribution[c])
		assertDecimal(t, "0", r.GrossDistribution.Share(c, r.GrossWealth))
	}
}

func TestAggregate_OnlyBalance(t *testing.T) {
	r := Aggregate(dec("-250.40"), []models.Asset{}, date.MustParse("2025-01-01"))
	assertDecimal(t, "-250.40", r.GrossWealth)
	assertDecimal(t, "-250.40", r.GrossDistribution[models.Liquidity])
	assert.Len(t, r.GrossDistribution, len(models.Categories))
	assert.Len(t, r.NetDistribution, len(models.Categories))
}

func TestAggregate_UnderwaterAsset(t *testing.T) {
	l := loan("300000", "1.5", 25, "2024-01-01")
	assets := []models.Asset{
		{Name: "Maison", Category: models.RealEstate, Value: dec("280000"), MonthlyRent: dec("0"), Loan: &l},
		{Name: "CTO", Category: models.Investment, Value: dec("5000"), YieldRate: dec("4")},
	}
	r := Aggregate(dec("1000"), assets, date.MustParse("2024-01-10"))

	assertDecimal(t, "300000", r.TotalDebt)
	assertDecimal(t, "-14000", r.NetWealth)
	assertDecimal(t, "20000", r.UnderwaterDebt)
	assertDecimal(t, "0", r.NetDistribution[models.RealEstate])
	assertDecimal(t, r.NetWealth.Add(r.UnderwaterDebt).String(), r.NetDistribution.Total())
	assertDecimal(t, r.GrossWealth.String(), r.GrossDistribution.Total())
}

func TestAggregate_DistributionSumsHoldOverTime(t *testing.T) {
	assets := sampleAssets()
	start := date.MustParse("2019-06-01")
	for m := 0; m < 260; m += 13 {
		r := Aggregate(dec("742.18"), assets, start.AddMonths(m))
		assertDecimal(t, r.GrossWealth.String(), r.GrossDistribution.Total())
		assertDecimal(t, r.NetWealth.Add(r.UnderwaterDebt).String(), r.NetDistribution.Total())
	}
}

func TestRemainingLoan_NoLoan(t *testing.T) {
	a := models.Asset{Category: models.RealEstate, Value: dec("100000")}
	assertDecimal(t, "0", RemainingLoan(a, date.MustParse("2025-01-01")))
}

func TestAssetYield(t *testing.T) {
	a := models.Asset{Category: models.RealEstate, Value: dec("240000"), MonthlyRent: dec("1000"), YieldRate: dec("99")}
	assertDecimal(t, "5", a.Yield())
	a.Value = dec("0")
	assertDecimal(t, "0", a.Yield())

	b := models.Asset{Category: models.Investment, Value: dec("1000"), YieldRate: dec("4.5")}
	assertDecimal(t, "4.5", b.Yield())
	assertDecimal(t, "45", b.AnnualIncome())
}
