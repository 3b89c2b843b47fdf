package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPercent(t *testing.T) {
	assert.True(t, Percent(d("25"), d("200")).Equal(d("12.5")))
	assert.True(t, Percent(d("25"), decimal.Zero).IsZero())
}

func TestDistribution(t *testing.T) {
	dist := NewDistribution()
	assert.Len(t, dist, len(Categories))
	dist.Add(Crypto, d("100"))
	dist.Add(Crypto, d("50"))
	dist.Add(Liquidity, d("50"))
	assert.True(t, dist.Total().Equal(d("200")))
	assert.True(t, dist.Share(Crypto, dist.Total()).Equal(d("75")))
	assert.True(t, dist.Share(RealEstate, dist.Total()).IsZero())
}

func TestWealthReport_Convert(t *testing.T) {
	gross := NewDistribution()
	gross.Add(Liquidity, d("100"))
	gross.Add(Investment, d("900"))
	r := WealthReport{
		Currency:          "EUR",
		GrossWealth:       d("1000"),
		NetWealth:         d("1000"),
		DebtRatioPercent:  decimal.Zero,
		NetSharePercent:   d("100"),
		GrossDistribution: gross,
		NetDistribution:   NewDistribution(),
	}

	usd := r.Convert("USD", d("1.0945"))
	assert.Equal(t, "USD", usd.Currency)
	assert.True(t, usd.GrossWealth.Equal(d("1094.5")))
	assert.True(t, usd.GrossDistribution[Investment].Equal(d("985.05")))
	assert.True(t, usd.NetSharePercent.Equal(d("100")))
	assert.Len(t, usd.NetDistribution, len(Categories))

	// the source report is left untouched
	assert.Equal(t, "EUR", r.Currency)
	assert.True(t, r.GrossDistribution[Investment].Equal(d("900")))
}
