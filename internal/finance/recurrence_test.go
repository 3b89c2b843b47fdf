package finance

import (
	"testing"

	"github.com/Dan9191/wealth-tracker/internal/date"
	"github.com/Dan9191/wealth-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dates(entries []models.CashFlowEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Date.String()
	}
	return out
}

func TestExpand_NoneReturnsTemplate(t *testing.T) {
	tpl := models.CashFlowEntry{
		Name:   "Rent",
		Amount: dec("850.00"),
		Kind:   models.Expense,
		Label:  "Loyer",
		Date:   date.MustParse("2024-03-05"),
	}
	got := Expand(tpl, PolicyNone)
	require.Len(t, got, 1)
	assert.Equal(t, tpl, got[0])
}

func TestExpand_MonthlyClampsToMonthEnd(t *testing.T) {
	tpl := entry(models.Income, "2500", "2024-01-31")
	got := Expand(tpl, PolicyMonthly)
	require.Len(t, got, 12)
	assert.Equal(t, []string{
		"2024-01-31", "2024-02-29", "2024-03-31", "2024-04-30",
		"2024-05-31", "2024-06-30", "2024-07-31", "2024-08-31",
		"2024-09-30", "2024-10-31", "2024-11-30", "2024-12-31",
	}, dates(got))
	for _, e := range got {
		assert.Equal(t, tpl.Name, e.Name)
		assert.True(t, tpl.Amount.Equal(e.Amount))
		assert.Equal(t, tpl.Kind, e.Kind)
	}
}

func TestExpand_Policies(t *testing.T) {
	tests := []struct {
		policy Policy
		start  string
		want   []string
	}{
		{PolicyQuarterly, "2024-11-30", []string{"2024-11-30", "2025-02-28", "2025-05-30", "2025-08-30"}},
		{PolicySemestrial, "2024-08-31", []string{"2024-08-31", "2025-02-28"}},
		{PolicyYearly, "2024-02-29", []string{"2024-02-29", "2025-02-28"}},
		{PolicyYearly, "2024-12-15", []string{"2024-12-15", "2025-12-15"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.policy)+" "+tt.start, func(t *testing.T) {
			got := Expand(entry(models.Expense, "10", tt.start), tt.policy)
			assert.Equal(t, tt.want, dates(got))
		})
	}
}

func TestExpansionRule_AnnualOccurrences(t *testing.T) {
	rule := ExpansionRule{AnnualOccurrences: 3}
	got := rule.Expand(entry(models.Expense, "120", "2024-06-01"), PolicyYearly)
	assert.Equal(t, []string{"2024-06-01", "2025-06-01", "2026-06-01"}, dates(got))

	count, step := DefaultRule.Occurrences(PolicyYearly)
	assert.Equal(t, 2, count)
	assert.Equal(t, AnnualStep, step)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyNone, p)

	p, err = ParsePolicy("SEMESTRIAL")
	require.NoError(t, err)
	assert.Equal(t, PolicySemestrial, p)

	_, err = ParsePolicy("WEEKLY")
	assert.Error(t, err)
}
