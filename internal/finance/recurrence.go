// Package finance holds the pure calculations of the wealth tracker: recurring entry expansion,
// loan amortization, wealth aggregation, account reconciliation and period summaries.
// Nothing in this package performs I/O; callers pass in snapshots and persist the results.
package finance

import (
	"fmt"

	"github.com/Dan9191/wealth-tracker/internal/models"
)

// Policy is a rule for projecting one entry into several dated occurrences.
type Policy string

const (
	PolicyNone       Policy = "NONE"
	PolicyMonthly    Policy = "MONTHLY"
	PolicyQuarterly  Policy = "QUARTERLY"
	PolicySemestrial Policy = "SEMESTRIAL"
	PolicyYearly     Policy = "YEARLY"
)

// Month steps between occurrences.
const (
	MonthlyStep    = 1
	QuarterlyStep  = 3
	SemestrialStep = 6
	AnnualStep     = 12
)

// ParsePolicy validates a policy read from user input. An empty string means PolicyNone.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case "":
		return PolicyNone, nil
	case PolicyNone, PolicyMonthly, PolicyQuarterly, PolicySemestrial, PolicyYearly:
		return p, nil
	default:
		return "", fmt.Errorf("unknown recurrence %q", s)
	}
}

// ExpansionRule fixes how many occurrences each policy produces.
type ExpansionRule struct {
	// AnnualOccurrences is the number of YEARLY occurrences: the current year and the next one,
	// so that an entry recorded late in the year still shows up in the following year.
	AnnualOccurrences int
}

// DefaultRule is the expansion rule used by the application.
var DefaultRule = ExpansionRule{AnnualOccurrences: 2}

// Occurrences returns the number of generated entries and the month step between them.
func (r ExpansionRule) Occurrences(p Policy) (count, monthStep int) {
	switch p {
	case PolicyMonthly:
		return 12, MonthlyStep
	case PolicyQuarterly:
		return 4, QuarterlyStep
	case PolicySemestrial:
		return 2, SemestrialStep
	case PolicyYearly:
		return r.AnnualOccurrences, AnnualStep
	default:
		return 1, 0
	}
}

// Expand turns a template into its dated occurrences. Every occurrence shares all template
// fields except the date, which is template.Date advanced by i*monthStep months with
// end-of-month clamping.
func (r ExpansionRule) Expand(template models.CashFlowEntry, p Policy) []models.CashFlowEntry {
	count, step := r.Occurrences(p)
	out := make([]models.CashFlowEntry, 0, count)
	for i := 0; i < count; i++ {
		e := template
		e.Date = template.Date.AddMonths(i * step)
		out = append(out, e)
	}
	return out
}

// Expand expands template with DefaultRule.
func Expand(template models.CashFlowEntry, p Policy) []models.CashFlowEntry {
	return DefaultRule.Expand(template, p)
}
