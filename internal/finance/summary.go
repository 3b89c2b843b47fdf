package finance

import (
	"fmt"
	"sort"
	"time"

	"github.com/Dan9191/wealth-tracker/internal/date"
	"github.com/Dan9191/wealth-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// PeriodKind selects a month or a whole year.
type PeriodKind string

const (
	PeriodMonth PeriodKind = "MONTH"
	PeriodYear  PeriodKind = "YEAR"
)

// Period is a calendar month or year.
type Period struct {
	Kind  PeriodKind
	Year  int
	Month time.Month // ignored for PeriodYear
}

// PeriodOf returns the period of the given kind containing d.
func PeriodOf(kind PeriodKind, d date.Date) Period {
	return Period{Kind: kind, Year: d.Year(), Month: d.Month()}
}

// ParsePeriod validates a period read from user input. Kind is case-sensitive, "MONTH" or "YEAR".
func ParsePeriod(kind string, year, month int) (Period, error) {
	switch PeriodKind(kind) {
	case PeriodMonth:
		if month < 1 || month > 12 {
			return Period{}, fmt.Errorf("invalid month %d", month)
		}
		return Period{Kind: PeriodMonth, Year: year, Month: time.Month(month)}, nil
	case PeriodYear:
		return Period{Kind: PeriodYear, Year: year, Month: time.January}, nil
	default:
		return Period{}, fmt.Errorf("unknown period %q", kind)
	}
}

// Range returns the first and last day of the period, both inclusive.
func (p Period) Range() (from, to date.Date) {
	if p.Kind == PeriodYear {
		return date.New(p.Year, time.January, 1), date.New(p.Year, time.December, 31)
	}
	from = date.New(p.Year, p.Month, 1)
	return from, date.New(p.Year, p.Month, date.DaysIn(p.Year, p.Month))
}

// Contains reports whether d falls inside the period.
func (p Period) Contains(d date.Date) bool {
	from, to := p.Range()
	return !d.Before(from) && !d.After(to)
}

// Summarize totals the income and expense entries dated inside the period, overall and per label.
// Labels are sorted alphabetically.
func Summarize(entries []models.CashFlowEntry, p Period) models.PeriodSummary {
	from, to := p.Range()
	s := models.PeriodSummary{
		From:    from,
		To:      to,
		Income:  decimal.Zero,
		Expense: decimal.Zero,
		ByLabel: []models.LabelTotal{},
	}
	byLabel := make(map[string]*models.LabelTotal)
	for _, e := range entries {
		if !p.Contains(e.Date) {
			continue
		}
		label := e.LabelOrDefault()
		lt, ok := byLabel[label]
		if !ok {
			lt = &models.LabelTotal{Label: label, Income: decimal.Zero, Expense: decimal.Zero}
			byLabel[label] = lt
		}
		switch e.Kind {
		case models.Income:
			s.Income = s.Income.Add(e.Amount)
			lt.Income = lt.Income.Add(e.Amount)
		case models.Expense:
			s.Expense = s.Expense.Add(e.Amount)
			lt.Expense = lt.Expense.Add(e.Amount)
		}
	}
	s.Balance = s.Income.Sub(s.Expense)

	for _, lt := range byLabel {
		s.ByLabel = append(s.ByLabel, *lt)
	}
	sort.Slice(s.ByLabel, func(i, j int) bool { return s.ByLabel[i].Label < s.ByLabel[j].Label })
	return s
}
