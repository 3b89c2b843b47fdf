package service

import (
	"context"
	"strings"

	"github.com/Dan9191/wealth-tracker/internal/date"
	"github.com/Dan9191/wealth-tracker/internal/finance"
	"github.com/Dan9191/wealth-tracker/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// EntryInput is a cash flow entry as submitted by a user, before expansion
type EntryInput struct {
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Kind       string          `json:"type"`
	Label      string          `json:"label"`
	Date       date.Date       `json:"date"`
	Recurrence string          `json:"recurrence"`
}

func (in EntryInput) template(userID int64) (models.CashFlowEntry, finance.Policy, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.CashFlowEntry{}, "", invalid("name is required")
	}
	if in.Amount.IsNegative() {
		return models.CashFlowEntry{}, "", invalid("amount must not be negative")
	}
	if !in.Amount.Equal(in.Amount.Round(2)) {
		return models.CashFlowEntry{}, "", invalid("amount has more than two decimals")
	}
	kind, err := models.ParseKind(strings.ToUpper(in.Kind))
	if err != nil {
		return models.CashFlowEntry{}, "", invalid("%v", err)
	}
	if in.Date.IsZero() {
		return models.CashFlowEntry{}, "", invalid("date is required")
	}
	policy, err := finance.ParsePolicy(strings.ToUpper(in.Recurrence))
	if err != nil {
		return models.CashFlowEntry{}, "", invalid("%v", err)
	}
	return models.CashFlowEntry{
		UserID: userID,
		Name:   name,
		Amount: in.Amount,
		Kind:   kind,
		Label:  strings.TrimSpace(in.Label),
		Date:   in.Date,
	}, policy, nil
}

// AddEntries validates the input, expands it according to its recurrence and stores every
// occurrence atomically
func (s *Service) AddEntries(ctx context.Context, userID int64, in EntryInput) ([]models.CashFlowEntry, error) {
	tmpl, policy, err := in.template(userID)
	if err != nil {
		return nil, err
	}
	entries := s.rule.Expand(tmpl, policy)
	if err := s.repo.CreateEntries(ctx, entries); err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Label = entries[i].LabelOrDefault()
	}
	s.log.WithFields(logrus.Fields{
		"user_id":    userID,
		"recurrence": string(policy),
		"count":      len(entries),
	}).Infof("Entries created: %s", tmpl.Name)
	return entries, nil
}

// ListEntries returns the entries of a user, restricted to the period when one is given
func (s *Service) ListEntries(ctx context.Context, userID int64, period *finance.Period) ([]models.CashFlowEntry, error) {
	if period == nil {
		return s.repo.ListEntries(ctx, userID, nil, nil)
	}
	from, to := period.Range()
	after := from.AddDays(-1)
	return s.repo.ListEntries(ctx, userID, &after, &to)
}

// DeleteEntry removes one entry of a user
func (s *Service) DeleteEntry(ctx context.Context, userID int64, id uuid.UUID) error {
	if err := s.repo.DeleteEntry(ctx, userID, id); err != nil {
		return err
	}
	s.log.Infof("Entry %s deleted for user %d", id, userID)
	return nil
}

// Summary totals the income and expenses of a user over a month or a year
func (s *Service) Summary(ctx context.Context, userID int64, period finance.Period) (models.PeriodSummary, error) {
	entries, err := s.ListEntries(ctx, userID, &period)
	if err != nil {
		return models.PeriodSummary{}, err
	}
	return finance.Summarize(entries, period), nil
}
