package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dan9191/wealth-tracker/internal/date"
	"github.com/Dan9191/wealth-tracker/internal/finance"
	"github.com/Dan9191/wealth-tracker/internal/models"
	"github.com/Dan9191/wealth-tracker/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// MaxForecastDays bounds the length of a balance forecast
const MaxForecastDays = 366

// GetAccount returns the current account of a user, creating it on first use
func (s *Service) GetAccount(ctx context.Context, userID int64) (models.Account, error) {
	acc, err := s.repo.GetOrCreateAccount(ctx, userID, s.Today())
	if err != nil {
		return models.Account{}, err
	}
	return acc.Account, nil
}

// ManualUpdate overwrites the balance of a user. The reference date defaults to today and
// becomes the new reconciliation watermark.
func (s *Service) ManualUpdate(ctx context.Context, userID int64, balance decimal.Decimal, reference *date.Date) (models.Account, error) {
	today := s.Today()
	ref := today
	if reference != nil && !reference.IsZero() {
		ref = *reference
	}
	if ref.After(today) {
		return models.Account{}, invalid("reference date %s is in the future", ref)
	}

	var stored *repository.AccountState
	err := s.repo.InTx(ctx, func(tx *repository.Repository) error {
		acc, err := tx.GetOrCreateAccount(ctx, userID, today)
		if err != nil {
			return err
		}
		stored, err = tx.CompareAndSetAccount(ctx, acc, finance.ManualUpdate(acc.Account, balance, ref))
		return err
	})
	if err != nil {
		return models.Account{}, err
	}
	s.log.Infof("Account of user %d set to %s as of %s", userID, stored.Balance.StringFixed(2), ref)
	return stored.Account, nil
}

// AutoReconcile applies the entries dated since the last reconciliation up to today. The read,
// the computation and the write run in one transaction, and the write only succeeds if the
// account was not changed meanwhile, so concurrent calls never apply the same entries twice.
func (s *Service) AutoReconcile(ctx context.Context, userID int64) (finance.Reconciliation, error) {
	today := s.Today()
	var rec finance.Reconciliation
	err := s.repo.InTx(ctx, func(tx *repository.Repository) error {
		acc, err := tx.GetOrCreateAccount(ctx, userID, today)
		if err != nil {
			return err
		}
		last := acc.LastReconciledDate
		entries, err := tx.ListEntries(ctx, userID, &last, &today)
		if err != nil {
			return err
		}
		rec = finance.Reconcile(acc.Account, entries, today)
		stored, err := tx.CompareAndSetAccount(ctx, acc, rec.Account)
		if err != nil {
			return err
		}
		rec.Account = stored.Account
		return nil
	})
	if err != nil {
		return finance.Reconciliation{}, fmt.Errorf("failed to reconcile account of user %d: %w", userID, err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id": userID,
		"entries": rec.Entries,
		"applied": rec.Net.StringFixed(2),
		"balance": rec.Account.Balance.StringFixed(2),
	}).Info("Account reconciled")
	return rec, nil
}

// ReconcileAll reconciles the account of every known user and notifies those whose balance
// changed. A failure for one user does not stop the others.
func (s *Service) ReconcileAll(ctx context.Context) error {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return err
	}

	var errs []error
	changed := 0
	for _, u := range users {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		rec, err := s.AutoReconcile(ctx, u.ID)
		if err != nil {
			s.log.Errorf("Reconciliation failed for user %d: %v", u.ID, err)
			errs = append(errs, err)
			continue
		}
		if rec.UpToDate() {
			continue
		}
		changed++
		if s.notifier == nil || u.Email == "" {
			continue
		}
		if err := s.notifier.SendReconciliationNotice(u.Email, rec); err != nil {
			s.log.Warnf("Failed to notify user %d: %v", u.ID, err)
		}
	}
	s.log.Infof("Reconciled %d accounts, %d changed, %d failed", len(users), changed, len(errs))
	return errors.Join(errs...)
}

// Forecast projects the balance of a user over the next days
func (s *Service) Forecast(ctx context.Context, userID int64, days int) (models.BalanceForecast, error) {
	if days < 1 || days > MaxForecastDays {
		return models.BalanceForecast{}, invalid("days must be between 1 and %d", MaxForecastDays)
	}
	acc, err := s.repo.GetOrCreateAccount(ctx, userID, s.Today())
	if err != nil {
		return models.BalanceForecast{}, err
	}
	last := acc.LastReconciledDate
	entries, err := s.repo.ListEntries(ctx, userID, &last, nil)
	if err != nil {
		return models.BalanceForecast{}, err
	}
	return finance.Forecast(acc.Account, entries, s.Today(), days), nil
}
