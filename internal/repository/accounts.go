package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/wealth-tracker/internal/date"
	"github.com/Dan9191/wealth-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// AccountState is an account together with its row version, used for compare-and-set writes.
type AccountState struct {
	models.Account
	Version int64
}

// GetAccount retrieves the current account of a user
func (r *Repository) GetAccount(ctx context.Context, userID int64) (*AccountState, error) {
	acc := &AccountState{Account: models.Account{UserID: userID}}
	err := r.queryRow(ctx, `
		SELECT balance, last_update_at, version
		FROM current_accounts
		WHERE user_id = $1`, userID).
		Scan(&acc.Balance, &acc.LastReconciledDate, &acc.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return acc, nil
}

// GetOrCreateAccount retrieves the account of a user, creating it at balance 0 as of today on first use
func (r *Repository) GetOrCreateAccount(ctx context.Context, userID int64, today date.Date) (*AccountState, error) {
	_, err := r.exec(ctx, `
		INSERT INTO current_accounts (user_id, balance, last_update_at, version)
		VALUES ($1, $2, $3, 0)
		ON CONFLICT (user_id) DO NOTHING`, userID, decimal.Zero, today)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize account: %w", err)
	}
	return r.GetAccount(ctx, userID)
}

// UpdateAccount overwrites balance and reconciliation date, creating the account if needed
func (r *Repository) UpdateAccount(ctx context.Context, acc models.Account) (*AccountState, error) {
	_, err := r.exec(ctx, `
		INSERT INTO current_accounts (user_id, balance, last_update_at, version)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (user_id) DO UPDATE SET
			balance = excluded.balance,
			last_update_at = excluded.last_update_at,
			version = current_accounts.version + 1`,
		acc.UserID, acc.Balance, acc.LastReconciledDate)
	if err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return r.GetAccount(ctx, acc.UserID)
}

// CompareAndSetAccount writes acc only if the stored row is still at prev.Version.
// It returns ErrConcurrentUpdate otherwise, leaving the row untouched.
func (r *Repository) CompareAndSetAccount(ctx context.Context, prev *AccountState, acc models.Account) (*AccountState, error) {
	res, err := r.exec(ctx, `
		UPDATE current_accounts
		SET balance = $1, last_update_at = $2, version = version + 1
		WHERE user_id = $3 AND version = $4`,
		acc.Balance, acc.LastReconciledDate, prev.UserID, prev.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return nil, ErrConcurrentUpdate
	}
	return r.GetAccount(ctx, prev.UserID)
}
