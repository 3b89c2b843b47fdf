package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Dan9191/wealth-tracker/internal/date"
	"github.com/Dan9191/wealth-tracker/internal/models"
	"github.com/google/uuid"
)

// CreateEntries stores the entries atomically, assigning an id to those without one
func (r *Repository) CreateEntries(ctx context.Context, entries []models.CashFlowEntry) error {
	query := `
		INSERT INTO transactions (id, user_id, name, amount, type, label, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	return r.InTx(ctx, func(tx *Repository) error {
		for i := range entries {
			e := &entries[i]
			if e.ID == uuid.Nil {
				e.ID = uuid.New()
			}
			var label sql.NullString
			if e.Label != "" {
				label = sql.NullString{String: e.Label, Valid: true}
			}
			_, err := tx.exec(ctx, query, e.ID, e.UserID, e.Name, e.Amount, string(e.Kind), label, e.Date)
			if err != nil {
				return fmt.Errorf("failed to create entry %q: %w", e.Name, err)
			}
		}
		return nil
	})
}

// ListEntries returns the entries of a user, most recent first. When after or upTo is set the
// result is restricted to after < date <= upTo, the reconciliation window convention.
func (r *Repository) ListEntries(ctx context.Context, userID int64, after, upTo *date.Date) ([]models.CashFlowEntry, error) {
	var (
		where = []string{"user_id = $1"}
		args  = []any{userID}
	)
	if after != nil {
		args = append(args, *after)
		where = append(where, fmt.Sprintf("date > $%d", len(args)))
	}
	if upTo != nil {
		args = append(args, *upTo)
		where = append(where, fmt.Sprintf("date <= $%d", len(args)))
	}
	query := `
		SELECT id, user_id, name, amount, type, label, date
		FROM transactions
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY date DESC, name`

	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := make([]models.CashFlowEntry, 0, 32)
	for rows.Next() {
		var (
			e     models.CashFlowEntry
			kind  string
			label sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Name, &e.Amount, &kind, &label, &e.Date); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		e.Kind = models.Kind(kind)
		e.Label = label.String
		if e.Label == "" {
			e.Label = models.DefaultLabel
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}
	return entries, nil
}

// DeleteEntry removes an entry owned by the user
func (r *Repository) DeleteEntry(ctx context.Context, userID int64, id uuid.UUID) error {
	res, err := r.exec(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
