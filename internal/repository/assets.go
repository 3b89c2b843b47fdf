package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/wealth-tracker/internal/date"
	"github.com/Dan9191/wealth-tracker/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const assetColumns = `id, user_id, name, category, value, yield_rate, monthly_rent,
	loan_principal, loan_rate, loan_duration_years, loan_start_date`

// CreateAsset creates a new asset in the database
func (r *Repository) CreateAsset(ctx context.Context, a *models.Asset) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	var (
		principal, rate decimal.NullDecimal
		years           sql.NullInt64
		start           any
	)
	if a.Loan != nil {
		principal = decimal.NewNullDecimal(a.Loan.Principal)
		rate = decimal.NewNullDecimal(a.Loan.AnnualRatePercent)
		years = sql.NullInt64{Int64: int64(a.Loan.DurationYears), Valid: true}
		start = a.Loan.StartDate
	}
	query := `
		INSERT INTO assets (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.exec(ctx, query,
		a.ID, a.UserID, a.Name, string(a.Category), a.Value, a.YieldRate, a.MonthlyRent,
		principal, rate, years, start)
	if err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (models.Asset, error) {
	var (
		a               models.Asset
		category        string
		principal, rate decimal.NullDecimal
		years           sql.NullInt64
		start           date.Date
	)
	err := row.Scan(&a.ID, &a.UserID, &a.Name, &category, &a.Value, &a.YieldRate, &a.MonthlyRent,
		&principal, &rate, &years, &start)
	if err != nil {
		return a, err
	}
	a.Category = models.Category(category)
	if principal.Valid {
		a.Loan = &models.RealEstateLoan{
			Principal:         principal.Decimal,
			AnnualRatePercent: rate.Decimal,
			DurationYears:     int(years.Int64),
			StartDate:         start,
		}
	}
	return a, nil
}

// ListAssets returns the assets of a user ordered by name
func (r *Repository) ListAssets(ctx context.Context, userID int64) ([]models.Asset, error) {
	rows, err := r.query(ctx, `SELECT `+assetColumns+` FROM assets WHERE user_id = $1 ORDER BY name, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	assets := make([]models.Asset, 0, 8)
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assets: %w", err)
	}
	return assets, nil
}

// FindAsset retrieves an asset owned by the user
func (r *Repository) FindAsset(ctx context.Context, userID int64, id uuid.UUID) (*models.Asset, error) {
	row := r.queryRow(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1 AND user_id = $2`, id, userID)
	a, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find asset: %w", err)
	}
	return &a, nil
}

// DeleteAsset removes an asset owned by the user
func (r *Repository) DeleteAsset(ctx context.Context, userID int64, id uuid.UUID) error {
	res, err := r.exec(ctx, `DELETE FROM assets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
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
