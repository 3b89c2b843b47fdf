package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dan9191/wealth-tracker/internal/date"
	"github.com/Dan9191/wealth-tracker/internal/finance"
	"github.com/Dan9191/wealth-tracker/internal/integrations/ecb"
	"github.com/Dan9191/wealth-tracker/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanInput describes the mortgage attached to a real estate asset
type LoanInput struct {
	Principal         decimal.Decimal `json:"loan_amount"`
	AnnualRatePercent decimal.Decimal `json:"loan_rate"`
	DurationYears     int             `json:"loan_duration_years"`
	StartDate         date.Date       `json:"loan_start_date"`
}

// AssetInput is an asset as submitted by a user
type AssetInput struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Value       decimal.Decimal `json:"value"`
	YieldRate   decimal.Decimal `json:"yield"`
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
	Loan        *LoanInput      `json:"loan,omitempty"`
}

func (in AssetInput) asset(userID int64) (*models.Asset, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	category, err := models.ParseCategory(strings.ToUpper(in.Category))
	if err != nil {
		return nil, invalid("%v", err)
	}
	if in.Value.IsNegative() {
		return nil, invalid("value must not be negative")
	}
	if in.MonthlyRent.IsNegative() {
		return nil, invalid("monthly rent must not be negative")
	}
	a := &models.Asset{
		UserID:      userID,
		Name:        name,
		Category:    category,
		Value:       in.Value,
		YieldRate:   in.YieldRate,
		MonthlyRent: in.MonthlyRent,
	}
	if category == models.RealEstate {
		a.YieldRate = decimal.Zero
	} else {
		a.MonthlyRent = decimal.Zero
	}
	if in.Loan == nil {
		return a, nil
	}

	if category != models.RealEstate {
		return nil, invalid("only real estate assets can carry a loan")
	}
	switch {
	case !in.Loan.Principal.IsPositive():
		return nil, invalid("loan amount must be positive")
	case in.Loan.AnnualRatePercent.IsNegative():
		return nil, invalid("loan rate must not be negative")
	case in.Loan.DurationYears <= 0:
		return nil, invalid("loan duration must be positive")
	case in.Loan.StartDate.IsZero():
		return nil, invalid("loan start date is required")
	}
	a.Loan = &models.RealEstateLoan{
		Principal:         in.Loan.Principal,
		AnnualRatePercent: in.Loan.AnnualRatePercent,
		DurationYears:     in.Loan.DurationYears,
		StartDate:         in.Loan.StartDate,
	}
	return a, nil
}

// AddAsset validates and stores a new asset
func (s *Service) AddAsset(ctx context.Context, userID int64, in AssetInput) (*models.Asset, error) {
	a, err := in.asset(userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateAsset(ctx, a); err != nil {
		return nil, err
	}
	s.log.Infof("Asset created for user %d: %s (%s)", userID, a.Name, a.Category)
	return a, nil
}

// ListAssets returns the assets of a user
func (s *Service) ListAssets(ctx context.Context, userID int64) ([]models.Asset, error) {
	return s.repo.ListAssets(ctx, userID)
}

// DeleteAsset removes an asset of a user
func (s *Service) DeleteAsset(ctx context.Context, userID int64, id uuid.UUID) error {
	if err := s.repo.DeleteAsset(ctx, userID, id); err != nil {
		return err
	}
	s.log.Infof("Asset %s deleted for user %d", id, userID)
	return nil
}

// LoanSchedule is the amortization table of an asset loan
type LoanSchedule struct {
	AssetID        uuid.UUID            `json:"asset_id"`
	MonthlyPayment decimal.Decimal      `json:"monthly_payment"`
	RemainingToday decimal.Decimal      `json:"remaining_today"`
	EndDate        date.Date            `json:"end_date"`
	Installments   []models.Installment `json:"installments"`
}

// Schedule returns the amortization table of the loan attached to an asset
func (s *Service) Schedule(ctx context.Context, userID int64, assetID uuid.UUID) (*LoanSchedule, error) {
	a, err := s.repo.FindAsset(ctx, userID, assetID)
	if err != nil {
		return nil, err
	}
	if a.Loan == nil {
		return nil, invalid("asset %s has no loan", assetID)
	}
	return &LoanSchedule{
		AssetID:        a.ID,
		MonthlyPayment: finance.MonthlyPayment(*a.Loan),
		RemainingToday: finance.RemainingBalance(*a.Loan, s.Today()),
		EndDate:        a.Loan.EndDate(),
		Installments:   finance.Schedule(*a.Loan),
	}, nil
}

// Wealth aggregates the account balance and the assets of a user into a wealth report.
// An empty currency means the report currency; any other one is converted with the rate provider.
func (s *Service) Wealth(ctx context.Context, userID int64, currency string) (models.WealthReport, error) {
	base := s.reportCurrency()
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = base
	}

	acc, err := s.repo.GetOrCreateAccount(ctx, userID, s.Today())
	if err != nil {
		return models.WealthReport{}, err
	}
	assets, err := s.repo.ListAssets(ctx, userID)
	if err != nil {
		return models.WealthReport{}, err
	}
	report := finance.Aggregate(acc.Balance, assets, s.Today())
	report.Currency = base
	if currency == base {
		return report, nil
	}

	if s.rates == nil {
		return models.WealthReport{}, invalid("currency conversion is not available")
	}
	rate, err := s.rates.Rate(ctx, base, currency)
	if errors.Is(err, ecb.ErrUnknownCurrency) {
		return models.WealthReport{}, invalid("%v", err)
	}
	if err != nil {
		return models.WealthReport{}, fmt.Errorf("failed to get %s/%s rate: %w", base, currency, err)
	}
	return report.Convert(currency, rate), nil
}
