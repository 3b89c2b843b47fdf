package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Dan9191/wealth-tracker/internal/config"
	"github.com/Dan9191/wealth-tracker/internal/date"
	"github.com/Dan9191/wealth-tracker/internal/finance"
	"github.com/Dan9191/wealth-tracker/internal/models"
	"github.com/Dan9191/wealth-tracker/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ErrInvalidInput is returned when a request fails validation
var ErrInvalidInput = errors.New("invalid input")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// RateProvider converts amounts between currencies
type RateProvider interface {
	Rate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

// Notifier tells a user that the nightly reconciliation changed the balance
type Notifier interface {
	SendReconciliationNotice(to string, rec finance.Reconciliation) error
}

// Service handles business logic
type Service struct {
	repo     *repository.Repository
	log      *logrus.Logger
	config   *config.Config
	rule     finance.ExpansionRule
	rates    RateProvider
	notifier Notifier
	now      func() time.Time

	knownUsers sync.Map
}

// Option customizes a Service
type Option func(*Service)

// WithRateProvider enables currency conversion of wealth reports
func WithRateProvider(p RateProvider) Option {
	return func(s *Service) { s.rates = p }
}

// WithNotifier enables reconciliation notices
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithClock replaces the wall clock, mostly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		log:    log,
		config: cfg,
		rule:   finance.DefaultRule,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the current calendar date in the configured time zone
func (s *Service) Today() date.Date {
	loc := time.UTC
	if s.config != nil && s.config.Location != nil {
		loc = s.config.Location
	}
	return date.Of(s.now().In(loc))
}

func (s *Service) reportCurrency() string {
	if s.config == nil || s.config.ReportCurrency == "" {
		return "EUR"
	}
	return s.config.ReportCurrency
}

// EnsureUser records the user behind a verified token. Each user is written once per process.
func (s *Service) EnsureUser(ctx context.Context, userID int64, email string) error {
	if prev, ok := s.knownUsers.Load(userID); ok && (email == "" || prev.(string) == email) {
		return nil
	}
	if err := s.repo.UpsertUser(ctx, &models.User{ID: userID, Email: email}); err != nil {
		return err
	}
	s.knownUsers.Store(userID, email)
	return nil
}
