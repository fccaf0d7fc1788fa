// Package app provides application services that orchestrate domain
// logic over the storage ports.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rotavan/rotavan/domain/billing"
	"github.com/rotavan/rotavan/ports"
)

// BillingConfigService manages the singleton billing configuration and
// derives the active billing period from it.
type BillingConfigService struct {
	store  ports.ConfigStore
	clock  ports.Clock
	logger zerolog.Logger
}

// NewBillingConfigService creates a new billing config service.
func NewBillingConfigService(store ports.ConfigStore, clock ports.Clock, logger zerolog.Logger) *BillingConfigService {
	return &BillingConfigService{
		store:  store,
		clock:  clock,
		logger: logger.With().Str("service", "billing_config").Logger(),
	}
}

// Get returns the stored configuration.
func (s *BillingConfigService) Get(ctx context.Context) (billing.Config, error) {
	return s.store.Get(ctx)
}

// Save validates and upserts the configuration in place.
func (s *BillingConfigService) Save(ctx context.Context, amount decimal.Decimal, dueDate time.Time) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("monthly amount must be positive: %w", ErrInvalidInput)
	}
	if dueDate.IsZero() {
		return fmt.Errorf("due date is required: %w", ErrInvalidInput)
	}

	cfg := billing.Config{
		MonthlyAmount: amount,
		DueDate:       dueDate,
		UpdatedAt:     s.clock.Now().UTC(),
	}
	if err := s.store.Save(ctx, cfg); err != nil {
		return err
	}

	s.logger.Info().
		Str("amount", amount.String()).
		Str("due_date", dueDate.Format("2006-01-02")).
		Msg("billing configuration saved")
	return nil
}

// ActivePeriod returns the billing period open right now. When no
// configuration exists yet the due day is unknown; the label still
// lands on the month after today, so a zero due day is used.
func (s *BillingConfigService) ActivePeriod(ctx context.Context) (billing.Period, error) {
	now := s.clock.Now()

	cfg, err := s.store.Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return billing.ComputePeriod(now, 0), nil
		}
		return "", err
	}
	return cfg.ActivePeriod(now), nil
}
