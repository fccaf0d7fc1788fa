package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rotavan/rotavan/domain/billing"
	"github.com/rotavan/rotavan/ports"
)

// RolloverMetrics is the subset of metrics the rollover reports.
type RolloverMetrics interface {
	RolloverRan(result string)
}

// Rollover advances an expired due date to its next monthly occurrence.
// It runs once per startup and must never prevent the app from coming
// up: every failure is logged and swallowed, leaving at worst a stale
// due date until the next run.
type Rollover struct {
	store   ports.ConfigStore
	clock   ports.Clock
	logger  zerolog.Logger
	metrics RolloverMetrics
}

// NewRollover creates a new rollover routine. metrics may be nil.
func NewRollover(store ports.ConfigStore, clock ports.Clock, logger zerolog.Logger, metrics RolloverMetrics) *Rollover {
	return &Rollover{
		store:   store,
		clock:   clock,
		logger:  logger.With().Str("service", "rollover").Logger(),
		metrics: metrics,
	}
}

// Run checks the stored due date and advances it if it lies in the
// past. Returns whether the date was advanced; errors are handled
// internally.
func (r *Rollover) Run(ctx context.Context) bool {
	cfg, err := r.store.Get(ctx)
	if err != nil {
		if isNotFound(err) {
			// Nothing configured yet; nothing to roll over.
			r.report("skipped")
			return false
		}
		r.logger.Warn().Err(err).Msg("rollover: loading billing config failed")
		r.report("error")
		return false
	}

	today := r.clock.Now()
	if !cfg.Expired(today) {
		r.report("noop")
		return false
	}

	old := cfg.DueDate
	cfg.DueDate = billing.NextDueDate(cfg.DueDate)
	cfg.UpdatedAt = today.UTC()

	if err := r.store.Save(ctx, cfg); err != nil {
		r.logger.Warn().Err(err).Msg("rollover: saving advanced due date failed")
		r.report("error")
		return false
	}

	r.logger.Info().
		Str("from", old.Format("2006-01-02")).
		Str("to", cfg.DueDate.Format("2006-01-02")).
		Msg("due date rolled over")
	r.report("advanced")
	return true
}

func (r *Rollover) report(result string) {
	if r.metrics != nil {
		r.metrics.RolloverRan(result)
	}
}
