package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rotavan/rotavan/domain/billing"
)

// Navigator is the cursor over billing periods the user is viewing. It
// is decoupled from the true current period: browsing history moves the
// cursor, while the real cycle keeps advancing underneath.
type Navigator struct {
	config *BillingConfigService
	logger zerolog.Logger

	mu      sync.Mutex
	visible billing.Period
}

// NewNavigator creates a navigator anchored at the true current period.
func NewNavigator(ctx context.Context, config *BillingConfigService, logger zerolog.Logger) (*Navigator, error) {
	n := &Navigator{
		config: config,
		logger: logger.With().Str("service", "navigator").Logger(),
	}
	if err := n.ResetToCurrent(ctx); err != nil {
		return nil, err
	}
	return n, nil
}

// Visible returns the period the cursor points at.
func (n *Navigator) Visible() billing.Period {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.visible
}

// Previous moves the cursor back one calendar month. Historical
// browsing is unbounded.
func (n *Navigator) Previous() billing.Period {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.visible = n.visible.Prev()
	return n.visible
}

// Next moves the cursor forward one calendar month. The mutation is not
// blocked here; callers gate the control with IsNextFuture.
func (n *Navigator) Next() billing.Period {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.visible = n.visible.Next()
	return n.visible
}

// IsNextFuture reports whether advancing the cursor one month would
// pass the true current period, recomputed live so the answer stays
// correct across month boundaries.
func (n *Navigator) IsNextFuture(ctx context.Context) (bool, error) {
	current, err := n.config.ActivePeriod(ctx)
	if err != nil {
		return false, err
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	return n.visible.Next().After(current), nil
}

// ResetToCurrent snaps the cursor to the true current period. Called
// whenever the billing screen regains focus so a stale cursor
// self-corrects after the app sat open across a cycle boundary.
func (n *Navigator) ResetToCurrent(ctx context.Context) error {
	current, err := n.config.ActivePeriod(ctx)
	if err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.visible != current {
		n.logger.Debug().
			Str("from", n.visible.String()).
			Str("to", current.String()).
			Msg("navigator reset to current period")
	}
	n.visible = current
	return nil
}
