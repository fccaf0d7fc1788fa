package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rotavan/rotavan/adapters/clock"
	"github.com/rotavan/rotavan/adapters/memory"
	"github.com/rotavan/rotavan/app"
	"github.com/rotavan/rotavan/domain/billing"
)

func setupNavigator(t *testing.T, now time.Time) (*app.Navigator, *clock.Fake) {
	t.Helper()

	fake := clock.NewFake(now)
	cfgSvc := app.NewBillingConfigService(memory.NewConfigStore(), fake, zerolog.Nop())
	err := cfgSvc.Save(context.Background(), decimal.NewFromInt(150),
		time.Date(now.Year(), now.Month(), 20, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("save config: %v", err)
	}

	nav, err := app.NewNavigator(context.Background(), cfgSvc, zerolog.Nop())
	if err != nil {
		t.Fatalf("new navigator: %v", err)
	}
	return nav, fake
}

func TestNavigator_StartsAtCurrentPeriod(t *testing.T) {
	nav, _ := setupNavigator(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))

	if got := nav.Visible(); got != "2025-04" {
		t.Errorf("visible = %s, want 2025-04", got)
	}
}

func TestNavigator_RoundTripAcrossYearBoundary(t *testing.T) {
	nav, _ := setupNavigator(t, time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC))

	// Anchored at 2025-03; three steps back crosses into 2024.
	want := []billing.Period{"2025-02", "2025-01", "2024-12"}
	for i, w := range want {
		if got := nav.Previous(); got != w {
			t.Fatalf("previous %d = %s, want %s", i+1, got, w)
		}
	}
	for i := 0; i < 3; i++ {
		nav.Next()
	}
	if got := nav.Visible(); got != "2025-03" {
		t.Errorf("after round trip visible = %s, want 2025-03", got)
	}
}

func TestNavigator_IsNextFuture(t *testing.T) {
	nav, _ := setupNavigator(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	// At the current period the next month is the future.
	future, err := nav.IsNextFuture(ctx)
	if err != nil {
		t.Fatalf("IsNextFuture: %v", err)
	}
	if !future {
		t.Error("next should be future at the current period")
	}

	nav.Previous()
	future, err = nav.IsNextFuture(ctx)
	if err != nil {
		t.Fatalf("IsNextFuture: %v", err)
	}
	if future {
		t.Error("next should be allowed one month back")
	}
}

func TestNavigator_MonthBoundaryUnlocksNext(t *testing.T) {
	nav, fake := setupNavigator(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	if future, _ := nav.IsNextFuture(ctx); !future {
		t.Fatal("next should start out blocked")
	}

	// A month passes while the cursor sits still. The answer is
	// recomputed against the live clock, so next unlocks.
	fake.Set(time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC))
	future, err := nav.IsNextFuture(ctx)
	if err != nil {
		t.Fatalf("IsNextFuture: %v", err)
	}
	if future {
		t.Error("next should unlock after the real cycle advances")
	}
}

func TestNavigator_ResetSnapsToCurrent(t *testing.T) {
	nav, fake := setupNavigator(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	nav.Previous()
	nav.Previous()
	fake.Set(time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC))

	if err := nav.ResetToCurrent(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got := nav.Visible(); got != "2025-06" {
		t.Errorf("visible after reset = %s, want 2025-06", got)
	}
}
