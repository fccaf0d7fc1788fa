package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rotavan/rotavan/adapters/clock"
	"github.com/rotavan/rotavan/adapters/memory"
	"github.com/rotavan/rotavan/app"
	"github.com/rotavan/rotavan/domain/billing"
	"github.com/rotavan/rotavan/ports"
)

type rolloverResults struct {
	results []string
}

func (m *rolloverResults) RolloverRan(result string) {
	m.results = append(m.results, result)
}

func seedConfig(t *testing.T, store ports.ConfigStore, dueDate time.Time) {
	t.Helper()
	err := store.Save(context.Background(), billing.Config{
		MonthlyAmount: decimal.NewFromInt(150),
		DueDate:       dueDate,
		UpdatedAt:     dueDate,
	})
	if err != nil {
		t.Fatalf("seed config: %v", err)
	}
}

func TestRollover_AdvancesExpiredDueDate(t *testing.T) {
	store := memory.NewConfigStore()
	seedConfig(t, store, time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC))
	fake := clock.NewFake(time.Date(2025, time.February, 1, 8, 30, 0, 0, time.UTC))
	results := &rolloverResults{}

	r := app.NewRollover(store, fake, zerolog.Nop(), results)
	if !r.Run(context.Background()) {
		t.Fatal("expired due date should advance")
	}

	cfg, err := store.Get(context.Background())
	if err != nil {
		t.Fatalf("get config: %v", err)
	}
	if got := cfg.DueDate.Format("2006-01-02"); got != "2025-02-15" {
		t.Errorf("due date = %s, want 2025-02-15", got)
	}
	if len(results.results) != 1 || results.results[0] != "advanced" {
		t.Errorf("results = %v, want [advanced]", results.results)
	}
}

func TestRollover_NoopBeforeDueDate(t *testing.T) {
	store := memory.NewConfigStore()
	seedConfig(t, store, time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC))
	fake := clock.NewFake(time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC))

	r := app.NewRollover(store, fake, zerolog.Nop(), nil)
	if r.Run(context.Background()) {
		t.Fatal("future due date should not advance")
	}

	cfg, err := store.Get(context.Background())
	if err != nil {
		t.Fatalf("get config: %v", err)
	}
	if got := cfg.DueDate.Format("2006-01-02"); got != "2025-01-15" {
		t.Errorf("due date = %s, want unchanged 2025-01-15", got)
	}
}

func TestRollover_NoopOnDueDay(t *testing.T) {
	store := memory.NewConfigStore()
	seedConfig(t, store, time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC))
	fake := clock.NewFake(time.Date(2025, time.January, 15, 23, 59, 0, 0, time.UTC))

	r := app.NewRollover(store, fake, zerolog.Nop(), nil)
	if r.Run(context.Background()) {
		t.Fatal("the due day itself is not expired")
	}
}

func TestRollover_SkipsWhenUnconfigured(t *testing.T) {
	store := memory.NewConfigStore()
	fake := clock.NewFake(time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC))
	results := &rolloverResults{}

	r := app.NewRollover(store, fake, zerolog.Nop(), results)
	if r.Run(context.Background()) {
		t.Fatal("missing config should be a no-op")
	}
	if len(results.results) != 1 || results.results[0] != "skipped" {
		t.Errorf("results = %v, want [skipped]", results.results)
	}
}

type failingConfigStore struct{}

func (failingConfigStore) Get(ctx context.Context) (billing.Config, error) {
	return billing.Config{}, errors.New("disk on fire")
}

func (failingConfigStore) Save(ctx context.Context, cfg billing.Config) error {
	return errors.New("disk on fire")
}

func TestRollover_SwallowsStoreErrors(t *testing.T) {
	fake := clock.NewFake(time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC))
	results := &rolloverResults{}

	r := app.NewRollover(failingConfigStore{}, fake, zerolog.Nop(), results)
	if r.Run(context.Background()) {
		t.Fatal("a failing store must not report an advance")
	}
	if len(results.results) != 1 || results.results[0] != "error" {
		t.Errorf("results = %v, want [error]", results.results)
	}
}

func TestRollover_SingleMonthAdvancePerRun(t *testing.T) {
	store := memory.NewConfigStore()
	// Three months stale; one run advances one month only.
	seedConfig(t, store, time.Date(2024, time.November, 15, 0, 0, 0, 0, time.UTC))
	fake := clock.NewFake(time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC))

	r := app.NewRollover(store, fake, zerolog.Nop(), nil)
	if !r.Run(context.Background()) {
		t.Fatal("stale due date should advance")
	}

	cfg, err := store.Get(context.Background())
	if err != nil {
		t.Fatalf("get config: %v", err)
	}
	if got := cfg.DueDate.Format("2006-01-02"); got != "2024-12-15" {
		t.Errorf("due date = %s, want 2024-12-15", got)
	}
}
