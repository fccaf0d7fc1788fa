package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rotavan/rotavan/domain/billing"
)

func TestNextDueDate(t *testing.T) {
	tests := []struct {
		name    string
		current time.Time
		want    time.Time
	}{
		{"mid month", date(2025, time.January, 15), date(2025, time.February, 15)},
		{"december rolls year", date(2025, time.December, 10), date(2026, time.January, 10)},
		{"jan 31 clamps to feb 28", date(2025, time.January, 31), date(2025, time.February, 28)},
		{"jan 31 leap year clamps to feb 29", date(2024, time.January, 31), date(2024, time.February, 29)},
		{"mar 31 clamps to apr 30", date(2025, time.March, 31), date(2025, time.April, 30)},
		{"day preserved after clamp month", date(2025, time.February, 28), date(2025, time.March, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := billing.NextDueDate(tt.current); !got.Equal(tt.want) {
				t.Errorf("NextDueDate(%v) = %v, want %v",
					tt.current.Format("2006-01-02"), got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
		})
	}
}

func TestConfig_Expired(t *testing.T) {
	cfg := billing.Config{
		MonthlyAmount: decimal.NewFromInt(150),
		DueDate:       date(2025, time.January, 15),
	}

	if !cfg.Expired(date(2025, time.February, 1)) {
		t.Error("due date in the past should be expired")
	}
	if cfg.Expired(date(2025, time.January, 10)) {
		t.Error("due date in the future should not be expired")
	}
	if cfg.Expired(date(2025, time.January, 15)) {
		t.Error("due date today should not be expired")
	}

	// Time-of-day must not matter.
	lateToday := time.Date(2025, time.January, 15, 23, 50, 0, 0, time.UTC)
	if cfg.Expired(lateToday) {
		t.Error("same calendar day should not be expired regardless of clock time")
	}
}

func TestConfig_ActivePeriod(t *testing.T) {
	cfg := billing.Config{DueDate: date(2025, time.March, 20)}

	if got := cfg.ActivePeriod(date(2025, time.March, 25)); got != "2025-04" {
		t.Errorf("past due day: got %s", got)
	}
	if got := cfg.ActivePeriod(date(2025, time.March, 10)); got != "2025-04" {
		t.Errorf("before due day: got %s", got)
	}
}

func TestPaymentStatus_Valid(t *testing.T) {
	if !billing.StatusPaid.Valid() || !billing.StatusUnpaid.Valid() {
		t.Error("known statuses should be valid")
	}
	if billing.PaymentStatus("pending").Valid() {
		t.Error("unknown status should be invalid")
	}
}
