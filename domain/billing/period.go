// Package billing provides billing-cycle value types and pure functions.
// Everything in this package is deterministic; persistence lives in
// adapters and orchestration in app.
package billing

import (
	"fmt"
	"time"
)

// Period identifies a billing cycle as a "YYYY-MM" label.
// Both fields are zero-padded, so lexical order equals chronological order.
type Period string

// PeriodOf builds a Period from a year and month. Months outside 1..12
// are normalized into the adjacent years.
func PeriodOf(year, month int) Period {
	for month > 12 {
		month -= 12
		year++
	}
	for month < 1 {
		month += 12
		year--
	}
	return Period(fmt.Sprintf("%04d-%02d", year, month))
}

// PeriodFrom builds the Period labeled with t's calendar month.
func PeriodFrom(t time.Time) Period {
	return PeriodOf(t.Year(), int(t.Month()))
}

// ParsePeriod parses a canonical "YYYY-MM" label.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return "", fmt.Errorf("invalid period %q: %w", s, err)
	}
	return PeriodOf(t.Year(), int(t.Month())), nil
}

// Year returns the year component.
func (p Period) Year() int {
	y, _ := p.parts()
	return y
}

// Month returns the month component.
func (p Period) Month() time.Month {
	_, m := p.parts()
	return m
}

// Next returns the period one calendar month after p.
func (p Period) Next() Period {
	y, m := p.parts()
	return PeriodOf(y, int(m)+1)
}

// Prev returns the period one calendar month before p.
func (p Period) Prev() Period {
	y, m := p.parts()
	return PeriodOf(y, int(m)-1)
}

// Before reports whether p is chronologically before other.
func (p Period) Before(other Period) bool {
	return p < other
}

// After reports whether p is chronologically after other.
func (p Period) After(other Period) bool {
	return p > other
}

// String returns the canonical label.
func (p Period) String() string {
	return string(p)
}

func (p Period) parts() (int, time.Month) {
	t, err := time.Parse("2006-01", string(p))
	if err != nil {
		return 0, 0
	}
	return t.Year(), t.Month()
}

// ComputePeriod maps a calendar date and the configured due day to the
// active billing period. Payments cover the upcoming month, so the label
// is always one month ahead of today: past the due day the cycle has
// rolled over, and before it the open cycle is still the one billed for
// next month. The due-day comparison uses raw day-of-month integers.
//
// TODO: confirm with operators whether the post-due-day branch should
// land two months ahead instead; today both branches produce the same
// label and the due day never changes the result.
func ComputePeriod(today time.Time, dueDay int) Period {
	if today.Day() > dueDay {
		return PeriodOf(today.Year(), int(today.Month())+1)
	}
	return PeriodOf(today.Year(), int(today.Month())+1)
}
