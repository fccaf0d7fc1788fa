package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config is the singleton billing configuration: the monthly charge and
// the most recently recorded due date. It is created on first save,
// mutated by rollover and explicit edits, and never deleted.
type Config struct {
	MonthlyAmount decimal.Decimal
	DueDate       time.Time
	UpdatedAt     time.Time
}

// DueDay returns the day-of-month component of the due date.
func (c Config) DueDay() int {
	return c.DueDate.Day()
}

// Expired reports whether the due date lies strictly before today,
// comparing dates only.
func (c Config) Expired(today time.Time) bool {
	return dateOnly(c.DueDate).Before(dateOnly(today))
}

// ActivePeriod returns the billing period open under this config as of
// the given date.
func (c Config) ActivePeriod(today time.Time) Period {
	return ComputePeriod(today, c.DueDay())
}

// NextDueDate advances a due date by one calendar month, preserving the
// day-of-month. Days that do not exist in the target month clamp to its
// last day (Jan 31 -> Feb 28).
func NextDueDate(current time.Time) time.Time {
	year, month := current.Year(), int(current.Month())+1
	if month > 12 {
		month = 1
		year++
	}
	day := current.Day()
	if last := daysIn(year, time.Month(month)); day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, current.Location())
}

func daysIn(year int, m time.Month) int {
	// Day zero of the following month.
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
