// Package reminder provides the operator reminder entity.
package reminder

import (
	"time"

	"github.com/rotavan/rotavan/pkg/validate"
)

// Reminder is a dated note the operator wants surfaced ahead of time
// (document renewals, maintenance, parent meetings).
type Reminder struct {
	ID        string
	Title     string `validate:"required,max=120"`
	Notes     string `validate:"omitempty,max=500"`
	RemindAt  time.Time
	Done      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DueWithin reports whether the reminder is pending and falls inside
// the window starting at now.
func (r Reminder) DueWithin(now time.Time, window time.Duration) bool {
	if r.Done {
		return false
	}
	return !r.RemindAt.Before(now) && r.RemindAt.Sub(now) <= window
}

// Validate checks the entity's field rules.
func (r Reminder) Validate() error {
	return validate.Struct(r)
}
