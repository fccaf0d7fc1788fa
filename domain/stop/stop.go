// Package stop provides the pickup/dropoff stop entity.
package stop

import (
	"time"

	"github.com/rotavan/rotavan/pkg/validate"
)

// Stop is a named point on the operator's route with a scheduled
// passing time.
type Stop struct {
	ID            string
	Name          string `validate:"required,max=120"`
	ScheduledTime string `validate:"omitempty,datetime=15:04"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// WithCount joins a stop with the number of active students assigned
// to it.
type WithCount struct {
	Stop
	StudentCount int
}

// Validate checks the entity's field rules.
func (s Stop) Validate() error {
	return validate.Struct(s)
}
