// Package vehicle provides the fleet vehicle entity.
package vehicle

import (
	"time"

	"github.com/rotavan/rotavan/pkg/validate"
)

// Vehicle is a bus or van in the operator's fleet.
type Vehicle struct {
	ID        string
	Plate     string `validate:"required,max=10"`
	Model     string `validate:"omitempty,max=60"`
	Seats     int    `validate:"gte=0,lte=99"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the entity's field rules.
func (v Vehicle) Validate() error {
	return validate.Struct(v)
}
