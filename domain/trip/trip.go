// Package trip provides the scheduled trip entity.
package trip

import (
	"time"

	"github.com/rotavan/rotavan/pkg/validate"
)

// Direction distinguishes morning pickup runs from dropoff runs.
type Direction string

const (
	DirectionPickup  Direction = "pickup"
	DirectionDropoff Direction = "dropoff"
)

// Weekday bits for the Weekdays mask, Monday first.
const (
	Monday uint8 = 1 << iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Trip is a recurring scheduled run, optionally bound to a vehicle.
type Trip struct {
	ID            string
	Name          string    `validate:"required,max=120"`
	Direction     Direction `validate:"required,oneof=pickup dropoff"`
	DepartureTime string    `validate:"omitempty,datetime=15:04"`
	Weekdays      uint8     `validate:"lte=127"`
	VehicleID     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RunsOn reports whether the trip runs on the given weekday bit.
func (t Trip) RunsOn(day uint8) bool {
	return t.Weekdays&day != 0
}

// Validate checks the entity's field rules.
func (t Trip) Validate() error {
	return validate.Struct(t)
}
