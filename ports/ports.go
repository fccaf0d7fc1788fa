// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"errors"
	"time"

	"github.com/rotavan/rotavan/domain/billing"
	"github.com/rotavan/rotavan/domain/reminder"
	"github.com/rotavan/rotavan/domain/stop"
	"github.com/rotavan/rotavan/domain/student"
	"github.com/rotavan/rotavan/domain/trip"
	"github.com/rotavan/rotavan/domain/vehicle"
)

// Sentinel errors shared by all store implementations, so callers can
// match with errors.Is without knowing which adapter is behind a port.
var (
	// ErrNotFound is returned when an entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("already exists")

	// ErrNotReady is returned when a store is used before its backing
	// storage finished initializing.
	ErrNotReady = errors.New("storage not ready")
)

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// IDGenerator generates unique identifiers.
type IDGenerator interface {
	New() string
}

// -----------------------------------------------------------------------------
// Billing Ports
// -----------------------------------------------------------------------------

// ConfigStore persists the singleton billing configuration.
type ConfigStore interface {
	// Get retrieves the configuration. Returns a not-found error when no
	// configuration has been saved yet.
	Get(ctx context.Context) (billing.Config, error)

	// Save creates or replaces the configuration in place.
	Save(ctx context.Context, cfg billing.Config) error
}

// PaymentStatusStore persists per-student, per-period payment status.
type PaymentStatusStore interface {
	// Upsert creates or overwrites the record for (studentID, period).
	// Calling it twice with the same arguments is a no-op the second time.
	Upsert(ctx context.Context, studentID string, period billing.Period, status billing.PaymentStatus) error

	// Get retrieves the record for (studentID, period), or a not-found
	// error when no status was ever set for that key.
	Get(ctx context.Context, studentID string, period billing.Period) (billing.StatusRecord, error)

	// ListForPeriod returns all persisted records for a period, keyed by
	// student ID. Students with no record are absent from the map.
	ListForPeriod(ctx context.Context, period billing.Period) (map[string]billing.PaymentStatus, error)

	// CountByStudent returns how many status records exist for a student.
	CountByStudent(ctx context.Context, studentID string) (int, error)
}

// -----------------------------------------------------------------------------
// Entity Store Ports
// -----------------------------------------------------------------------------

// StudentStore persists students.
type StudentStore interface {
	// Get retrieves a student by ID.
	Get(ctx context.Context, id string) (student.Student, error)

	// List returns all active students ordered by name.
	List(ctx context.Context) ([]student.Student, error)

	// Create stores a new student.
	Create(ctx context.Context, s student.Student) error

	// Update modifies an existing student.
	Update(ctx context.Context, s student.Student) error

	// Delete removes a student. Payment status records for the student
	// are removed with it; none survive reachable by the deleted ID.
	Delete(ctx context.Context, id string) error

	// CountByStop returns active student counts keyed by stop ID.
	CountByStop(ctx context.Context) (map[string]int, error)
}

// StopStore persists route stops.
type StopStore interface {
	Get(ctx context.Context, id string) (stop.Stop, error)
	List(ctx context.Context) ([]stop.Stop, error)
	Create(ctx context.Context, s stop.Stop) error
	Update(ctx context.Context, s stop.Stop) error

	// Delete removes a stop; students assigned to it keep existing with
	// no stop.
	Delete(ctx context.Context, id string) error
}

// VehicleStore persists fleet vehicles.
type VehicleStore interface {
	Get(ctx context.Context, id string) (vehicle.Vehicle, error)
	List(ctx context.Context) ([]vehicle.Vehicle, error)
	Create(ctx context.Context, v vehicle.Vehicle) error
	Update(ctx context.Context, v vehicle.Vehicle) error
	Delete(ctx context.Context, id string) error
}

// TripStore persists scheduled trips.
type TripStore interface {
	Get(ctx context.Context, id string) (trip.Trip, error)
	List(ctx context.Context) ([]trip.Trip, error)
	Create(ctx context.Context, t trip.Trip) error
	Update(ctx context.Context, t trip.Trip) error
	Delete(ctx context.Context, id string) error
}

// ReminderStore persists operator reminders.
type ReminderStore interface {
	Get(ctx context.Context, id string) (reminder.Reminder, error)
	List(ctx context.Context) ([]reminder.Reminder, error)

	// ListUpcoming returns pending reminders with RemindAt inside
	// [now, now+window], soonest first.
	ListUpcoming(ctx context.Context, now time.Time, window time.Duration) ([]reminder.Reminder, error)

	Create(ctx context.Context, r reminder.Reminder) error
	Update(ctx context.Context, r reminder.Reminder) error
	Delete(ctx context.Context, id string) error
}
