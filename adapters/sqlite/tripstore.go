package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rotavan/rotavan/domain/trip"
	"github.com/rotavan/rotavan/ports"
)

// TripStore implements ports.TripStore using SQLite.
type TripStore struct {
	db *DB
}

// NewTripStore creates a new SQLite trip store.
func NewTripStore(db *DB) *TripStore {
	return &TripStore{db: db}
}

const tripColumns = `id, name, direction, departure_time, weekdays, vehicle_id, created_at, updated_at`

// Get retrieves a trip by ID.
func (s *TripStore) Get(ctx context.Context, id string) (trip.Trip, error) {
	if err := s.db.ensureReady(); err != nil {
		return trip.Trip{}, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+tripColumns+`
		FROM trips
		WHERE id = ?
	`, id)
	return scanTrip(row.Scan)
}

// List returns all trips ordered by departure time.
func (s *TripStore) List(ctx context.Context) ([]trip.Trip, error) {
	if err := s.db.ensureReady(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+tripColumns+`
		FROM trips
		ORDER BY departure_time, name COLLATE NOCASE
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []trip.Trip
	for rows.Next() {
		tr, err := scanTrip(rows.Scan)
		if err != nil {
			return nil, err
		}
		trips = append(trips, tr)
	}
	return trips, rows.Err()
}

// Create stores a new trip.
func (s *TripStore) Create(ctx context.Context, tr trip.Trip) error {
	if err := s.db.ensureReady(); err != nil {
		return err
	}

	now := time.Now().UTC()
	if tr.CreatedAt.IsZero() {
		tr.CreatedAt = now
	}
	if tr.UpdatedAt.IsZero() {
		tr.UpdatedAt = now
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trips (id, name, direction, departure_time, weekdays, vehicle_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, tr.ID, tr.Name, string(tr.Direction), tr.DepartureTime, tr.Weekdays,
		nullString(tr.VehicleID), tr.CreatedAt, tr.UpdatedAt)
	if err != nil && isUniqueConstraintError(err) {
		return ErrDuplicate
	}
	return err
}

// Update modifies an existing trip.
func (s *TripStore) Update(ctx context.Context, tr trip.Trip) error {
	if err := s.db.ensureReady(); err != nil {
		return err
	}

	tr.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE trips
		SET name = ?, direction = ?, departure_time = ?, weekdays = ?, vehicle_id = ?, updated_at = ?
		WHERE id = ?
	`, tr.Name, string(tr.Direction), tr.DepartureTime, tr.Weekdays,
		nullString(tr.VehicleID), tr.UpdatedAt, tr.ID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// Delete removes a trip.
func (s *TripStore) Delete(ctx context.Context, id string) error {
	if err := s.db.ensureReady(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func scanTrip(scan func(...any) error) (trip.Trip, error) {
	var tr trip.Trip
	var direction string
	var vehicleID sql.NullString

	err := scan(&tr.ID, &tr.Name, &direction, &tr.DepartureTime, &tr.Weekdays,
		&vehicleID, &tr.CreatedAt, &tr.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return trip.Trip{}, ErrNotFound
	}
	if err != nil {
		return trip.Trip{}, err
	}

	tr.Direction = trip.Direction(direction)
	tr.VehicleID = vehicleID.String
	return tr, nil
}

// Ensure interface compliance.
var _ ports.TripStore = (*TripStore)(nil)
