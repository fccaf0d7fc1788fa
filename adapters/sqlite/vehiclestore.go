package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rotavan/rotavan/domain/vehicle"
	"github.com/rotavan/rotavan/ports"
)

// VehicleStore implements ports.VehicleStore using SQLite.
type VehicleStore struct {
	db *DB
}

// NewVehicleStore creates a new SQLite vehicle store.
func NewVehicleStore(db *DB) *VehicleStore {
	return &VehicleStore{db: db}
}

// Get retrieves a vehicle by ID.
func (s *VehicleStore) Get(ctx context.Context, id string) (vehicle.Vehicle, error) {
	if err := s.db.ensureReady(); err != nil {
		return vehicle.Vehicle{}, err
	}

	var v vehicle.Vehicle
	err := s.db.QueryRowContext(ctx, `
		SELECT id, plate, model, seats, created_at, updated_at
		FROM vehicles
		WHERE id = ?
	`, id).Scan(&v.ID, &v.Plate, &v.Model, &v.Seats, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return vehicle.Vehicle{}, ErrNotFound
	}
	return v, err
}

// List returns all vehicles ordered by plate.
func (s *VehicleStore) List(ctx context.Context) ([]vehicle.Vehicle, error) {
	if err := s.db.ensureReady(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, plate, model, seats, created_at, updated_at
		FROM vehicles
		ORDER BY plate
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []vehicle.Vehicle
	for rows.Next() {
		var v vehicle.Vehicle
		if err := rows.Scan(&v.ID, &v.Plate, &v.Model, &v.Seats, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

// Create stores a new vehicle.
func (s *VehicleStore) Create(ctx context.Context, v vehicle.Vehicle) error {
	if err := s.db.ensureReady(); err != nil {
		return err
	}

	now := time.Now().UTC()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
	}
	if v.UpdatedAt.IsZero() {
		v.UpdatedAt = now
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vehicles (id, plate, model, seats, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, v.ID, v.Plate, v.Model, v.Seats, v.CreatedAt, v.UpdatedAt)
	if err != nil && isUniqueConstraintError(err) {
		return ErrDuplicate
	}
	return err
}

// Update modifies an existing vehicle.
func (s *VehicleStore) Update(ctx context.Context, v vehicle.Vehicle) error {
	if err := s.db.ensureReady(); err != nil {
		return err
	}

	v.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE vehicles
		SET plate = ?, model = ?, seats = ?, updated_at = ?
		WHERE id = ?
	`, v.Plate, v.Model, v.Seats, v.UpdatedAt, v.ID)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicate
		}
		return err
	}
	return requireRow(result)
}

// Delete removes a vehicle. Trips referencing it are detached by the
// ON DELETE SET NULL foreign key.
func (s *VehicleStore) Delete(ctx context.Context, id string) error {
	if err := s.db.ensureReady(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// Ensure interface compliance.
var _ ports.VehicleStore = (*VehicleStore)(nil)
