package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rotavan/rotavan/domain/stop"
	"github.com/rotavan/rotavan/ports"
)

// StopStore implements ports.StopStore using SQLite.
type StopStore struct {
	db *DB
}

// NewStopStore creates a new SQLite stop store.
func NewStopStore(db *DB) *StopStore {
	return &StopStore{db: db}
}

// Get retrieves a stop by ID.
func (s *StopStore) Get(ctx context.Context, id string) (stop.Stop, error) {
	if err := s.db.ensureReady(); err != nil {
		return stop.Stop{}, err
	}

	var st stop.Stop
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, scheduled_time, created_at, updated_at
		FROM stops
		WHERE id = ?
	`, id).Scan(&st.ID, &st.Name, &st.ScheduledTime, &st.CreatedAt, &st.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return stop.Stop{}, ErrNotFound
	}
	return st, err
}

// List returns all stops ordered by scheduled time, then name.
func (s *StopStore) List(ctx context.Context) ([]stop.Stop, error) {
	if err := s.db.ensureReady(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, scheduled_time, created_at, updated_at
		FROM stops
		ORDER BY scheduled_time, name COLLATE NOCASE
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stops []stop.Stop
	for rows.Next() {
		var st stop.Stop
		if err := rows.Scan(&st.ID, &st.Name, &st.ScheduledTime, &st.CreatedAt, &st.UpdatedAt); err != nil {
			return nil, err
		}
		stops = append(stops, st)
	}
	return stops, rows.Err()
}

// Create stores a new stop.
func (s *StopStore) Create(ctx context.Context, st stop.Stop) error {
	if err := s.db.ensureReady(); err != nil {
		return err
	}

	now := time.Now().UTC()
	if st.CreatedAt.IsZero() {
		st.CreatedAt = now
	}
	if st.UpdatedAt.IsZero() {
		st.UpdatedAt = now
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stops (id, name, scheduled_time, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, st.ID, st.Name, st.ScheduledTime, st.CreatedAt, st.UpdatedAt)
	if err != nil && isUniqueConstraintError(err) {
		return ErrDuplicate
	}
	return err
}

// Update modifies an existing stop.
func (s *StopStore) Update(ctx context.Context, st stop.Stop) error {
	if err := s.db.ensureReady(); err != nil {
		return err
	}

	st.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE stops
		SET name = ?, scheduled_time = ?, updated_at = ?
		WHERE id = ?
	`, st.Name, st.ScheduledTime, st.UpdatedAt, st.ID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// Delete removes a stop. Students referencing it are detached by the
// ON DELETE SET NULL foreign key.
func (s *StopStore) Delete(ctx context.Context, id string) error {
	if err := s.db.ensureReady(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM stops WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// Ensure interface compliance.
var _ ports.StopStore = (*StopStore)(nil)
