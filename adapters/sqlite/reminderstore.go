package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rotavan/rotavan/domain/reminder"
	"github.com/rotavan/rotavan/ports"
)

// ReminderStore implements ports.ReminderStore using SQLite.
type ReminderStore struct {
	db *DB
}

// NewReminderStore creates a new SQLite reminder store.
func NewReminderStore(db *DB) *ReminderStore {
	return &ReminderStore{db: db}
}

const reminderColumns = `id, title, notes, remind_at, done, created_at, updated_at`

// Get retrieves a reminder by ID.
func (s *ReminderStore) Get(ctx context.Context, id string) (reminder.Reminder, error) {
	if err := s.db.ensureReady(); err != nil {
		return reminder.Reminder{}, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders
		WHERE id = ?
	`, id)
	return scanReminder(row.Scan)
}

// List returns all reminders, soonest first.
func (s *ReminderStore) List(ctx context.Context) ([]reminder.Reminder, error) {
	if err := s.db.ensureReady(); err != nil {
		return nil, err
	}

	return s.queryReminders(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders
		ORDER BY remind_at
	`)
}

// ListUpcoming returns pending reminders inside [now, now+window].
func (s *ReminderStore) ListUpcoming(ctx context.Context, now time.Time, window time.Duration) ([]reminder.Reminder, error) {
	if err := s.db.ensureReady(); err != nil {
		return nil, err
	}

	return s.queryReminders(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders
		WHERE done = 0 AND remind_at >= ? AND remind_at <= ?
		ORDER BY remind_at
	`, now.UTC(), now.Add(window).UTC())
}

// Create stores a new reminder.
func (s *ReminderStore) Create(ctx context.Context, r reminder.Reminder) error {
	if err := s.db.ensureReady(); err != nil {
		return err
	}

	now := time.Now().UTC()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = now
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reminders (id, title, notes, remind_at, done, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Title, r.Notes, r.RemindAt.UTC(), r.Done, r.CreatedAt, r.UpdatedAt)
	if err != nil && isUniqueConstraintError(err) {
		return ErrDuplicate
	}
	return err
}

// Update modifies an existing reminder.
func (s *ReminderStore) Update(ctx context.Context, r reminder.Reminder) error {
	if err := s.db.ensureReady(); err != nil {
		return err
	}

	r.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE reminders
		SET title = ?, notes = ?, remind_at = ?, done = ?, updated_at = ?
		WHERE id = ?
	`, r.Title, r.Notes, r.RemindAt.UTC(), r.Done, r.UpdatedAt, r.ID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// Delete removes a reminder.
func (s *ReminderStore) Delete(ctx context.Context, id string) error {
	if err := s.db.ensureReady(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (s *ReminderStore) queryReminders(ctx context.Context, query string, args ...any) ([]reminder.Reminder, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []reminder.Reminder
	for rows.Next() {
		r, err := scanReminder(rows.Scan)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

func scanReminder(scan func(...any) error) (reminder.Reminder, error) {
	var r reminder.Reminder
	err := scan(&r.ID, &r.Title, &r.Notes, &r.RemindAt, &r.Done, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return reminder.Reminder{}, ErrNotFound
	}
	return r, err
}

// Ensure interface compliance.
var _ ports.ReminderStore = (*ReminderStore)(nil)
