package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rotavan/rotavan/domain/billing"
	"github.com/rotavan/rotavan/ports"
)

// PaymentStatusStore implements ports.PaymentStatusStore using SQLite.
// The (student_id, period) primary key plus ON CONFLICT upsert keeps at
// most one row per key.
type PaymentStatusStore struct {
	db *DB
}

// NewPaymentStatusStore creates a new SQLite payment status store.
func NewPaymentStatusStore(db *DB) *PaymentStatusStore {
	return &PaymentStatusStore{db: db}
}

// Upsert creates or overwrites the record for (studentID, period).
func (s *PaymentStatusStore) Upsert(ctx context.Context, studentID string, period billing.Period, status billing.PaymentStatus) error {
	if err := s.db.ensureReady(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payment_statuses (student_id, period, status, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (student_id, period) DO UPDATE SET
			status = excluded.status,
			updated_at = excluded.updated_at
	`, studentID, string(period), string(status), time.Now().UTC())
	return err
}

// Get retrieves the record for (studentID, period).
func (s *PaymentStatusStore) Get(ctx context.Context, studentID string, period billing.Period) (billing.StatusRecord, error) {
	if err := s.db.ensureReady(); err != nil {
		return billing.StatusRecord{}, err
	}

	var rec billing.StatusRecord
	var p, status string
	err := s.db.QueryRowContext(ctx, `
		SELECT student_id, period, status
		FROM payment_statuses
		WHERE student_id = ? AND period = ?
	`, studentID, string(period)).Scan(&rec.StudentID, &p, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return billing.StatusRecord{}, ErrNotFound
	}
	if err != nil {
		return billing.StatusRecord{}, err
	}

	rec.Period = billing.Period(p)
	rec.Status = billing.PaymentStatus(status)
	return rec, nil
}

// ListForPeriod returns all persisted records for a period keyed by
// student ID.
func (s *PaymentStatusStore) ListForPeriod(ctx context.Context, period billing.Period) (map[string]billing.PaymentStatus, error) {
	if err := s.db.ensureReady(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT student_id, status
		FROM payment_statuses
		WHERE period = ?
	`, string(period))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	statuses := make(map[string]billing.PaymentStatus)
	for rows.Next() {
		var id, status string
		if err := rows.Scan(&id, &status); err != nil {
			return nil, err
		}
		statuses[id] = billing.PaymentStatus(status)
	}
	return statuses, rows.Err()
}

// CountByStudent returns how many status records exist for a student.
func (s *PaymentStatusStore) CountByStudent(ctx context.Context, studentID string) (int, error) {
	if err := s.db.ensureReady(); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM payment_statuses WHERE student_id = ?
	`, studentID).Scan(&count)
	return count, err
}

// Ensure interface compliance.
var _ ports.PaymentStatusStore = (*PaymentStatusStore)(nil)
