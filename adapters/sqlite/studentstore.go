package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rotavan/rotavan/domain/student"
	"github.com/rotavan/rotavan/ports"
)

// StudentStore implements ports.StudentStore using SQLite.
type StudentStore struct {
	db *DB
}

// NewStudentStore creates a new SQLite student store.
func NewStudentStore(db *DB) *StudentStore {
	return &StudentStore{db: db}
}

const studentColumns = `id, name, cpf, phone, stop_id, active, created_at, updated_at`

// Get retrieves a student by ID.
func (s *StudentStore) Get(ctx context.Context, id string) (student.Student, error) {
	if err := s.db.ensureReady(); err != nil {
		return student.Student{}, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+studentColumns+`
		FROM students
		WHERE id = ?
	`, id)
	return scanStudent(row.Scan)
}

// List returns all active students ordered by name.
func (s *StudentStore) List(ctx context.Context) ([]student.Student, error) {
	if err := s.db.ensureReady(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+studentColumns+`
		FROM students
		WHERE active = 1
		ORDER BY name COLLATE NOCASE
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []student.Student
	for rows.Next() {
		st, err := scanStudent(rows.Scan)
		if err != nil {
			return nil, err
		}
		students = append(students, st)
	}
	return students, rows.Err()
}

// Create stores a new student.
func (s *StudentStore) Create(ctx context.Context, st student.Student) error {
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
		INSERT INTO students (id, name, cpf, phone, stop_id, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, st.ID, st.Name, nullString(st.CPF), nullString(st.Phone), nullString(st.StopID),
		st.Active, st.CreatedAt, st.UpdatedAt)

	if err != nil && isUniqueConstraintError(err) {
		return ErrDuplicate
	}
	return err
}

// Update modifies an existing student.
func (s *StudentStore) Update(ctx context.Context, st student.Student) error {
	if err := s.db.ensureReady(); err != nil {
		return err
	}

	st.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE students
		SET name = ?, cpf = ?, phone = ?, stop_id = ?, active = ?, updated_at = ?
		WHERE id = ?
	`, st.Name, nullString(st.CPF), nullString(st.Phone), nullString(st.StopID),
		st.Active, st.UpdatedAt, st.ID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// Delete removes a student. The payment_statuses foreign key cascades,
// so no status record survives reachable by the deleted ID.
func (s *StudentStore) Delete(ctx context.Context, id string) error {
	if err := s.db.ensureReady(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM students WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// CountByStop returns active student counts keyed by stop ID.
func (s *StudentStore) CountByStop(ctx context.Context) (map[string]int, error) {
	if err := s.db.ensureReady(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT stop_id, COUNT(*)
		FROM students
		WHERE active = 1 AND stop_id IS NOT NULL
		GROUP BY stop_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var stopID string
		var n int
		if err := rows.Scan(&stopID, &n); err != nil {
			return nil, err
		}
		counts[stopID] = n
	}
	return counts, rows.Err()
}

func scanStudent(scan func(...any) error) (student.Student, error) {
	var st student.Student
	var cpf, phone, stopID sql.NullString

	err := scan(&st.ID, &st.Name, &cpf, &phone, &stopID, &st.Active, &st.CreatedAt, &st.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return student.Student{}, ErrNotFound
	}
	if err != nil {
		return student.Student{}, err
	}

	st.CPF = cpf.String
	st.Phone = phone.String
	st.StopID = stopID.String
	return st, nil
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Ensure interface compliance.
var _ ports.StudentStore = (*StudentStore)(nil)
