package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rotavan/rotavan/domain/student"
	"github.com/rotavan/rotavan/ports"
)

// StudentStore is an in-memory implementation of ports.StudentStore.
// Deleting a student also drops their payment records when a
// PaymentStatusStore is attached, mirroring the SQLite cascade.
type StudentStore struct {
	mu       sync.RWMutex
	students map[string]student.Student
	payments *PaymentStatusStore
}

// NewStudentStore creates a new in-memory student store. payments may
// be nil when cascade behavior is not under test.
func NewStudentStore(payments *PaymentStatusStore) *StudentStore {
	return &StudentStore{
		students: make(map[string]student.Student),
		payments: payments,
	}
}

// Get retrieves a student by ID.
func (s *StudentStore) Get(ctx context.Context, id string) (student.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.students[id]
	if !ok {
		return student.Student{}, ErrNotFound
	}
	return st, nil
}

// List returns all active students ordered by name.
func (s *StudentStore) List(ctx context.Context) ([]student.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []student.Student
	for _, st := range s.students {
		if st.Active {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// Create stores a new student.
func (s *StudentStore) Create(ctx context.Context, st student.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.students[st.ID]; exists {
		return ports.ErrDuplicate
	}
	s.students[st.ID] = st
	return nil
}

// Update modifies an existing student.
func (s *StudentStore) Update(ctx context.Context, st student.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[st.ID]; !ok {
		return ErrNotFound
	}
	s.students[st.ID] = st
	return nil
}

// Delete removes a student and cascades their payment records.
func (s *StudentStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[id]; !ok {
		return ErrNotFound
	}
	delete(s.students, id)
	if s.payments != nil {
		s.payments.deleteByStudent(id)
	}
	return nil
}

// CountByStop returns active student counts keyed by stop ID.
func (s *StudentStore) CountByStop(ctx context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, st := range s.students {
		if st.Active && st.StopID != "" {
			counts[st.StopID]++
		}
	}
	return counts, nil
}

// Ensure interface compliance.
var _ ports.StudentStore = (*StudentStore)(nil)
