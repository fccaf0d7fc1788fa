package memory

import (
	"context"
	"sync"

	"github.com/rotavan/rotavan/domain/billing"
	"github.com/rotavan/rotavan/ports"
)

type statusKey struct {
	studentID string
	period    billing.Period
}

// PaymentStatusStore is an in-memory implementation of
// ports.PaymentStatusStore.
type PaymentStatusStore struct {
	mu      sync.RWMutex
	records map[statusKey]billing.PaymentStatus
}

// NewPaymentStatusStore creates a new in-memory payment status store.
func NewPaymentStatusStore() *PaymentStatusStore {
	return &PaymentStatusStore{
		records: make(map[statusKey]billing.PaymentStatus),
	}
}

// Upsert creates or overwrites the record for (studentID, period).
func (s *PaymentStatusStore) Upsert(ctx context.Context, studentID string, period billing.Period, status billing.PaymentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[statusKey{studentID, period}] = status
	return nil
}

// Get retrieves the record for (studentID, period).
func (s *PaymentStatusStore) Get(ctx context.Context, studentID string, period billing.Period) (billing.StatusRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status, ok := s.records[statusKey{studentID, period}]
	if !ok {
		return billing.StatusRecord{}, ErrNotFound
	}
	return billing.StatusRecord{StudentID: studentID, Period: period, Status: status}, nil
}

// ListForPeriod returns all records for a period keyed by student ID.
func (s *PaymentStatusStore) ListForPeriod(ctx context.Context, period billing.Period) (map[string]billing.PaymentStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]billing.PaymentStatus)
	for k, status := range s.records {
		if k.period == period {
			out[k.studentID] = status
		}
	}
	return out, nil
}

// CountByStudent returns how many status records exist for a student.
func (s *PaymentStatusStore) CountByStudent(ctx context.Context, studentID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for k := range s.records {
		if k.studentID == studentID {
			count++
		}
	}
	return count, nil
}

func (s *PaymentStatusStore) deleteByStudent(studentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k := range s.records {
		if k.studentID == studentID {
			delete(s.records, k)
		}
	}
}

// Ensure interface compliance.
var _ ports.PaymentStatusStore = (*PaymentStatusStore)(nil)
