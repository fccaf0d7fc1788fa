package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rotavan/rotavan/domain/billing"
	"github.com/rotavan/rotavan/domain/student"
	"github.com/rotavan/rotavan/ports"
)

// StudentStatus joins a student's profile with their effective payment
// status for one billing period.
type StudentStatus struct {
	Student student.Student
	Status  billing.PaymentStatus
}

// RemovalRequest describes what removing a student will destroy. The
// caller shows it to the user and calls ConfirmRemoval to proceed;
// requesting has no side effects.
type RemovalRequest struct {
	StudentID     string
	StudentName   string
	StatusRecords int
}

// LedgerMetrics is the subset of metrics the ledger reports.
type LedgerMetrics interface {
	StatusUpdated()
}

// Ledger is the payment status ledger: it answers "who paid for which
// month" and keeps per-period records in sync with the student roster.
type Ledger struct {
	students ports.StudentStore
	payments ports.PaymentStatusStore
	config   *BillingConfigService
	idgen    ports.IDGenerator
	logger   zerolog.Logger
	metrics  LedgerMetrics
}

// NewLedger creates a new payment ledger service. metrics may be nil.
func NewLedger(
	students ports.StudentStore,
	payments ports.PaymentStatusStore,
	config *BillingConfigService,
	idgen ports.IDGenerator,
	logger zerolog.Logger,
	metrics LedgerMetrics,
) *Ledger {
	return &Ledger{
		students: students,
		payments: payments,
		config:   config,
		idgen:    idgen,
		logger:   logger.With().Str("service", "ledger").Logger(),
		metrics:  metrics,
	}
}

// StudentsWithStatus returns every active student joined with their
// status for the period. Students without a persisted record read as
// unpaid; the default is not written back.
func (l *Ledger) StudentsWithStatus(ctx context.Context, period billing.Period) ([]StudentStatus, error) {
	students, err := l.students.List(ctx)
	if err != nil {
		return nil, err
	}

	recorded, err := l.payments.ListForPeriod(ctx, period)
	if err != nil {
		return nil, err
	}

	out := make([]StudentStatus, 0, len(students))
	for _, st := range students {
		status, ok := recorded[st.ID]
		if !ok {
			status = billing.StatusUnpaid
		}
		out = append(out, StudentStatus{Student: st, Status: status})
	}
	return out, nil
}

// SetStatus creates or overwrites the status record for the student and
// period. Idempotent.
func (l *Ledger) SetStatus(ctx context.Context, studentID string, period billing.Period, status billing.PaymentStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if _, err := l.students.Get(ctx, studentID); err != nil {
		return err
	}

	if err := l.payments.Upsert(ctx, studentID, period, status); err != nil {
		return err
	}

	if l.metrics != nil {
		l.metrics.StatusUpdated()
	}
	l.logger.Debug().
		Str("student_id", studentID).
		Str("period", period.String()).
		Str("status", string(status)).
		Msg("payment status updated")
	return nil
}

// StudentInput carries the editable profile fields.
type StudentInput struct {
	Name   string
	CPF    string
	Phone  string
	StopID string
}

// AddStudent creates a student and seeds a status record for the
// billing period active at creation time.
func (l *Ledger) AddStudent(ctx context.Context, in StudentInput, initial billing.PaymentStatus) (student.Student, error) {
	if !initial.Valid() {
		return student.Student{}, fmt.Errorf("%w: %q", ErrInvalidStatus, initial)
	}

	st := student.Student{
		ID:     l.idgen.New(),
		Name:   in.Name,
		CPF:    in.CPF,
		Phone:  in.Phone,
		StopID: in.StopID,
		Active: true,
	}
	if err := st.Validate(); err != nil {
		return student.Student{}, err
	}

	period, err := l.config.ActivePeriod(ctx)
	if err != nil {
		return student.Student{}, err
	}

	if err := l.students.Create(ctx, st); err != nil {
		return student.Student{}, err
	}
	if err := l.payments.Upsert(ctx, st.ID, period, initial); err != nil {
		return student.Student{}, err
	}

	l.logger.Info().
		Str("student_id", st.ID).
		Str("period", period.String()).
		Msg("student added")
	return st, nil
}

// UpdateStudent modifies an existing student's profile.
func (l *Ledger) UpdateStudent(ctx context.Context, id string, in StudentInput) (student.Student, error) {
	st, err := l.students.Get(ctx, id)
	if err != nil {
		return student.Student{}, err
	}

	st.Name = in.Name
	st.CPF = in.CPF
	st.Phone = in.Phone
	st.StopID = in.StopID
	if err := st.Validate(); err != nil {
		return student.Student{}, err
	}

	if err := l.students.Update(ctx, st); err != nil {
		return student.Student{}, err
	}
	return st, nil
}

// RequestRemoval returns a descriptor of what ConfirmRemoval would
// destroy, without destroying anything.
func (l *Ledger) RequestRemoval(ctx context.Context, id string) (RemovalRequest, error) {
	st, err := l.students.Get(ctx, id)
	if err != nil {
		return RemovalRequest{}, err
	}

	count, err := l.payments.CountByStudent(ctx, id)
	if err != nil {
		return RemovalRequest{}, err
	}

	return RemovalRequest{
		StudentID:     st.ID,
		StudentName:   st.Name,
		StatusRecords: count,
	}, nil
}

// ConfirmRemoval deletes the student and, through the store's cascade,
// every status record keyed by their ID.
func (l *Ledger) ConfirmRemoval(ctx context.Context, id string) error {
	if err := l.students.Delete(ctx, id); err != nil {
		return err
	}
	l.logger.Info().Str("student_id", id).Msg("student removed")
	return nil
}
