package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rotavan/rotavan/adapters/clock"
	"github.com/rotavan/rotavan/adapters/idgen"
	"github.com/rotavan/rotavan/adapters/memory"
	"github.com/rotavan/rotavan/app"
	"github.com/rotavan/rotavan/domain/billing"
	"github.com/rotavan/rotavan/ports"
)

type fixture struct {
	ledger   *app.Ledger
	config   *app.BillingConfigService
	students *memory.StudentStore
	payments *memory.PaymentStatusStore
	clock    *clock.Fake
}

// March 25 with due day 20: the active period is 2025-04.
var testNow = time.Date(2025, time.March, 25, 10, 0, 0, 0, time.UTC)

func setupLedger(t *testing.T) fixture {
	t.Helper()

	fake := clock.NewFake(testNow)
	payments := memory.NewPaymentStatusStore()
	students := memory.NewStudentStore(payments)
	configs := memory.NewConfigStore()

	cfgSvc := app.NewBillingConfigService(configs, fake, zerolog.Nop())
	err := cfgSvc.Save(context.Background(), decimal.NewFromInt(150),
		time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("save config: %v", err)
	}

	ledger := app.NewLedger(students, payments, cfgSvc, idgen.NewSequential("st-"), zerolog.Nop(), nil)
	return fixture{
		ledger:   ledger,
		config:   cfgSvc,
		students: students,
		payments: payments,
		clock:    fake,
	}
}

func TestLedger_AddStudentSeedsCurrentPeriod(t *testing.T) {
	f := setupLedger(t)
	ctx := context.Background()

	st, err := f.ledger.AddStudent(ctx, app.StudentInput{Name: "Ana Souza"}, billing.StatusUnpaid)
	if err != nil {
		t.Fatalf("add student: %v", err)
	}

	list, err := f.ledger.StudentsWithStatus(ctx, "2025-04")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d students, want 1", len(list))
	}
	if list[0].Student.ID != st.ID {
		t.Errorf("id = %s, want %s", list[0].Student.ID, st.ID)
	}
	if list[0].Status != billing.StatusUnpaid {
		t.Errorf("status = %s, want unpaid", list[0].Status)
	}

	// The seed record is persisted, not a read-time default.
	if _, err := f.payments.Get(ctx, st.ID, "2025-04"); err != nil {
		t.Errorf("seeded record missing: %v", err)
	}
}

func TestLedger_MissingRecordReadsUnpaidWithoutPersisting(t *testing.T) {
	f := setupLedger(t)
	ctx := context.Background()

	st, err := f.ledger.AddStudent(ctx, app.StudentInput{Name: "Bruno"}, billing.StatusPaid)
	if err != nil {
		t.Fatalf("add student: %v", err)
	}

	// A past period the student has no record for.
	list, err := f.ledger.StudentsWithStatus(ctx, "2025-01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list[0].Status != billing.StatusUnpaid {
		t.Errorf("status = %s, want unpaid default", list[0].Status)
	}

	if _, err := f.payments.Get(ctx, st.ID, "2025-01"); !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("default must not be persisted, got %v", err)
	}
}

func TestLedger_SetStatusIdempotent(t *testing.T) {
	f := setupLedger(t)
	ctx := context.Background()

	st, err := f.ledger.AddStudent(ctx, app.StudentInput{Name: "Carla"}, billing.StatusUnpaid)
	if err != nil {
		t.Fatalf("add student: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := f.ledger.SetStatus(ctx, st.ID, "2025-04", billing.StatusPaid); err != nil {
			t.Fatalf("set status %d: %v", i, err)
		}
	}

	count, err := f.payments.CountByStudent(ctx, st.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("records = %d, want 1", count)
	}

	list, err := f.ledger.StudentsWithStatus(ctx, "2025-04")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list[0].Status != billing.StatusPaid {
		t.Errorf("status = %s, want paid", list[0].Status)
	}
}

func TestLedger_SetStatusValidation(t *testing.T) {
	f := setupLedger(t)
	ctx := context.Background()

	st, err := f.ledger.AddStudent(ctx, app.StudentInput{Name: "Dani"}, billing.StatusUnpaid)
	if err != nil {
		t.Fatalf("add student: %v", err)
	}

	if err := f.ledger.SetStatus(ctx, st.ID, "2025-04", "pending"); !errors.Is(err, app.ErrInvalidStatus) {
		t.Errorf("invalid status: got %v, want ErrInvalidStatus", err)
	}
	if err := f.ledger.SetStatus(ctx, "missing", "2025-04", billing.StatusPaid); !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("missing student: got %v, want ErrNotFound", err)
	}
}

func TestLedger_AddStudentValidation(t *testing.T) {
	f := setupLedger(t)
	ctx := context.Background()

	if _, err := f.ledger.AddStudent(ctx, app.StudentInput{}, billing.StatusUnpaid); err == nil {
		t.Error("empty name should be rejected")
	}
	if _, err := f.ledger.AddStudent(ctx, app.StudentInput{Name: "Eva", CPF: "123"}, billing.StatusUnpaid); err == nil {
		t.Error("malformed cpf should be rejected")
	}
	if _, err := f.ledger.AddStudent(ctx, app.StudentInput{Name: "Eva"}, "maybe"); !errors.Is(err, app.ErrInvalidStatus) {
		t.Error("unknown initial status should be rejected")
	}
}

func TestLedger_TwoPhaseRemoval(t *testing.T) {
	f := setupLedger(t)
	ctx := context.Background()

	st, err := f.ledger.AddStudent(ctx, app.StudentInput{Name: "Fábio"}, billing.StatusPaid)
	if err != nil {
		t.Fatalf("add student: %v", err)
	}
	if err := f.ledger.SetStatus(ctx, st.ID, "2025-03", billing.StatusPaid); err != nil {
		t.Fatalf("set status: %v", err)
	}

	req, err := f.ledger.RequestRemoval(ctx, st.ID)
	if err != nil {
		t.Fatalf("request removal: %v", err)
	}
	if req.StudentName != "Fábio" || req.StatusRecords != 2 {
		t.Errorf("descriptor = %+v", req)
	}

	// Requesting alone destroys nothing.
	if _, err := f.students.Get(ctx, st.ID); err != nil {
		t.Fatalf("student gone after request: %v", err)
	}

	if err := f.ledger.ConfirmRemoval(ctx, st.ID); err != nil {
		t.Fatalf("confirm removal: %v", err)
	}
	if _, err := f.students.Get(ctx, st.ID); !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("student should be gone, got %v", err)
	}
	count, err := f.payments.CountByStudent(ctx, st.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("%d status records survived removal", count)
	}
}
