package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rotavan/rotavan/adapters/sqlite"
	"github.com/rotavan/rotavan/domain/stop"
	"github.com/rotavan/rotavan/domain/student"
)

func TestStudentStore_CreateAndGet(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	store := sqlite.NewStudentStore(db)
	st := student.Student{
		ID:     "s1",
		Name:   "Ana Souza",
		CPF:    "52998224725",
		Phone:  "11999990000",
		Active: true,
	}
	if err := store.Create(ctx, st); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != st.Name || got.CPF != st.CPF || got.Phone != st.Phone {
		t.Errorf("got %+v", got)
	}
	if got.StopID != "" {
		t.Errorf("stop id should be empty, got %q", got.StopID)
	}

	if err := store.Create(ctx, st); !errors.Is(err, sqlite.ErrDuplicate) {
		t.Errorf("duplicate create: got %v, want ErrDuplicate", err)
	}
	if _, err := store.Get(ctx, "missing"); !errors.Is(err, sqlite.ErrNotFound) {
		t.Errorf("missing get: got %v, want ErrNotFound", err)
	}
}

func TestStudentStore_ListActiveOnly(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	store := sqlite.NewStudentStore(db)
	for _, st := range []student.Student{
		{ID: "s1", Name: "Carla", Active: true},
		{ID: "s2", Name: "Bruno", Active: true},
		{ID: "s3", Name: "Alice", Active: false},
	} {
		if err := store.Create(ctx, st); err != nil {
			t.Fatalf("create %s: %v", st.ID, err)
		}
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d students, want 2 (inactive excluded)", len(list))
	}
	// Ordered by name.
	if list[0].Name != "Bruno" || list[1].Name != "Carla" {
		t.Errorf("order = %s, %s", list[0].Name, list[1].Name)
	}
}

func TestStudentStore_CountByStop(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	stops := sqlite.NewStopStore(db)
	if err := stops.Create(ctx, stop.Stop{ID: "p1", Name: "Praça Central", ScheduledTime: "07:10"}); err != nil {
		t.Fatalf("create stop: %v", err)
	}

	students := sqlite.NewStudentStore(db)
	for _, st := range []student.Student{
		{ID: "s1", Name: "Ana", StopID: "p1", Active: true},
		{ID: "s2", Name: "Bruno", StopID: "p1", Active: true},
		{ID: "s3", Name: "Caio", Active: true}, // no stop
		{ID: "s4", Name: "Dora", StopID: "p1", Active: false},
	} {
		if err := students.Create(ctx, st); err != nil {
			t.Fatalf("create %s: %v", st.ID, err)
		}
	}

	counts, err := students.CountByStop(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts["p1"] != 2 {
		t.Errorf("p1 count = %d, want 2", counts["p1"])
	}
}

func TestStudentStore_DeleteStopDetachesStudents(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	stops := sqlite.NewStopStore(db)
	if err := stops.Create(ctx, stop.Stop{ID: "p1", Name: "Mercado"}); err != nil {
		t.Fatalf("create stop: %v", err)
	}

	students := sqlite.NewStudentStore(db)
	if err := students.Create(ctx, student.Student{ID: "s1", Name: "Ana", StopID: "p1", Active: true}); err != nil {
		t.Fatalf("create student: %v", err)
	}

	if err := stops.Delete(ctx, "p1"); err != nil {
		t.Fatalf("delete stop: %v", err)
	}

	got, err := students.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get student: %v", err)
	}
	if got.StopID != "" {
		t.Errorf("student still references deleted stop %q", got.StopID)
	}
}
