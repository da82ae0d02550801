package pg

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"creatorum.org/internal/waitlist"
)

func TestCreateReturnsEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	store := NewStore(db)

	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("insert into waitlist").
		WithArgs(sqlmock.AnyArg(), "Ada Lovelace", "ada@example.com", waitlist.RoleCreator, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	entry, err := store.Create(context.Background(), waitlist.CreateInput{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Role:     waitlist.RoleCreator,
		Goals:    []string{waitlist.GoalFindBrandDeals},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if entry.ID == "" {
		t.Fatalf("expected generated id")
	}
	if !entry.CreatedAt.Equal(created) {
		t.Fatalf("unexpected created_at: %v", entry.CreatedAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateMapsUniqueViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	store := NewStore(db)

	mock.ExpectQuery("insert into waitlist").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "waitlist_email_key"})

	_, err = store.Create(context.Background(), waitlist.CreateInput{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Role:     waitlist.RoleCreator,
		Goals:    []string{waitlist.GoalFindBrandDeals},
	})
	if !errors.Is(err, waitlist.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListScansEntries(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	store := NewStore(db)

	rows := sqlmock.NewRows([]string{"id", "created_at", "full_name", "email", "role", "goals"}).
		AddRow("01J0A", time.Now().UTC(), "Grace Hopper", "grace@example.com", waitlist.RoleBrand, []byte(`["growing as a creator"]`)).
		AddRow("01J0B", time.Now().UTC(), "Ada Lovelace", "ada@example.com", waitlist.RoleCreator, []byte(`["find brand deals","discovering creators"]`))
	mock.ExpectQuery("select id, created_at, full_name, email, role, goals").
		WithArgs(50, 0).
		WillReturnRows(rows)

	entries, err := store.List(context.Background(), 50, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].Goals[1] != waitlist.GoalDiscovering {
		t.Fatalf("goals not decoded: %v", entries[1].Goals)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	store := NewStore(db)

	mock.ExpectQuery("select count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(7)))

	count, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 7 {
		t.Fatalf("expected 7, got %d", count)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
