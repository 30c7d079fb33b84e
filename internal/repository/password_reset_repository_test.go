package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func TestResetCreateReturnsBearerToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("INSERT INTO password_reset_tokens").WillReturnRows(
		sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now().UTC()),
	)

	r := NewPasswordResetRepository(db, time.Hour)
	token, err := r.Create(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	// Two concatenated UUIDs: 36 chars + 32 hex chars.
	if len(token) != 68 {
		t.Fatalf("expected 68-char token, got %d (%q)", len(token), token)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestResetCreateTokensAreUnique(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	for i := 0; i < 2; i++ {
		mock.ExpectQuery("INSERT INTO password_reset_tokens").WillReturnRows(
			sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now().UTC()),
		)
	}

	r := NewPasswordResetRepository(db, time.Hour)
	t1, err := r.Create(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t2, err := r.Create(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if t1 == t2 {
		t.Fatalf("two grants produced the same token")
	}
}

func TestResetConsumeSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("UPDATE password_reset_tokens").WillReturnRows(
		sqlmock.NewRows([]string{"user_id"}).AddRow("u1"),
	)

	r := NewPasswordResetRepository(db, time.Hour)
	userID, err := r.Consume(context.Background(), "raw-token")
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if userID != "u1" {
		t.Fatalf("expected u1, got %q", userID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestResetConsumeInvalidCollapsesToOneError(t *testing.T) {
	// Absent, already-used and expired grants all fail the conditional
	// update the same way: zero rows back.
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("UPDATE password_reset_tokens").WillReturnRows(
		sqlmock.NewRows([]string{"user_id"}),
	)

	r := NewPasswordResetRepository(db, time.Hour)
	_, err = r.Consume(context.Background(), "spent-or-unknown")
	if !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("expected ErrResetTokenInvalid, got %v", err)
	}
}

func TestResetConsumeHashesTokenBeforeLookup(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// sha256("abcd") hex
	wantHash := "88d4266fd4e6338d13b845fcf289579d209c897823b9217da3e161936f031589"
	mock.ExpectQuery("UPDATE password_reset_tokens").
		WithArgs(wantHash, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("u1"))

	r := NewPasswordResetRepository(db, time.Hour)
	if _, err := r.Consume(context.Background(), "abcd"); err != nil {
		t.Fatalf("Consume: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
