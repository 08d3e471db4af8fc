package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/creditdash/keyvault/internal/logger"
)

func newTestSessionRepo(t *testing.T) (*sessionRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &sessionRepository{
		db:     &DB{DB: db, logger: l, errorClassificator: noRetryClassifier{}},
		logger: l,
	}
	return repo, mock, db
}

func TestSessionGet_Success(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM sessions").
		WithArgs("sess-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "expires_at", "created_at"}).
			AddRow("sess-1", "acc-1", now.Add(time.Hour), now))

	session, err := repo.Get(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.AccountID != "acc-1" {
		t.Errorf("expected account acc-1, got %s", session.AccountID)
	}
	if session.Expired(now) {
		t.Error("session should not be expired yet")
	}
}

func TestSessionGet_NotFound(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM sessions").
		WithArgs("revoked").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "revoked")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionDeleteExpired(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectExec("DELETE FROM sessions").
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 4))

	swept, err := repo.DeleteExpired(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if swept != 4 {
		t.Errorf("expected 4 swept sessions, got %d", swept)
	}
}
