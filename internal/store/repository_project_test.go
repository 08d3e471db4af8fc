package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/creditdash/keyvault/internal/logger"
	"github.com/creditdash/keyvault/models"
)

func newTestProjectRepo(t *testing.T) (*projectRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &projectRepository{
		db:     &DB{DB: db, logger: l, errorClassificator: noRetryClassifier{}},
		logger: l,
	}
	return repo, mock, db
}

func TestProjectCreate_Success(t *testing.T) {
	repo, mock, db := newTestProjectRepo(t)
	defer db.Close()

	now := time.Now()
	project := models.Project{AccountID: "acc-1", Name: "staging", Description: "staging workspace"}

	mock.ExpectQuery("INSERT INTO projects").
		WithArgs(project.AccountID, project.Name, project.Description, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "name", "description", "created_at"}).
			AddRow(3, project.AccountID, project.Name, project.Description, now))

	saved, err := repo.Create(context.Background(), project)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ID != 3 {
		t.Errorf("expected ID=3, got %d", saved.ID)
	}
}

func TestProjectGet_NotFound(t *testing.T) {
	repo, mock, db := newTestProjectRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM projects").
		WithArgs(int64(9), "acc-1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "acc-1", 9)
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProjectList_Success(t *testing.T) {
	repo, mock, db := newTestProjectRepo(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM projects").
		WithArgs("acc-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "name", "description", "created_at"}).
			AddRow(2, "acc-1", "beta", "", now).
			AddRow(1, "acc-1", "alpha", "first", now.Add(-time.Hour)))

	projects, err := repo.List(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	if projects[0].Name != "beta" {
		t.Errorf("expected newest first, got %s", projects[0].Name)
	}
}

func TestProjectDelete_NotFound(t *testing.T) {
	repo, mock, db := newTestProjectRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM projects").
		WithArgs(int64(9), "acc-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "acc-1", 9)
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}
