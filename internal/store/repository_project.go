package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/creditdash/keyvault/internal/logger"
	"github.com/creditdash/keyvault/models"
)

// projectRepository is the SQL-backed implementation of [ProjectRepository]
// against the "projects" table.
type projectRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewProjectRepository constructs a [ProjectRepository] backed by the
// provided database connection and logger.
func NewProjectRepository(db *DB, logger *logger.Logger) ProjectRepository {
	logger.Debug().Msg("creating project repository")
	return &projectRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a new project and returns it with server-assigned fields.
func (r *projectRepository) Create(ctx context.Context, project models.Project) (models.Project, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createProject,
		project.AccountID, project.Name, project.Description, time.Now().UTC())

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*projectRepository.Create").Msg("error: row is nil")
		return models.Project{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	var saved models.Project
	if err := scanProject(row, &saved); err != nil {
		log.Err(err).Str("func", "*projectRepository.Create").Msg("error: scanning error")
		return models.Project{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return saved, nil
}

// Get retrieves a single project owned by the account. Used by the service
// layer as the ownership check before any project-scoped credential write.
func (r *projectRepository) Get(ctx context.Context, accountID string, id int64) (models.Project, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getProject, id, accountID)

	var project models.Project
	if err := scanProject(row, &project); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Project{}, ErrProjectNotFound
		}
		log.Err(err).Str("func", "*projectRepository.Get").Msg("error: scanning error")
		return models.Project{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return project, nil
}

// List returns every project owned by the account, newest first.
func (r *projectRepository) List(ctx context.Context, accountID string) ([]models.Project, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectProjectsQuery(accountID)
	if err != nil {
		log.Err(err).Str("func", "*projectRepository.List").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*projectRepository.List").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	projects := make([]models.Project, 0)
	for rows.Next() {
		var project models.Project
		if err := scanProject(rows, &project); err != nil {
			log.Err(err).Str("func", "*projectRepository.List").Msg("error scanning rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return projects, nil
}

// Delete removes a project owned by the account. Credentials scoped to it go
// with it via the schema's ON DELETE CASCADE.
func (r *projectRepository) Delete(ctx context.Context, accountID string, id int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteProject, id, accountID)
	if err != nil {
		log.Err(err).Str("func", "*projectRepository.Delete").Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrProjectNotFound
	}

	return nil
}

func scanProject(row rowScanner, project *models.Project) error {
	return row.Scan(
		&project.ID,
		&project.AccountID,
		&project.Name,
		&project.Description,
		&project.CreatedAt,
	)
}
