package service

import (
	"context"
	"fmt"

	"github.com/creditdash/keyvault/internal/logger"
	"github.com/creditdash/keyvault/internal/store"
	"github.com/creditdash/keyvault/models"
)

// projectService is the concrete implementation of [ProjectService].
type projectService struct {
	projects store.ProjectRepository

	logger *logger.Logger
}

// NewProjectService constructs a [ProjectService] wired to the given
// repository.
func NewProjectService(projects store.ProjectRepository, logger *logger.Logger) ProjectService {
	return &projectService{
		projects: projects,
		logger:   logger,
	}
}

// Create persists a new project for the account.
func (s *projectService) Create(ctx context.Context, accountID string, request models.CreateProjectRequest) (models.Project, error) {
	log := logger.FromContext(ctx)

	if accountID == "" {
		return models.Project{}, ErrValidationNoAccountID
	}
	if request.Name == "" {
		return models.Project{}, ErrValidationNoName
	}

	project := models.Project{
		AccountID:   accountID,
		Name:        request.Name,
		Description: request.Description,
	}

	saved, err := s.projects.Create(ctx, project)
	if err != nil {
		log.Err(err).Str("name", request.Name).Msg("project creation ended with error")
		return models.Project{}, fmt.Errorf("project creation ended with error: %w", err)
	}

	return saved, nil
}

// List returns every project owned by the account.
func (s *projectService) List(ctx context.Context, accountID string) ([]models.Project, error) {
	if accountID == "" {
		return nil, ErrValidationNoAccountID
	}

	return s.projects.List(ctx, accountID)
}

// Delete removes a project owned by the account together with the
// credentials scoped to it.
func (s *projectService) Delete(ctx context.Context, accountID string, id int64) error {
	if accountID == "" {
		return ErrValidationNoAccountID
	}

	return s.projects.Delete(ctx, accountID, id)
}
