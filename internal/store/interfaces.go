package store

import (
	"context"
	"time"

	"github.com/creditdash/keyvault/models"
)

// CredentialRepository persists encrypted provider credentials. Every method
// is scoped by account: a record belonging to another account behaves exactly
// like a record that does not exist.
type CredentialRepository interface {
	// Upsert inserts a credential or, when the account already holds one for
	// the same provider and project scope, replaces its envelope and name.
	Upsert(ctx context.Context, credential models.Credential) (models.Credential, error)

	// Get returns a single credential owned by the account.
	Get(ctx context.Context, accountID string, id int64) (models.Credential, error)

	// GetByProvider returns the account's credential for the given provider
	// and project scope. A nil projectID addresses the account-wide record.
	GetByProvider(ctx context.Context, accountID string, provider string, projectID *int64) (models.Credential, error)

	// List returns all credentials owned by the account, newest first.
	List(ctx context.Context, accountID string) ([]models.Credential, error)

	// ListByProject returns the account's credentials scoped to one project.
	ListByProject(ctx context.Context, accountID string, projectID int64) ([]models.Credential, error)

	// Update applies a partial update to a credential owned by the account.
	Update(ctx context.Context, accountID string, id int64, update models.CredentialUpdate) (models.Credential, error)

	// Delete removes a credential owned by the account.
	Delete(ctx context.Context, accountID string, id int64) error
}

// ProjectRepository persists the named workspaces credentials can be scoped to.
type ProjectRepository interface {
	Create(ctx context.Context, project models.Project) (models.Project, error)
	Get(ctx context.Context, accountID string, id int64) (models.Project, error)
	List(ctx context.Context, accountID string) ([]models.Project, error)

	// Delete removes a project owned by the account. Credentials scoped to the
	// project are removed by the storage layer's ON DELETE CASCADE.
	Delete(ctx context.Context, accountID string, id int64) error
}

// SessionRepository reads the interactive sessions issued by the hosted auth
// service. Sessions are never created here, only resolved and swept.
type SessionRepository interface {
	Get(ctx context.Context, id string) (models.Session, error)

	// DeleteExpired removes every session whose expiry is at or before the
	// given instant and reports how many rows were swept.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// AgentRunRepository records invocations of the external agent scripts.
type AgentRunRepository interface {
	Insert(ctx context.Context, run models.AgentRun) (models.AgentRun, error)

	// ListRecent returns up to limit most recent runs, newest first.
	ListRecent(ctx context.Context, limit int) ([]models.AgentRun, error)
}
