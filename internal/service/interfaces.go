package service

import (
	"context"

	"github.com/creditdash/keyvault/models"
)

// CredentialService owns the key lifecycle: secrets are sealed before they
// reach storage, surface masked to interactive callers, and come back as
// plaintext only through FetchForUse on the trusted-server path.
type CredentialService interface {
	// Create seals the submitted key and stores it. Writing to an occupied
	// (provider, project) scope rotates the stored envelope in place.
	Create(ctx context.Context, accountID string, request models.CreateCredentialRequest) (models.Credential, error)

	// List returns the account's credential metadata. No key material, masked
	// or otherwise, is included.
	List(ctx context.Context, accountID string) ([]models.Credential, error)

	// ListByProject returns the account's credential metadata scoped to one
	// owned project.
	ListByProject(ctx context.Context, accountID string, projectID int64) ([]models.Credential, error)

	// GetMasked decrypts one credential and returns its masked projection.
	GetMasked(ctx context.Context, accountID string, id int64) (models.MaskedCredential, error)

	// Update renames a credential and/or replaces its secret.
	Update(ctx context.Context, accountID string, id int64, request models.UpdateCredentialRequest) (models.Credential, error)

	// Delete removes a credential.
	Delete(ctx context.Context, accountID string, id int64) error

	// FetchForUse returns the decrypted plaintext secret for a provider
	// scope. Reserved for the trusted-server surface; the transport layer
	// must have verified the shared secret before calling this.
	FetchForUse(ctx context.Context, request models.FetchCredentialRequest) (string, error)
}

// ProjectService manages the named workspaces credentials can be scoped to.
type ProjectService interface {
	Create(ctx context.Context, accountID string, request models.CreateProjectRequest) (models.Project, error)
	List(ctx context.Context, accountID string) ([]models.Project, error)
	Delete(ctx context.Context, accountID string, id int64) error
}

// GateService decides who the caller is. It distinguishes interactive
// sessions (cookie-bearing dashboard users) from trusted server-side callers
// (shared-secret headers) and never mixes the two.
type GateService interface {
	// ResolveSession verifies a session cookie and returns the account it
	// authenticates. The token signature, the session row and its expiry
	// must all check out.
	ResolveSession(ctx context.Context, tokenString string) (accountID string, err error)

	// VerifyServerSecret checks the trusted-server shared secret in
	// constant time.
	VerifyServerSecret(provided string) error

	// VerifyCronKey checks the cron scheduler API key in constant time.
	VerifyCronKey(provided string) error
}

// AgentService runs the external analysis scripts and records their output.
type AgentService interface {
	// RunAgents executes the forecasting and/or prevention scripts per
	// agentType and records a run with whatever JSON they printed.
	RunAgents(ctx context.Context, agentType string) (models.AgentRun, error)

	// FetchUsage executes the provider usage fetcher script.
	FetchUsage(ctx context.Context) (models.AgentRun, error)

	// ListRecent returns up to limit most recent recorded runs.
	ListRecent(ctx context.Context, limit int) ([]models.AgentRun, error)
}
