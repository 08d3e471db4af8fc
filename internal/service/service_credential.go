package service

import (
	"context"
	"fmt"

	"github.com/creditdash/keyvault/internal/crypto"
	"github.com/creditdash/keyvault/internal/logger"
	"github.com/creditdash/keyvault/internal/store"
	"github.com/creditdash/keyvault/models"
)

// credentialService is the concrete implementation of [CredentialService].
// It is the only place plaintext secrets exist between the transport layer
// and the cipher: they are sealed on every write path and unsealed only for
// masking or the trusted-server fetch.
type credentialService struct {
	credentials store.CredentialRepository
	projects    store.ProjectRepository
	cipher      crypto.Cipher

	logger *logger.Logger
}

// NewCredentialService constructs a [CredentialService] wired to the given
// repositories and sealing cipher.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewCredentialService(credentials store.CredentialRepository, projects store.ProjectRepository, cipher crypto.Cipher, logger *logger.Logger) CredentialService {
	return &credentialService{
		credentials: credentials,
		projects:    projects,
		cipher:      cipher,
		logger:      logger,
	}
}

// Create validates the request, seals the submitted key and persists it.
//
// When the request scopes the credential to a project, ownership is checked
// first: referencing another account's project behaves exactly like
// referencing a project that does not exist.
//
// Writing to an occupied (provider, project) scope rotates the stored
// envelope in place; the caller cannot tell the two cases apart and does not
// need to.
func (s *credentialService) Create(ctx context.Context, accountID string, request models.CreateCredentialRequest) (models.Credential, error) {
	log := logger.FromContext(ctx)

	if accountID == "" {
		return models.Credential{}, ErrValidationNoAccountID
	}
	if request.Provider == "" {
		return models.Credential{}, ErrValidationNoProvider
	}
	if request.Key == "" {
		return models.Credential{}, ErrValidationNoKey
	}

	if request.ProjectID != nil {
		if _, err := s.projects.Get(ctx, accountID, *request.ProjectID); err != nil {
			log.Warn().Err(err).Int64("project_id", *request.ProjectID).Msg("project ownership check failed")
			return models.Credential{}, err
		}
	}

	envelope, err := s.cipher.Encrypt(request.Key)
	if err != nil {
		log.Err(err).Msg("error sealing credential")
		return models.Credential{}, fmt.Errorf("error sealing credential: %w", err)
	}

	credential := models.Credential{
		AccountID:    accountID,
		ProjectID:    request.ProjectID,
		Provider:     request.Provider,
		Name:         request.Name,
		EncryptedKey: envelope,
	}

	saved, err := s.credentials.Upsert(ctx, credential)
	if err != nil {
		log.Err(err).Str("provider", request.Provider).Msg("credential save ended with error")
		return models.Credential{}, fmt.Errorf("credential save ended with error: %w", err)
	}

	return saved, nil
}

// List returns the account's credential records. Envelopes stay inside the
// returned structs and are stripped at the serialization boundary.
func (s *credentialService) List(ctx context.Context, accountID string) ([]models.Credential, error) {
	if accountID == "" {
		return nil, ErrValidationNoAccountID
	}

	return s.credentials.List(ctx, accountID)
}

// ListByProject returns the account's credentials scoped to one project.
// The ownership check runs first, so a foreign project yields the same
// not-found error as a missing one rather than an empty list.
func (s *credentialService) ListByProject(ctx context.Context, accountID string, projectID int64) ([]models.Credential, error) {
	if accountID == "" {
		return nil, ErrValidationNoAccountID
	}

	if _, err := s.projects.Get(ctx, accountID, projectID); err != nil {
		return nil, err
	}

	return s.credentials.ListByProject(ctx, accountID, projectID)
}

// GetMasked unseals one credential and returns its display projection. The
// plaintext lives only on this call's stack.
func (s *credentialService) GetMasked(ctx context.Context, accountID string, id int64) (models.MaskedCredential, error) {
	log := logger.FromContext(ctx)

	credential, err := s.credentials.Get(ctx, accountID, id)
	if err != nil {
		return models.MaskedCredential{}, err
	}

	plaintext, err := s.cipher.Decrypt(credential.EncryptedKey)
	if err != nil {
		log.Err(err).Int64("credential_id", id).Msg("error unsealing credential")
		return models.MaskedCredential{}, fmt.Errorf("error unsealing credential: %w", err)
	}

	return models.MaskedCredential{
		ID:        credential.ID,
		Provider:  credential.Provider,
		Name:      credential.Name,
		MaskedKey: crypto.MaskSecret(plaintext),
		CreatedAt: credential.CreatedAt,
		UpdatedAt: credential.UpdatedAt,
	}, nil
}

// Update renames a credential and/or replaces its secret with a freshly
// sealed envelope.
func (s *credentialService) Update(ctx context.Context, accountID string, id int64, request models.UpdateCredentialRequest) (models.Credential, error) {
	log := logger.FromContext(ctx)

	if accountID == "" {
		return models.Credential{}, ErrValidationNoAccountID
	}
	if request.Name == nil && request.Key == nil {
		return models.Credential{}, ErrValidationNoFields
	}

	update := models.CredentialUpdate{Name: request.Name}

	if request.Key != nil {
		if *request.Key == "" {
			return models.Credential{}, ErrValidationNoKey
		}
		envelope, err := s.cipher.Encrypt(*request.Key)
		if err != nil {
			log.Err(err).Msg("error sealing credential")
			return models.Credential{}, fmt.Errorf("error sealing credential: %w", err)
		}
		update.EncryptedKey = &envelope
	}

	return s.credentials.Update(ctx, accountID, id, update)
}

// Delete removes a credential owned by the account.
func (s *credentialService) Delete(ctx context.Context, accountID string, id int64) error {
	if accountID == "" {
		return ErrValidationNoAccountID
	}

	return s.credentials.Delete(ctx, accountID, id)
}

// FetchForUse returns the decrypted plaintext for a provider scope. Only the
// trusted-server surface routes here; the interactive API has no path to
// this method.
func (s *credentialService) FetchForUse(ctx context.Context, request models.FetchCredentialRequest) (string, error) {
	log := logger.FromContext(ctx)

	if request.AccountID == "" {
		return "", ErrValidationNoAccountID
	}
	if request.Provider == "" {
		return "", ErrValidationNoProvider
	}

	credential, err := s.credentials.GetByProvider(ctx, request.AccountID, request.Provider, request.ProjectID)
	if err != nil {
		return "", err
	}

	plaintext, err := s.cipher.Decrypt(credential.EncryptedKey)
	if err != nil {
		log.Err(err).Str("provider", request.Provider).Msg("error unsealing credential")
		return "", fmt.Errorf("error unsealing credential: %w", err)
	}

	return plaintext, nil
}
