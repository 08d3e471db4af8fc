package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/creditdash/keyvault/internal/logger"
	"github.com/creditdash/keyvault/models"
	"github.com/jackc/pgerrcode"
)

// credentialRepository is the SQL-backed implementation of
// [CredentialRepository]. It handles the "credentials" table and never sees
// plaintext secrets: every key that passes through here is already sealed
// into an envelope by the service layer.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type credentialRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCredentialRepository constructs a [CredentialRepository] backed by the
// provided database connection and logger.
func NewCredentialRepository(db *DB, logger *logger.Logger) CredentialRepository {
	logger.Debug().Msg("creating credential repository")
	return &credentialRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert persists a credential, replacing the envelope and name of an
// existing record with the same (account, provider, project) scope. This is
// how rotation works: writing a new key for an occupied scope overwrites the
// old envelope in place, keeping the original created_at.
//
// Error handling:
//   - PostgreSQL foreign_key_violation (23503) → [ErrProjectNotFound]
//     (the referenced project does not exist).
//   - Transient failures (deadlock, serialization) are retried once.
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *credentialRepository) Upsert(ctx context.Context, credential models.Credential) (models.Credential, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()

	row := r.db.QueryRowContext(ctx, upsertCredential,
		credential.AccountID, credential.ProjectID, credential.Provider, credential.Name, credential.EncryptedKey, now, now)

	if err := row.Err(); err != nil {
		if r.db.errorClassificator.Classify(err) == Retryable {
			log.Warn().Err(err).Str("func", "*credentialRepository.Upsert").Msg("transient DB error, retrying once")
			row = r.db.QueryRowContext(ctx, upsertCredential,
				credential.AccountID, credential.ProjectID, credential.Provider, credential.Name, credential.EncryptedKey, now, now)
		}
	}

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*credentialRepository.Upsert").Msg("error: row is nil")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.Credential{}, ErrProjectNotFound
		default:
			return models.Credential{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	var saved models.Credential
	if err := scanCredential(row, &saved); err != nil {
		log.Err(err).Str("func", "*credentialRepository.Upsert").Msg("error: scanning error")
		return models.Credential{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return saved, nil
}

// Get retrieves a single credential owned by the account. A record owned by
// a different account yields [ErrCredentialNotFound], same as a missing one.
func (r *credentialRepository) Get(ctx context.Context, accountID string, id int64) (models.Credential, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getCredential, id, accountID)

	var credential models.Credential
	if err := scanCredential(row, &credential); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Credential{}, ErrCredentialNotFound
		}
		log.Err(err).Str("func", "*credentialRepository.Get").Msg("error: scanning error")
		return models.Credential{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return credential, nil
}

// GetByProvider retrieves the account's credential for a provider and
// project scope. NULL project_id and projectID coalesce to the same bucket,
// so a nil projectID addresses exactly the account-wide record.
func (r *credentialRepository) GetByProvider(ctx context.Context, accountID string, provider string, projectID *int64) (models.Credential, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getCredentialByProvider, accountID, provider, projectID)

	var credential models.Credential
	if err := scanCredential(row, &credential); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Credential{}, ErrCredentialNotFound
		}
		log.Err(err).Str("func", "*credentialRepository.GetByProvider").Msg("error: scanning error")
		return models.Credential{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return credential, nil
}

// List returns every credential owned by the account, newest first.
func (r *credentialRepository) List(ctx context.Context, accountID string) ([]models.Credential, error) {
	return r.list(ctx, accountID, nil)
}

// ListByProject returns the account's credentials scoped to one project.
func (r *credentialRepository) ListByProject(ctx context.Context, accountID string, projectID int64) ([]models.Credential, error) {
	return r.list(ctx, accountID, &projectID)
}

func (r *credentialRepository) list(ctx context.Context, accountID string, projectID *int64) ([]models.Credential, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectCredentialsQuery(accountID, projectID)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.List").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.List").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	credentials := make([]models.Credential, 0)
	for rows.Next() {
		var credential models.Credential
		if err := scanCredential(rows, &credential); err != nil {
			log.Err(err).Str("func", "*credentialRepository.List").Msg("error scanning rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		credentials = append(credentials, credential)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return credentials, nil
}

// Update applies a partial update (rename and/or envelope replacement) to a
// credential owned by the account and returns the stored record.
func (r *credentialRepository) Update(ctx context.Context, accountID string, id int64, update models.CredentialUpdate) (models.Credential, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateCredentialQuery(accountID, id, update, time.Now().UTC())
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.Update").Msg("error building query")
		return models.Credential{}, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.Update").Msg("error executing statement")
		return models.Credential{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.Credential{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return models.Credential{}, ErrCredentialNotFound
	}

	return r.Get(ctx, accountID, id)
}

// Delete removes a credential owned by the account.
func (r *credentialRepository) Delete(ctx context.Context, accountID string, id int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteCredential, id, accountID)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.Delete").Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrCredentialNotFound
	}

	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCredential(row rowScanner, credential *models.Credential) error {
	return row.Scan(
		&credential.ID,
		&credential.AccountID,
		&credential.ProjectID,
		&credential.Provider,
		&credential.Name,
		&credential.EncryptedKey,
		&credential.CreatedAt,
		&credential.UpdatedAt,
	)
}
