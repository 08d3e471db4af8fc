package store

import (
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/creditdash/keyvault/models"
)

// The conflict target COALESCE(project_id, 0) matches the unique index on
// credentials, so account-wide records (NULL project_id) participate in the
// rotate-on-write upsert the same way project-scoped ones do.
const (
	upsertCredential = `INSERT INTO credentials (account_id, project_id, provider, name, encrypted_key, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (account_id, provider, COALESCE(project_id, 0))
	DO UPDATE SET name = excluded.name, encrypted_key = excluded.encrypted_key, updated_at = excluded.updated_at
	RETURNING id, account_id, project_id, provider, name, encrypted_key, created_at, updated_at;`

	getCredential = `SELECT id, account_id, project_id, provider, name, encrypted_key, created_at, updated_at
	FROM credentials
	WHERE id = $1 AND account_id = $2;`

	getCredentialByProvider = `SELECT id, account_id, project_id, provider, name, encrypted_key, created_at, updated_at
	FROM credentials
	WHERE account_id = $1 AND provider = $2 AND COALESCE(project_id, 0) = COALESCE($3, 0);`

	deleteCredential = `DELETE FROM credentials
	WHERE id = $1 AND account_id = $2;`

	createProject = `INSERT INTO projects (account_id, name, description, created_at)
	VALUES ($1, $2, $3, $4)
	RETURNING id, account_id, name, description, created_at;`

	getProject = `SELECT id, account_id, name, description, created_at
	FROM projects
	WHERE id = $1 AND account_id = $2;`

	deleteProject = `DELETE FROM projects
	WHERE id = $1 AND account_id = $2;`

	getSession = `SELECT id, account_id, expires_at, created_at
	FROM sessions
	WHERE id = $1;`

	deleteExpiredSessions = `DELETE FROM sessions
	WHERE expires_at <= $1;`

	insertAgentRun = `INSERT INTO agent_runs (agent_type, run_at, forecast_result, prevention_result)
	VALUES ($1, $2, $3, $4)
	RETURNING id, agent_type, run_at, forecast_result, prevention_result;`
)

// buildSelectCredentialsQuery builds the account-scoped credential listing,
// newest first. A non-nil projectID narrows the listing to one project.
func buildSelectCredentialsQuery(accountID string, projectID *int64) (string, []any, error) {
	builder := sq.Select("id", "account_id", "project_id", "provider", "name", "encrypted_key", "created_at", "updated_at").
		From(models.Credential{}.TableName()).
		Where(sq.Eq{"account_id": accountID}).
		OrderBy("created_at DESC", "id DESC").
		PlaceholderFormat(sq.Dollar)

	if projectID != nil {
		builder = builder.Where(sq.Eq{"project_id": *projectID})
	}

	return builder.ToSql()
}

// buildSelectProjectsQuery builds the account-scoped project listing.
func buildSelectProjectsQuery(accountID string) (string, []any, error) {
	return sq.Select("id", "account_id", "name", "description", "created_at").
		From(models.Project{}.TableName()).
		Where(sq.Eq{"account_id": accountID}).
		OrderBy("created_at DESC", "id DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

// buildSelectAgentRunsQuery builds the recent-runs listing, newest first.
func buildSelectAgentRunsQuery(limit int) (string, []any, error) {
	return sq.Select("id", "agent_type", "run_at", "forecast_result", "prevention_result").
		From(models.AgentRun{}.TableName()).
		OrderBy("run_at DESC", "id DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

// buildUpdateCredentialQuery dynamically builds the partial UPDATE for a
// credential. Only non-nil fields of update are included in the SET clause.
func buildUpdateCredentialQuery(accountID string, id int64, update models.CredentialUpdate, now time.Time) (string, []any, error) {
	queryBuilder := new(strings.Builder)
	queryBuilder.WriteString(`UPDATE credentials SET `)

	args := make([]any, 0, 5)
	setClauses := make([]string, 0, 3)
	argIndex := 1

	if update.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argIndex))
		args = append(args, *update.Name)
		argIndex++
	}

	if update.EncryptedKey != nil {
		setClauses = append(setClauses, fmt.Sprintf("encrypted_key = $%d", argIndex))
		args = append(args, *update.EncryptedKey)
		argIndex++
	}

	if len(setClauses) == 0 {
		return "", nil, fmt.Errorf("%w: no fields to update", ErrBuildingSQLQuery)
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argIndex))
	args = append(args, now)
	argIndex++

	queryBuilder.WriteString(strings.Join(setClauses, ", "))
	queryBuilder.WriteString(fmt.Sprintf(" WHERE id = $%d AND account_id = $%d;", argIndex, argIndex+1))
	args = append(args, id, accountID)

	return queryBuilder.String(), args, nil
}
