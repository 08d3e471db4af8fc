package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrCredentialNotFound is returned when a query, update or delete targets
	// a credential (identified by id and account_id) that does not exist in
	// the database. Records owned by other accounts produce the same error,
	// so callers cannot distinguish "absent" from "not yours".
	ErrCredentialNotFound = errors.New("credential was not found")

	// ErrProjectNotFound is returned when a project lookup or delete matches
	// no row for the requesting account, or when a credential write references
	// a project the account does not own (surfaced via a foreign-key
	// violation).
	ErrProjectNotFound = errors.New("project was not found")

	// ErrSessionNotFound is returned when the session row referenced by a
	// presented cookie does not exist, typically because the session was
	// revoked or swept after expiry.
	ErrSessionNotFound = errors.New("session was not found")

	// ErrCredentialNotSaved is returned when an INSERT or upsert completes
	// without a driver error but persists no row.
	ErrCredentialNotSaved = errors.New("credential was not saved")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
