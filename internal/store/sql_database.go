package store

import (
	"database/sql"

	"github.com/creditdash/keyvault/internal/logger"
	"github.com/creditdash/keyvault/migrations"
)

// DB wraps the raw database handle together with the driver name it was
// opened with and a driver-specific error classifier. Repositories embed it
// to run queries and to decide whether a failed statement is worth retrying.
type DB struct {
	*sql.DB
	driver             string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies all pending schema migrations for the database dialect
// the handle was opened with.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}
