package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

// Each dialect keeps its own migration set: the schemas are identical in
// shape but differ in column types and auto-increment syntax.
//
//go:embed pgx/*.sql sqlite3/*.sql
var embedMigrations embed.FS

// Migrate applies all pending schema migrations for the given driver
// ("pgx" or "sqlite3").
func Migrate(db *sql.DB, driver string) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(driver); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, driver); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
