package store

import (
	"context"
	"fmt"

	"github.com/creditdash/keyvault/internal/config"
	"github.com/creditdash/keyvault/internal/logger"
)

// Storages bundles every repository behind a single injectable unit, so the
// service layer depends on one constructor instead of four.
type Storages struct {
	Credentials CredentialRepository
	Projects    ProjectRepository
	Sessions    SessionRepository
	AgentRuns   AgentRunRepository

	db *DB
}

// NewStorages connects to the configured database, applies pending schema
// migrations and wires up all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Debug().Msg("creating storages")

	db, err := connect(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &Storages{
		Credentials: NewCredentialRepository(db, log),
		Projects:    NewProjectRepository(db, log),
		Sessions:    NewSessionRepository(db, log),
		AgentRuns:   NewAgentRunRepository(db, log),
		db:          db,
	}, nil
}

// Close releases the underlying database handle.
func (s *Storages) Close() error {
	return s.db.Close()
}

func connect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	case config.DriverPostgres, "":
		return NewConnectPostgres(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
}
