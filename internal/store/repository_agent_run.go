package store

import (
	"context"
	"fmt"

	"github.com/creditdash/keyvault/internal/logger"
	"github.com/creditdash/keyvault/models"
)

// agentRunRepository is the SQL-backed implementation of
// [AgentRunRepository] against the "agent_runs" table.
type agentRunRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAgentRunRepository constructs an [AgentRunRepository] backed by the
// provided database connection and logger.
func NewAgentRunRepository(db *DB, logger *logger.Logger) AgentRunRepository {
	logger.Debug().Msg("creating agent run repository")
	return &agentRunRepository{
		db:     db,
		logger: logger,
	}
}

// Insert records one agent invocation and returns it with server-assigned
// fields.
func (r *agentRunRepository) Insert(ctx context.Context, run models.AgentRun) (models.AgentRun, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, insertAgentRun,
		run.AgentType, run.RunAt, run.ForecastResult, run.PreventionResult)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*agentRunRepository.Insert").Msg("error: row is nil")
		return models.AgentRun{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	var saved models.AgentRun
	if err := row.Scan(&saved.ID, &saved.AgentType, &saved.RunAt, &saved.ForecastResult, &saved.PreventionResult); err != nil {
		log.Err(err).Str("func", "*agentRunRepository.Insert").Msg("error: scanning error")
		return models.AgentRun{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return saved, nil
}

// ListRecent returns up to limit most recent runs, newest first.
func (r *agentRunRepository) ListRecent(ctx context.Context, limit int) ([]models.AgentRun, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectAgentRunsQuery(limit)
	if err != nil {
		log.Err(err).Str("func", "*agentRunRepository.ListRecent").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*agentRunRepository.ListRecent").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	runs := make([]models.AgentRun, 0, limit)
	for rows.Next() {
		var run models.AgentRun
		if err := rows.Scan(&run.ID, &run.AgentType, &run.RunAt, &run.ForecastResult, &run.PreventionResult); err != nil {
			log.Err(err).Str("func", "*agentRunRepository.ListRecent").Msg("error scanning rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return runs, nil
}
