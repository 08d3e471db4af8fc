package workers

import (
	"context"
	"time"

	"github.com/creditdash/keyvault/internal/logger"
	"github.com/creditdash/keyvault/internal/service"
	"github.com/creditdash/keyvault/models"
)

// agentWorker runs the forecasting/prevention agents and the usage fetcher
// on their configured schedules. The cron HTTP endpoints trigger the same
// service operations on demand.
type agentWorker struct {
	agents        service.AgentService
	agentInterval time.Duration
	usageInterval time.Duration
	logger        *logger.Logger
}

func (w *agentWorker) Run() {
	if w.agentInterval > 0 {
		go w.loop(w.agentInterval, w.runAgents)
	}
	if w.usageInterval > 0 {
		go w.loop(w.usageInterval, w.fetchUsage)
	}
}

func (w *agentWorker) loop(interval time.Duration, tick func(ctx context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		tick(context.Background())
	}
}

func (w *agentWorker) runAgents(ctx context.Context) {
	run, err := w.agents.RunAgents(ctx, models.AgentTypeAll)
	if err != nil {
		w.logger.Error().Err(err).Msg("scheduled agents run failed")
		return
	}

	w.logger.Info().
		Str("agent_type", run.AgentType).
		Time("run_at", run.RunAt).
		Msg("scheduled agents run finished")
}

func (w *agentWorker) fetchUsage(ctx context.Context) {
	run, err := w.agents.FetchUsage(ctx)
	if err != nil {
		w.logger.Error().Err(err).Msg("scheduled usage fetch failed")
		return
	}

	w.logger.Info().
		Time("run_at", run.RunAt).
		Msg("scheduled usage fetch finished")
}
