package workers

import (
	"time"

	"github.com/creditdash/keyvault/internal/config"
	"github.com/creditdash/keyvault/internal/logger"
	"github.com/creditdash/keyvault/internal/service"
	"github.com/creditdash/keyvault/internal/store"
)

// defaultSweepInterval is how often expired sessions are purged.
const defaultSweepInterval = time.Hour

// Workers aggregates all background workers of the application.
type Workers struct {
	workers []Worker
}

// NewWorkers builds the application's background workers: the scheduled
// agent jobs and the expired-session sweeper. Jobs with a zero interval
// are disabled and never started.
func NewWorkers(services *service.Services, storages *store.Storages, cfg config.Workers, logger *logger.Logger) *Workers {
	return &Workers{workers: []Worker{
		&agentWorker{
			agents:        services.AgentService,
			agentInterval: cfg.AgentInterval,
			usageInterval: cfg.UsageInterval,
			logger:        logger,
		},
		&sessionSweeper{
			sessions: storages.Sessions,
			interval: defaultSweepInterval,
			logger:   logger,
		},
	}}
}

// Run starts every worker in order.
func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
