// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/creditdash/keyvault/internal/logger"
	"github.com/creditdash/keyvault/models"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	runCount int
}

func (m *mockWorker) Run() {
	m.runCount++
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := &Workers{workers: []Worker{w1, w2, w3}}
	ws.Run()

	for i, w := range []*mockWorker{w1, w2, w3} {
		if w.runCount != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, w.runCount)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{workers: []Worker{}}

	// Should not panic on empty workers list
	ws.Run()
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Run()
}

// ─────────────────────────────────────────────
// agentWorker
// ─────────────────────────────────────────────

type mockAgentService struct {
	runAgentsFn  func(ctx context.Context, agentType string) (models.AgentRun, error)
	fetchUsageFn func(ctx context.Context) (models.AgentRun, error)
}

func (m *mockAgentService) RunAgents(ctx context.Context, agentType string) (models.AgentRun, error) {
	if m.runAgentsFn != nil {
		return m.runAgentsFn(ctx, agentType)
	}
	return models.AgentRun{}, nil
}

func (m *mockAgentService) FetchUsage(ctx context.Context) (models.AgentRun, error) {
	if m.fetchUsageFn != nil {
		return m.fetchUsageFn(ctx)
	}
	return models.AgentRun{}, nil
}

func (m *mockAgentService) ListRecent(ctx context.Context, limit int) ([]models.AgentRun, error) {
	return nil, nil
}

func TestAgentWorker_RunAgents_UsesAllAgentType(t *testing.T) {
	var gotType string
	agents := &mockAgentService{
		runAgentsFn: func(ctx context.Context, agentType string) (models.AgentRun, error) {
			gotType = agentType
			return models.AgentRun{AgentType: agentType, RunAt: time.Now()}, nil
		},
	}
	w := &agentWorker{agents: agents, logger: logger.Nop()}

	w.runAgents(context.Background())

	if gotType != models.AgentTypeAll {
		t.Errorf("expected agent type %q, got %q", models.AgentTypeAll, gotType)
	}
}

func TestAgentWorker_RunAgents_ErrorIsSwallowed(t *testing.T) {
	agents := &mockAgentService{
		runAgentsFn: func(ctx context.Context, agentType string) (models.AgentRun, error) {
			return models.AgentRun{}, errors.New("python3 not found")
		},
	}
	w := &agentWorker{agents: agents, logger: logger.Nop()}

	// a failing scheduled run must not panic the worker
	w.runAgents(context.Background())
}

func TestAgentWorker_FetchUsage_CallsService(t *testing.T) {
	called := false
	agents := &mockAgentService{
		fetchUsageFn: func(ctx context.Context) (models.AgentRun, error) {
			called = true
			return models.AgentRun{AgentType: models.AgentTypeUsage, RunAt: time.Now()}, nil
		},
	}
	w := &agentWorker{agents: agents, logger: logger.Nop()}

	w.fetchUsage(context.Background())

	if !called {
		t.Error("expected FetchUsage to be called")
	}
}

func TestAgentWorker_Run_DisabledIntervalsStartNothing(t *testing.T) {
	ran := false
	agents := &mockAgentService{
		runAgentsFn: func(ctx context.Context, agentType string) (models.AgentRun, error) {
			ran = true
			return models.AgentRun{}, nil
		},
		fetchUsageFn: func(ctx context.Context) (models.AgentRun, error) {
			ran = true
			return models.AgentRun{}, nil
		},
	}
	w := &agentWorker{agents: agents, logger: logger.Nop()}

	w.Run()
	time.Sleep(20 * time.Millisecond)

	if ran {
		t.Error("zero intervals must not schedule any job")
	}
}

// ─────────────────────────────────────────────
// sessionSweeper
// ─────────────────────────────────────────────

type mockSessionRepository struct {
	getFn           func(ctx context.Context, id string) (models.Session, error)
	deleteExpiredFn func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockSessionRepository) Get(ctx context.Context, id string) (models.Session, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return models.Session{}, nil
}

func (m *mockSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx, now)
	}
	return 0, nil
}

func TestSessionSweeper_Sweep_PassesCurrentTime(t *testing.T) {
	var gotNow time.Time
	sessions := &mockSessionRepository{
		deleteExpiredFn: func(ctx context.Context, now time.Time) (int64, error) {
			gotNow = now
			return 3, nil
		},
	}
	w := &sessionSweeper{sessions: sessions, logger: logger.Nop()}

	before := time.Now().UTC()
	w.sweep(context.Background())
	after := time.Now().UTC()

	if gotNow.Before(before) || gotNow.After(after) {
		t.Errorf("expected cutoff between %v and %v, got %v", before, after, gotNow)
	}
}

func TestSessionSweeper_Sweep_ErrorIsSwallowed(t *testing.T) {
	sessions := &mockSessionRepository{
		deleteExpiredFn: func(ctx context.Context, now time.Time) (int64, error) {
			return 0, errors.New("connection reset")
		},
	}
	w := &sessionSweeper{sessions: sessions, logger: logger.Nop()}

	w.sweep(context.Background())
}
