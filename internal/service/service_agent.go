package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/creditdash/keyvault/internal/agents"
	"github.com/creditdash/keyvault/internal/config"
	"github.com/creditdash/keyvault/internal/logger"
	"github.com/creditdash/keyvault/internal/store"
	"github.com/creditdash/keyvault/models"
)

// agentService is the concrete implementation of [AgentService]. It shells
// out to the Python agent scripts, scrapes the first JSON object they print
// to stdout and records the run.
//
// The scripts are opaque: anything around the JSON object (progress lines,
// warnings) is ignored. Scripts never see encrypted envelopes: the provider
// keys they need are fetched decrypted through the read-for-use endpoint and
// handed over via the subprocess environment.
type agentService struct {
	runs store.AgentRunRepository
	keys agents.KeyClient
	cfg  config.Workers

	logger *logger.Logger
}

// NewAgentService constructs an [AgentService] wired to the given run
// repository and worker configuration. keys may be nil, in which case the
// scripts run without injected provider keys.
func NewAgentService(runs store.AgentRunRepository, cfg config.Workers, keys agents.KeyClient, logger *logger.Logger) AgentService {
	return &agentService{
		runs:   runs,
		keys:   keys,
		cfg:    cfg,
		logger: logger,
	}
}

// RunAgents executes the forecasting and/or prevention scripts per agentType
// and records one run row with whatever each produced.
func (s *agentService) RunAgents(ctx context.Context, agentType string) (models.AgentRun, error) {
	log := logger.FromContext(ctx)

	run := models.AgentRun{
		AgentType: agentType,
		RunAt:     time.Now().UTC(),
	}

	switch agentType {
	case models.AgentTypeForecast, models.AgentTypePrevention, models.AgentTypeAll:
	default:
		return models.AgentRun{}, fmt.Errorf("%w: %q", ErrUnknownAgentType, agentType)
	}

	if agentType == models.AgentTypeForecast || agentType == models.AgentTypeAll {
		result, err := s.runScript(ctx, s.cfg.ForecastScript)
		if err != nil {
			log.Err(err).Str("agent", models.AgentTypeForecast).Msg("agent run failed")
			return models.AgentRun{}, err
		}
		run.ForecastResult = result
	}

	if agentType == models.AgentTypePrevention || agentType == models.AgentTypeAll {
		result, err := s.runScript(ctx, s.cfg.PreventionScript)
		if err != nil {
			log.Err(err).Str("agent", models.AgentTypePrevention).Msg("agent run failed")
			return models.AgentRun{}, err
		}
		run.PreventionResult = result
	}

	return s.runs.Insert(ctx, run)
}

// FetchUsage executes the provider usage fetcher script and records the run.
func (s *agentService) FetchUsage(ctx context.Context) (models.AgentRun, error) {
	log := logger.FromContext(ctx)

	result, err := s.runScript(ctx, s.cfg.UsageScript)
	if err != nil {
		log.Err(err).Str("agent", models.AgentTypeUsage).Msg("usage fetch failed")
		return models.AgentRun{}, err
	}

	run := models.AgentRun{
		AgentType:      models.AgentTypeUsage,
		RunAt:          time.Now().UTC(),
		ForecastResult: result,
	}

	return s.runs.Insert(ctx, run)
}

// ListRecent returns up to limit most recent recorded runs.
func (s *agentService) ListRecent(ctx context.Context, limit int) ([]models.AgentRun, error) {
	if limit <= 0 {
		limit = 20
	}

	return s.runs.ListRecent(ctx, limit)
}

// runScript invokes one Python agent script and returns the first JSON
// object it printed to stdout.
func (s *agentService) runScript(ctx context.Context, scriptPath string) (string, error) {
	if scriptPath == "" {
		return "", fmt.Errorf("%w: agent script not configured", ErrInvalidDataProvided)
	}

	cmd := exec.CommandContext(ctx, "python3", scriptPath)
	cmd.Env = s.agentEnv(ctx)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("agent script %s failed: %w: %s", scriptPath, err, stderr.String())
	}

	return scrapeFirstJSON(stdout.String())
}

// agentEnv builds the subprocess environment for an agent script: the
// process environment plus one <PROVIDER>_API_KEY variable per configured
// provider, fetched decrypted through the key client. A provider with no
// stored credential is skipped; the script decides whether it can run
// without it.
func (s *agentService) agentEnv(ctx context.Context) []string {
	env := os.Environ()
	if s.keys == nil || s.cfg.AgentAccountID == "" {
		return env
	}

	log := logger.FromContext(ctx)

	for _, provider := range s.cfg.AgentProviders {
		secret, err := s.keys.FetchKey(ctx, s.cfg.AgentAccountID, provider, nil)
		if err != nil {
			if errors.Is(err, agents.ErrKeyNotFound) {
				log.Debug().Str("provider", provider).Msg("no stored key for agent provider")
			} else {
				log.Err(err).Str("provider", provider).Msg("fetching agent provider key failed")
			}
			continue
		}

		env = append(env, providerEnvVar(provider)+"="+secret)
	}

	return env
}

// providerEnvVar maps a provider name to its environment variable,
// e.g. "openai" -> "OPENAI_API_KEY".
func providerEnvVar(provider string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - ('a' - 'A')
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, provider)

	return name + "_API_KEY"
}

// scrapeFirstJSON extracts the first balanced top-level JSON object from
// mixed stdout. Braces inside JSON strings do not count.
func scrapeFirstJSON(output string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(output); i++ {
		c := output[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					return output[start : i+1], nil
				}
			}
		}
	}

	return "", ErrAgentOutput
}
