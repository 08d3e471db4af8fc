package service

import (
	"github.com/creditdash/keyvault/internal/agents"
	"github.com/creditdash/keyvault/internal/config"
	"github.com/creditdash/keyvault/internal/crypto"
	"github.com/creditdash/keyvault/internal/logger"
	"github.com/creditdash/keyvault/internal/store"
)

type Services struct {
	CredentialService CredentialService
	ProjectService    ProjectService
	GateService       GateService
	AgentService      AgentService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	cipher, err := crypto.NewCipher(cfg.App.EncryptionKey, cfg.App.EncryptionMode)
	if err != nil {
		return nil, err
	}

	// the agent scripts receive provider keys through the same read-for-use
	// endpoint any trusted server would use; without a base URL they run
	// without injected keys
	var keys agents.KeyClient
	if cfg.Workers.ServerBaseURL != "" {
		keys, err = agents.NewKeyClient(cfg.Workers, cfg.App.ServerSecret, logger)
		if err != nil {
			return nil, err
		}
	}

	return &Services{
		CredentialService: NewCredentialService(storages.Credentials, storages.Projects, cipher, logger),
		ProjectService:    NewProjectService(storages.Projects, logger),
		GateService:       NewGateService(storages.Sessions, cfg.App, logger),
		AgentService:      NewAgentService(storages.AgentRuns, cfg.Workers, keys, logger),
	}, nil
}
