package handler

import (
	"github.com/creditdash/keyvault/internal/config"
	"github.com/creditdash/keyvault/internal/handler/http"
	"github.com/creditdash/keyvault/internal/logger"
	"github.com/creditdash/keyvault/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
