package service

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/creditdash/keyvault/internal/config"
	"github.com/creditdash/keyvault/internal/logger"
	"github.com/creditdash/keyvault/internal/store"
	"github.com/creditdash/keyvault/internal/utils"
)

// gateService is the concrete implementation of [GateService].
//
// Interactive identity is a signed session token whose "sid" claim must
// still resolve to a live row in the sessions table, so revocation takes
// effect immediately regardless of the token's own expiry. Server-side
// identity is a shared secret compared in constant time.
type gateService struct {
	sessions store.SessionRepository

	// tokenSignKey is the HMAC secret the hosted auth service signs session
	// tokens with. Tokens signed with anything else are rejected.
	tokenSignKey string

	// serverSecret authenticates trusted server-side callers.
	serverSecret string

	// cronAPIKey authenticates the cron scheduler. Empty disables the cron
	// surface entirely.
	cronAPIKey string

	logger *logger.Logger
}

// NewGateService constructs a [GateService] populated with security
// parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewGateService(sessions store.SessionRepository, cfg config.App, logger *logger.Logger) GateService {
	return &gateService{
		sessions:     sessions,
		tokenSignKey: cfg.AuthTokenSecret,
		serverSecret: cfg.ServerSecret,
		cronAPIKey:   cfg.CronAPIKey,
		logger:       logger,
	}
}

// ResolveSession verifies the cookie token and resolves it to an account.
//
// All failure modes collapse into [ErrUnauthenticated]: a forged signature,
// a revoked session and an expired one look identical to the caller.
func (g *gateService) ResolveSession(ctx context.Context, tokenString string) (string, error) {
	log := logger.FromContext(ctx)

	if tokenString == "" {
		return "", ErrUnauthenticated
	}

	accountID, sessionID, err := utils.ParseSessionToken(tokenString, g.tokenSignKey)
	if err != nil {
		log.Warn().Err(err).Msg("session token rejected")
		return "", ErrUnauthenticated
	}

	session, err := g.sessions.Get(ctx, sessionID)
	if err != nil {
		log.Warn().Err(err).Msg("session row lookup failed")
		return "", ErrUnauthenticated
	}

	if session.Expired(time.Now()) {
		return "", ErrUnauthenticated
	}

	// The token must agree with the row it points at.
	if session.AccountID != accountID {
		log.Warn().Msg("session token account mismatch")
		return "", ErrUnauthenticated
	}

	return session.AccountID, nil
}

// VerifyServerSecret checks the trusted-server shared secret. The comparison
// runs in constant time so response latency reveals nothing about how much
// of a guessed secret matched.
func (g *gateService) VerifyServerSecret(provided string) error {
	if g.serverSecret == "" || provided == "" {
		return ErrUnauthorized
	}

	if subtle.ConstantTimeCompare([]byte(provided), []byte(g.serverSecret)) != 1 {
		return ErrUnauthorized
	}

	return nil
}

// VerifyCronKey checks the cron scheduler API key in constant time.
func (g *gateService) VerifyCronKey(provided string) error {
	if g.cronAPIKey == "" || provided == "" {
		return ErrUnauthorized
	}

	if subtle.ConstantTimeCompare([]byte(provided), []byte(g.cronAPIKey)) != 1 {
		return ErrUnauthorized
	}

	return nil
}
