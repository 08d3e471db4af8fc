package http

import (
	"context"
	"net/http"

	"github.com/creditdash/keyvault/internal/logger"
	"github.com/creditdash/keyvault/internal/service"
	"github.com/creditdash/keyvault/internal/utils"
	"github.com/creditdash/keyvault/models"
)

// sessionCookieName is the cookie the hosted auth service sets at login.
const sessionCookieName = "kv_session"

// sessionAuth is an HTTP middleware that enforces interactive session
// authentication.
//
// It reads the session cookie, resolves it via
// [service.GateService.ResolveSession], and — on success — stores the
// authenticated account's ID in the request context under
// [utils.AccountIDCtxKey] before delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized when the cookie
// is absent or the session cannot be resolved (forged signature, revoked
// row, expired). All rejection events are logged using the context-scoped
// logger obtained via [logger.FromRequest].
func (h *Handler) sessionAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			log.Warn().Err(ErrNoSessionCookie).Send()
			utils.WriteJSON(w, models.ErrorResponse{Error: service.ErrUnauthenticated.Error()}, http.StatusUnauthorized) //nolint:errcheck
			return
		}

		ctx := r.Context()
		accountID, err := h.services.GateService.ResolveSession(ctx, cookie.Value)
		if err != nil {
			log.Warn().Err(err).Msg("session rejected")
			utils.WriteJSON(w, models.ErrorResponse{Error: service.ErrUnauthenticated.Error()}, http.StatusUnauthorized) //nolint:errcheck
			return
		}

		// Store the authenticated account's ID in the context so that
		// downstream handlers can retrieve it without re-resolving the cookie.
		ctx = context.WithValue(ctx, utils.AccountIDCtxKey, accountID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
