package http

import (
	"net/http"

	"github.com/creditdash/keyvault/internal/logger"
	"github.com/creditdash/keyvault/internal/service"
	"github.com/creditdash/keyvault/internal/utils"
	"github.com/creditdash/keyvault/models"
)

// serverSecretHeader authenticates trusted server-side callers. Only they
// may reach the raw-secret fetch path.
const serverSecretHeader = "X-Server-Secret"

// serverSecretAuth is an HTTP middleware that gates the trusted-server
// surface behind the shared secret, verified in constant time by
// [service.GateService.VerifyServerSecret].
//
// A missing or wrong header value yields HTTP 401. Session cookies are
// deliberately ignored on this surface: an interactive caller cannot reach
// a raw secret by being logged in.
func (h *Handler) serverSecretAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		provided := r.Header.Get(serverSecretHeader)
		if provided == "" {
			log.Warn().Err(ErrEmptyServerSecretHeader).Send()
			utils.WriteJSON(w, models.ErrorResponse{Error: service.ErrUnauthorized.Error()}, http.StatusUnauthorized) //nolint:errcheck
			return
		}

		if err := h.services.GateService.VerifyServerSecret(provided); err != nil {
			log.Warn().Err(err).Msg("server secret rejected")
			utils.WriteJSON(w, models.ErrorResponse{Error: service.ErrUnauthorized.Error()}, http.StatusUnauthorized) //nolint:errcheck
			return
		}

		next.ServeHTTP(w, r)
	})
}
