package http

import (
	"net/http"

	"github.com/creditdash/keyvault/internal/logger"
	"github.com/creditdash/keyvault/internal/service"
	"github.com/creditdash/keyvault/internal/utils"
	"github.com/creditdash/keyvault/models"
)

// cronKeyHeader authenticates the external cron scheduler.
const cronKeyHeader = "X-Cron-Api-Key"

// cronAuth is an HTTP middleware that gates the cron surface behind the
// scheduler API key, verified in constant time by
// [service.GateService.VerifyCronKey].
func (h *Handler) cronAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		provided := r.Header.Get(cronKeyHeader)
		if provided == "" {
			log.Warn().Err(ErrEmptyCronKeyHeader).Send()
			utils.WriteJSON(w, models.ErrorResponse{Error: service.ErrUnauthorized.Error()}, http.StatusUnauthorized) //nolint:errcheck
			return
		}

		if err := h.services.GateService.VerifyCronKey(provided); err != nil {
			log.Warn().Err(err).Msg("cron key rejected")
			utils.WriteJSON(w, models.ErrorResponse{Error: service.ErrUnauthorized.Error()}, http.StatusUnauthorized) //nolint:errcheck
			return
		}

		next.ServeHTTP(w, r)
	})
}
