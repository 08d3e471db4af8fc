package http

import (
	"errors"
	"net/http"

	"github.com/creditdash/keyvault/internal/crypto"
	"github.com/creditdash/keyvault/internal/logger"
	"github.com/creditdash/keyvault/internal/service"
	"github.com/creditdash/keyvault/internal/store"
	"github.com/creditdash/keyvault/internal/utils"
	"github.com/creditdash/keyvault/models"
)

var errorStatusMap = map[error]int{
	service.ErrUnauthenticated: http.StatusUnauthorized,
	service.ErrUnauthorized:    http.StatusUnauthorized,

	service.ErrInvalidDataProvided:   http.StatusBadRequest,
	service.ErrValidationNoProvider:  http.StatusBadRequest,
	service.ErrValidationNoKey:       http.StatusBadRequest,
	service.ErrValidationNoAccountID: http.StatusBadRequest,
	service.ErrValidationNoName:      http.StatusBadRequest,
	service.ErrValidationNoFields:    http.StatusBadRequest,
	service.ErrUnknownAgentType:      http.StatusBadRequest,

	service.ErrAgentOutput: http.StatusBadGateway,

	utils.ErrInvalidSessionToken: http.StatusUnauthorized,

	store.ErrCredentialNotFound: http.StatusNotFound,
	store.ErrProjectNotFound:    http.StatusNotFound,
	store.ErrSessionNotFound:    http.StatusUnauthorized,
	store.ErrCredentialNotSaved: http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,

	// Cipher failures surface as a generic 500; the cause stays in server
	// logs so responses leak nothing about envelopes or key material.
	crypto.ErrMalformedEnvelope:  http.StatusInternalServerError,
	crypto.ErrDecryptionFailure:  http.StatusInternalServerError,
	crypto.ErrUnsupportedMode:    http.StatusInternalServerError,
	crypto.ErrEmptyEncryptionKey: http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs the full error chain server-side and answers with the
// uniform JSON error body. Server-side failures (5xx) get a generic message
// so nothing about envelopes, queries or key material leaks to callers.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	message := http.StatusText(status)
	if status < http.StatusInternalServerError {
		for target := range errorStatusMap {
			if errors.Is(err, target) {
				message = target.Error()
				break
			}
		}
	}

	log.Err(err).Int("status", status).Msg("request failed")
	utils.WriteJSON(w, models.ErrorResponse{Error: message}, status) //nolint:errcheck
}
