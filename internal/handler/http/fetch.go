package http

import (
	"encoding/json"
	"net/http"

	"github.com/creditdash/keyvault/internal/logger"
	"github.com/creditdash/keyvault/internal/utils"
	"github.com/creditdash/keyvault/models"
)

// fetchKey is the raw-secret read path. It sits behind serverSecretAuth and
// answers with the decrypted plaintext for the requested provider scope.
// This is the only handler in the API that ever serializes a raw secret.
func (h *Handler) fetchKey(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.FetchCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.fetchKey").Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid JSON was passed"}, http.StatusBadRequest) //nolint:errcheck
		return
	}

	secret, err := h.services.CredentialService.FetchForUse(r.Context(), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.FetchCredentialResponse{Secret: secret}, http.StatusOK) //nolint:errcheck
}
