package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/creditdash/keyvault/internal/logger"
	"github.com/creditdash/keyvault/internal/service"
	"github.com/creditdash/keyvault/internal/utils"
	"github.com/creditdash/keyvault/models"
)

// accountIDFromRequest returns the account the session middleware resolved.
// Handlers behind sessionAuth can rely on it being present; a miss means a
// routing bug, answered with 401 rather than a panic.
func accountIDFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	accountID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok || accountID == "" {
		logger.FromRequest(r).Error().Msg("no account in request context")
		utils.WriteJSON(w, models.ErrorResponse{Error: service.ErrUnauthenticated.Error()}, http.StatusUnauthorized) //nolint:errcheck
		return "", false
	}
	return accountID, true
}

// idURLParam parses a numeric URL parameter such as {keyID} or {projectID}.
func idURLParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, service.ErrInvalidDataProvided
	}
	return id, nil
}

func (h *Handler) createKey(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	accountID, ok := accountIDFromRequest(w, r)
	if !ok {
		return
	}

	var request models.CreateCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.createKey").Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid JSON was passed"}, http.StatusBadRequest) //nolint:errcheck
		return
	}

	saved, err := h.services.CredentialService.Create(r.Context(), accountID, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.CredentialResponse{Success: true, Key: saved}, http.StatusCreated) //nolint:errcheck
}

func (h *Handler) listKeys(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountIDFromRequest(w, r)
	if !ok {
		return
	}

	credentials, err := h.services.CredentialService.List(r.Context(), accountID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.CredentialListResponse{Keys: credentials}, http.StatusOK) //nolint:errcheck
}

func (h *Handler) getMaskedKey(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountIDFromRequest(w, r)
	if !ok {
		return
	}

	id, err := idURLParam(r, "keyID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	masked, err := h.services.CredentialService.GetMasked(r.Context(), accountID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MaskedCredentialResponse{Key: masked}, http.StatusOK) //nolint:errcheck
}

func (h *Handler) updateKey(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	accountID, ok := accountIDFromRequest(w, r)
	if !ok {
		return
	}

	id, err := idURLParam(r, "keyID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var request models.UpdateCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.updateKey").Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid JSON was passed"}, http.StatusBadRequest) //nolint:errcheck
		return
	}

	updated, err := h.services.CredentialService.Update(r.Context(), accountID, id, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.CredentialResponse{Success: true, Key: updated}, http.StatusOK) //nolint:errcheck
}

func (h *Handler) deleteKey(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountIDFromRequest(w, r)
	if !ok {
		return
	}

	id, err := idURLParam(r, "keyID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.CredentialService.Delete(r.Context(), accountID, id); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.OKResponse{OK: true}, http.StatusOK) //nolint:errcheck
}

func (h *Handler) listProjectKeys(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountIDFromRequest(w, r)
	if !ok {
		return
	}

	projectID, err := idURLParam(r, "projectID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	credentials, err := h.services.CredentialService.ListByProject(r.Context(), accountID, projectID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.CredentialListResponse{Keys: credentials}, http.StatusOK) //nolint:errcheck
}

func (h *Handler) createProjectKey(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	accountID, ok := accountIDFromRequest(w, r)
	if !ok {
		return
	}

	projectID, err := idURLParam(r, "projectID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var request models.CreateCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.createProjectKey").Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid JSON was passed"}, http.StatusBadRequest) //nolint:errcheck
		return
	}

	// the URL wins over whatever the body says
	request.ProjectID = &projectID

	saved, err := h.services.CredentialService.Create(r.Context(), accountID, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.CredentialResponse{Success: true, Key: saved}, http.StatusCreated) //nolint:errcheck
}
