package http

import (
	"encoding/json"
	"net/http"

	"github.com/creditdash/keyvault/internal/logger"
	"github.com/creditdash/keyvault/internal/utils"
	"github.com/creditdash/keyvault/models"
)

func (h *Handler) createProject(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	accountID, ok := accountIDFromRequest(w, r)
	if !ok {
		return
	}

	var request models.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.createProject").Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid JSON was passed"}, http.StatusBadRequest) //nolint:errcheck
		return
	}

	saved, err := h.services.ProjectService.Create(r.Context(), accountID, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.ProjectResponse{Success: true, Project: saved}, http.StatusCreated) //nolint:errcheck
}

func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountIDFromRequest(w, r)
	if !ok {
		return
	}

	projects, err := h.services.ProjectService.List(r.Context(), accountID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.ProjectListResponse{Projects: projects}, http.StatusOK) //nolint:errcheck
}

func (h *Handler) deleteProject(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountIDFromRequest(w, r)
	if !ok {
		return
	}

	id, err := idURLParam(r, "projectID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.ProjectService.Delete(r.Context(), accountID, id); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.OKResponse{OK: true}, http.StatusOK) //nolint:errcheck
}
