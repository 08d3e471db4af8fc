package http

import (
	"net/http"

	"github.com/creditdash/keyvault/internal/utils"
	"github.com/creditdash/keyvault/models"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.OKResponse{OK: true}, http.StatusOK) //nolint:errcheck
}
