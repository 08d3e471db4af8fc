package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/creditdash/keyvault/internal/utils"
	"github.com/creditdash/keyvault/models"
)

// jsonOrNil turns a scraped agent result into an embeddable JSON value.
// Empty results stay absent from the response instead of serializing as "".
func jsonOrNil(result string) any {
	if result == "" {
		return nil
	}
	return json.RawMessage(result)
}

// runAgents triggers the forecasting/prevention agents. The agent type comes
// from the "type" query parameter and defaults to running both.
func (h *Handler) runAgents(w http.ResponseWriter, r *http.Request) {
	agentType := r.URL.Query().Get("type")
	if agentType == "" {
		agentType = models.AgentTypeAll
	}

	run, err := h.services.AgentService.RunAgents(r.Context(), agentType)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.AgentRunResponse{ //nolint:errcheck
		Success:    true,
		Message:    "agents completed",
		RunAt:      run.RunAt.Format(time.RFC3339),
		Forecast:   jsonOrNil(run.ForecastResult),
		Prevention: jsonOrNil(run.PreventionResult),
	}, http.StatusOK)
}

// fetchUsage triggers the provider usage fetcher.
func (h *Handler) fetchUsage(w http.ResponseWriter, r *http.Request) {
	run, err := h.services.AgentService.FetchUsage(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.AgentRunResponse{ //nolint:errcheck
		Success: true,
		Message: "usage data fetched",
		RunAt:   run.RunAt.Format(time.RFC3339),
		Metrics: jsonOrNil(run.ForecastResult),
	}, http.StatusOK)
}

// listAgentRuns returns recent recorded runs, most recent first. The "limit"
// query parameter caps the count.
func (h *Handler) listAgentRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil {
			limit = parsed
		}
	}

	runs, err := h.services.AgentService.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, runs, http.StatusOK) //nolint:errcheck
}
