package models

import "time"

// Agent type values accepted by the cron surface and recorded with each run.
const (
	AgentTypeForecast   = "forecast"
	AgentTypePrevention = "prevention"
	AgentTypeAll        = "all"
	AgentTypeUsage      = "usage-fetcher"
)

// AgentRun records one invocation of an external agent script: which agent
// ran, when, and the JSON result scraped from its stdout. The scripts
// themselves are opaque; only the JSON-over-stdout contract is interpreted.
type AgentRun struct {
	// ID is the internal unique identifier of the run record.
	ID int64 `json:"id"`

	// AgentType is one of the AgentType* constants.
	AgentType string `json:"agent_type"`

	// RunAt is when the run started.
	RunAt time.Time `json:"run_at"`

	// ForecastResult is the raw JSON result of the forecasting agent,
	// empty when the run did not include it.
	ForecastResult string `json:"forecast_result,omitempty"`

	// PreventionResult is the raw JSON result of the prevention agent,
	// empty when the run did not include it.
	PreventionResult string `json:"prevention_result,omitempty"`
}

// TableName returns the name of the database table
// associated with the AgentRun model.
func (a AgentRun) TableName() string {
	return "agent_runs"
}
