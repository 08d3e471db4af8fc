package models

// CredentialResponse wraps the non-secret metadata returned by the
// create/rotate and update paths. The secret and its envelope are never
// part of any response on these paths.
type CredentialResponse struct {
	Success bool       `json:"success"`
	Key     Credential `json:"key"`
}

// CredentialListResponse wraps the metadata list for an account or project.
type CredentialListResponse struct {
	Keys []Credential `json:"keys"`
}

// MaskedCredentialResponse wraps the display-only view of one credential.
type MaskedCredentialResponse struct {
	Key MaskedCredential `json:"key"`
}

// FetchCredentialResponse carries the raw decrypted secret. It is produced
// exclusively by the trusted-server read-for-use path.
type FetchCredentialResponse struct {
	Secret string `json:"secret"`
}

// ProjectListResponse wraps the project list for an account.
type ProjectListResponse struct {
	Projects []Project `json:"projects"`
}

// ProjectResponse wraps a single created project.
type ProjectResponse struct {
	Success bool    `json:"success"`
	Project Project `json:"project"`
}

// OKResponse is the uniform body for delete operations.
type OKResponse struct {
	OK bool `json:"ok"`
}

// AgentRunResponse is returned by the cron endpoints: the run receipt plus
// whatever JSON the agent scripts printed.
type AgentRunResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	RunAt      string `json:"run_at,omitempty"`
	Forecast   any    `json:"forecast,omitempty"`
	Prevention any    `json:"prevention,omitempty"`
	Metrics    any    `json:"metrics,omitempty"`
}

// ErrorResponse is the uniform JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
