package models

// CreateCredentialRequest is the body of POST /api/keys and
// POST /api/projects/{projectID}/keys. Key carries the plaintext secret;
// it is encrypted exactly once before it reaches storage and is excluded
// from all logging.
type CreateCredentialRequest struct {
	Provider  string `json:"provider"`
	Key       string `json:"key"`
	Name      string `json:"name"`
	ProjectID *int64 `json:"project_id,omitempty"`
}

// UpdateCredentialRequest is the body of PATCH /api/keys/{keyID}.
// Nil fields are left unchanged; a non-nil Key rotates the stored envelope.
type UpdateCredentialRequest struct {
	Name *string `json:"name,omitempty"`
	Key  *string `json:"key,omitempty"`
}

// FetchCredentialRequest is the body of the server-only POST /api/keys/fetch.
// The trusted caller names the target account explicitly; there is no
// implicit scoping for server-to-server requests.
type FetchCredentialRequest struct {
	AccountID string `json:"account_id"`
	Provider  string `json:"provider"`
	ProjectID *int64 `json:"project_id,omitempty"`
}

// CreateProjectRequest is the body of POST /api/projects.
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
