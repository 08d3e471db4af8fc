package models

import "time"

// Credential represents one stored provider API key belonging to an account.
// The secret itself is persisted only as an encrypted envelope; the plaintext
// value exists transiently in server memory during an authorized read and
// must never be serialized back to an interactive client.
type Credential struct {
	// ID is the internal unique identifier of the credential record.
	ID int64 `json:"id"`

	// AccountID is the owning account. Every storage operation on the
	// record is filtered by this value.
	AccountID string `json:"-"`

	// ProjectID optionally scopes the credential to a single project owned
	// by the same account. Nil means the credential is account-wide.
	ProjectID *int64 `json:"project_id,omitempty"`

	// Provider identifies the upstream AI provider the key belongs to
	// (e.g. "openai", "anthropic", "mistral", "meta").
	Provider string `json:"provider"`

	// Name is the human-readable label shown in the dashboard.
	Name string `json:"name"`

	// EncryptedKey is the persisted envelope: hex(iv) + ":" + hex(ciphertext).
	// Opaque to every layer above the cipher. Never exposed via JSON.
	EncryptedKey string `json:"-"`

	// CreatedAt is when the record was first written.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is bumped on every rotation or rename.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Credential model.
func (c Credential) TableName() string {
	return "credentials"
}

// CredentialUpdate describes a partial update of a stored credential.
// Nil fields are left untouched. EncryptedKey carries the already-sealed
// envelope of the replacement secret, never the plaintext.
type CredentialUpdate struct {
	Name         *string
	EncryptedKey *string
}

// MaskedCredential is the display-only projection of a decrypted secret:
// the credential metadata plus a masked rendering of the plaintext. It is
// derived fresh on each authorized read and never stored.
type MaskedCredential struct {
	ID        int64     `json:"id"`
	Provider  string    `json:"provider"`
	Name      string    `json:"name"`
	MaskedKey string    `json:"masked_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
