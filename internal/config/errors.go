package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrMissingEncryptionKey indicates that APP_ENCRYPTION_KEY is unset.
	// The server refuses to start without it: there is no plaintext
	// fallback for credential storage.
	ErrMissingEncryptionKey = errors.New("missing encryption key")
	// ErrInvalidEncryptionMode indicates an unknown APP_ENCRYPTION_MODE
	// value (must be "aes-gcm", "aes-cbc", or empty for the default).
	ErrInvalidEncryptionMode = errors.New("invalid encryption mode")
	// ErrMissingServerSecret indicates that APP_SERVER_SECRET is unset.
	// Without it the read-for-use endpoint could never be reached, and an
	// empty configured value would let an empty header through.
	ErrMissingServerSecret = errors.New("missing server secret")
	// ErrMissingAuthTokenSecret indicates that APP_AUTH_TOKEN_SECRET is
	// unset, making every session cookie unverifiable.
	ErrMissingAuthTokenSecret = errors.New("missing auth token secret")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or unsupported driver).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
)
