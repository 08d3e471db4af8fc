// SPDX-License-Identifier: Apache-2.0

package config

// Database driver names accepted by the storage layer.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise. The error never contains the offending secret value.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.EncryptionKey == "" {
		return ErrMissingEncryptionKey
	}

	switch cfg.App.EncryptionMode {
	case "", "aes-gcm", "aes-cbc":
	default:
		return ErrInvalidEncryptionMode
	}

	if cfg.App.ServerSecret == "" {
		return ErrMissingServerSecret
	}

	if cfg.App.AuthTokenSecret == "" {
		return ErrMissingAuthTokenSecret
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	switch cfg.Storage.DB.Driver {
	case "", DriverPostgres, DriverSQLite:
	default:
		return ErrInvalidStorageConfigs
	}

	return nil
}
