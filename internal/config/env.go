// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from environment variables via caarlos0/env,
// mapping struct fields through the `env` and `envPrefix` tags on
// [StructuredConfig] and its nested types. The environment is how the
// vault's secrets (encryption key, server secret, cron key) are expected to
// arrive in deployment.
//
// Returns a wrapped error if env.Parse fails (e.g. a value cannot be
// converted to the target field type).
func parseEnv(cfg any) error {
	err := env.Parse(cfg)
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
