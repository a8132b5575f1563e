// Package config loads command configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every environment variable read by dice-irae.
const EnvPrefix = "DICE_IRAE_"

// ParseEnv loads configuration from environment variables into target.
// Struct tags name variables without EnvPrefix; it is added here.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
