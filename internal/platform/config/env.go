// Package config loads service settings from the process environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every variable read by ParseEnv.
const EnvPrefix = "MEETUP_FEEDBACK_"

// ParseEnv loads configuration from environment variables. Struct tags name
// variables without EnvPrefix.
func ParseEnv(target any) error {
	return parse(target, env.Options{Prefix: EnvPrefix})
}

// ParseEnvFrom loads configuration from the given variables instead of the
// process environment. Keys carry EnvPrefix like real variables.
func ParseEnvFrom(target any, environ map[string]string) error {
	return parse(target, env.Options{Prefix: EnvPrefix, Environment: environ})
}

func parse(target any, opts env.Options) error {
	if err := env.ParseWithOptions(target, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
