package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Validator is implemented by config structs that carry invariants beyond
// what env tags can express. Load calls it after parsing.
type Validator interface {
	Validate() error
}

// Load parses environment variables into the provided struct using its
// `env` tags, then runs the struct's Validate hook if it has one.
//
// Note that env applies envDefault when a variable is set but empty, so a
// blank value falls back to the default rather than producing an empty
// field.
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if v, ok := cfg.(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("validate config: %w", err)
		}
	}
	return nil
}
