// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 LabOps Contributors

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv builds a StructuredConfig from environment variables using the
// caarlos0/env library. Struct fields are mapped via their `env` and
// `envPrefix` tags defined on [StructuredConfig] and its nested types.
//
// Returns a wrapped error if env.Parse fails (e.g. a value cannot be
// converted to the target type).
func parseEnv() (*StructuredConfig, error) {
	cfg := &StructuredConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	return cfg, nil
}
