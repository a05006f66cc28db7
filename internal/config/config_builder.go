// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 LabOps Contributors

package config

import (
	"fmt"

	"dario.cat/mergo"
)

// configBuilder accumulates configuration from multiple sources and merges
// them into a single StructuredConfig. The first error encountered short
// circuits the remaining steps and is returned from build.
type configBuilder struct {
	cfg *StructuredConfig
	err error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{cfg: &StructuredConfig{}}
}

// withEnv loads values from environment variables. Environment variables
// have the highest priority: later sources only fill fields the environment
// left empty.
func (b *configBuilder) withEnv() *configBuilder {
	if b.err != nil {
		return b
	}

	envCfg, err := parseEnv()
	if err != nil {
		b.err = fmt.Errorf("config: parsing environment: %w", err)
		return b
	}

	b.err = b.merge(envCfg)
	return b
}

// withFlags loads values from command-line flags. Flags fill only the
// fields that environment variables left empty.
func (b *configBuilder) withFlags() *configBuilder {
	if b.err != nil {
		return b
	}

	flagCfg, err := parseFlags()
	if err != nil {
		b.err = fmt.Errorf("config: parsing flags: %w", err)
		return b
	}

	b.err = b.merge(flagCfg)
	return b
}

// withJSON loads values from the JSON file referenced by JSONFilePath, if
// one was provided by an earlier source. A missing path is not an error:
// the JSON file is optional.
func (b *configBuilder) withJSON() *configBuilder {
	if b.err != nil {
		return b
	}
	if b.cfg.JSONFilePath == "" {
		return b
	}

	jsonCfg, err := parseJSONFile(b.cfg.JSONFilePath)
	if err != nil {
		b.err = fmt.Errorf("config: parsing JSON file %q: %w", b.cfg.JSONFilePath, err)
		return b
	}

	b.err = b.merge(jsonCfg)
	return b
}

// withDefaults fills any field still empty after all explicit sources.
func (b *configBuilder) withDefaults() *configBuilder {
	if b.err != nil {
		return b
	}

	b.err = b.merge(defaultConfig())
	return b
}

// merge overlays src onto the accumulated config. Fields already set by an
// earlier (higher priority) source are kept; only empty fields are filled.
func (b *configBuilder) merge(src *StructuredConfig) error {
	if err := mergo.Merge(b.cfg, src); err != nil {
		return fmt.Errorf("config: merging sources: %w", err)
	}
	return nil
}

// build finalizes the configuration, validating that all required fields
// are present.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.cfg.validate(); err != nil {
		return nil, err
	}
	return b.cfg, nil
}
