// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 LabOps Contributors

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration is a time.Duration that unmarshals from a JSON string in
// time.ParseDuration format (e.g. "30s", "720h").
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	if s == "" {
		*d = 0
		return nil
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// jsonConfig mirrors StructuredConfig with JSON-friendly field types. It is
// converted to a StructuredConfig after decoding so the merge step works on
// a single type.
type jsonConfig struct {
	App struct {
		Environment string `json:"environment"`
		Version     string `json:"version"`
	} `json:"app"`
	Auth struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		BcryptCost    int      `json:"bcrypt_cost"`
	} `json:"auth"`
	Storage struct {
		DB struct {
			DSN string `json:"database_uri"`
		} `json:"db"`
	} `json:"storage"`
	Server struct {
		HTTPAddress    string   `json:"address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server"`
}

// parseJSONFile reads and decodes the JSON configuration file at path.
func parseJSONFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Environment: jc.App.Environment,
			Version:     jc.App.Version,
		},
		Auth: Auth{
			TokenSignKey:  jc.Auth.TokenSignKey,
			TokenIssuer:   jc.Auth.TokenIssuer,
			TokenDuration: time.Duration(jc.Auth.TokenDuration),
			BcryptCost:    jc.Auth.BcryptCost,
		},
		Storage: Storage{
			DB: DB{DSN: jc.Storage.DB.DSN},
		},
		Server: Server{
			HTTPAddress:    jc.Server.HTTPAddress,
			RequestTimeout: time.Duration(jc.Server.RequestTimeout),
		},
	}

	return cfg, nil
}
