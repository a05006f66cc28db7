// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 LabOps Contributors

package config

import "errors"

var (
	// ErrNoDatabaseDSN is returned when no database connection string was
	// provided by any configuration source.
	ErrNoDatabaseDSN = errors.New("database DSN is required: set STORAGE_DB_DATABASE_URI or the -d flag")

	// ErrNoTokenSignKey is returned when no bearer token signing key was
	// provided by any configuration source.
	ErrNoTokenSignKey = errors.New("token sign key is required: set AUTH_TOKEN_SIGN_KEY or the -token-sign-key flag")
)

// validate checks that the merged configuration contains every field the
// service cannot run without.
func (c *StructuredConfig) validate() error {
	if c.Storage.DB.DSN == "" {
		return ErrNoDatabaseDSN
	}
	if c.Auth.TokenSignKey == "" {
		return ErrNoTokenSignKey
	}
	return nil
}
