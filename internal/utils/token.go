// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 LabOps Contributors

package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// OpaqueTokenBytes is the entropy of a one-shot verification or reset token.
// 32 bytes encode to 64 hex characters.
const OpaqueTokenBytes = 32

// GenerateOpaqueToken returns a cryptographically random, unstructured secret
// string for the one-shot email-verification and password-reset flows.
//
// The token carries no embedded meaning; its sole purpose is to be matched
// byte-for-byte against the copy stored on the user record.
func GenerateOpaqueToken() (string, error) {
	buf := make([]byte, OpaqueTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error generating opaque token: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
