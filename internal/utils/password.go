// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 LabOps Contributors

package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when attempting to hash an empty password.
var ErrEmptyPassword = errors.New("password cannot be empty")

// HashPassword derives a bcrypt hash of plaintext using the given work
// factor. A fresh random salt is generated on every call and embedded in the
// returned hash, so two hashes of the same password never compare equal.
//
// cost values outside the range supported by bcrypt fall back to
// [bcrypt.DefaultCost]. Hashing an empty password fails with
// [ErrEmptyPassword]; no other input can make this function fail short of a
// broken entropy source.
func HashPassword(plaintext string, cost int) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}

	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// VerifyPassword compares a plaintext attempt against a stored bcrypt hash.
// The comparison inside bcrypt is constant-time over the derived key.
//
// It returns false on any mismatch or malformed hash and never reports an
// error: callers only need the boolean outcome.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
