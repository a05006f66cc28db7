// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 LabOps Contributors

package models

// AuthResponse is returned by the register and login endpoints: the public
// view of the account plus a freshly issued bearer token.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// ErrorResponse is the uniform error body of the REST surface.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UnverifiedLoginResponse is the distinguishable 401 payload returned when an
// unverified account attempts to log in while the unverified-login gate is
// active, so that a client can offer "resend verification".
type UnverifiedLoginResponse struct {
	Error      string `json:"error"`
	IsVerified bool   `json:"isVerified"`
	UserID     int64  `json:"userId"`
}

// MessageResponse is the body of endpoints that succeed without returning an
// entity (verify, resend, forgot/reset password, team removal, delete).
type MessageResponse struct {
	Message string `json:"message"`
}
