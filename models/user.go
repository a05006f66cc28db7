// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 LabOps Contributors

package models

import "time"

// Roles form the closed set of account classifications used by the
// authorization layer. RoleAdmin bypasses ownership checks on projects.
const (
	RoleResearcher    = "researcher"
	RoleLabTechnician = "lab_technician"
	RoleManager       = "manager"
	RolePathologist   = "pathologist"
	RoleToxicologist  = "toxicologist"
	RoleAdmin         = "admin"
)

// Departments form the closed set of organisational units a user or project
// may belong to. The empty string means "not assigned".
const (
	DepartmentPathology        = "pathology"
	DepartmentToxicology       = "toxicology"
	DepartmentGenetics         = "genetics"
	DepartmentHistology        = "histology"
	DepartmentHusbandry        = "husbandry"
	DepartmentQualityAssurance = "quality_assurance"
)

// User represents an account entity used for authentication and authorization.
// Credential-related fields (password hash, verification and reset secrets)
// are never serialized outward.
type User struct {
	// UserID is the internal unique identifier of the user,
	// assigned by the persistence layer.
	UserID int64 `json:"id"`

	// Email is the unique account identifier. It is stored lowercased so
	// lookups are case-insensitive.
	Email string `json:"email"`

	// FullName is the display name of the user (2-50 characters).
	FullName string `json:"fullName"`

	// PasswordHash is the bcrypt hash of the account password.
	// It MUST never leave trusted boundaries.
	PasswordHash string `json:"-"`

	// Role is the account classification, one of the Role* constants.
	Role string `json:"role"`

	// Department is the organisational unit, one of the Department*
	// constants, or empty when not assigned.
	Department string `json:"department,omitempty"`

	// IsVerified reports whether the account email has been confirmed.
	IsVerified bool `json:"isVerified"`

	// VerificationToken and VerificationExpires hold the pending
	// email-verification secret. Either both are set or both are nil.
	VerificationToken   *string    `json:"-"`
	VerificationExpires *time.Time `json:"-"`

	// ResetPasswordToken and ResetPasswordExpires hold the pending
	// password-reset secret. Either both are set or both are nil.
	ResetPasswordToken   *string    `json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`

	// CreatedAt and UpdatedAt are maintained by the persistence layer.
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the administrative role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleResearcher, RoleLabTechnician, RoleManager, RolePathologist, RoleToxicologist, RoleAdmin:
		return true
	}
	return false
}

// ValidDepartment reports whether department belongs to the closed
// department set. The empty string is valid and means "not assigned".
func ValidDepartment(department string) bool {
	switch department {
	case "", DepartmentPathology, DepartmentToxicology, DepartmentGenetics,
		DepartmentHistology, DepartmentHusbandry, DepartmentQualityAssurance:
		return true
	}
	return false
}
