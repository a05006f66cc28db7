// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 LabOps Contributors

package models

import "time"

// RegisterRequest is the payload of POST /api/auth/register.
type RegisterRequest struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Role          string `json:"role"`
	Department    string `json:"department"`
	TermsAccepted bool   `json:"termsAccepted"`
}

// LoginRequest is the payload of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EmailRequest carries a bare email address, used by the resend-verification
// and forgot-password endpoints.
type EmailRequest struct {
	Email string `json:"email"`
}

// PasswordRequest carries the replacement password for the reset flow; the
// reset token itself travels in the URL path.
type PasswordRequest struct {
	Password string `json:"password"`
}

// ProfileUpdate describes a partial update of the calling user's own record.
// Nil fields are left untouched. A non-nil Password triggers a re-hash.
type ProfileUpdate struct {
	FullName   *string `json:"fullName"`
	Department *string `json:"department"`
	Password   *string `json:"password"`
}

// ProjectCreate is the payload of POST /api/projects. CreatedBy is never
// taken from the caller: it is forced to the authenticated actor.
type ProjectCreate struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Department  string     `json:"department"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Tags        []string   `json:"tags"`
	Budget      float64    `json:"budget"`
}

// ProjectUpdate describes a partial update of a project. Only non-nil fields
// are applied, so an explicit zero (e.g. Progress=0) is a valid update while
// an omitted field is not touched.
type ProjectUpdate struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	Department  *string    `json:"department"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Tags        *[]string  `json:"tags"`
	Budget      *float64   `json:"budget"`
	Progress    *int       `json:"progress"`
}

// Empty reports whether the update touches no fields at all.
func (u ProjectUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil &&
		u.Priority == nil && u.Department == nil && u.StartDate == nil &&
		u.EndDate == nil && u.Tags == nil && u.Budget == nil && u.Progress == nil
}

// TeamMemberRequest is the payload of POST /api/projects/{id}/team.
type TeamMemberRequest struct {
	UserID int64 `json:"userId"`
}

// NoteRequest is the payload of POST /api/projects/{id}/notes.
type NoteRequest struct {
	Content string `json:"content"`
}
