// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 LabOps Contributors

package models

import "time"

// Project statuses form a closed set; new projects default to StatusDraft.
const (
	StatusDraft     = "Draft"
	StatusActive    = "Active"
	StatusOnHold    = "On Hold"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Project priorities form a closed set; new projects default to PriorityMedium.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Project is the shared multi-owner resource of the platform. Every mutation
// on it is gated by the authz capability evaluator: the creator and admins
// hold full rights, team members may read and append notes.
type Project struct {
	// ProjectID is the generated UUID identifier of the project.
	ProjectID string `json:"id"`

	// Title is required at creation and limited to 100 characters.
	Title string `json:"title"`

	// Description is required at creation.
	Description string `json:"description"`

	Status     string `json:"status"`
	Priority   string `json:"priority"`
	Department string `json:"department,omitempty"`

	// StartDate defaults to the creation time; EndDate is optional.
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate,omitempty"`

	// CreatedBy references the creating user. It is forced to the
	// authenticated actor at creation time and is immutable afterwards.
	CreatedBy int64 `json:"createdBy"`

	// TeamMembers holds the ids of users granted membership on the project.
	// Order is insignificant; uniqueness is enforced at mutation time.
	TeamMembers []int64 `json:"teamMembers"`

	// Tags is an ordered list of free-form labels.
	Tags []string `json:"tags"`

	// Budget is a non-negative amount, defaulting to 0.
	Budget float64 `json:"budget"`

	// Progress is an integer clamped to [0,100], defaulting to 0.
	Progress int `json:"progress"`

	// Attachments are stored metadata records only; upload and download of
	// the underlying files happen outside this core.
	Attachments []Attachment `json:"attachments,omitempty"`

	// Notes is the append-only list of project notes. There is no edit or
	// delete path for notes in this core.
	Notes []Note `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Project model.
func (p Project) TableName() string {
	return "projects"
}

// HasTeamMember reports whether userID is on the project roster.
func (p Project) HasTeamMember(userID int64) bool {
	for _, id := range p.TeamMembers {
		if id == userID {
			return true
		}
	}
	return false
}

// Note is a single append-only project note. CreatedBy is captured from the
// acting user at append time.
type Note struct {
	NoteID    int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedBy int64     `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// Attachment is the stored metadata of an uploaded project file.
type Attachment struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
	UploadedBy int64     `json:"uploadedBy"`
}

// ProjectStats is the scoped aggregate returned by the statistics endpoint.
// All counts are computed over the projects visible to the requesting actor
// (all projects for admins, otherwise created-or-member projects only).
type ProjectStats struct {
	Total        int64            `json:"total"`
	ByStatus     map[string]int64 `json:"byStatus"`
	ByPriority   map[string]int64 `json:"byPriority"`
	ByDepartment map[string]int64 `json:"byDepartment"`

	// Recent holds the 5 most recently updated projects in scope.
	Recent []Project `json:"recent"`
}

// ValidStatus reports whether status belongs to the closed status set.
func ValidStatus(status string) bool {
	switch status {
	case StatusDraft, StatusActive, StatusOnHold, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ValidPriority reports whether priority belongs to the closed priority set.
func ValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}
