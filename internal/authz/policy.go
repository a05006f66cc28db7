// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 LabOps Contributors

// Package authz implements the authorization policy evaluator gating every
// Project operation.
//
// The policy is closed: a capability is granted only by an explicit row in
// the grant table, everything else is denied. The evaluator is a pure
// function of the actor/project relationship and performs no I/O, so every
// handler consumes the same single source of truth instead of repeating
// ad-hoc ownership checks.
package authz

import "github.com/openlabworks/labops/models"

// Capability is a named permission an actor may hold over a specific project.
type Capability string

const (
	// CapabilityRead allows reading the project and its nested collections.
	CapabilityRead Capability = "read"

	// CapabilityUpdate allows mutating project fields.
	CapabilityUpdate Capability = "update"

	// CapabilityDelete allows deleting the project.
	CapabilityDelete Capability = "delete"

	// CapabilityManageTeam allows adding and removing team members.
	CapabilityManageTeam Capability = "manage_team"

	// CapabilityAddNote allows appending a note to the project.
	CapabilityAddNote Capability = "add_note"
)

// Relation captures the three relationships between an actor and a project
// that the policy distinguishes. An actor matching none of them holds no
// capability at all.
type Relation struct {
	Admin      bool
	Creator    bool
	TeamMember bool
}

// grant is one row of the capability table: which relations confer the
// capability.
type grant struct {
	admin      bool
	creator    bool
	teamMember bool
}

// capabilityGrants is the closed capability table. Absence of a row means
// the capability does not exist; a false cell means the relation does not
// confer it.
var capabilityGrants = map[Capability]grant{
	CapabilityRead:       {admin: true, creator: true, teamMember: true},
	CapabilityUpdate:     {admin: true, creator: true, teamMember: false},
	CapabilityDelete:     {admin: true, creator: true, teamMember: false},
	CapabilityManageTeam: {admin: true, creator: true, teamMember: false},
	CapabilityAddNote:    {admin: true, creator: true, teamMember: true},
}

// Relate computes the relationship between actor and project.
func Relate(actor models.User, project models.Project) Relation {
	return Relation{
		Admin:      actor.IsAdmin(),
		Creator:    project.CreatedBy == actor.UserID,
		TeamMember: project.HasTeamMember(actor.UserID),
	}
}

// Can reports whether the relation confers the given capability.
func (r Relation) Can(c Capability) bool {
	g, ok := capabilityGrants[c]
	if !ok {
		return false
	}

	return (g.admin && r.Admin) || (g.creator && r.Creator) || (g.teamMember && r.TeamMember)
}

// Allowed is a convenience wrapper combining Relate and Can for a single
// capability check.
func Allowed(actor models.User, project models.Project, c Capability) bool {
	return Relate(actor, project).Can(c)
}
