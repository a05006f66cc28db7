// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 LabOps Contributors

package service

import (
	"context"
	"strings"
	"time"

	"github.com/openlabworks/labops/internal/authz"
	"github.com/openlabworks/labops/internal/logger"
	"github.com/openlabworks/labops/internal/store"
	"github.com/openlabworks/labops/internal/utils"
	"github.com/openlabworks/labops/models"
)

// projectService is the concrete implementation of ProjectService.
//
// Every operation follows the same gating order: resolve the acting user,
// resolve the target project (a bad id fails with not-found before any
// permission is considered), then consult the authz capability table. Only
// then is the mutation performed.
type projectService struct {
	projectRepository store.ProjectRepository
	userRepository    store.UserRepository
	ids               *utils.UUIDGenerator
	logger            *logger.Logger
}

// NewProjectService constructs a ProjectService over the given repositories.
func NewProjectService(projectRepository store.ProjectRepository, userRepository store.UserRepository, logger *logger.Logger) ProjectService {
	return &projectService{
		projectRepository: projectRepository,
		userRepository:    userRepository,
		ids:               utils.NewUUIDGenerator(),
		logger:            logger,
	}
}

// actor resolves the acting user record from its id.
func (s *projectService) actor(ctx context.Context, actorID int64) (models.User, error) {
	return s.userRepository.FindUserByID(ctx, actorID)
}

// scopeFor narrows list and aggregate queries to the actor's visibility.
func scopeFor(actor models.User) store.Scope {
	return store.Scope{ActorID: actor.UserID, Admin: actor.IsAdmin()}
}

// Create persists a new project owned by the actor. CreatedBy is forced to
// the acting user regardless of any caller-supplied value; status and
// priority fall back to their defaults; the start date defaults to now.
func (s *projectService) Create(ctx context.Context, actorID int64, req models.ProjectCreate) (models.Project, error) {
	log := logger.FromContext(ctx)

	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return models.Project{}, err
	}

	if err := validateProjectCreate(&req); err != nil {
		log.Error().Err(err).Msg("invalid project data provided")
		return models.Project{}, err
	}

	startDate := time.Now()
	if req.StartDate != nil {
		startDate = *req.StartDate
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	project := models.Project{
		ProjectID:   s.ids.Generate(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Department:  req.Department,
		StartDate:   startDate,
		EndDate:     req.EndDate,
		CreatedBy:   actor.UserID,
		Tags:        tags,
		Budget:      req.Budget,
	}

	created, err := s.projectRepository.CreateProject(ctx, project)
	if err != nil {
		log.Err(err).Msg("project creation ended with error")
		return models.Project{}, err
	}

	log.Info().Str("project_id", created.ProjectID).Int64("created_by", actor.UserID).Msg("project created")
	return created, nil
}

// Get returns a project the actor can read: 404-style not-found if the id
// does not resolve, forbidden if it resolves but the actor holds no read
// capability.
func (s *projectService) Get(ctx context.Context, actorID int64, projectID string) (models.Project, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return models.Project{}, err
	}

	project, err := s.projectRepository.GetProject(ctx, projectID)
	if err != nil {
		return models.Project{}, err
	}

	if !authz.Allowed(actor, project, authz.CapabilityRead) {
		return models.Project{}, ErrForbidden
	}

	return project, nil
}

// List returns the projects visible to the actor, most recently updated
// first. No per-project capability is evaluated: the query predicate itself
// is narrowed to created-or-member projects unless the actor is an admin.
func (s *projectService) List(ctx context.Context, actorID int64) ([]models.Project, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	return s.projectRepository.ListProjects(ctx, scopeFor(actor))
}

// Update applies a partial update to a project the actor can update. Only
// supplied fields change; an explicit progress of 0 is a real update, not a
// no-op.
func (s *projectService) Update(ctx context.Context, actorID int64, projectID string, update models.ProjectUpdate) (models.Project, error) {
	log := logger.FromContext(ctx)

	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return models.Project{}, err
	}

	project, err := s.projectRepository.GetProject(ctx, projectID)
	if err != nil {
		return models.Project{}, err
	}

	if !authz.Allowed(actor, project, authz.CapabilityUpdate) {
		return models.Project{}, ErrForbidden
	}

	if err := validateProjectUpdate(update); err != nil {
		log.Error().Err(err).Str("project_id", projectID).Msg("invalid project update provided")
		return models.Project{}, err
	}

	if update.Empty() {
		return project, nil
	}

	updated, err := s.projectRepository.UpdateProject(ctx, projectID, update)
	if err != nil {
		log.Err(err).Str("project_id", projectID).Msg("project update ended with error")
		return models.Project{}, err
	}

	return updated, nil
}

// Delete removes a project the actor can delete.
func (s *projectService) Delete(ctx context.Context, actorID int64, projectID string) error {
	log := logger.FromContext(ctx)

	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return err
	}

	project, err := s.projectRepository.GetProject(ctx, projectID)
	if err != nil {
		return err
	}

	if !authz.Allowed(actor, project, authz.CapabilityDelete) {
		return ErrForbidden
	}

	if err := s.projectRepository.DeleteProject(ctx, projectID); err != nil {
		log.Err(err).Str("project_id", projectID).Msg("project deletion ended with error")
		return err
	}

	log.Info().Str("project_id", projectID).Int64("deleted_by", actor.UserID).Msg("project deleted")
	return nil
}

// AddTeamMember adds a user to the roster of a project the actor manages.
// Resolution order: project (not-found), capability (forbidden), target user
// (not-found), duplicate membership (conflict).
func (s *projectService) AddTeamMember(ctx context.Context, actorID int64, projectID string, userID int64) (models.Project, error) {
	log := logger.FromContext(ctx)

	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return models.Project{}, err
	}

	project, err := s.projectRepository.GetProject(ctx, projectID)
	if err != nil {
		return models.Project{}, err
	}

	if !authz.Allowed(actor, project, authz.CapabilityManageTeam) {
		return models.Project{}, ErrForbidden
	}

	if _, err := s.userRepository.FindUserByID(ctx, userID); err != nil {
		return models.Project{}, err
	}

	if err := s.projectRepository.AddTeamMember(ctx, projectID, userID); err != nil {
		log.Err(err).Str("project_id", projectID).Int64("user_id", userID).Msg("adding team member ended with error")
		return models.Project{}, err
	}

	return s.projectRepository.GetProject(ctx, projectID)
}

// RemoveTeamMember removes a user from the roster. Removal of an absent
// member is idempotent: the roster is unchanged and the call succeeds.
func (s *projectService) RemoveTeamMember(ctx context.Context, actorID int64, projectID string, userID int64) (models.Project, error) {
	log := logger.FromContext(ctx)

	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return models.Project{}, err
	}

	project, err := s.projectRepository.GetProject(ctx, projectID)
	if err != nil {
		return models.Project{}, err
	}

	if !authz.Allowed(actor, project, authz.CapabilityManageTeam) {
		return models.Project{}, ErrForbidden
	}

	if err := s.projectRepository.RemoveTeamMember(ctx, projectID, userID); err != nil {
		log.Err(err).Str("project_id", projectID).Int64("user_id", userID).Msg("removing team member ended with error")
		return models.Project{}, err
	}

	return s.projectRepository.GetProject(ctx, projectID)
}

// AddNote appends a note to a project the actor can annotate. The note's
// author is captured from the acting user at append time.
func (s *projectService) AddNote(ctx context.Context, actorID int64, projectID string, content string) (models.Note, error) {
	log := logger.FromContext(ctx)

	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return models.Note{}, err
	}

	project, err := s.projectRepository.GetProject(ctx, projectID)
	if err != nil {
		return models.Note{}, err
	}

	if !authz.Allowed(actor, project, authz.CapabilityAddNote) {
		return models.Note{}, ErrForbidden
	}

	if strings.TrimSpace(content) == "" {
		return models.Note{}, ErrEmptyNoteContent
	}

	note, err := s.projectRepository.AddNote(ctx, projectID, models.Note{
		Content:   content,
		CreatedBy: actor.UserID,
	})
	if err != nil {
		log.Err(err).Str("project_id", projectID).Msg("adding note ended with error")
		return models.Note{}, err
	}

	return note, nil
}

// Stats returns the scoped aggregate for the actor: counts by status,
// priority and department plus the 5 most recently updated visible projects.
func (s *projectService) Stats(ctx context.Context, actorID int64) (models.ProjectStats, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return models.ProjectStats{}, err
	}

	return s.projectRepository.GetStats(ctx, scopeFor(actor))
}

// validateProjectCreate checks required fields and closed sets, filling in
// the documented defaults for status and priority.
func validateProjectCreate(req *models.ProjectCreate) error {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return ErrTitleRequired
	}
	if len(title) > 100 {
		return ErrTitleTooLong
	}
	if strings.TrimSpace(req.Description) == "" {
		return ErrDescriptionRequired
	}

	if req.Status == "" {
		req.Status = models.StatusDraft
	}
	if !models.ValidStatus(req.Status) {
		return ErrInvalidStatus
	}

	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}
	if !models.ValidPriority(req.Priority) {
		return ErrInvalidPriority
	}

	if !models.ValidDepartment(req.Department) {
		return ErrInvalidDepartment
	}
	if req.Budget < 0 {
		return ErrNegativeBudget
	}

	return nil
}

// validateProjectUpdate checks the supplied fields of a partial update
// against the same rules as creation, including the [0,100] progress bound.
func validateProjectUpdate(update models.ProjectUpdate) error {
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return ErrTitleRequired
		}
		if len(title) > 100 {
			return ErrTitleTooLong
		}
	}
	if update.Description != nil && strings.TrimSpace(*update.Description) == "" {
		return ErrDescriptionRequired
	}
	if update.Status != nil && !models.ValidStatus(*update.Status) {
		return ErrInvalidStatus
	}
	if update.Priority != nil && !models.ValidPriority(*update.Priority) {
		return ErrInvalidPriority
	}
	if update.Department != nil && !models.ValidDepartment(*update.Department) {
		return ErrInvalidDepartment
	}
	if update.Budget != nil && *update.Budget < 0 {
		return ErrNegativeBudget
	}
	if update.Progress != nil && (*update.Progress < 0 || *update.Progress > 100) {
		return ErrProgressOutOfRange
	}

	return nil
}
