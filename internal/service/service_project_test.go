// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 LabOps Contributors

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlabworks/labops/internal/logger"
	"github.com/openlabworks/labops/internal/store"
	"github.com/openlabworks/labops/models"
)

// Fixed cast of actors used across the gating tests.
var (
	testAdmin    = models.User{UserID: 1, Role: models.RoleAdmin}
	testCreator  = models.User{UserID: 2, Role: models.RoleResearcher}
	testMember   = models.User{UserID: 3, Role: models.RoleLabTechnician}
	testStranger = models.User{UserID: 4, Role: models.RoleManager}
)

func userDirectory() *mockUserRepository {
	byID := map[int64]models.User{
		testAdmin.UserID:    testAdmin,
		testCreator.UserID:  testCreator,
		testMember.UserID:   testMember,
		testStranger.UserID: testStranger,
	}
	return &mockUserRepository{
		findUserByIDFn: func(ctx context.Context, userID int64) (models.User, error) {
			user, ok := byID[userID]
			if !ok {
				return models.User{}, store.ErrUserNotFound
			}
			return user, nil
		},
	}
}

func testProject() models.Project {
	return models.Project{
		ProjectID:   "0192aaaa-0000-7000-8000-000000000001",
		Title:       "Necropsy batch 42",
		Description: "Histology follow-up",
		Status:      models.StatusActive,
		Priority:    models.PriorityHigh,
		CreatedBy:   testCreator.UserID,
		TeamMembers: []int64{testMember.UserID},
	}
}

func newTestProjectService(projects *mockProjectRepository) ProjectService {
	return NewProjectService(projects, userDirectory(), logger.Nop())
}

func projectStore() *mockProjectRepository {
	return &mockProjectRepository{
		getProjectFn: func(ctx context.Context, projectID string) (models.Project, error) {
			p := testProject()
			if projectID != p.ProjectID {
				return models.Project{}, store.ErrProjectNotFound
			}
			return p, nil
		},
	}
}

func TestProjectCreate_ForcesOwnershipAndDefaults(t *testing.T) {
	var persisted models.Project
	projects := &mockProjectRepository{
		createProjectFn: func(ctx context.Context, project models.Project) (models.Project, error) {
			persisted = project
			return project, nil
		},
	}
	svc := newTestProjectService(projects)

	created, err := svc.Create(context.Background(), testCreator.UserID, models.ProjectCreate{
		Title:       "  Necropsy batch 42  ",
		Description: "Histology follow-up",
	})

	require.NoError(t, err)
	assert.Equal(t, testCreator.UserID, persisted.CreatedBy)
	assert.Equal(t, "Necropsy batch 42", persisted.Title)
	assert.Equal(t, models.StatusDraft, persisted.Status)
	assert.Equal(t, models.PriorityMedium, persisted.Priority)
	assert.NotEmpty(t, persisted.ProjectID)
	assert.NotNil(t, persisted.Tags)
	assert.False(t, persisted.StartDate.IsZero())
	assert.Equal(t, persisted.ProjectID, created.ProjectID)
}

func TestProjectCreate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		req     models.ProjectCreate
		wantErr error
	}{
		{"missing title", models.ProjectCreate{Description: "d"}, ErrTitleRequired},
		{"blank title", models.ProjectCreate{Title: "   ", Description: "d"}, ErrTitleRequired},
		{"missing description", models.ProjectCreate{Title: "t"}, ErrDescriptionRequired},
		{"unknown status", models.ProjectCreate{Title: "t", Description: "d", Status: "Archived"}, ErrInvalidStatus},
		{"unknown priority", models.ProjectCreate{Title: "t", Description: "d", Priority: "urgent"}, ErrInvalidPriority},
		{"unknown department", models.ProjectCreate{Title: "t", Description: "d", Department: "astrology"}, ErrInvalidDepartment},
		{"negative budget", models.ProjectCreate{Title: "t", Description: "d", Budget: -1}, ErrNegativeBudget},
	}

	svc := newTestProjectService(&mockProjectRepository{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), testCreator.UserID, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// A bad project id fails with not-found before any permission is evaluated,
// so callers cannot probe which ids exist.
func TestProjectGet_NotFoundWinsOverForbidden(t *testing.T) {
	svc := newTestProjectService(projectStore())

	_, err := svc.Get(context.Background(), testStranger.UserID, "missing")
	assert.ErrorIs(t, err, store.ErrProjectNotFound)
}

func TestProjectGet_StrangerForbidden(t *testing.T) {
	svc := newTestProjectService(projectStore())

	_, err := svc.Get(context.Background(), testStranger.UserID, testProject().ProjectID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestProjectGet_MemberCanRead(t *testing.T) {
	svc := newTestProjectService(projectStore())

	project, err := svc.Get(context.Background(), testMember.UserID, testProject().ProjectID)
	require.NoError(t, err)
	assert.Equal(t, testProject().ProjectID, project.ProjectID)
}

func TestProjectList_UsesActorScope(t *testing.T) {
	var seenScope store.Scope
	projects := &mockProjectRepository{
		listProjectsFn: func(ctx context.Context, scope store.Scope) ([]models.Project, error) {
			seenScope = scope
			return []models.Project{}, nil
		},
	}
	svc := newTestProjectService(projects)

	_, err := svc.List(context.Background(), testMember.UserID)
	require.NoError(t, err)
	assert.Equal(t, store.Scope{ActorID: testMember.UserID, Admin: false}, seenScope)

	_, err = svc.List(context.Background(), testAdmin.UserID)
	require.NoError(t, err)
	assert.Equal(t, store.Scope{ActorID: testAdmin.UserID, Admin: true}, seenScope)
}

func TestProjectUpdate_MemberForbidden(t *testing.T) {
	svc := newTestProjectService(projectStore())

	title := "Renamed"
	_, err := svc.Update(context.Background(), testMember.UserID, testProject().ProjectID, models.ProjectUpdate{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestProjectUpdate_CreatorSucceeds(t *testing.T) {
	projects := projectStore()
	var applied models.ProjectUpdate
	projects.updateProjectFn = func(ctx context.Context, projectID string, update models.ProjectUpdate) (models.Project, error) {
		applied = update
		return testProject(), nil
	}
	svc := newTestProjectService(projects)

	title := "Renamed"
	progress := 0
	_, err := svc.Update(context.Background(), testCreator.UserID, testProject().ProjectID, models.ProjectUpdate{
		Title:    &title,
		Progress: &progress,
	})

	require.NoError(t, err)
	require.NotNil(t, applied.Title)
	assert.Equal(t, "Renamed", *applied.Title)
	// an explicit zero progress is a real update
	require.NotNil(t, applied.Progress)
	assert.Equal(t, 0, *applied.Progress)
}

func TestProjectUpdate_EmptyUpdateIsNoop(t *testing.T) {
	projects := projectStore()
	projects.updateProjectFn = func(ctx context.Context, projectID string, update models.ProjectUpdate) (models.Project, error) {
		t.Fatal("repository must not be called for an empty update")
		return models.Project{}, nil
	}
	svc := newTestProjectService(projects)

	project, err := svc.Update(context.Background(), testCreator.UserID, testProject().ProjectID, models.ProjectUpdate{})
	require.NoError(t, err)
	assert.Equal(t, testProject().ProjectID, project.ProjectID)
}

func TestProjectUpdate_ProgressOutOfRange(t *testing.T) {
	svc := newTestProjectService(projectStore())

	progress := 101
	_, err := svc.Update(context.Background(), testCreator.UserID, testProject().ProjectID, models.ProjectUpdate{Progress: &progress})
	assert.ErrorIs(t, err, ErrProgressOutOfRange)
}

func TestProjectDelete_AdminSucceeds(t *testing.T) {
	projects := projectStore()
	deleted := false
	projects.deleteProjectFn = func(ctx context.Context, projectID string) error {
		deleted = true
		return nil
	}
	svc := newTestProjectService(projects)

	err := svc.Delete(context.Background(), testAdmin.UserID, testProject().ProjectID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestProjectDelete_MemberForbidden(t *testing.T) {
	svc := newTestProjectService(projectStore())

	err := svc.Delete(context.Background(), testMember.UserID, testProject().ProjectID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAddTeamMember_TargetUserMustExist(t *testing.T) {
	svc := newTestProjectService(projectStore())

	_, err := svc.AddTeamMember(context.Background(), testCreator.UserID, testProject().ProjectID, 999)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestAddTeamMember_Duplicate(t *testing.T) {
	projects := projectStore()
	projects.addTeamMemberFn = func(ctx context.Context, projectID string, userID int64) error {
		return store.ErrAlreadyTeamMember
	}
	svc := newTestProjectService(projects)

	_, err := svc.AddTeamMember(context.Background(), testCreator.UserID, testProject().ProjectID, testMember.UserID)
	assert.ErrorIs(t, err, store.ErrAlreadyTeamMember)
}

func TestAddTeamMember_MemberCannotManageRoster(t *testing.T) {
	svc := newTestProjectService(projectStore())

	_, err := svc.AddTeamMember(context.Background(), testMember.UserID, testProject().ProjectID, testStranger.UserID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRemoveTeamMember_AbsentMemberIsIdempotent(t *testing.T) {
	projects := projectStore()
	projects.removeTeamMemberFn = func(ctx context.Context, projectID string, userID int64) error {
		return nil // roster unchanged
	}
	svc := newTestProjectService(projects)

	project, err := svc.RemoveTeamMember(context.Background(), testCreator.UserID, testProject().ProjectID, 999)
	require.NoError(t, err)
	assert.Equal(t, testProject().ProjectID, project.ProjectID)
}

func TestAddNote_MemberCanAnnotate(t *testing.T) {
	projects := projectStore()
	projects.addNoteFn = func(ctx context.Context, projectID string, note models.Note) (models.Note, error) {
		note.NoteID = 1
		return note, nil
	}
	svc := newTestProjectService(projects)

	note, err := svc.AddNote(context.Background(), testMember.UserID, testProject().ProjectID, "tissue sample logged")
	require.NoError(t, err)
	assert.Equal(t, testMember.UserID, note.CreatedBy)
	assert.Equal(t, int64(1), note.NoteID)
}

func TestAddNote_StrangerForbidden(t *testing.T) {
	svc := newTestProjectService(projectStore())

	_, err := svc.AddNote(context.Background(), testStranger.UserID, testProject().ProjectID, "x")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAddNote_EmptyContent(t *testing.T) {
	svc := newTestProjectService(projectStore())

	_, err := svc.AddNote(context.Background(), testCreator.UserID, testProject().ProjectID, "   ")
	assert.ErrorIs(t, err, ErrEmptyNoteContent)
}

func TestStats_UsesActorScope(t *testing.T) {
	var seenScope store.Scope
	projects := &mockProjectRepository{
		getStatsFn: func(ctx context.Context, scope store.Scope) (models.ProjectStats, error) {
			seenScope = scope
			return models.ProjectStats{Total: 3}, nil
		},
	}
	svc := newTestProjectService(projects)

	stats, err := svc.Stats(context.Background(), testCreator.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, store.Scope{ActorID: testCreator.UserID, Admin: false}, seenScope)
}
