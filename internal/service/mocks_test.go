// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 LabOps Contributors

package service

import (
	"context"
	"time"

	"github.com/openlabworks/labops/internal/store"
	"github.com/openlabworks/labops/models"
)

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createUserFn               func(ctx context.Context, user models.User) (models.User, error)
	findUserByEmailFn          func(ctx context.Context, email string) (models.User, error)
	findUserByIDFn             func(ctx context.Context, userID int64) (models.User, error)
	updateProfileFn            func(ctx context.Context, user models.User) (models.User, error)
	updatePasswordFn           func(ctx context.Context, userID int64, passwordHash string) error
	setVerificationTokenFn     func(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	setResetTokenFn            func(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	consumeVerificationTokenFn func(ctx context.Context, token string) (models.User, error)
	consumeResetTokenFn        func(ctx context.Context, token, passwordHash string) (models.User, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findUserByEmailFn != nil {
		return m.findUserByEmailFn(ctx, email)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	if m.findUserByIDFn != nil {
		return m.findUserByIDFn(ctx, userID)
	}
	return models.User{UserID: userID}, nil
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, user models.User) (models.User, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(ctx, userID, passwordHash)
	}
	return nil
}

func (m *mockUserRepository) SetVerificationToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	if m.setVerificationTokenFn != nil {
		return m.setVerificationTokenFn(ctx, userID, token, expiresAt)
	}
	return nil
}

func (m *mockUserRepository) SetResetToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	if m.setResetTokenFn != nil {
		return m.setResetTokenFn(ctx, userID, token, expiresAt)
	}
	return nil
}

func (m *mockUserRepository) ConsumeVerificationToken(ctx context.Context, token string) (models.User, error) {
	if m.consumeVerificationTokenFn != nil {
		return m.consumeVerificationTokenFn(ctx, token)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) ConsumeResetToken(ctx context.Context, token, passwordHash string) (models.User, error) {
	if m.consumeResetTokenFn != nil {
		return m.consumeResetTokenFn(ctx, token, passwordHash)
	}
	return models.User{}, nil
}

// ─────────────────────────────────────────────
// Mock: store.ProjectRepository
// ─────────────────────────────────────────────

type mockProjectRepository struct {
	createProjectFn    func(ctx context.Context, project models.Project) (models.Project, error)
	getProjectFn       func(ctx context.Context, projectID string) (models.Project, error)
	listProjectsFn     func(ctx context.Context, scope store.Scope) ([]models.Project, error)
	updateProjectFn    func(ctx context.Context, projectID string, update models.ProjectUpdate) (models.Project, error)
	deleteProjectFn    func(ctx context.Context, projectID string) error
	addTeamMemberFn    func(ctx context.Context, projectID string, userID int64) error
	removeTeamMemberFn func(ctx context.Context, projectID string, userID int64) error
	addNoteFn          func(ctx context.Context, projectID string, note models.Note) (models.Note, error)
	getStatsFn         func(ctx context.Context, scope store.Scope) (models.ProjectStats, error)
}

func (m *mockProjectRepository) ListProjects(ctx context.Context, scope store.Scope) ([]models.Project, error) {
	if m.listProjectsFn != nil {
		return m.listProjectsFn(ctx, scope)
	}
	return []models.Project{}, nil
}

func (m *mockProjectRepository) GetStats(ctx context.Context, scope store.Scope) (models.ProjectStats, error) {
	if m.getStatsFn != nil {
		return m.getStatsFn(ctx, scope)
	}
	return models.ProjectStats{}, nil
}

func (m *mockProjectRepository) CreateProject(ctx context.Context, project models.Project) (models.Project, error) {
	if m.createProjectFn != nil {
		return m.createProjectFn(ctx, project)
	}
	return project, nil
}

func (m *mockProjectRepository) GetProject(ctx context.Context, projectID string) (models.Project, error) {
	if m.getProjectFn != nil {
		return m.getProjectFn(ctx, projectID)
	}
	return models.Project{ProjectID: projectID}, nil
}

func (m *mockProjectRepository) UpdateProject(ctx context.Context, projectID string, update models.ProjectUpdate) (models.Project, error) {
	if m.updateProjectFn != nil {
		return m.updateProjectFn(ctx, projectID, update)
	}
	return models.Project{ProjectID: projectID}, nil
}

func (m *mockProjectRepository) DeleteProject(ctx context.Context, projectID string) error {
	if m.deleteProjectFn != nil {
		return m.deleteProjectFn(ctx, projectID)
	}
	return nil
}

func (m *mockProjectRepository) AddTeamMember(ctx context.Context, projectID string, userID int64) error {
	if m.addTeamMemberFn != nil {
		return m.addTeamMemberFn(ctx, projectID, userID)
	}
	return nil
}

func (m *mockProjectRepository) RemoveTeamMember(ctx context.Context, projectID string, userID int64) error {
	if m.removeTeamMemberFn != nil {
		return m.removeTeamMemberFn(ctx, projectID, userID)
	}
	return nil
}

func (m *mockProjectRepository) AddNote(ctx context.Context, projectID string, note models.Note) (models.Note, error) {
	if m.addNoteFn != nil {
		return m.addNoteFn(ctx, projectID, note)
	}
	return note, nil
}

// ─────────────────────────────────────────────
// Mock: service.Mailer
// ─────────────────────────────────────────────

type mockMailer struct {
	verificationTokens []string
	resetTokens        []string
	sendErr            error
}

func (m *mockMailer) SendVerificationToken(ctx context.Context, email, token string) error {
	m.verificationTokens = append(m.verificationTokens, token)
	return m.sendErr
}

func (m *mockMailer) SendResetToken(ctx context.Context, email, token string) error {
	m.resetTokens = append(m.resetTokens, token)
	return m.sendErr
}
