// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 LabOps Contributors

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openlabworks/labops/internal/logger"
	"github.com/openlabworks/labops/internal/service"
	"github.com/openlabworks/labops/models"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerFn           func(ctx context.Context, req models.RegisterRequest) (models.User, models.Token, error)
	loginFn              func(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error)
	verifyEmailFn        func(ctx context.Context, token string) (models.User, error)
	resendVerificationFn func(ctx context.Context, email string) error
	forgotPasswordFn     func(ctx context.Context, email string) error
	resetPasswordFn      func(ctx context.Context, token, newPassword string) error
	profileFn            func(ctx context.Context, userID int64) (models.User, error)
	updateProfileFn      func(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error)
	createTokenFn        func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn         func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.User, models.Token, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, req)
	}
	return models.User{Email: req.Email}, models.Token{}, nil
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, req)
	}
	return models.User{Email: req.Email}, models.Token{}, nil
}

func (m *mockAuthService) VerifyEmail(ctx context.Context, token string) (models.User, error) {
	if m.verifyEmailFn != nil {
		return m.verifyEmailFn(ctx, token)
	}
	return models.User{IsVerified: true}, nil
}

func (m *mockAuthService) ResendVerification(ctx context.Context, email string) error {
	if m.resendVerificationFn != nil {
		return m.resendVerificationFn(ctx, email)
	}
	return nil
}

func (m *mockAuthService) ForgotPassword(ctx context.Context, email string) error {
	if m.forgotPasswordFn != nil {
		return m.forgotPasswordFn(ctx, email)
	}
	return nil
}

func (m *mockAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if m.resetPasswordFn != nil {
		return m.resetPasswordFn(ctx, token, newPassword)
	}
	return nil
}

func (m *mockAuthService) Profile(ctx context.Context, userID int64) (models.User, error) {
	if m.profileFn != nil {
		return m.profileFn(ctx, userID)
	}
	return models.User{UserID: userID}, nil
}

func (m *mockAuthService) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, userID, update)
	}
	return models.User{UserID: userID}, nil
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if m.createTokenFn != nil {
		return m.createTokenFn(ctx, user)
	}
	return models.Token{}, nil
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if m.parseTokenFn != nil {
		return m.parseTokenFn(ctx, tokenString)
	}
	return models.Token{UserID: 1}, nil
}

// ─────────────────────────────────────────────
// Mock ProjectService
// ─────────────────────────────────────────────

// mockProjectService implements service.ProjectService for unit tests.
type mockProjectService struct {
	createFn           func(ctx context.Context, actorID int64, req models.ProjectCreate) (models.Project, error)
	getFn              func(ctx context.Context, actorID int64, projectID string) (models.Project, error)
	listFn             func(ctx context.Context, actorID int64) ([]models.Project, error)
	updateFn           func(ctx context.Context, actorID int64, projectID string, update models.ProjectUpdate) (models.Project, error)
	deleteFn           func(ctx context.Context, actorID int64, projectID string) error
	addTeamMemberFn    func(ctx context.Context, actorID int64, projectID string, userID int64) (models.Project, error)
	removeTeamMemberFn func(ctx context.Context, actorID int64, projectID string, userID int64) (models.Project, error)
	addNoteFn          func(ctx context.Context, actorID int64, projectID string, content string) (models.Note, error)
	statsFn            func(ctx context.Context, actorID int64) (models.ProjectStats, error)
}

func (m *mockProjectService) Create(ctx context.Context, actorID int64, req models.ProjectCreate) (models.Project, error) {
	return m.createFn(ctx, actorID, req)
}

func (m *mockProjectService) Get(ctx context.Context, actorID int64, projectID string) (models.Project, error) {
	return m.getFn(ctx, actorID, projectID)
}

func (m *mockProjectService) List(ctx context.Context, actorID int64) ([]models.Project, error) {
	return m.listFn(ctx, actorID)
}

func (m *mockProjectService) Update(ctx context.Context, actorID int64, projectID string, update models.ProjectUpdate) (models.Project, error) {
	return m.updateFn(ctx, actorID, projectID, update)
}

func (m *mockProjectService) Delete(ctx context.Context, actorID int64, projectID string) error {
	return m.deleteFn(ctx, actorID, projectID)
}

func (m *mockProjectService) AddTeamMember(ctx context.Context, actorID int64, projectID string, userID int64) (models.Project, error) {
	return m.addTeamMemberFn(ctx, actorID, projectID, userID)
}

func (m *mockProjectService) RemoveTeamMember(ctx context.Context, actorID int64, projectID string, userID int64) (models.Project, error) {
	return m.removeTeamMemberFn(ctx, actorID, projectID, userID)
}

func (m *mockProjectService) AddNote(ctx context.Context, actorID int64, projectID string, content string) (models.Note, error) {
	return m.addNoteFn(ctx, actorID, projectID, content)
}

func (m *mockProjectService) Stats(ctx context.Context, actorID int64) (models.ProjectStats, error) {
	return m.statsFn(ctx, actorID)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestRouter builds the full router over the given service mocks, so
// tests exercise the real route table and middleware chain.
func newTestRouter(t *testing.T, auth *mockAuthService, projects *mockProjectService) http.Handler {
	t.Helper()
	if auth == nil {
		auth = &mockAuthService{}
	}
	if projects == nil {
		projects = &mockProjectService{}
	}
	h := &Handler{
		logger: logger.Nop(),
		services: &service.Services{
			AuthService:    auth,
			ProjectService: projects,
		},
	}
	return h.Init()
}

// injectNopLogger places a nop logger into the request context for tests
// that call handler methods directly, bypassing the middleware chain.
func injectNopLogger(r *http.Request) *http.Request {
	nop := logger.Nop()
	ctx := nop.Logger.WithContext(r.Context())
	return r.WithContext(ctx)
}

// serve runs a request through the router and returns the recorder.
func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
