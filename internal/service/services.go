package service

import (
	"github.com/openlabworks/labops/internal/config"
	"github.com/openlabworks/labops/internal/logger"
	"github.com/openlabworks/labops/internal/store"
)

// Services bundles the application services handed to the transport layer.
type Services struct {
	AuthService    AuthService
	ProjectService ProjectService
}

// NewServices wires the credential manager and the project service over the
// given repositories. The deployment mode is resolved here once so the auth
// service carries an explicit production flag instead of reading the
// environment ad hoc.
func NewServices(repositories *store.Repositories, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	mailer := NewLogMailer(logger)

	return &Services{
		AuthService:    NewAuthService(repositories.UserRepository, mailer, cfg.Auth, cfg.App.IsProduction(), logger),
		ProjectService: NewProjectService(repositories.ProjectRepository, repositories.UserRepository, logger),
	}
}
