package store

import (
	"context"

	"github.com/openlabworks/labops/internal/config"
	"github.com/openlabworks/labops/internal/logger"
)

// Repositories bundles the durable stores handed to the service layer.
type Repositories struct {
	UserRepository    UserRepository
	ProjectRepository ProjectRepository
}

// NewRepositories connects to PostgreSQL, runs the embedded migrations and
// wires the user and project repositories over the shared handle.
func NewRepositories(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Repositories, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, err
	}

	return &Repositories{
		UserRepository:    NewUserRepository(db, log),
		ProjectRepository: NewProjectRepository(db, log),
	}, nil
}
