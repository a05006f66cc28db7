package store

import (
	"context"
	"time"

	"github.com/openlabworks/labops/models"
)

// UserRepository is the durable credential store. Token consumption methods
// are atomic find-and-clear updates: the token lookup, the expiry check, the
// clearing of the token pair and the state change it authorizes all happen in
// a single conditional statement, closing the double-consumption window.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	UpdateProfile(ctx context.Context, user models.User) (models.User, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error

	// SetVerificationToken and SetResetToken overwrite the respective
	// token/expiry pair, invalidating any previously issued token of the
	// same class.
	SetVerificationToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	SetResetToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error

	// ConsumeVerificationToken flips is_verified and clears the verification
	// pair in one statement, returning the updated user or
	// ErrTokenNotFoundOrExpired.
	ConsumeVerificationToken(ctx context.Context, token string) (models.User, error)

	// ConsumeResetToken rewrites the password hash and clears the reset pair
	// in one statement, returning the updated user or
	// ErrTokenNotFoundOrExpired.
	ConsumeResetToken(ctx context.Context, token string, passwordHash string) (models.User, error)
}

// ProjectRepository persists the Project aggregate: the project row itself
// plus its membership roster and append-only notes.
type ProjectRepository interface {
	CreateProject(ctx context.Context, project models.Project) (models.Project, error)
	GetProject(ctx context.Context, projectID string) (models.Project, error)
	ListProjects(ctx context.Context, scope Scope) ([]models.Project, error)
	UpdateProject(ctx context.Context, projectID string, update models.ProjectUpdate) (models.Project, error)
	DeleteProject(ctx context.Context, projectID string) error

	AddTeamMember(ctx context.Context, projectID string, userID int64) error
	RemoveTeamMember(ctx context.Context, projectID string, userID int64) error

	AddNote(ctx context.Context, projectID string, note models.Note) (models.Note, error)

	GetStats(ctx context.Context, scope Scope) (models.ProjectStats, error)
}

// Scope narrows list and aggregate queries to the projects visible to an
// actor: everything for admins, otherwise projects the actor created or is a
// member of.
type Scope struct {
	ActorID int64
	Admin   bool
}
