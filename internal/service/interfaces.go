package service

import (
	"context"

	"github.com/openlabworks/labops/models"
)

// AuthService is the credential manager: it orchestrates registration, login,
// the verification and reset token lifecycles and bearer-token handling.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, models.Token, error)
	Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error)

	VerifyEmail(ctx context.Context, token string) (models.User, error)
	ResendVerification(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error

	Profile(ctx context.Context, userID int64) (models.User, error)
	UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// ProjectService is the project aggregate service. Every operation resolves
// the target project first (not-found wins over forbidden) and then gates the
// mutation through the authz capability evaluator.
type ProjectService interface {
	Create(ctx context.Context, actorID int64, req models.ProjectCreate) (models.Project, error)
	Get(ctx context.Context, actorID int64, projectID string) (models.Project, error)
	List(ctx context.Context, actorID int64) ([]models.Project, error)
	Update(ctx context.Context, actorID int64, projectID string, update models.ProjectUpdate) (models.Project, error)
	Delete(ctx context.Context, actorID int64, projectID string) error

	AddTeamMember(ctx context.Context, actorID int64, projectID string, userID int64) (models.Project, error)
	RemoveTeamMember(ctx context.Context, actorID int64, projectID string, userID int64) (models.Project, error)

	AddNote(ctx context.Context, actorID int64, projectID string, content string) (models.Note, error)

	Stats(ctx context.Context, actorID int64) (models.ProjectStats, error)
}

// Mailer delivers one-shot secrets out of band. Delivery failures are logged
// and never fail the request that triggered them.
type Mailer interface {
	SendVerificationToken(ctx context.Context, email, token string) error
	SendResetToken(ctx context.Context, email, token string) error
}
