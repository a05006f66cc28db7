package service

import (
	"context"

	"github.com/openlabworks/labops/internal/logger"
)

// logMailer is the stub [Mailer]: instead of delivering email it writes the
// token to the structured log. Real delivery is an external collaborator of
// this core.
type logMailer struct {
	logger *logger.Logger
}

// NewLogMailer constructs the logging Mailer stub.
func NewLogMailer(logger *logger.Logger) Mailer {
	return &logMailer{logger: logger}
}

func (m *logMailer) SendVerificationToken(ctx context.Context, email, token string) error {
	logger.FromContext(ctx).Info().
		Str("email", email).
		Str("token", token).
		Msg("verification token issued (email delivery stubbed)")
	return nil
}

func (m *logMailer) SendResetToken(ctx context.Context, email, token string) error {
	logger.FromContext(ctx).Info().
		Str("email", email).
		Str("token", token).
		Msg("password reset token issued (email delivery stubbed)")
	return nil
}
