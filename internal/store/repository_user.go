package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/openlabworks/labops/internal/logger"
	"github.com/openlabworks/labops/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, profile mutation and the atomic
// consumption of verification and reset tokens against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// scanUser reads a row in userColumns order into a models.User.
func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.UserID, &u.Email, &u.FullName, &u.PasswordHash, &u.Role, &u.Department, &u.IsVerified,
		&u.VerificationToken, &u.VerificationExpires, &u.ResetPasswordToken, &u.ResetPasswordExpires,
		&u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, timestamps).
//
// The INSERT uses the [createUser] query which returns all columns via a
// RETURNING clause, so the caller receives the canonical database
// representation of the newly created account. The verification token pair
// is written in the same statement, keeping the pending-verification
// invariant atomic with account creation.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser,
		user.Email, user.FullName, user.PasswordHash, user.Role, user.Department,
		user.VerificationToken, user.VerificationExpires,
	)

	created, err := scanUser(row)
	if err != nil {
		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		}

		log.Err(err).Str("func", "*userRepository.CreateUser").
			Bool("retryable", r.db.IsRetryable(err)).
			Msg("error creating user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// FindUserByEmail retrieves the user whose email matches the given
// (lowercased) address, or [ErrUserNotFound].
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, findUserByEmail, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByEmail").
			Bool("retryable", r.db.IsRetryable(err)).
			Msg("error finding user by email")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// FindUserByID retrieves the user with the given id, or [ErrUserNotFound].
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, findUserByID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByID").
			Bool("retryable", r.db.IsRetryable(err)).
			Msg("error finding user by id")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// UpdateProfile rewrites the mutable profile fields (full name, department)
// and returns the updated record.
func (r *userRepository) UpdateProfile(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	updated, err := scanUser(r.db.QueryRowContext(ctx, updateUserProfile, user.UserID, user.FullName, user.Department))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).Str("func", "*userRepository.UpdateProfile").
			Bool("retryable", r.db.IsRetryable(err)).
			Msg("error updating profile")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}

// UpdatePassword overwrites the stored password hash.
func (r *userRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	return r.execOnUser(ctx, "UpdatePassword", updateUserPassword, userID, passwordHash)
}

// SetVerificationToken overwrites the verification token pair, invalidating
// any previously issued verification token.
func (r *userRepository) SetVerificationToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	return r.execOnUser(ctx, "SetVerificationToken", setVerificationToken, userID, token, expiresAt)
}

// SetResetToken overwrites the reset token pair, invalidating any previously
// issued reset token.
func (r *userRepository) SetResetToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	return r.execOnUser(ctx, "SetResetToken", setResetToken, userID, token, expiresAt)
}

// execOnUser runs a single-row UPDATE keyed by user_id and converts a zero
// rows-affected outcome to [ErrUserNotFound].
func (r *userRepository) execOnUser(ctx context.Context, op, query string, args ...any) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository."+op).
			Bool("retryable", r.db.IsRetryable(err)).
			Msg("error executing user update")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// ConsumeVerificationToken atomically flips is_verified and clears the
// verification pair for the user holding an unexpired copy of token.
//
// The conditional UPDATE is the one-shot guarantee: a second caller racing on
// the same token matches zero rows and observes [ErrTokenNotFoundOrExpired],
// identically to an unknown or expired token.
func (r *userRepository) ConsumeVerificationToken(ctx context.Context, token string) (models.User, error) {
	return r.consumeToken(ctx, "ConsumeVerificationToken", consumeVerificationToken, token)
}

// ConsumeResetToken atomically rewrites the password hash and clears the
// reset pair for the user holding an unexpired copy of token. Same one-shot
// semantics as [userRepository.ConsumeVerificationToken].
func (r *userRepository) ConsumeResetToken(ctx context.Context, token string, passwordHash string) (models.User, error) {
	return r.consumeToken(ctx, "ConsumeResetToken", consumeResetToken, token, passwordHash)
}

func (r *userRepository) consumeToken(ctx context.Context, op, query string, args ...any) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// No distinguishing signal between wrong and expired.
			return models.User{}, ErrTokenNotFoundOrExpired
		}

		log.Err(err).Str("func", "*userRepository."+op).
			Bool("retryable", r.db.IsRetryable(err)).
			Msg("error consuming token")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}
