// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 LabOps Contributors

package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/openlabworks/labops/internal/config"
	"github.com/openlabworks/labops/internal/logger"
	"github.com/openlabworks/labops/internal/store"
	"github.com/openlabworks/labops/internal/utils"
	"github.com/openlabworks/labops/models"
)

// Time-to-live of the two one-shot token classes. Verification tokens live a
// day; reset tokens are deliberately short-lived.
const (
	VerificationTokenTTL = 24 * time.Hour
	ResetTokenTTL        = time.Hour
)

// MinPasswordLength is the minimum accepted source password length.
const MinPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification, the verification and
// reset token lifecycles, and JWT bearer tokens, using a UserRepository for
// persistence and bcrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// mailer receives freshly issued one-shot tokens for out-of-band
	// delivery. Failures are logged, never propagated.
	mailer Mailer

	// tokenSignKey is the HMAC secret used to sign and verify bearer tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued bearer token.
	tokenIssuer string

	// tokenDuration controls how long a newly issued bearer token remains
	// valid. There is no revocation before natural expiry.
	tokenDuration time.Duration

	// bcryptCost is the work factor applied when hashing passwords.
	bcryptCost int

	// production gates login for unverified accounts. It is fixed at
	// construction so behavior is deterministic and testable without
	// environment mutation.
	production bool

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given UserRepository
// and Mailer, populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, mailer Mailer, cfg config.Auth, production bool, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		mailer:         mailer,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		bcryptCost:     cfg.BcryptCost,
		production:     production,
		logger:         logger,
	}
}

// Register creates a new user account.
//
// The password is bcrypt-hashed, the email is lowercased for
// case-insensitive uniqueness, and a verification token (24h TTL) is written
// in the same INSERT that creates the account. The token is handed to the
// Mailer for out-of-band delivery; a bearer token is issued immediately, so
// registration both succeeds and authenticates in one step even though the
// account starts unverified.
//
// Returns the persisted user and bearer token, or:
//   - a validation sentinel if a required field is missing or malformed,
//     or terms were not accepted.
//   - [store.ErrEmailAlreadyExists] if the email is already registered.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	if err := validateRegistration(req); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("invalid registration data provided")
		return models.User{}, models.Token{}, err
	}

	hash, err := utils.HashPassword(req.Password, a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, models.Token{}, fmt.Errorf("password hashing failed: %w", err)
	}

	verificationToken, err := utils.GenerateOpaqueToken()
	if err != nil {
		log.Err(err).Msg("verification token generation failed")
		return models.User{}, models.Token{}, err
	}
	expiresAt := time.Now().Add(VerificationTokenTTL)

	user := models.User{
		Email:               strings.ToLower(strings.TrimSpace(req.Email)),
		FullName:            strings.TrimSpace(req.FullName),
		PasswordHash:        hash,
		Role:                req.Role,
		Department:          req.Department,
		VerificationToken:   &verificationToken,
		VerificationExpires: &expiresAt,
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, models.Token{}, err
	}

	// Fire-and-forget: delivery failure must not fail registration.
	if err := a.mailer.SendVerificationToken(ctx, registeredUser.Email, verificationToken); err != nil {
		log.Err(err).Int64("id", registeredUser.UserID).Msg("verification token delivery failed")
	}

	token, err := a.CreateToken(ctx, registeredUser)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return registeredUser, token, nil
}

// Login authenticates an existing user.
//
// An unknown email and a wrong password are indistinguishable to the caller:
// both surface as ErrWrongPassword. When the deployment runs in production
// mode, unverified accounts are rejected with [*UnverifiedLoginError] so the
// client can offer "resend verification"; outside production they may still
// log in.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || req.Password == "" {
		log.Error().Msg("invalid login data provided")
		return models.User{}, models.Token{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user search by email failed")
		// Only an unknown account is folded into the credentials error;
		// a store failure stays a store failure.
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, models.Token{}, ErrWrongPassword
		}
		return models.User{}, models.Token{}, err
	}

	if !utils.VerifyPassword(req.Password, foundUser.PasswordHash) {
		log.Error().Int64("id", foundUser.UserID).Msg("wrong password")
		return models.User{}, models.Token{}, ErrWrongPassword
	}

	if !foundUser.IsVerified && a.production {
		log.Error().Int64("id", foundUser.UserID).Msg("unverified account login rejected")
		return models.User{}, models.Token{}, &UnverifiedLoginError{UserID: foundUser.UserID}
	}

	token, err := a.CreateToken(ctx, foundUser)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return foundUser, token, nil
}

// VerifyEmail consumes a verification token and flips the account to
// verified.
//
// The lookup, expiry check, token clearing and verified flip happen in one
// atomic store operation, so the token can be consumed at most once. Wrong
// and expired tokens fail identically with [store.ErrTokenNotFoundOrExpired].
func (a *authService) VerifyEmail(ctx context.Context, token string) (models.User, error) {
	log := logger.FromContext(ctx)

	if token == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	user, err := a.userRepository.ConsumeVerificationToken(ctx, token)
	if err != nil {
		log.Err(err).Msg("verification token consumption failed")
		return models.User{}, err
	}

	log.Info().Int64("id", user.UserID).Msg("account email verified")
	return user, nil
}

// ResendVerification re-issues a fresh verification token for an unverified
// account, overwriting (and thereby invalidating) any prior one.
func (a *authService) ResendVerification(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	if email == "" {
		return ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return err
	}

	if user.IsVerified {
		return ErrAlreadyVerified
	}

	token, err := utils.GenerateOpaqueToken()
	if err != nil {
		log.Err(err).Msg("verification token generation failed")
		return err
	}

	if err := a.userRepository.SetVerificationToken(ctx, user.UserID, token, time.Now().Add(VerificationTokenTTL)); err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("storing verification token failed")
		return err
	}

	if err := a.mailer.SendVerificationToken(ctx, user.Email, token); err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("verification token delivery failed")
	}

	return nil
}

// ForgotPassword issues a reset token (1h TTL) for an existing account.
// Account existence is revealed by design: an unknown email returns
// [store.ErrUserNotFound] rather than a silent success.
func (a *authService) ForgotPassword(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	if email == "" {
		return ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return err
	}

	token, err := utils.GenerateOpaqueToken()
	if err != nil {
		log.Err(err).Msg("reset token generation failed")
		return err
	}

	if err := a.userRepository.SetResetToken(ctx, user.UserID, token, time.Now().Add(ResetTokenTTL)); err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("storing reset token failed")
		return err
	}

	if err := a.mailer.SendResetToken(ctx, user.Email, token); err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("reset token delivery failed")
	}

	return nil
}

// ResetPassword consumes a reset token and rewrites the account password.
//
// The new password is hashed before the store call; the hash rewrite and the
// token clearing are one atomic operation with the same one-shot guarantee as
// VerifyEmail. Previously issued bearer tokens remain valid for their
// lifetime.
func (a *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	log := logger.FromContext(ctx)

	if token == "" {
		return ErrInvalidDataProvided
	}
	if len(newPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := utils.HashPassword(newPassword, a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	user, err := a.userRepository.ConsumeResetToken(ctx, token, hash)
	if err != nil {
		log.Err(err).Msg("reset token consumption failed")
		return err
	}

	log.Info().Int64("id", user.UserID).Msg("account password reset")
	return nil
}

// Profile returns the account record of the authenticated user.
func (a *authService) Profile(ctx context.Context, userID int64) (models.User, error) {
	return a.userRepository.FindUserByID(ctx, userID)
}

// UpdateProfile applies a partial self-update. Nil fields are untouched; a
// supplied password is validated and re-hashed (a password write always
// re-hashes, never otherwise).
func (a *authService) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	if update.FullName != nil {
		name := strings.TrimSpace(*update.FullName)
		if length := utf8.RuneCountInString(name); length < 2 || length > 50 {
			return models.User{}, ErrInvalidFullName
		}
		user.FullName = name
	}
	if update.Department != nil {
		if !models.ValidDepartment(*update.Department) {
			return models.User{}, ErrInvalidDepartment
		}
		user.Department = *update.Department
	}

	// The whole update is validated and the replacement hash prepared before
	// anything is written, so a rejected field leaves no partial state.
	var passwordHash string
	if update.Password != nil {
		if len(*update.Password) < MinPasswordLength {
			return models.User{}, ErrPasswordTooShort
		}

		hash, err := utils.HashPassword(*update.Password, a.bcryptCost)
		if err != nil {
			log.Err(err).Msg("password hashing failed")
			return models.User{}, fmt.Errorf("password hashing failed: %w", err)
		}
		passwordHash = hash
	}

	updated, err := a.userRepository.UpdateProfile(ctx, user)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("profile update failed")
		return models.User{}, err
	}

	if passwordHash != "" {
		if err := a.userRepository.UpdatePassword(ctx, userID, passwordHash); err != nil {
			log.Err(err).Int64("id", userID).Msg("password update failed")
			return models.User{}, err
		}
	}

	return updated, nil
}

// CreateToken issues a signed bearer token for the given user.
//
// The token is signed with the configured tokenSignKey, carries the
// configured tokenIssuer as the "iss" claim and the user id as "sub", and
// expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw bearer token string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// validateRegistration applies the registration input rules: required fields,
// accepted terms, email format, name length, password length and closed
// role/department sets.
func validateRegistration(req models.RegisterRequest) error {
	if req.FullName == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		return ErrInvalidDataProvided
	}
	if !req.TermsAccepted {
		return ErrTermsNotAccepted
	}

	name := strings.TrimSpace(req.FullName)
	if length := utf8.RuneCountInString(name); length < 2 || length > 50 {
		return ErrInvalidFullName
	}
	// The stored email is the trimmed, lowercased form, so the format check
	// runs on the same normalization.
	if !emailPattern.MatchString(strings.TrimSpace(req.Email)) {
		return ErrInvalidEmail
	}
	if len(req.Password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if !models.ValidRole(req.Role) {
		return ErrInvalidRole
	}
	if !models.ValidDepartment(req.Department) {
		return ErrInvalidDepartment
	}

	return nil
}
