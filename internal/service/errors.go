package service

import (
	"errors"
	"fmt"
)

// Validation sentinels (malformed or missing input).
var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrTermsNotAccepted    = errors.New("terms must be accepted")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrInvalidFullName     = errors.New("full name must be between 2 and 50 characters")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters")
	ErrInvalidRole         = errors.New("unknown role")
	ErrInvalidDepartment   = errors.New("unknown department")

	ErrTitleRequired       = errors.New("project title is required")
	ErrTitleTooLong        = errors.New("project title must be at most 100 characters")
	ErrDescriptionRequired = errors.New("project description is required")
	ErrInvalidStatus       = errors.New("unknown project status")
	ErrInvalidPriority     = errors.New("unknown project priority")
	ErrProgressOutOfRange  = errors.New("progress must be between 0 and 100")
	ErrNegativeBudget      = errors.New("budget must be non-negative")
	ErrEmptyNoteContent    = errors.New("note content cannot be empty")
)

// Authentication and authorization sentinels.
var (
	ErrWrongPassword           = errors.New("invalid email or password")
	ErrAlreadyVerified         = errors.New("account is already verified")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrForbidden               = errors.New("insufficient permissions for this operation")
)

// UnverifiedLoginError is returned when an unverified account attempts to log
// in while the unverified-login gate is active. It carries the user id so the
// HTTP layer can produce the distinguishable payload that lets a client offer
// "resend verification".
type UnverifiedLoginError struct {
	UserID int64
}

func (e *UnverifiedLoginError) Error() string {
	return fmt.Sprintf("account %d email is not verified", e.UserID)
}
