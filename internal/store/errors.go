package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new
	// user fails because a user with the same email already exists.
	ErrEmailAlreadyExists = errors.New("email already registered")

	// ErrUserNotFound is returned when a query expected to match exactly one
	// user record produces an empty result set.
	ErrUserNotFound = errors.New("user not found")

	// ErrProjectNotFound is returned when a query or mutation targets a
	// project id that does not resolve to a stored project.
	ErrProjectNotFound = errors.New("project not found")

	// ErrAlreadyTeamMember is returned when a roster insert collides with an
	// existing membership row for the same (project, user) pair.
	ErrAlreadyTeamMember = errors.New("user is already a team member")

	// ErrTokenNotFoundOrExpired is returned by the atomic token-consumption
	// updates when no user row matches the token with an unexpired deadline.
	// A wrong token and an expired token are deliberately indistinguishable.
	ErrTokenNotFoundOrExpired = errors.New("token is invalid or expired")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. an empty SET clause or unsupported argument type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
