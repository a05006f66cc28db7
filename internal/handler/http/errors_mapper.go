package http

import (
	"errors"
	"net/http"

	"github.com/openlabworks/labops/internal/logger"
	"github.com/openlabworks/labops/internal/service"
	"github.com/openlabworks/labops/internal/store"
	"github.com/openlabworks/labops/internal/utils"
	"github.com/openlabworks/labops/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrTermsNotAccepted:    http.StatusBadRequest,
	service.ErrInvalidEmail:        http.StatusBadRequest,
	service.ErrInvalidFullName:     http.StatusBadRequest,
	service.ErrPasswordTooShort:    http.StatusBadRequest,
	service.ErrInvalidRole:         http.StatusBadRequest,
	service.ErrInvalidDepartment:   http.StatusBadRequest,

	service.ErrTitleRequired:       http.StatusBadRequest,
	service.ErrTitleTooLong:        http.StatusBadRequest,
	service.ErrDescriptionRequired: http.StatusBadRequest,
	service.ErrInvalidStatus:       http.StatusBadRequest,
	service.ErrInvalidPriority:     http.StatusBadRequest,
	service.ErrProgressOutOfRange:  http.StatusBadRequest,
	service.ErrNegativeBudget:      http.StatusBadRequest,
	service.ErrEmptyNoteContent:    http.StatusBadRequest,

	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrAlreadyVerified:         http.StatusBadRequest,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrForbidden:               http.StatusForbidden,

	store.ErrEmailAlreadyExists:     http.StatusBadRequest,
	store.ErrUserNotFound:           http.StatusNotFound,
	store.ErrProjectNotFound:        http.StatusNotFound,
	store.ErrAlreadyTeamMember:      http.StatusBadRequest,
	store.ErrTokenNotFoundOrExpired: http.StatusBadRequest,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// respondError maps err to an HTTP status and writes a JSON error body.
// Internal errors are logged in full but reported to the client with a
// generic message so backend details never leak into responses.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = http.StatusText(http.StatusInternalServerError)
	}

	log.Err(err).Int("status", status).Send()
	utils.WriteJSON(w, models.ErrorResponse{Error: message}, status)
}
