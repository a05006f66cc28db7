package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/openlabworks/labops/internal/logger"
	"github.com/openlabworks/labops/internal/service"
	"github.com/openlabworks/labops/internal/utils"
	"github.com/openlabworks/labops/models"
)

// actorID extracts the authenticated user's id from the request context. The
// auth middleware guarantees it is present on every route in the protected
// group; a missing id means the middleware chain is misconfigured.
func (h *Handler) actorID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		logger.FromRequest(r).Error().Msg("no user id in request context")
		utils.WriteJSON(w, models.ErrorResponse{Error: http.StatusText(http.StatusUnauthorized)}, http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}

func (h *Handler) createProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actorID, ok := h.actorID(w, r)
	if !ok {
		return
	}

	var req models.ProjectCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: errInvalidJSON.Error()}, http.StatusBadRequest)
		return
	}

	project, err := h.services.ProjectService.Create(ctx, actorID, req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Debug().Str("project_id", project.ProjectID).Msg("project created")

	utils.WriteJSON(w, project, http.StatusCreated)
}

func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actorID, ok := h.actorID(w, r)
	if !ok {
		return
	}

	projects, err := h.services.ProjectService.List(ctx, actorID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, projects, http.StatusOK)
}

func (h *Handler) projectStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actorID, ok := h.actorID(w, r)
	if !ok {
		return
	}

	stats, err := h.services.ProjectService.Stats(ctx, actorID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}

func (h *Handler) getProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actorID, ok := h.actorID(w, r)
	if !ok {
		return
	}

	project, err := h.services.ProjectService.Get(ctx, actorID, chi.URLParam(r, "projectID"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, project, http.StatusOK)
}

func (h *Handler) updateProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actorID, ok := h.actorID(w, r)
	if !ok {
		return
	}

	var update models.ProjectUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: errInvalidJSON.Error()}, http.StatusBadRequest)
		return
	}

	project, err := h.services.ProjectService.Update(ctx, actorID, chi.URLParam(r, "projectID"), update)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Debug().Str("project_id", project.ProjectID).Msg("project updated")

	utils.WriteJSON(w, project, http.StatusOK)
}

func (h *Handler) deleteProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actorID, ok := h.actorID(w, r)
	if !ok {
		return
	}

	projectID := chi.URLParam(r, "projectID")
	if err := h.services.ProjectService.Delete(ctx, actorID, projectID); err != nil {
		respondError(w, r, err)
		return
	}

	log.Debug().Str("project_id", projectID).Msg("project deleted")

	utils.WriteJSON(w, models.MessageResponse{Message: "project deleted successfully"}, http.StatusOK)
}

func (h *Handler) addTeamMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actorID, ok := h.actorID(w, r)
	if !ok {
		return
	}

	var req models.TeamMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: errInvalidJSON.Error()}, http.StatusBadRequest)
		return
	}

	project, err := h.services.ProjectService.AddTeamMember(ctx, actorID, chi.URLParam(r, "projectID"), req.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, project, http.StatusOK)
}

func (h *Handler) removeTeamMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actorID, ok := h.actorID(w, r)
	if !ok {
		return
	}

	memberID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		log.Err(err).Msg("invalid team member id")
		respondError(w, r, service.ErrInvalidDataProvided)
		return
	}

	project, err := h.services.ProjectService.RemoveTeamMember(ctx, actorID, chi.URLParam(r, "projectID"), memberID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, project, http.StatusOK)
}

func (h *Handler) addNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	actorID, ok := h.actorID(w, r)
	if !ok {
		return
	}

	var req models.NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: errInvalidJSON.Error()}, http.StatusBadRequest)
		return
	}

	note, err := h.services.ProjectService.AddNote(ctx, actorID, chi.URLParam(r, "projectID"), req.Content)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, note, http.StatusCreated)
}
