package http

import (
	"encoding/json"
	"net/http"

	"github.com/openlabworks/labops/internal/logger"
	"github.com/openlabworks/labops/internal/utils"
	"github.com/openlabworks/labops/models"
)

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.actorID(w, r)
	if !ok {
		return
	}

	user, err := h.services.AuthService.Profile(ctx, userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := h.actorID(w, r)
	if !ok {
		return
	}

	var update models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: errInvalidJSON.Error()}, http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.UpdateProfile(ctx, userID, update)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Debug().Int64("id", user.UserID).Msg("profile updated")

	utils.WriteJSON(w, user, http.StatusOK)
}
