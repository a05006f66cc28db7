package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openlabworks/labops/internal/logger"
	"github.com/openlabworks/labops/internal/service"
	"github.com/openlabworks/labops/internal/utils"
	"github.com/openlabworks/labops/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: errInvalidJSON.Error()}, http.StatusBadRequest)
		return
	}

	registeredUser, token, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Debug().Int64("id", registeredUser.UserID).Msg("user successfully registered")

	utils.WriteJSON(w, models.AuthResponse{User: registeredUser, Token: token.SignedString}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: errInvalidJSON.Error()}, http.StatusBadRequest)
		return
	}

	foundUser, token, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		// An unverified account gets a distinguishable payload so clients can
		// offer to resend the verification email.
		var unverified *service.UnverifiedLoginError
		if errors.As(err, &unverified) {
			log.Err(err).Msg("login attempt on unverified account")
			utils.WriteJSON(w, models.UnverifiedLoginResponse{
				Error:      "please verify your email before logging in",
				IsVerified: false,
				UserID:     unverified.UserID,
			}, http.StatusUnauthorized)
			return
		}

		respondError(w, r, err)
		return
	}

	log.Debug().Int64("id", foundUser.UserID).Msg("user successfully logged in")

	utils.WriteJSON(w, models.AuthResponse{User: foundUser, Token: token.SignedString}, http.StatusOK)
}

func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	token := chi.URLParam(r, "token")

	verifiedUser, err := h.services.AuthService.VerifyEmail(ctx, token)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Debug().Int64("id", verifiedUser.UserID).Msg("email verified")

	utils.WriteJSON(w, models.MessageResponse{Message: "email verified successfully"}, http.StatusOK)
}

func (h *Handler) resendVerification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: errInvalidJSON.Error()}, http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.ResendVerification(ctx, req.Email); err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "verification email sent"}, http.StatusOK)
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: errInvalidJSON.Error()}, http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.ForgotPassword(ctx, req.Email); err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "password reset email sent"}, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	token := chi.URLParam(r, "token")

	var req models.PasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: errInvalidJSON.Error()}, http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.ResetPassword(ctx, token, req.Password); err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "password has been reset"}, http.StatusOK)
}
