package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/auth/verify/{token}", h.verifyEmail)
		r.Post("/api/auth/verify/resend", h.resendVerification)
		r.Post("/api/auth/forgot-password", h.forgotPassword)
		r.Post("/api/auth/reset-password/{token}", h.resetPassword)
	})

	// routes that require a valid bearer token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/auth/profile", h.profile)
		r.Put("/api/auth/profile", h.updateProfile)

		r.Route("/api/projects", func(r chi.Router) {
			r.Post("/", h.createProject)
			r.Get("/", h.listProjects)
			r.Get("/stats", h.projectStats)

			r.Route("/{projectID}", func(r chi.Router) {
				r.Get("/", h.getProject)
				r.Put("/", h.updateProject)
				r.Delete("/", h.deleteProject)

				r.Post("/team", h.addTeamMember)
				r.Delete("/team/{userID}", h.removeTeamMember)

				r.Post("/notes", h.addNote)
			})
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
