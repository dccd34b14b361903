package group

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns group routes. All routes require authentication.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Details)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)

		r.Post("/{id}/join", h.Join)
		r.Post("/{id}/leave", h.Leave)
		r.Post("/{id}/invite", h.Invite)
		r.Post("/{id}/invitation/accept", h.AcceptInvitation)
		r.Post("/{id}/invitation/decline", h.DeclineInvitation)
		r.Post("/{id}/films", h.AddFilm)
	})

	return r
}
