package notification

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns notification routes. All require authentication.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/", h.List)
		r.Post("/{id}/read", h.MarkAsRead)
	})

	return r
}
