package chat

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterMessageRoutes attaches the message endpoints to the groups router
func (h *Handler) RegisterMessageRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/{id}/messages", h.ListMessages)
		r.Post("/{id}/messages", h.PostMessage)
	})
}
