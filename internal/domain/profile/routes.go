package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes attaches profile endpoints to the users router, which
// the social routes also live on.
func (h *Handler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/{id}", h.Get)
		r.Get("/{id}/groups", h.ListGroups)

		r.Put("/me", h.Update)
		r.Post("/me/photo", h.UploadPhoto)
		r.Post("/me/favorites/{tmdbID}", h.AddFavorite)
		r.Delete("/me/favorites/{tmdbID}", h.RemoveFavorite)
	})
}
