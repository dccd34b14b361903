package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns review router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Reading reviews and replies is public
	r.Get("/recent", h.ListRecent)
	r.Get("/{id}/replies", h.ListReplies)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/films/{tmdbID}", h.Upsert)
		r.Get("/me", h.ListMine)
		r.Post("/{id}/like", h.ToggleLike)
		r.Get("/{id}/like-status", h.LikeStatus)
		r.Post("/{id}/replies", h.CreateReply)
	})

	return r
}

// ReplyRoutes returns the standalone reply router (delete by id)
func (h *Handler) ReplyRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Delete("/{id}", h.DeleteReply)
	})

	return r
}
