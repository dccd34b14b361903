package feed

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns feed routes. The global feed is public; the personal
// feed needs a viewer.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Global)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/personal", h.Personal)
	})

	return r
}
