package film

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns film router. Browsing the catalog is public.
func (h *Handler) Routes(_ func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/search", h.Search)
	r.Get("/{tmdbID}", h.Details)

	return r
}
