package moderation

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cineconnect/cineconnect-api/internal/middleware"
)

// Routes returns moderation routes. Filing a report only needs
// authentication; the queue and resolution are admin territory.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Post("/report", h.Report)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin())

			r.Get("/reports", h.ListReports)
			r.Post("/reports/{id}/action", h.Resolve)
		})
	})

	return r
}
