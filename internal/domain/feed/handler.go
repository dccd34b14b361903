package feed

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/cineconnect/cineconnect-api/internal/middleware"
	"github.com/cineconnect/cineconnect-api/internal/pkg/response"
)

// Handler handles feed HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates feed handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Global handles GET /feed
func (h *Handler) Global(w http.ResponseWriter, r *http.Request) {
	f, err := h.service.Global(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("global feed failed")
		response.InternalError(w)
		return
	}
	response.OK(w, f.ToResponse())
}

// Personal handles GET /feed/personal
func (h *Handler) Personal(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r.Context())

	reviews, err := h.service.Personal(r.Context(), viewerID)
	if err != nil {
		log.Error().Err(err).Msg("personal feed failed")
		response.InternalError(w)
		return
	}

	items := make([]*ActivityResponse, 0, len(reviews))
	for _, rev := range reviews {
		items = append(items, rev.ToResponse())
	}
	response.OK(w, items)
}
