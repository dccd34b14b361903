package notification

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cineconnect/cineconnect-api/internal/middleware"
	"github.com/cineconnect/cineconnect-api/internal/pkg/response"
)

// Handler handles notification HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates notification handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /notifications
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	notifications, err := h.service.List(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("notification list failed")
		response.InternalError(w)
		return
	}

	unread, err := h.service.UnreadCount(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("notification unread count failed")
		response.InternalError(w)
		return
	}

	items := make([]*NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, n.ToResponse())
	}

	response.OK(w, map[string]any{
		"notifications": items,
		"unread_count":  unread,
	})
}

// MarkAsRead handles POST /notifications/{id}/read
func (h *Handler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	notificationID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid notification ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.service.MarkAsRead(r.Context(), notificationID, userID); err != nil {
		switch err {
		case ErrNotificationNotFound:
			response.NotFound(w, "Notification not found")
		default:
			log.Error().Err(err).Msg("notification mark read failed")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"status": "ok"})
}
