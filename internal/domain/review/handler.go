package review

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cineconnect/cineconnect-api/internal/domain/film"
	"github.com/cineconnect/cineconnect-api/internal/middleware"
	"github.com/cineconnect/cineconnect-api/internal/pkg/response"
	"github.com/cineconnect/cineconnect-api/internal/pkg/validator"
)

// Handler handles review HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates review handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upsert handles POST /reviews/films/{tmdbID}
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	tmdbID, err := strconv.ParseInt(chi.URLParam(r, "tmdbID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid film ID")
		return
	}

	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())
	rev, err := h.service.Upsert(r.Context(), userID, tmdbID, req.Rating, req.Comment)
	if err != nil {
		switch err {
		case film.ErrFilmNotFound:
			response.NotFound(w, "Film not found")
		case ErrInvalidRating:
			response.BadRequest(w, "Rating must be between 1 and 5")
		default:
			log.Error().Err(err).Int64("tmdb_id", tmdbID).Msg("review upsert failed")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, rev.ToResponse())
}

// ListMine handles GET /reviews/me
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	reviews, err := h.service.ListMy(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list user reviews")
		response.InternalError(w)
		return
	}

	items := make([]*FilmReviewResponse, 0, len(reviews))
	for _, rev := range reviews {
		items = append(items, rev.ToFilmResponse())
	}
	response.OK(w, items)
}

// ListRecent handles GET /reviews/recent
func (h *Handler) ListRecent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	reviews, err := h.service.ListRecent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list recent reviews")
		response.InternalError(w)
		return
	}

	items := make([]*AuthoredReviewResponse, 0, len(reviews))
	for _, rev := range reviews {
		items = append(items, rev.ToAuthoredResponse())
	}
	response.OK(w, items)
}

// ToggleLike handles POST /reviews/{id}/like
func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	reviewID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid review ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	liked, count, err := h.service.ToggleLike(r.Context(), reviewID, userID)
	if err != nil {
		if err == ErrReviewNotFound {
			response.NotFound(w, "Review not found")
			return
		}
		log.Error().Err(err).Str("review_id", reviewID.String()).Msg("like toggle failed")
		response.InternalError(w)
		return
	}

	response.OK(w, LikeResponse{Liked: liked, LikeCount: count})
}

// LikeStatus handles GET /reviews/{id}/like-status
func (h *Handler) LikeStatus(w http.ResponseWriter, r *http.Request) {
	reviewID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid review ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	liked, count, err := h.service.LikeStatus(r.Context(), reviewID, userID)
	if err != nil {
		if err == ErrReviewNotFound {
			response.NotFound(w, "Review not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, LikeResponse{Liked: liked, LikeCount: count})
}

// CreateReply handles POST /reviews/{id}/replies
func (h *Handler) CreateReply(w http.ResponseWriter, r *http.Request) {
	reviewID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid review ID")
		return
	}

	var req ReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())
	reply, err := h.service.CreateReply(r.Context(), reviewID, userID, req.Message)
	if err != nil {
		switch err {
		case ErrReviewNotFound:
			response.NotFound(w, "Review not found")
		case ErrEmptyMessage:
			response.BadRequest(w, "Message must not be empty")
		default:
			log.Error().Err(err).Str("review_id", reviewID.String()).Msg("reply create failed")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, reply.ToResponse())
}

// ListReplies handles GET /reviews/{id}/replies
func (h *Handler) ListReplies(w http.ResponseWriter, r *http.Request) {
	reviewID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid review ID")
		return
	}

	replies, err := h.service.ListReplies(r.Context(), reviewID)
	if err != nil {
		if err == ErrReviewNotFound {
			response.NotFound(w, "Review not found")
			return
		}
		response.InternalError(w)
		return
	}

	items := make([]*ReplyResponse, 0, len(replies))
	for _, reply := range replies {
		items = append(items, reply.ToAuthoredResponse())
	}
	response.OK(w, items)
}

// DeleteReply handles DELETE /replies/{id}
func (h *Handler) DeleteReply(w http.ResponseWriter, r *http.Request) {
	replyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid reply ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	role := middleware.GetRole(r.Context())

	if err := h.service.DeleteReply(r.Context(), replyID, userID, role); err != nil {
		switch err {
		case ErrReplyNotFound:
			response.NotFound(w, "Reply not found")
		case ErrNotReplyAuthor:
			response.Forbidden(w, "You can only delete your own replies")
		default:
			log.Error().Err(err).Str("reply_id", replyID.String()).Msg("reply delete failed")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}
