package social

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cineconnect/cineconnect-api/internal/middleware"
	"github.com/cineconnect/cineconnect-api/internal/pkg/response"
)

// Handler handles social graph HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates social handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SendFriendRequest handles POST /users/{id}/friend-request
func (h *Handler) SendFriendRequest(w http.ResponseWriter, r *http.Request) {
	receiverID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	requesterID := middleware.GetUserID(r.Context())
	req, err := h.service.SendFriendRequest(r.Context(), requesterID, receiverID)
	if err != nil {
		switch err {
		case ErrSelfReference:
			response.BadRequest(w, "You cannot send a friend request to yourself")
		case ErrUserNotFound:
			response.NotFound(w, "User not found")
		case ErrAlreadyFriends:
			response.Conflict(w, "You are already friends")
		case ErrRequestAlreadySent:
			response.Conflict(w, "Friend request already sent")
		case ErrRequestAlreadyReceived:
			response.Conflict(w, "This user already sent you a friend request")
		default:
			log.Error().Err(err).Msg("friend request send failed")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, req.ToResponse())
}

// AcceptFriendRequest handles POST /users/{id}/friend-request/accept
func (h *Handler) AcceptFriendRequest(w http.ResponseWriter, r *http.Request) {
	requesterID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	receiverID := middleware.GetUserID(r.Context())
	if err := h.service.AcceptFriendRequest(r.Context(), receiverID, requesterID); err != nil {
		switch err {
		case ErrRequestNotFound:
			response.NotFound(w, "No pending friend request from this user")
		default:
			log.Error().Err(err).Msg("friend request accept failed")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"status": "accepted"})
}

// RejectFriendRequest handles POST /users/{id}/friend-request/reject
func (h *Handler) RejectFriendRequest(w http.ResponseWriter, r *http.Request) {
	requesterID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	receiverID := middleware.GetUserID(r.Context())
	if err := h.service.RejectFriendRequest(r.Context(), receiverID, requesterID); err != nil {
		switch err {
		case ErrRequestNotFound:
			response.NotFound(w, "No pending friend request from this user")
		default:
			log.Error().Err(err).Msg("friend request reject failed")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"status": "rejected"})
}

// ListFriends handles GET /users/friends
func (h *Handler) ListFriends(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	friends, err := h.service.ListFriends(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list friends")
		response.InternalError(w)
		return
	}

	items := make([]*FriendResponse, 0, len(friends))
	for _, f := range friends {
		items = append(items, f.ToResponse())
	}
	response.OK(w, items)
}

// ListFriendRequests handles GET /users/friend-requests
func (h *Handler) ListFriendRequests(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	requests, err := h.service.ListPendingRequests(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list friend requests")
		response.InternalError(w)
		return
	}

	items := make([]*PendingRequestResponse, 0, len(requests))
	for _, req := range requests {
		items = append(items, req.ToResponse())
	}
	response.OK(w, items)
}

// Discover handles GET /users/discover?search=&limit=&offset=
func (h *Handler) Discover(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r.Context())
	search := r.URL.Query().Get("search")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	profiles, err := h.service.Discover(r.Context(), viewerID, search, limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("discover failed")
		response.InternalError(w)
		return
	}

	items := make([]*DiscoverProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, p.ToResponse())
	}
	response.OK(w, items)
}

// Follow handles POST /users/{id}/follow
func (h *Handler) Follow(w http.ResponseWriter, r *http.Request) {
	followeeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	followerID := middleware.GetUserID(r.Context())
	if err := h.service.Follow(r.Context(), followerID, followeeID); err != nil {
		switch err {
		case ErrSelfReference:
			response.BadRequest(w, "You cannot follow yourself")
		case ErrUserNotFound:
			response.NotFound(w, "User not found")
		case ErrAlreadyFollowing:
			response.Conflict(w, "Already following this user")
		default:
			log.Error().Err(err).Msg("follow failed")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, map[string]string{"status": "following"})
}

// Unfollow handles DELETE /users/{id}/follow
func (h *Handler) Unfollow(w http.ResponseWriter, r *http.Request) {
	followeeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	followerID := middleware.GetUserID(r.Context())
	if err := h.service.Unfollow(r.Context(), followerID, followeeID); err != nil {
		switch err {
		case ErrNotFollowing:
			response.NotFound(w, "Not following this user")
		default:
			log.Error().Err(err).Msg("unfollow failed")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}
