package group

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cineconnect/cineconnect-api/internal/domain/film"
	"github.com/cineconnect/cineconnect-api/internal/middleware"
	"github.com/cineconnect/cineconnect-api/internal/pkg/response"
	"github.com/cineconnect/cineconnect-api/internal/pkg/validator"
)

// Handler handles group HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates group handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /groups
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	creatorID := middleware.GetUserID(r.Context())
	g, err := h.service.Create(r.Context(), creatorID, &req)
	if err != nil {
		log.Error().Err(err).Msg("group create failed")
		response.InternalError(w)
		return
	}

	response.Created(w, g.ToResponse())
}

// List handles GET /groups
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r.Context())

	groups, err := h.service.List(r.Context(), viewerID)
	if err != nil {
		log.Error().Err(err).Msg("group list failed")
		response.InternalError(w)
		return
	}

	items := make([]*GroupSummaryResponse, 0, len(groups))
	for _, g := range groups {
		items = append(items, g.ToSummaryResponse())
	}
	response.OK(w, items)
}

// Details handles GET /groups/{id}
func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	groupID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	viewerID := middleware.GetUserID(r.Context())
	g, members, films, viewer, err := h.service.GetDetails(r.Context(), groupID, viewerID)
	if err != nil {
		switch err {
		case ErrGroupNotFound:
			response.NotFound(w, "Group not found")
		case ErrPrivateGroup:
			response.Forbidden(w, "This group is private")
		default:
			log.Error().Err(err).Str("group_id", groupID.String()).Msg("group details failed")
			response.InternalError(w)
		}
		return
	}

	details := &GroupDetailsResponse{
		Group:   g.ToResponse(),
		Members: make([]*MemberResponse, 0, len(members)),
		Films:   make([]*GroupFilmResponse, 0, len(films)),
	}
	for _, m := range members {
		details.Members = append(details.Members, m.ToResponse())
	}
	for _, f := range films {
		details.Films = append(details.Films, f.ToResponse())
	}
	if viewer != nil {
		role := string(viewer.Role)
		details.ViewerRole = &role
	}

	response.OK(w, details)
}

// Update handles PUT /groups/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	groupID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	callerID := middleware.GetUserID(r.Context())
	g, err := h.service.Update(r.Context(), groupID, callerID, &req)
	if err != nil {
		switch err {
		case ErrGroupNotFound:
			response.NotFound(w, "Group not found")
		case ErrInsufficientRole:
			response.Forbidden(w, "Only group admins and moderators can update the group")
		default:
			log.Error().Err(err).Str("group_id", groupID.String()).Msg("group update failed")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, g.ToResponse())
}

// Delete handles DELETE /groups/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	groupID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	callerID := middleware.GetUserID(r.Context())
	if err := h.service.Delete(r.Context(), groupID, callerID); err != nil {
		switch err {
		case ErrGroupNotFound:
			response.NotFound(w, "Group not found")
		case ErrInsufficientRole:
			response.Forbidden(w, "Only the group admin can delete the group")
		default:
			log.Error().Err(err).Str("group_id", groupID.String()).Msg("group delete failed")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

// Join handles POST /groups/{id}/join
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	groupID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.service.Join(r.Context(), groupID, userID); err != nil {
		switch err {
		case ErrGroupNotFound:
			response.NotFound(w, "Group not found")
		case ErrPrivateGroup:
			response.Forbidden(w, "This group is private, you need an invitation")
		case ErrAlreadyMember:
			response.Conflict(w, "You are already a member of this group")
		default:
			log.Error().Err(err).Str("group_id", groupID.String()).Msg("group join failed")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"status": "joined"})
}

// Leave handles POST /groups/{id}/leave
func (h *Handler) Leave(w http.ResponseWriter, r *http.Request) {
	groupID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.service.Leave(r.Context(), groupID, userID); err != nil {
		switch err {
		case ErrNotMember:
			response.NotFound(w, "You are not a member of this group")
		case ErrAdminCannotLeave:
			response.Forbidden(w, "The group admin cannot leave the group")
		default:
			log.Error().Err(err).Str("group_id", groupID.String()).Msg("group leave failed")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"status": "left"})
}

// AcceptInvitation handles POST /groups/{id}/invitation/accept
func (h *Handler) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	groupID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.service.AcceptInvitation(r.Context(), groupID, userID); err != nil {
		switch err {
		case ErrGroupNotFound:
			response.NotFound(w, "Group not found")
		case ErrInvitationNotFound:
			response.NotFound(w, "No pending invitation for this group")
		case ErrAlreadyMember:
			response.Conflict(w, "You are already a member of this group")
		default:
			log.Error().Err(err).Str("group_id", groupID.String()).Msg("invitation accept failed")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"status": "joined"})
}

// DeclineInvitation handles POST /groups/{id}/invitation/decline
func (h *Handler) DeclineInvitation(w http.ResponseWriter, r *http.Request) {
	groupID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.service.DeclineInvitation(r.Context(), groupID, userID); err != nil {
		switch err {
		case ErrInvitationNotFound:
			response.NotFound(w, "No pending invitation for this group")
		default:
			log.Error().Err(err).Str("group_id", groupID.String()).Msg("invitation decline failed")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"status": "declined"})
}

// Invite handles POST /groups/{id}/invite
func (h *Handler) Invite(w http.ResponseWriter, r *http.Request) {
	groupID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	var req InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	inviterID := middleware.GetUserID(r.Context())
	inv, err := h.service.Invite(r.Context(), groupID, inviterID, req.Email)
	if err != nil {
		switch err {
		case ErrGroupNotFound:
			response.NotFound(w, "Group not found")
		case ErrInsufficientRole:
			response.Forbidden(w, "Only group admins and moderators can invite")
		case ErrInviteeNotFound:
			response.NotFound(w, "No user with this email")
		case ErrAlreadyMember:
			response.Conflict(w, "This user is already a member")
		case ErrAlreadyInvited:
			response.Conflict(w, "This user already has a pending invitation")
		default:
			log.Error().Err(err).Str("group_id", groupID.String()).Msg("group invite failed")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, inv.ToResponse())
}

// AddFilm handles POST /groups/{id}/films
func (h *Handler) AddFilm(w http.ResponseWriter, r *http.Request) {
	groupID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	var req AddFilmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	callerID := middleware.GetUserID(r.Context())
	gf, err := h.service.AddFilm(r.Context(), groupID, callerID, req.TMDBID)
	if err != nil {
		switch err {
		case ErrGroupNotFound:
			response.NotFound(w, "Group not found")
		case ErrNotMember:
			response.Forbidden(w, "Only members can add films")
		case film.ErrFilmNotFound:
			response.NotFound(w, "Film not found")
		case ErrFilmAlreadyInGroup:
			response.Conflict(w, "Film is already in the group list")
		default:
			log.Error().Err(err).Str("group_id", groupID.String()).Msg("group add film failed")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, map[string]any{
		"id":       gf.ID,
		"group_id": gf.GroupID,
		"film_id":  gf.FilmID,
		"added_by": gf.AddedBy,
	})
}
