package profile

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cineconnect/cineconnect-api/internal/domain/film"
	"github.com/cineconnect/cineconnect-api/internal/domain/group"
	"github.com/cineconnect/cineconnect-api/internal/middleware"
	"github.com/cineconnect/cineconnect-api/internal/pkg/response"
	"github.com/cineconnect/cineconnect-api/internal/pkg/storage"
	"github.com/cineconnect/cineconnect-api/internal/pkg/validator"
)

const maxPhotoUploadBytes = 5 << 20

// Handler handles profile HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates profile handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get handles GET /users/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	viewerID := middleware.GetUserID(r.Context())
	p, err := h.service.GetProfile(r.Context(), targetID, viewerID)
	if err != nil {
		switch err {
		case ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			log.Error().Err(err).Str("user_id", targetID.String()).Msg("profile get failed")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, p.ToResponse())
}

// Update handles PUT /users/me
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())
	u, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case ErrUserNotFound:
			response.NotFound(w, "User not found")
		case ErrPseudoTaken:
			response.Conflict(w, "This pseudo is already taken")
		default:
			log.Error().Err(err).Msg("profile update failed")
			response.InternalError(w)
		}
		return
	}

	p, err := h.service.GetProfile(r.Context(), u.ID, u.ID)
	if err != nil {
		log.Error().Err(err).Msg("profile reload failed")
		response.InternalError(w)
		return
	}
	response.OK(w, p.ToResponse())
}

// UploadPhoto handles POST /users/me/photo
// Multipart form with a single "photo" file field.
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoUploadBytes)

	if err := r.ParseMultipartForm(maxPhotoUploadBytes); err != nil {
		response.BadRequest(w, "File too large or invalid form")
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		response.BadRequest(w, "No photo provided")
		return
	}
	defer file.Close()

	userID := middleware.GetUserID(r.Context())
	url, err := h.service.UploadPhoto(r.Context(), userID, file)
	if err != nil {
		switch err {
		case storage.ErrFileTooLarge:
			response.BadRequest(w, "File exceeds maximum size")
		case storage.ErrInvalidMimeType:
			response.BadRequest(w, "File type not allowed")
		case storage.ErrEmptyFile:
			response.BadRequest(w, "File is empty")
		default:
			log.Error().Err(err).Msg("photo upload failed")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"photo_url": url})
}

// ListGroups handles GET /users/{id}/groups
func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	groups, err := h.service.ListGroups(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("profile groups failed")
		response.InternalError(w)
		return
	}

	items := make([]*group.GroupSummaryResponse, 0, len(groups))
	for _, g := range groups {
		items = append(items, g.ToSummaryResponse())
	}
	response.OK(w, items)
}

// AddFavorite handles POST /users/me/favorites/{tmdbID}
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	tmdbID, err := strconv.ParseInt(chi.URLParam(r, "tmdbID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid film ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	favorites, err := h.service.AddFavorite(r.Context(), userID, tmdbID)
	if err != nil {
		switch err {
		case film.ErrFilmNotFound:
			response.NotFound(w, "Film not found")
		case ErrFavoriteLimit:
			response.Conflict(w, "Favorite list is full (5 films max)")
		case ErrAlreadyFavorite:
			response.Conflict(w, "Film is already in your favorites")
		default:
			log.Error().Err(err).Msg("favorite add failed")
			response.InternalError(w)
		}
		return
	}

	items := make([]*FavoriteResponse, 0, len(favorites))
	for _, f := range favorites {
		items = append(items, f.ToResponse())
	}
	response.Created(w, items)
}

// RemoveFavorite handles DELETE /users/me/favorites/{tmdbID}
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	tmdbID, err := strconv.ParseInt(chi.URLParam(r, "tmdbID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid film ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	favorites, err := h.service.RemoveFavorite(r.Context(), userID, tmdbID)
	if err != nil {
		switch err {
		case film.ErrFilmNotFound:
			response.NotFound(w, "Film not found")
		case ErrFavoriteNotFound:
			response.NotFound(w, "Film is not in your favorites")
		default:
			log.Error().Err(err).Msg("favorite remove failed")
			response.InternalError(w)
		}
		return
	}

	items := make([]*FavoriteResponse, 0, len(favorites))
	for _, f := range favorites {
		items = append(items, f.ToResponse())
	}
	response.OK(w, items)
}
