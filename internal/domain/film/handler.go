package film

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cineconnect/cineconnect-api/internal/pkg/response"
)

// ReviewPreview is a review shown on a film's details page
type ReviewPreview struct {
	ID        uuid.UUID      `json:"id"`
	AuthorID  uuid.UUID      `json:"author_id"`
	Author    string         `json:"author"`
	AuthorURL *string        `json:"author_photo_url"`
	Rating    int            `json:"rating"`
	Comment   *string        `json:"comment"`
	LikeCount int            `json:"like_count"`
	Replies   []ReplyPreview `json:"replies"`
	CreatedAt time.Time      `json:"created_at"`
}

// ReplyPreview is a comment reply shown under a review
type ReplyPreview struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Author    string    `json:"author"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewFetcher loads the reviews shown on film details
type ReviewFetcher interface {
	FilmReviews(ctx context.Context, filmID uuid.UUID) ([]ReviewPreview, error)
}

// FilmDetailsResponse is a film plus its community reviews
type FilmDetailsResponse struct {
	Film    FilmResponse    `json:"film"`
	Reviews []ReviewPreview `json:"reviews"`
}

// Handler handles film HTTP requests
type Handler struct {
	service       *Service
	reviewFetcher ReviewFetcher
}

// NewHandler creates film handler
func NewHandler(service *Service, reviewFetcher ReviewFetcher) *Handler {
	return &Handler{service: service, reviewFetcher: reviewFetcher}
}

// List handles GET /movies
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	films, err := h.service.ListCatalog(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list films")
		response.InternalError(w)
		return
	}

	response.OK(w, films)
}

// Search handles GET /movies/search?q=
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		response.BadRequest(w, "Query parameter 'q' is required")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	films, err := h.service.Search(r.Context(), query, limit)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("film search failed")
		response.InternalError(w)
		return
	}

	if films == nil {
		films = []FilmResponse{}
	}
	response.OK(w, films)
}

// Details handles GET /movies/{tmdbID}
func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	tmdbID, err := strconv.ParseInt(chi.URLParam(r, "tmdbID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid film ID")
		return
	}

	f, err := h.service.GetByTMDBID(r.Context(), tmdbID)
	if err != nil {
		if err == ErrFilmNotFound {
			response.NotFound(w, "Film not found")
			return
		}
		log.Error().Err(err).Int64("tmdb_id", tmdbID).Msg("failed to get film")
		response.InternalError(w)
		return
	}

	details := FilmDetailsResponse{Film: *f, Reviews: []ReviewPreview{}}

	// Reviews only exist once the film has been persisted
	if f.ID != nil {
		reviews, err := h.reviewFetcher.FilmReviews(r.Context(), *f.ID)
		if err != nil {
			log.Error().Err(err).Int64("tmdb_id", tmdbID).Msg("failed to load film reviews")
			response.InternalError(w)
			return
		}
		if reviews != nil {
			details.Reviews = reviews
		}
	}

	response.OK(w, details)
}
