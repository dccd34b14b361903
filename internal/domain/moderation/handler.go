package moderation

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cineconnect/cineconnect-api/internal/middleware"
	"github.com/cineconnect/cineconnect-api/internal/pkg/response"
	"github.com/cineconnect/cineconnect-api/internal/pkg/validator"
)

// Handler handles moderation HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates moderation handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Report handles POST /moderation/report
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	reporterID := middleware.GetUserID(r.Context())
	rep, err := h.service.ReportContent(r.Context(), reporterID, ContentType(req.ContentType), req.ContentID, req.Reason)
	if err != nil {
		switch err {
		case ErrContentNotFound:
			response.NotFound(w, "Content not found")
		case ErrAlreadyReported:
			response.Conflict(w, "You already reported this content")
		default:
			log.Error().Err(err).Msg("report create failed")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, rep.ToResponse())
}

// ListReports handles GET /moderation/reports?status=
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	status := ReportStatusPending
	if s := r.URL.Query().Get("status"); s != "" {
		switch ReportStatus(s) {
		case ReportStatusPending, ReportStatusReviewed, ReportStatusResolved, ReportStatusDismissed:
			status = ReportStatus(s)
		default:
			response.BadRequest(w, "Invalid status filter")
			return
		}
	}

	reports, err := h.service.ListReports(r.Context(), status)
	if err != nil {
		log.Error().Err(err).Msg("report list failed")
		response.InternalError(w)
		return
	}

	items := make([]*ReportResponse, 0, len(reports))
	for _, rep := range reports {
		resp := rep.Report.ToResponse()
		resp.Preview = rep.Preview
		items = append(items, resp)
	}
	response.OK(w, items)
}

// Resolve handles POST /moderation/reports/{id}/action
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	reportID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	moderatorID := middleware.GetUserID(r.Context())
	rep, err := h.service.ResolveReport(r.Context(), reportID, moderatorID, Action(req.Action), req.Notes)
	if err != nil {
		switch err {
		case ErrReportNotFound:
			response.NotFound(w, "Report not found")
		case ErrReportNotPending:
			response.Conflict(w, "Report has already been handled")
		case ErrContentNotDeletable:
			response.BadRequest(w, "This content type cannot be deleted")
		default:
			log.Error().Err(err).Str("report_id", reportID.String()).Msg("report resolve failed")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, rep.ToResponse())
}
