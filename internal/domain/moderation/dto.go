package moderation

import (
	"time"

	"github.com/google/uuid"
)

// ReportRequest for filing a report
type ReportRequest struct {
	ContentType string    `json:"content_type" validate:"required,content_type"`
	ContentID   uuid.UUID `json:"content_id" validate:"required"`
	Reason      string    `json:"reason" validate:"omitempty,max=500"`
}

// ResolveRequest for resolving a report
type ResolveRequest struct {
	Action string `json:"action" validate:"required,moderation_action"`
	Notes  string `json:"notes" validate:"omitempty,max=1000"`
}

// ReportResponse for API responses
type ReportResponse struct {
	ID              uuid.UUID       `json:"id"`
	ContentType     string          `json:"content_type"`
	ContentID       uuid.UUID       `json:"content_id"`
	ReporterID      uuid.UUID       `json:"reporter_id"`
	Reason          *string         `json:"reason,omitempty"`
	Status          string          `json:"status"`
	ModeratorID     *uuid.UUID      `json:"moderator_id,omitempty"`
	ModeratorAction *string         `json:"moderator_action,omitempty"`
	ModeratorNotes  *string         `json:"moderator_notes,omitempty"`
	Preview         *ContentPreview `json:"preview,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	ResolvedAt      *time.Time      `json:"resolved_at,omitempty"`
}

// ToResponse converts entity to response
func (r *Report) ToResponse() *ReportResponse {
	resp := &ReportResponse{
		ID:          r.ID,
		ContentType: string(r.ContentType),
		ContentID:   r.ContentID,
		ReporterID:  r.ReporterID,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
	}
	if r.Reason.Valid {
		resp.Reason = &r.Reason.String
	}
	if r.ModeratorID.Valid {
		id := r.ModeratorID.UUID
		resp.ModeratorID = &id
	}
	if r.ModeratorAction.Valid {
		resp.ModeratorAction = &r.ModeratorAction.String
	}
	if r.ModeratorNotes.Valid {
		resp.ModeratorNotes = &r.ModeratorNotes.String
	}
	if r.ResolvedAt.Valid {
		t := r.ResolvedAt.Time
		resp.ResolvedAt = &t
	}
	return resp
}
