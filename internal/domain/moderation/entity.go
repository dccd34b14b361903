package moderation

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// ContentType identifies what kind of content a report points at
type ContentType string

const (
	ContentTypeReview       ContentType = "review"
	ContentTypeCommentReply ContentType = "comment_reply"
	ContentTypeGroupMessage ContentType = "group_message"
	ContentTypeUser         ContentType = "user"
)

// ReportStatus represents the lifecycle of a report
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusReviewed  ReportStatus = "reviewed"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

// Action is what a moderator decided to do with reported content
type Action string

const (
	ActionDelete   Action = "delete"
	ActionWarn     Action = "warn"
	ActionBan      Action = "ban"
	ActionNoAction Action = "no_action"
)

// Report is a user-filed report against a piece of content
type Report struct {
	ID              uuid.UUID      `db:"id"`
	ContentType     ContentType    `db:"content_type"`
	ContentID       uuid.UUID      `db:"content_id"`
	ReporterID      uuid.UUID      `db:"reporter_id"`
	Reason          sql.NullString `db:"reason"`
	Status          ReportStatus   `db:"status"`
	ModeratorID     uuid.NullUUID  `db:"moderator_id"`
	ModeratorAction sql.NullString `db:"moderator_action"`
	ModeratorNotes  sql.NullString `db:"moderator_notes"`
	CreatedAt       time.Time      `db:"created_at"`
	ResolvedAt      sql.NullTime   `db:"resolved_at"`
}
