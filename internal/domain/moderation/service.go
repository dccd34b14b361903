package moderation

import (
	"context"
	"database/sql"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/cineconnect/cineconnect-api/internal/domain/chat"
	"github.com/cineconnect/cineconnect-api/internal/domain/review"
	"github.com/cineconnect/cineconnect-api/internal/domain/user"
)

// ReviewStore is what moderation needs from the review domain
type ReviewStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*review.Review, error)
	GetReply(ctx context.Context, id uuid.UUID) (*review.CommentReply, error)
	DeleteReview(ctx context.Context, id uuid.UUID) error
	DeleteReplyByID(ctx context.Context, id uuid.UUID) error
}

// MessageStore is what moderation needs from the chat domain
type MessageStore interface {
	GetMessage(ctx context.Context, id uuid.UUID) (*chat.MessageWithAuthor, error)
	DeleteMessage(ctx context.Context, id uuid.UUID) error
}

// ContentPreview is a moderator-facing summary of reported content.
// Nil when the content has since been deleted.
type ContentPreview struct {
	Type     ContentType `json:"type"`
	AuthorID uuid.UUID   `json:"author_id"`
	Excerpt  string      `json:"excerpt"`
}

// contentKind bundles the per-type operations reports dispatch through.
// deleteFn is nil for kinds that cannot be deleted.
type contentKind struct {
	preview  func(ctx context.Context, id uuid.UUID) (*ContentPreview, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

// Service handles content moderation
type Service struct {
	repo     Repository
	kinds    map[ContentType]contentKind
	userRepo user.Repository
}

// NewService creates moderation service
func NewService(repo Repository, reviews ReviewStore, messages MessageStore, userRepo user.Repository) *Service {
	s := &Service{repo: repo, userRepo: userRepo}

	s.kinds = map[ContentType]contentKind{
		ContentTypeReview: {
			preview: func(ctx context.Context, id uuid.UUID) (*ContentPreview, error) {
				rev, err := reviews.GetByID(ctx, id)
				if err != nil || rev == nil {
					return nil, err
				}
				return &ContentPreview{
					Type:     ContentTypeReview,
					AuthorID: rev.UserID,
					Excerpt:  excerpt(rev.Comment.String),
				}, nil
			},
			deleteFn: reviews.DeleteReview,
		},
		ContentTypeCommentReply: {
			preview: func(ctx context.Context, id uuid.UUID) (*ContentPreview, error) {
				reply, err := reviews.GetReply(ctx, id)
				if err != nil || reply == nil {
					return nil, err
				}
				return &ContentPreview{
					Type:     ContentTypeCommentReply,
					AuthorID: reply.UserID,
					Excerpt:  excerpt(reply.Message),
				}, nil
			},
			deleteFn: reviews.DeleteReplyByID,
		},
		ContentTypeGroupMessage: {
			preview: func(ctx context.Context, id uuid.UUID) (*ContentPreview, error) {
				msg, err := messages.GetMessage(ctx, id)
				if err != nil || msg == nil {
					return nil, err
				}
				return &ContentPreview{
					Type:     ContentTypeGroupMessage,
					AuthorID: msg.UserID,
					Excerpt:  excerpt(msg.Message.Message),
				}, nil
			},
			deleteFn: messages.DeleteMessage,
		},
		ContentTypeUser: {
			preview: func(ctx context.Context, id uuid.UUID) (*ContentPreview, error) {
				u, err := userRepo.GetByID(ctx, id)
				if err != nil || u == nil {
					return nil, err
				}
				return &ContentPreview{
					Type:     ContentTypeUser,
					AuthorID: u.ID,
					Excerpt:  u.Pseudo,
				}, nil
			},
			// Accounts are never hard-deleted
			deleteFn: nil,
		},
	}

	return s
}

func excerpt(s string) string {
	const max = 140
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "…"
}

// ReportContent files a report. The referenced content must exist, and a
// user can report a given piece of content only once. Reason is optional.
func (s *Service) ReportContent(ctx context.Context, reporterID uuid.UUID, contentType ContentType, contentID uuid.UUID, reason string) (*Report, error) {
	kind, ok := s.kinds[contentType]
	if !ok {
		return nil, ErrContentNotFound
	}

	preview, err := kind.preview(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if preview == nil {
		return nil, ErrContentNotFound
	}

	reason = strings.TrimSpace(reason)
	rep := &Report{
		ID:          uuid.New(),
		ContentType: contentType,
		ContentID:   contentID,
		ReporterID:  reporterID,
		Reason:      sql.NullString{String: reason, Valid: reason != ""},
		Status:      ReportStatusPending,
	}
	if err := s.repo.Create(ctx, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

// ReportWithPreview pairs a report with its current content preview
type ReportWithPreview struct {
	Report  *Report
	Preview *ContentPreview
}

// ListReports returns reports in the given status with content previews.
// Content deleted since the report was filed yields a nil preview.
func (s *Service) ListReports(ctx context.Context, status ReportStatus) ([]*ReportWithPreview, error) {
	reports, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}

	out := make([]*ReportWithPreview, 0, len(reports))
	for _, rep := range reports {
		item := &ReportWithPreview{Report: rep}
		if kind, ok := s.kinds[rep.ContentType]; ok {
			preview, err := kind.preview(ctx, rep.ContentID)
			if err != nil {
				return nil, err
			}
			item.Preview = preview
		}
		out = append(out, item)
	}
	return out, nil
}

// ResolveReport applies a moderator decision. Only pending reports can be
// resolved; action=delete removes the underlying content first.
func (s *Service) ResolveReport(ctx context.Context, reportID, moderatorID uuid.UUID, action Action, notes string) (*Report, error) {
	rep, err := s.repo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, ErrReportNotFound
	}
	if rep.Status != ReportStatusPending {
		return nil, ErrReportNotPending
	}

	status := ReportStatusResolved
	if action == ActionNoAction {
		status = ReportStatusDismissed
	}

	if action == ActionDelete {
		kind := s.kinds[rep.ContentType]
		if kind.deleteFn == nil {
			return nil, ErrContentNotDeletable
		}
		// Content may already be gone; resolving such a report is fine
		preview, err := kind.preview(ctx, rep.ContentID)
		if err != nil {
			return nil, err
		}
		if preview != nil {
			if err := kind.deleteFn(ctx, rep.ContentID); err != nil {
				return nil, err
			}
		}
	}

	if err := s.repo.Resolve(ctx, reportID, moderatorID, status, action, notes); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, reportID)
}
