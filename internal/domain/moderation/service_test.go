package moderation

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/cineconnect/cineconnect-api/internal/domain/chat"
	"github.com/cineconnect/cineconnect-api/internal/domain/review"
	"github.com/cineconnect/cineconnect-api/internal/domain/user"
)

type reportKey struct {
	contentType ContentType
	contentID   uuid.UUID
	reporterID  uuid.UUID
}

type moderationRepoStub struct {
	reports map[uuid.UUID]*Report
	seen    map[reportKey]bool
}

func newModerationRepoStub() *moderationRepoStub {
	return &moderationRepoStub{reports: map[uuid.UUID]*Report{}, seen: map[reportKey]bool{}}
}

func (r *moderationRepoStub) Create(_ context.Context, rep *Report) error {
	key := reportKey{rep.ContentType, rep.ContentID, rep.ReporterID}
	if r.seen[key] {
		return ErrAlreadyReported
	}
	r.seen[key] = true
	r.reports[rep.ID] = rep
	return nil
}

func (r *moderationRepoStub) GetByID(_ context.Context, id uuid.UUID) (*Report, error) {
	return r.reports[id], nil
}

func (r *moderationRepoStub) ListByStatus(_ context.Context, status ReportStatus) ([]*Report, error) {
	var out []*Report
	for _, rep := range r.reports {
		if rep.Status == status {
			out = append(out, rep)
		}
	}
	return out, nil
}

func (r *moderationRepoStub) Resolve(_ context.Context, id, moderatorID uuid.UUID, status ReportStatus, action Action, notes string) error {
	rep, ok := r.reports[id]
	if !ok {
		return errors.New("report not found")
	}
	rep.Status = status
	rep.ModeratorID = uuid.NullUUID{UUID: moderatorID, Valid: true}
	rep.ModeratorAction = sql.NullString{String: string(action), Valid: true}
	if notes != "" {
		rep.ModeratorNotes = sql.NullString{String: notes, Valid: true}
	}
	rep.ResolvedAt = sql.NullTime{Time: time.Now(), Valid: true}
	return nil
}

type reviewStoreStub struct {
	reviews map[uuid.UUID]*review.Review
	replies map[uuid.UUID]*review.CommentReply
}

func newReviewStoreStub() *reviewStoreStub {
	return &reviewStoreStub{
		reviews: map[uuid.UUID]*review.Review{},
		replies: map[uuid.UUID]*review.CommentReply{},
	}
}

func (s *reviewStoreStub) GetByID(_ context.Context, id uuid.UUID) (*review.Review, error) {
	return s.reviews[id], nil
}

func (s *reviewStoreStub) GetReply(_ context.Context, id uuid.UUID) (*review.CommentReply, error) {
	return s.replies[id], nil
}

func (s *reviewStoreStub) DeleteReview(_ context.Context, id uuid.UUID) error {
	delete(s.reviews, id)
	return nil
}

func (s *reviewStoreStub) DeleteReplyByID(_ context.Context, id uuid.UUID) error {
	delete(s.replies, id)
	return nil
}

type messageStoreStub struct {
	messages map[uuid.UUID]*chat.MessageWithAuthor
}

func (s *messageStoreStub) GetMessage(_ context.Context, id uuid.UUID) (*chat.MessageWithAuthor, error) {
	return s.messages[id], nil
}

func (s *messageStoreStub) DeleteMessage(_ context.Context, id uuid.UUID) error {
	delete(s.messages, id)
	return nil
}

type userRepoStub struct {
	users map[uuid.UUID]*user.User
}

func (r *userRepoStub) Create(context.Context, *user.User) error { return nil }
func (r *userRepoStub) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	return r.users[id], nil
}
func (r *userRepoStub) GetByEmail(context.Context, string) (*user.User, error)  { return nil, nil }
func (r *userRepoStub) GetByPseudo(context.Context, string) (*user.User, error) { return nil, nil }
func (r *userRepoStub) Update(context.Context, *user.User) error                { return nil }
func (r *userRepoStub) UpdatePassword(context.Context, uuid.UUID, string) error { return nil }
func (r *userRepoStub) UpdatePhotoURL(context.Context, uuid.UUID, string) error { return nil }
func (r *userRepoStub) SetResetToken(context.Context, uuid.UUID, string, time.Time) error {
	return nil
}
func (r *userRepoStub) GetByResetTokenHash(context.Context, string) (*user.User, error) {
	return nil, nil
}
func (r *userRepoStub) ClearResetToken(context.Context, uuid.UUID) error { return nil }

type moderationFixture struct {
	svc      *Service
	repo     *moderationRepoStub
	reviews  *reviewStoreStub
	messages *messageStoreStub
	users    *userRepoStub
}

func newModerationFixture() *moderationFixture {
	repo := newModerationRepoStub()
	reviews := newReviewStoreStub()
	messages := &messageStoreStub{messages: map[uuid.UUID]*chat.MessageWithAuthor{}}
	users := &userRepoStub{users: map[uuid.UUID]*user.User{}}
	return &moderationFixture{
		svc:      NewService(repo, reviews, messages, users),
		repo:     repo,
		reviews:  reviews,
		messages: messages,
		users:    users,
	}
}

func (f *moderationFixture) seedReview(comment string) uuid.UUID {
	rev := &review.Review{ID: uuid.New(), UserID: uuid.New(), FilmID: uuid.New()}
	rev.Comment = sql.NullString{String: comment, Valid: comment != ""}
	f.reviews.reviews[rev.ID] = rev
	return rev.ID
}

func TestReportUnknownContent(t *testing.T) {
	f := newModerationFixture()

	_, err := f.svc.ReportContent(context.Background(), uuid.New(), ContentTypeReview, uuid.New(), "spam")
	if !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
}

func TestReportTwiceBySameUser(t *testing.T) {
	f := newModerationFixture()
	reviewID := f.seedReview("offensive text")
	reporter := uuid.New()

	if _, err := f.svc.ReportContent(context.Background(), reporter, ContentTypeReview, reviewID, "spam"); err != nil {
		t.Fatalf("first report failed: %v", err)
	}

	_, err := f.svc.ReportContent(context.Background(), reporter, ContentTypeReview, reviewID, "spam again")
	if !errors.Is(err, ErrAlreadyReported) {
		t.Fatalf("expected ErrAlreadyReported, got %v", err)
	}
}

func TestReportSameContentByDifferentUsers(t *testing.T) {
	f := newModerationFixture()
	reviewID := f.seedReview("bad")

	if _, err := f.svc.ReportContent(context.Background(), uuid.New(), ContentTypeReview, reviewID, "spam"); err != nil {
		t.Fatalf("first reporter failed: %v", err)
	}
	if _, err := f.svc.ReportContent(context.Background(), uuid.New(), ContentTypeReview, reviewID, "spam"); err != nil {
		t.Fatalf("second reporter failed: %v", err)
	}
}

func TestReportWithoutReason(t *testing.T) {
	f := newModerationFixture()
	reviewID := f.seedReview("bad take")

	rep, err := f.svc.ReportContent(context.Background(), uuid.New(), ContentTypeReview, reviewID, "")
	if err != nil {
		t.Fatalf("report without reason failed: %v", err)
	}
	if rep.Reason.Valid {
		t.Fatalf("expected no reason stored, got %q", rep.Reason.String)
	}
	if resp := rep.ToResponse(); resp.Reason != nil {
		t.Fatalf("expected reason omitted from response, got %q", *resp.Reason)
	}
}

func TestReportBlankReasonTreatedAsAbsent(t *testing.T) {
	f := newModerationFixture()
	reviewID := f.seedReview("bad take")

	rep, err := f.svc.ReportContent(context.Background(), uuid.New(), ContentTypeReview, reviewID, "   ")
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if rep.Reason.Valid {
		t.Fatalf("expected whitespace reason stored as absent, got %q", rep.Reason.String)
	}
}

func TestListReportsIncludesPreview(t *testing.T) {
	f := newModerationFixture()
	reviewID := f.seedReview("long rant about the ending")

	if _, err := f.svc.ReportContent(context.Background(), uuid.New(), ContentTypeReview, reviewID, "spoilers"); err != nil {
		t.Fatalf("report failed: %v", err)
	}

	items, err := f.svc.ListReports(context.Background(), ReportStatusPending)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 report, got %d", len(items))
	}
	if items[0].Preview == nil || items[0].Preview.Excerpt != "long rant about the ending" {
		t.Fatalf("expected preview with excerpt, got %+v", items[0].Preview)
	}
}

func TestListReportsNilPreviewForDeletedContent(t *testing.T) {
	f := newModerationFixture()
	reviewID := f.seedReview("gone soon")

	if _, err := f.svc.ReportContent(context.Background(), uuid.New(), ContentTypeReview, reviewID, "spam"); err != nil {
		t.Fatalf("report failed: %v", err)
	}

	delete(f.reviews.reviews, reviewID)

	items, err := f.svc.ListReports(context.Background(), ReportStatusPending)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].Preview != nil {
		t.Fatalf("expected report with nil preview, got %+v", items)
	}
}

func TestResolveDeleteRemovesContent(t *testing.T) {
	f := newModerationFixture()
	reviewID := f.seedReview("abusive")

	rep, err := f.svc.ReportContent(context.Background(), uuid.New(), ContentTypeReview, reviewID, "abuse")
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	moderator := uuid.New()
	out, err := f.svc.ResolveReport(context.Background(), rep.ID, moderator, ActionDelete, "removed")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if out.Status != ReportStatusResolved {
		t.Fatalf("expected resolved status, got %s", out.Status)
	}
	if out.ModeratorID.UUID != moderator {
		t.Fatalf("expected moderator recorded, got %+v", out.ModeratorID)
	}
	if _, ok := f.reviews.reviews[reviewID]; ok {
		t.Fatal("expected review to be deleted")
	}
}

func TestResolveNoActionDismisses(t *testing.T) {
	f := newModerationFixture()
	reviewID := f.seedReview("fine actually")

	rep, err := f.svc.ReportContent(context.Background(), uuid.New(), ContentTypeReview, reviewID, "disagree")
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	out, err := f.svc.ResolveReport(context.Background(), rep.ID, uuid.New(), ActionNoAction, "")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if out.Status != ReportStatusDismissed {
		t.Fatalf("expected dismissed status, got %s", out.Status)
	}
	if _, ok := f.reviews.reviews[reviewID]; !ok {
		t.Fatal("expected review untouched")
	}
}

func TestResolveTwice(t *testing.T) {
	f := newModerationFixture()
	reviewID := f.seedReview("text")

	rep, err := f.svc.ReportContent(context.Background(), uuid.New(), ContentTypeReview, reviewID, "spam")
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	if _, err := f.svc.ResolveReport(context.Background(), rep.ID, uuid.New(), ActionWarn, ""); err != nil {
		t.Fatalf("first resolve failed: %v", err)
	}

	_, err = f.svc.ResolveReport(context.Background(), rep.ID, uuid.New(), ActionWarn, "")
	if !errors.Is(err, ErrReportNotPending) {
		t.Fatalf("expected ErrReportNotPending, got %v", err)
	}
}

func TestResolveDeleteOnUserReport(t *testing.T) {
	f := newModerationFixture()
	reported := uuid.New()
	f.users.users[reported] = &user.User{ID: reported, Pseudo: "troublemaker"}

	rep, err := f.svc.ReportContent(context.Background(), uuid.New(), ContentTypeUser, reported, "harassment")
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	_, err = f.svc.ResolveReport(context.Background(), rep.ID, uuid.New(), ActionDelete, "")
	if !errors.Is(err, ErrContentNotDeletable) {
		t.Fatalf("expected ErrContentNotDeletable, got %v", err)
	}
}

func TestResolveDeleteAlreadyGoneContent(t *testing.T) {
	f := newModerationFixture()
	reviewID := f.seedReview("self-deleted")

	rep, err := f.svc.ReportContent(context.Background(), uuid.New(), ContentTypeReview, reviewID, "spam")
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	delete(f.reviews.reviews, reviewID)

	out, err := f.svc.ResolveReport(context.Background(), rep.ID, uuid.New(), ActionDelete, "already gone")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if out.Status != ReportStatusResolved {
		t.Fatalf("expected resolved status, got %s", out.Status)
	}
}

func TestExcerptTruncates(t *testing.T) {
	long := strings.Repeat("a", 300)
	got := excerpt(long)
	if len([]rune(got)) != 141 {
		t.Fatalf("expected 140 chars plus ellipsis, got %d", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected ellipsis suffix, got %q", got[len(got)-10:])
	}
}

func TestExcerptKeepsMultiByteRunesIntact(t *testing.T) {
	long := strings.Repeat("é", 300)
	got := excerpt(long)
	if !utf8.ValidString(got) {
		t.Fatalf("excerpt produced invalid UTF-8: %q", got)
	}
	if n := len([]rune(got)); n != 141 {
		t.Fatalf("expected 140 runes plus ellipsis, got %d", n)
	}
	short := "ça tourne"
	if excerpt(short) != short {
		t.Fatalf("short string should pass through unchanged")
	}
}

func TestReportGroupMessage(t *testing.T) {
	f := newModerationFixture()
	msgID := uuid.New()
	f.messages.messages[msgID] = &chat.MessageWithAuthor{
		Message: chat.Message{ID: msgID, GroupID: uuid.New(), UserID: uuid.New(), Message: "toxic"},
	}

	rep, err := f.svc.ReportContent(context.Background(), uuid.New(), ContentTypeGroupMessage, msgID, "toxicity")
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	if _, err := f.svc.ResolveReport(context.Background(), rep.ID, uuid.New(), ActionDelete, ""); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if _, ok := f.messages.messages[msgID]; ok {
		t.Fatal("expected message to be deleted")
	}
}
