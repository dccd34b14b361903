package feed

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/cineconnect/cineconnect-api/internal/domain/film"
)

type feedRepoStub struct {
	recent         []*ActivityReview
	friendActivity map[uuid.UUID][]*ActivityReview

	recentLimit   int
	activityLimit int
}

func (s *feedRepoStub) ListRecentCommented(ctx context.Context, limit int) ([]*ActivityReview, error) {
	s.recentLimit = limit
	return s.recent, nil
}

func (s *feedRepoStub) ListFriendActivity(ctx context.Context, viewerID uuid.UUID, limit int) ([]*ActivityReview, error) {
	s.activityLimit = limit
	return s.friendActivity[viewerID], nil
}

type filmRankerStub struct {
	top    []*film.Film
	recent []*film.Film

	topLimit    int
	recentLimit int
}

func (s *filmRankerStub) TopRated(ctx context.Context, limit int) ([]*film.Film, error) {
	s.topLimit = limit
	return s.top, nil
}

func (s *filmRankerStub) RecentlyReleased(ctx context.Context, limit int) ([]*film.Film, error) {
	s.recentLimit = limit
	return s.recent, nil
}

func feedReview(pseudo, title string) *ActivityReview {
	return &ActivityReview{
		ReviewID:     uuid.New(),
		UserID:       uuid.New(),
		AuthorPseudo: pseudo,
		FilmID:       uuid.New(),
		FilmTitle:    title,
		Rating:       4,
	}
}

func TestGlobalAssemblesAllSections(t *testing.T) {
	repo := &feedRepoStub{
		recent: []*ActivityReview{
			feedReview("argento_fan", "Deep Red"),
			feedReview("noir_hound", "The Third Man"),
		},
	}
	ranker := &filmRankerStub{
		top:    []*film.Film{{ID: uuid.New(), Title: "Seven Samurai"}},
		recent: []*film.Film{{ID: uuid.New(), Title: "The Brutalist"}},
	}
	svc := NewService(repo, ranker)

	feed, err := svc.Global(context.Background())
	if err != nil {
		t.Fatalf("Global: %v", err)
	}

	if len(feed.RecentReviews) != 2 {
		t.Fatalf("expected 2 recent reviews, got %d", len(feed.RecentReviews))
	}
	if feed.RecentReviews[0].AuthorPseudo != "argento_fan" {
		t.Errorf("unexpected first review author %q", feed.RecentReviews[0].AuthorPseudo)
	}
	if len(feed.TopRated) != 1 || feed.TopRated[0].Title != "Seven Samurai" {
		t.Errorf("unexpected top rated section: %+v", feed.TopRated)
	}
	if len(feed.RecentlyReleased) != 1 || feed.RecentlyReleased[0].Title != "The Brutalist" {
		t.Errorf("unexpected recently released section: %+v", feed.RecentlyReleased)
	}
}

func TestGlobalUsesFeedLimits(t *testing.T) {
	repo := &feedRepoStub{}
	ranker := &filmRankerStub{}
	svc := NewService(repo, ranker)

	if _, err := svc.Global(context.Background()); err != nil {
		t.Fatalf("Global: %v", err)
	}

	if repo.recentLimit != reviewFeedLimit {
		t.Errorf("expected review limit %d, got %d", reviewFeedLimit, repo.recentLimit)
	}
	if ranker.topLimit != filmFeedLimit {
		t.Errorf("expected top rated limit %d, got %d", filmFeedLimit, ranker.topLimit)
	}
	if ranker.recentLimit != filmFeedLimit {
		t.Errorf("expected recently released limit %d, got %d", filmFeedLimit, ranker.recentLimit)
	}
}

func TestPersonalScopedToViewer(t *testing.T) {
	viewerID := uuid.New()
	strangerID := uuid.New()
	repo := &feedRepoStub{
		friendActivity: map[uuid.UUID][]*ActivityReview{
			viewerID:   {feedReview("giallo_kid", "Suspiria")},
			strangerID: {feedReview("other", "Heat"), feedReview("other", "Ronin")},
		},
	}
	svc := NewService(repo, &filmRankerStub{})

	reviews, err := svc.Personal(context.Background(), viewerID)
	if err != nil {
		t.Fatalf("Personal: %v", err)
	}
	if len(reviews) != 1 || reviews[0].FilmTitle != "Suspiria" {
		t.Fatalf("unexpected personal feed: %+v", reviews)
	}
	if repo.activityLimit != reviewFeedLimit {
		t.Errorf("expected activity limit %d, got %d", reviewFeedLimit, repo.activityLimit)
	}
}
