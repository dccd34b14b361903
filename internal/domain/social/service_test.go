package social

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cineconnect/cineconnect-api/internal/domain/user"
)

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

type pairKey struct{ a, b uuid.UUID }

type socialRepoStub struct {
	requests    map[uuid.UUID]*FriendRequest
	friendships map[pairKey]bool
	follows     map[pairKey]bool
}

func newSocialRepoStub() *socialRepoStub {
	return &socialRepoStub{
		requests:    map[uuid.UUID]*FriendRequest{},
		friendships: map[pairKey]bool{},
		follows:     map[pairKey]bool{},
	}
}

func (r *socialRepoStub) CreateRequest(_ context.Context, req *FriendRequest) error {
	r.requests[req.ID] = req
	return nil
}

func (r *socialRepoStub) GetPendingRequest(_ context.Context, requesterID, receiverID uuid.UUID) (*FriendRequest, error) {
	for _, req := range r.requests {
		if req.RequesterID == requesterID && req.ReceiverID == receiverID && req.Status == RequestPending {
			return req, nil
		}
	}
	return nil, nil
}

func (r *socialRepoStub) UpdateRequestStatus(_ context.Context, id uuid.UUID, status RequestStatus) error {
	req, ok := r.requests[id]
	if !ok {
		return errors.New("request not found")
	}
	req.Status = status
	return nil
}

func (r *socialRepoStub) ListPendingForReceiver(context.Context, uuid.UUID) ([]*PendingRequestInfo, error) {
	return nil, nil
}

func (r *socialRepoStub) UpsertFriendship(_ context.Context, f *Friendship) error {
	r.friendships[pairKey{f.User1ID, f.User2ID}] = true
	return nil
}

func (r *socialRepoStub) AreFriends(_ context.Context, a, b uuid.UUID) (bool, error) {
	lo, hi := orderedPair(a, b)
	return r.friendships[pairKey{lo, hi}], nil
}

func (r *socialRepoStub) ListFriends(context.Context, uuid.UUID) ([]*FriendInfo, error) {
	return nil, nil
}

func (r *socialRepoStub) CreateFollow(_ context.Context, f *Follow) (bool, error) {
	key := pairKey{f.FollowerID, f.FolloweeID}
	if r.follows[key] {
		return false, nil
	}
	r.follows[key] = true
	return true, nil
}

func (r *socialRepoStub) DeleteFollow(_ context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	key := pairKey{followerID, followeeID}
	if !r.follows[key] {
		return false, nil
	}
	delete(r.follows, key)
	return true, nil
}

func (r *socialRepoStub) IsFollowing(_ context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	return r.follows[pairKey{followerID, followeeID}], nil
}

func (r *socialRepoStub) Discover(context.Context, uuid.UUID, string, int, int) ([]*DiscoverProfile, error) {
	return nil, nil
}

func newTestService(ids ...uuid.UUID) (*Service, *socialRepoStub) {
	repo := newSocialRepoStub()
	users := map[uuid.UUID]*user.User{}
	for _, id := range ids {
		users[id] = &user.User{ID: id}
	}
	return NewService(repo, &userRepoStub{users: users}), repo
}

func TestSendFriendRequestSelf(t *testing.T) {
	id := uuid.New()
	svc, _ := newTestService(id)

	_, err := svc.SendFriendRequest(context.Background(), id, id)
	if !errors.Is(err, ErrSelfReference) {
		t.Fatalf("expected ErrSelfReference, got %v", err)
	}
}

func TestSendFriendRequestUnknownReceiver(t *testing.T) {
	requester := uuid.New()
	svc, _ := newTestService(requester)

	_, err := svc.SendFriendRequest(context.Background(), requester, uuid.New())
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSendFriendRequestDuplicatePending(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	svc, _ := newTestService(a, b)

	if _, err := svc.SendFriendRequest(context.Background(), a, b); err != nil {
		t.Fatalf("first request failed: %v", err)
	}

	_, err := svc.SendFriendRequest(context.Background(), a, b)
	if !errors.Is(err, ErrRequestAlreadySent) {
		t.Fatalf("expected ErrRequestAlreadySent, got %v", err)
	}
}

func TestSendFriendRequestReversePending(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	svc, _ := newTestService(a, b)

	if _, err := svc.SendFriendRequest(context.Background(), a, b); err != nil {
		t.Fatalf("first request failed: %v", err)
	}

	_, err := svc.SendFriendRequest(context.Background(), b, a)
	if !errors.Is(err, ErrRequestAlreadyReceived) {
		t.Fatalf("expected ErrRequestAlreadyReceived, got %v", err)
	}
}

func TestSendFriendRequestAlreadyFriends(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	svc, repo := newTestService(a, b)

	lo, hi := orderedPair(a, b)
	repo.friendships[pairKey{lo, hi}] = true

	_, err := svc.SendFriendRequest(context.Background(), a, b)
	if !errors.Is(err, ErrAlreadyFriends) {
		t.Fatalf("expected ErrAlreadyFriends, got %v", err)
	}
}

func TestAcceptFriendRequestCreatesCanonicalPair(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	svc, repo := newTestService(a, b)

	req, err := svc.SendFriendRequest(context.Background(), a, b)
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if err := svc.AcceptFriendRequest(context.Background(), b, a); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	if repo.requests[req.ID].Status != RequestAccepted {
		t.Fatalf("expected accepted status, got %s", repo.requests[req.ID].Status)
	}

	lo, hi := orderedPair(a, b)
	if !repo.friendships[pairKey{lo, hi}] {
		t.Fatal("expected friendship to exist")
	}

	friends, err := repo.AreFriends(context.Background(), b, a)
	if err != nil {
		t.Fatalf("are friends failed: %v", err)
	}
	if !friends {
		t.Fatal("expected AreFriends true regardless of argument order")
	}
}

func TestAcceptFriendRequestNotFound(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	svc, _ := newTestService(a, b)

	err := svc.AcceptFriendRequest(context.Background(), b, a)
	if !errors.Is(err, ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestAcceptFriendRequestTwice(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	svc, _ := newTestService(a, b)

	if _, err := svc.SendFriendRequest(context.Background(), a, b); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if err := svc.AcceptFriendRequest(context.Background(), b, a); err != nil {
		t.Fatalf("first accept failed: %v", err)
	}

	err := svc.AcceptFriendRequest(context.Background(), b, a)
	if !errors.Is(err, ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound on second accept, got %v", err)
	}
}

func TestRejectThenResend(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	svc, _ := newTestService(a, b)

	if _, err := svc.SendFriendRequest(context.Background(), a, b); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if err := svc.RejectFriendRequest(context.Background(), b, a); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	if _, err := svc.SendFriendRequest(context.Background(), a, b); err != nil {
		t.Fatalf("resend after rejection failed: %v", err)
	}
}

func TestFollowSelf(t *testing.T) {
	id := uuid.New()
	svc, _ := newTestService(id)

	err := svc.Follow(context.Background(), id, id)
	if !errors.Is(err, ErrSelfReference) {
		t.Fatalf("expected ErrSelfReference, got %v", err)
	}
}

func TestFollowTwice(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	svc, _ := newTestService(a, b)

	if err := svc.Follow(context.Background(), a, b); err != nil {
		t.Fatalf("first follow failed: %v", err)
	}

	err := svc.Follow(context.Background(), a, b)
	if !errors.Is(err, ErrAlreadyFollowing) {
		t.Fatalf("expected ErrAlreadyFollowing, got %v", err)
	}
}

func TestUnfollowWithoutFollow(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	svc, _ := newTestService(a, b)

	err := svc.Unfollow(context.Background(), a, b)
	if !errors.Is(err, ErrNotFollowing) {
		t.Fatalf("expected ErrNotFollowing, got %v", err)
	}
}

func TestOrderedPairStable(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	lo1, hi1 := orderedPair(a, b)
	lo2, hi2 := orderedPair(b, a)

	if lo1 != lo2 || hi1 != hi2 {
		t.Fatal("expected orderedPair to be order independent")
	}
	if lo1.String() >= hi1.String() {
		t.Fatalf("expected lo < hi, got %s >= %s", lo1, hi1)
	}
}
