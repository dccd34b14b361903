package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cineconnect/cineconnect-api/internal/domain/user"
	"github.com/cineconnect/cineconnect-api/internal/pkg/jwt"
)

type userRepoStub struct {
	users map[uuid.UUID]*user.User
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{users: map[uuid.UUID]*user.User{}}
}

func (r *userRepoStub) Create(_ context.Context, u *user.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return user.ErrEmailAlreadyExists
		}
		if existing.Pseudo == u.Pseudo {
			return user.ErrPseudoAlreadyTaken
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *userRepoStub) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	return r.users[id], nil
}

func (r *userRepoStub) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

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

func newAuthService() (*Service, *userRepoStub) {
	repo := newUserRepoStub()
	jwtSvc := jwt.NewService("test-secret", time.Minute, time.Hour)
	return NewService(repo, jwtSvc, nil), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService()

	out, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "  Cinephile@Example.COM ",
		Password: "correct-horse",
		Pseudo:   " cinephile ",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if out.User.Email != "cinephile@example.com" {
		t.Fatalf("expected normalized email, got %q", out.User.Email)
	}
	if out.User.Pseudo != "cinephile" {
		t.Fatalf("expected trimmed pseudo, got %q", out.User.Pseudo)
	}
	if out.Tokens.AccessToken == "" || out.Tokens.RefreshToken == "" {
		t.Fatal("expected both tokens issued")
	}

	login, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "cinephile@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if login.User.ID != out.User.ID {
		t.Fatal("expected login to return the registered user")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()

	if _, err := svc.Register(context.Background(), &RegisterRequest{
		Email: "a@example.com", Password: "pass-one", Pseudo: "first",
	}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Email: "A@Example.com", Password: "pass-two", Pseudo: "second",
	})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestRegisterDuplicatePseudo(t *testing.T) {
	svc, _ := newAuthService()

	if _, err := svc.Register(context.Background(), &RegisterRequest{
		Email: "a@example.com", Password: "pass-one", Pseudo: "taken",
	}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Email: "b@example.com", Password: "pass-two", Pseudo: "taken",
	})
	if !errors.Is(err, ErrPseudoAlreadyTaken) {
		t.Fatalf("expected ErrPseudoAlreadyTaken, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthService()

	if _, err := svc.Register(context.Background(), &RegisterRequest{
		Email: "a@example.com", Password: "right-password", Pseudo: "someone",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email: "a@example.com", Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email: "nobody@example.com", Password: "whatever",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRefreshWithoutStoreRejected(t *testing.T) {
	svc, _ := newAuthService()

	out, err := svc.Register(context.Background(), &RegisterRequest{
		Email: "a@example.com", Password: "some-password", Pseudo: "someone",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Refresh rotation requires the server-side token store
	_, err = svc.Refresh(context.Background(), out.Tokens.RefreshToken)
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestGetCurrentUser(t *testing.T) {
	svc, _ := newAuthService()

	out, err := svc.Register(context.Background(), &RegisterRequest{
		Email: "a@example.com", Password: "some-password", Pseudo: "someone",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	me, err := svc.GetCurrentUser(context.Background(), out.User.ID)
	if err != nil {
		t.Fatalf("get current user failed: %v", err)
	}
	if me.Pseudo != "someone" {
		t.Fatalf("expected pseudo someone, got %q", me.Pseudo)
	}

	_, err = svc.GetCurrentUser(context.Background(), uuid.New())
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
