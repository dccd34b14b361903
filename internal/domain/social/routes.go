package social

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns social graph router, mounted under /users
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)

	r.Get("/discover", h.Discover)
	r.Get("/friends", h.ListFriends)
	r.Get("/friend-requests", h.ListFriendRequests)

	r.Post("/{id}/friend-request", h.SendFriendRequest)
	r.Post("/{id}/friend-request/accept", h.AcceptFriendRequest)
	r.Post("/{id}/friend-request/reject", h.RejectFriendRequest)

	r.Post("/{id}/follow", h.Follow)
	r.Delete("/{id}/follow", h.Unfollow)

	return r
}
