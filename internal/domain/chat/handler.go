package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/cineconnect/cineconnect-api/internal/middleware"
	"github.com/cineconnect/cineconnect-api/internal/pkg/response"
	"github.com/cineconnect/cineconnect-api/internal/pkg/validator"
)

// WebSocket timing constants
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 32 * 1024
)

// Handler handles chat HTTP and WebSocket requests
type Handler struct {
	service     *Service
	hub         *Hub
	rateLimiter *RateLimiter
	upgrader    websocket.Upgrader
}

// RateLimiter throttles message posting per user via a Redis counter.
// Fails open without Redis.
type RateLimiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
}

// NewRateLimiter creates a message rate limiter
func NewRateLimiter(redisClient *redis.Client, perMinute int) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		limit:  perMinute,
		window: time.Minute,
	}
}

// Allow checks whether the user may send another message
func (rl *RateLimiter) Allow(userID uuid.UUID) bool {
	if rl.redis == nil {
		return true
	}

	key := fmt.Sprintf("ratelimit:chat:%s", userID)
	ctx := context.Background()

	count, err := rl.redis.Incr(ctx, key).Result()
	if err != nil {
		return true
	}

	if count == 1 {
		rl.redis.Expire(ctx, key, rl.window)
	}

	return count <= int64(rl.limit)
}

// NewHandler creates chat handler
func NewHandler(service *Service, hub *Hub, redisClient *redis.Client, messagesPerMinute int, allowedOrigins []string) *Handler {
	return &Handler{
		service:     service,
		hub:         hub,
		rateLimiter: NewRateLimiter(redisClient, messagesPerMinute),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")

				if len(allowedOrigins) == 0 {
					return true
				}

				for _, allowed := range allowedOrigins {
					if origin == allowed {
						return true
					}
				}

				log.Warn().Str("origin", origin).Msg("WebSocket origin rejected")
				return false
			},
		},
	}
}

// ListMessages handles GET /groups/{id}/messages
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	groupID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	userID := middleware.GetUserID(r.Context())
	messages, err := h.service.GetMessages(r.Context(), groupID, userID)
	if err != nil {
		switch err {
		case ErrGroupNotFound:
			response.NotFound(w, "Group not found")
		case ErrNotMember:
			response.Forbidden(w, "This group's chat is for members only")
		default:
			log.Error().Err(err).Str("group_id", groupID.String()).Msg("chat history failed")
			response.InternalError(w)
		}
		return
	}

	items := make([]*MessageResponse, 0, len(messages))
	for _, m := range messages {
		items = append(items, m.ToResponse())
	}
	response.OK(w, items)
}

// PostMessage handles POST /groups/{id}/messages
func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	groupID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	userID := middleware.GetUserID(r.Context())

	if !h.rateLimiter.Allow(userID) {
		response.TooManyRequests(w)
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	msg, err := h.service.PostMessage(r.Context(), groupID, userID, req.Message)
	if err != nil {
		switch err {
		case ErrGroupNotFound:
			response.NotFound(w, "Group not found")
		case ErrNotMember:
			response.Forbidden(w, "This group's chat is for members only")
		case ErrEmptyMessage:
			response.BadRequest(w, "Message cannot be empty")
		default:
			log.Error().Err(err).Str("group_id", groupID.String()).Msg("chat post failed")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, msg.ToResponse())
}

// WebSocket handles GET /ws. Auth happens at the handshake; the token
// middleware runs before this handler.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := &Connection{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	h.hub.Register(client)

	go h.wsReader(client)
	go h.wsWriter(client)
}

// clientEvent is what clients send over the socket
type clientEvent struct {
	Type    string    `json:"type"`
	GroupID uuid.UUID `json:"group_id"`
}

func (h *Handler) wsReader(client *Connection) {
	defer func() {
		h.hub.Unregister(client)
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("user_id", client.UserID.String()).Msg("WebSocket read error")
			}
			break
		}

		var event clientEvent
		if err := json.Unmarshal(message, &event); err != nil {
			continue
		}

		switch event.Type {
		case "join-group":
			if err := h.service.CheckAccess(context.Background(), event.GroupID, client.UserID); err != nil {
				reason := "Cannot join this group's channel"
				if err == ErrGroupNotFound {
					reason = "Group not found"
				}
				h.hub.SendToConnection(client, &WSEvent{
					Type:    EventError,
					GroupID: event.GroupID,
					Error:   reason,
				})
				continue
			}
			h.hub.SubscribeToGroup(event.GroupID, client.UserID)
			h.hub.SendToConnection(client, &WSEvent{
				Type:    EventJoined,
				GroupID: event.GroupID,
			})

		case "leave-group":
			h.hub.UnsubscribeFromGroup(event.GroupID, client.UserID)
			h.hub.SendToConnection(client, &WSEvent{
				Type:    EventLeft,
				GroupID: event.GroupID,
			})
		}
	}
}

func (h *Handler) wsWriter(client *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
