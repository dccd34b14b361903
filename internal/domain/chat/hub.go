package chat

import (
	"context"
	"encoding/json"
	"expvar"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// EventType for WebSocket events
type EventType string

const (
	EventNewMessage EventType = "new-message"
	EventJoined     EventType = "joined-group"
	EventLeft       EventType = "left-group"
	EventError      EventType = "error"
)

const groupChannelPrefix = "chat:group:"

var (
	wsConnectionsGauge   = expvar.NewInt("websocket_connections")
	wsEventsSentTotal    = expvar.NewInt("websocket_events_sent_total")
	wsEventsDroppedTotal = expvar.NewInt("websocket_events_dropped_total")
)

// WSEvent is the wire format for WebSocket events
type WSEvent struct {
	Type    EventType        `json:"type"`
	GroupID uuid.UUID        `json:"group_id,omitempty"`
	Message *MessageResponse `json:"message,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// Connection represents one WebSocket client
type Connection struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
	Send   chan []byte
}

// Hub manages WebSocket connections with Redis Pub/Sub so broadcasts
// reach clients connected to other server instances. A nil Redis client
// degrades to local-only fan-out.
type Hub struct {
	// Local connections (this server instance only)
	connections map[uuid.UUID]map[*Connection]bool

	// Local group subscriptions: groupID -> set of userIDs on this server
	localGroups map[uuid.UUID]map[uuid.UUID]bool

	redis  *redis.Client
	pubsub *redis.PubSub

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection

	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub creates a WebSocket hub
func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	h := &Hub{
		connections: make(map[uuid.UUID]map[*Connection]bool),
		localGroups: make(map[uuid.UUID]map[uuid.UUID]bool),
		redis:       redisClient,
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		ctx:         ctx,
		cancel:      cancel,
	}

	if redisClient != nil {
		h.pubsub = redisClient.PSubscribe(ctx, groupChannelPrefix+"*")
	}

	return h
}

// Run starts the hub (call in goroutine)
func (h *Hub) Run() {
	if h.pubsub != nil {
		go h.runRedisSubscriber()
	}

	for {
		select {
		case <-h.ctx.Done():
			return

		case conn := <-h.register:
			h.mu.Lock()
			if h.connections[conn.UserID] == nil {
				h.connections[conn.UserID] = make(map[*Connection]bool)
			}
			h.connections[conn.UserID][conn] = true
			h.mu.Unlock()
			wsConnectionsGauge.Add(1)
			log.Debug().Str("user_id", conn.UserID.String()).Msg("User connected to WebSocket")

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.connections[conn.UserID]; ok {
				if _, exists := conns[conn]; exists {
					delete(conns, conn)
					close(conn.Send)
					wsConnectionsGauge.Add(-1)
				}
				if len(conns) == 0 {
					delete(h.connections, conn.UserID)

					// Drop the user's local group subscriptions
					for groupID, users := range h.localGroups {
						delete(users, conn.UserID)
						if len(users) == 0 {
							delete(h.localGroups, groupID)
						}
					}
				}
			}
			h.mu.Unlock()
			log.Debug().Str("user_id", conn.UserID.String()).Msg("User disconnected from WebSocket")
		}
	}
}

// runRedisSubscriber relays Redis Pub/Sub messages to local clients
func (h *Hub) runRedisSubscriber() {
	ch := h.pubsub.Channel()

	for {
		select {
		case <-h.ctx.Done():
			return

		case msg, ok := <-ch:
			if !ok {
				return
			}

			if !strings.HasPrefix(msg.Channel, groupChannelPrefix) {
				continue
			}

			groupID, err := uuid.Parse(msg.Channel[len(groupChannelPrefix):])
			if err != nil {
				continue
			}

			var event WSEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}

			h.broadcastLocal(groupID, &event)
		}
	}
}

// broadcastLocal delivers event to clients subscribed on THIS server.
// Slow clients with a full send buffer drop only their own delivery.
func (h *Hub) broadcastLocal(groupID uuid.UUID, event *WSEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users, ok := h.localGroups[groupID]
	if !ok {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	for userID := range users {
		for conn := range h.connections[userID] {
			select {
			case conn.Send <- data:
				wsEventsSentTotal.Add(1)
			default:
				wsEventsDroppedTotal.Add(1)
				log.Warn().Str("user_id", userID.String()).Msg("WebSocket send buffer full")
			}
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// SubscribeToGroup adds the user to a group's local subscription set
func (h *Hub) SubscribeToGroup(groupID, userID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.localGroups[groupID] == nil {
		h.localGroups[groupID] = make(map[uuid.UUID]bool)
	}
	h.localGroups[groupID][userID] = true
}

// UnsubscribeFromGroup removes the user from a group's local subscription set
func (h *Hub) UnsubscribeFromGroup(groupID, userID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.localGroups[groupID] != nil {
		delete(h.localGroups[groupID], userID)
		if len(h.localGroups[groupID]) == 0 {
			delete(h.localGroups, groupID)
		}
	}
}

// BroadcastToGroup publishes event to all subscribers across all servers.
// Best-effort delivery, no acks or replay.
func (h *Hub) BroadcastToGroup(groupID uuid.UUID, event *WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal WebSocket event")
		return
	}

	channel := groupChannelPrefix + groupID.String()

	if h.redis != nil {
		if err := h.redis.Publish(h.ctx, channel, data).Err(); err != nil {
			log.Error().Err(err).Str("channel", channel).Msg("Redis publish failed")
			h.broadcastLocal(groupID, event)
		}
		return
	}

	h.broadcastLocal(groupID, event)
}

// SendToConnection delivers event to a single connection
func (h *Hub) SendToConnection(conn *Connection, event *WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	select {
	case conn.Send <- data:
		wsEventsSentTotal.Add(1)
	default:
		wsEventsDroppedTotal.Add(1)
	}
}

// IsUserSubscribed reports whether user is subscribed locally to group
func (h *Hub) IsUserSubscribed(groupID, userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	users := h.localGroups[groupID]
	if users == nil {
		return false
	}
	return users[userID]
}

// GetConnectionCount returns the number of local connections
func (h *Hub) GetConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	total := 0
	for _, conns := range h.connections {
		total += len(conns)
	}
	return total
}

// Shutdown stops the hub and closes the Redis subscription
func (h *Hub) Shutdown() {
	h.cancel()
	if h.pubsub != nil {
		h.pubsub.Close()
	}
}
