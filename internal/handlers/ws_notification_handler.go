package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/models"
	jwtutil "github.com/Dias221467/Habit_Tracker/pkg/jwt"
	"github.com/Dias221467/Habit_Tracker/pkg/logger"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const wsWriteWait = 10 * time.Second

// notificationSocket is the part of *websocket.Conn the hub writes to.
type notificationSocket interface {
	SetWriteDeadline(t time.Time) error
	WriteJSON(v interface{}) error
	Close() error
}

// wsClient serializes writes to one socket; gorilla/websocket allows only
// one concurrent writer per connection.
type wsClient struct {
	mu   sync.Mutex
	sock notificationSocket
}

func (c *wsClient) send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.sock.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return c.sock.WriteJSON(v)
}

// NotificationHub keeps the open WebSocket connections of each user and
// pushes new notifications to them. It implements services.Publisher.
// The hub lock guards only the registry; writes happen outside it so a slow
// socket delays nobody but its own user.
type NotificationHub struct {
	mu      sync.Mutex
	clients map[string]map[*wsClient]struct{}
}

func NewNotificationHub() *NotificationHub {
	return &NotificationHub{clients: make(map[string]map[*wsClient]struct{})}
}

func (h *NotificationHub) register(userID string, sock notificationSocket) *wsClient {
	client := &wsClient{sock: sock}
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.clients[userID]
	if !ok {
		conns = make(map[*wsClient]struct{})
		h.clients[userID] = conns
	}
	conns[client] = struct{}{}
	return client
}

// unregister removes client and reports whether it was still registered.
func (h *NotificationHub) unregister(userID string, client *wsClient) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.clients[userID]
	if !ok {
		return false
	}
	if _, ok := conns[client]; !ok {
		return false
	}
	delete(conns, client)
	if len(conns) == 0 {
		delete(h.clients, userID)
	}
	return true
}

// Connections reports how many sockets userID has open.
func (h *NotificationHub) Connections(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[userID])
}

func (h *NotificationHub) snapshot(userID string) []*wsClient {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*wsClient, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		out = append(out, c)
	}
	return out
}

// Publish sends notif to every connection of userID. Connections that fail
// to accept the write are closed and dropped.
func (h *NotificationHub) Publish(userID primitive.ObjectID, notif *models.Notification) {
	key := userID.Hex()
	for _, client := range h.snapshot(key) {
		if err := client.send(notif); err != nil {
			logger.Log.WithError(err).WithField("user_id", key).Warn("Dropping notification socket")
			if h.unregister(key, client) {
				client.sock.Close()
			}
		}
	}
}

// WSNotificationHandler upgrades GET /ws/notifications?token=... to a
// WebSocket that receives the caller's notifications.
type WSNotificationHandler struct {
	Hub       *NotificationHub
	JWTSecret string
	upgrader  websocket.Upgrader
}

// NewWSNotificationHandler builds the handler. An empty allowedOrigins
// accepts any origin.
func NewWSNotificationHandler(hub *NotificationHub, jwtSecret string, allowedOrigins []string) *WSNotificationHandler {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = struct{}{}
	}
	return &WSNotificationHandler{
		Hub:       hub,
		JWTSecret: jwtSecret,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if len(origins) == 0 || origin == "" {
					return true
				}
				_, ok := origins[origin]
				return ok
			},
		},
	}
}

func (h *WSNotificationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}
	claims, err := jwtutil.ValidateToken(token, h.JWTSecret)
	if err != nil {
		logger.Log.WithError(err).Warn("WebSocket auth failed")
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}
	userID := claims.UserID

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		logger.Log.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	client := h.Hub.register(userID, conn)
	logger.Log.WithField("user_id", userID).Info("Notification socket connected")

	defer func() {
		h.Hub.unregister(userID, client)
		conn.Close()
		logger.Log.WithField("user_id", userID).Info("Notification socket disconnected")
	}()

	// Clients only listen; reading keeps control frames flowing and
	// detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
