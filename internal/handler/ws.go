package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"optifuel/api/internal/model"
)

var (
	// Heartbeat interval
	pingInterval = 30 * time.Second
	// Write timeout
	writeTimeout = 10 * time.Second
	// Read deadline, extended on every pong
	pongWait = 60 * time.Second
)

// WSMessage is the envelope of every server push
type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Client is one websocket connection of an authenticated user
type Client struct {
	ID      string
	OwnerID uint
	Conn    *websocket.Conn
	Send    chan []byte
	Hub     *WSHub
}

type ownedMessage struct {
	ownerID uint
	data    []byte
}

// WSHub fans voyage events out to the connections of their owner
type WSHub struct {
	clients    map[*Client]bool
	broadcast  chan ownedMessage
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
	mu         sync.RWMutex
	logger     *slog.Logger
}

// NewWSHub creates a new WebSocket hub
func NewWSHub(logger *slog.Logger) *WSHub {
	return &WSHub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan ownedMessage, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger.With("component", "ws"),
	}
}

// Run starts the hub's event loop and returns after Stop
func (h *WSHub) Run() {
	for {
		select {
		case <-h.done:
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("client connected", "client_id", client.ID, "owner_id", client.OwnerID, "total", total)

		case client := <-h.unregister:
			h.remove(client)

		case msg := <-h.broadcast:
			// Stop closes Send under the write lock, so sends happen under the read lock
			var slow []*Client
			h.mu.RLock()
			for client := range h.clients {
				if client.OwnerID != msg.ownerID {
					continue
				}
				select {
				case client.Send <- msg.data:
				default:
					// Client send buffer is full, close connection
					slow = append(slow, client)
				}
			}
			h.mu.RUnlock()

			for _, client := range slow {
				h.remove(client)
			}
		}
	}
}

func (h *WSHub) remove(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
		close(client.Send)
	}
	total := len(h.clients)
	h.mu.Unlock()
	if ok {
		h.logger.Info("client disconnected", "client_id", client.ID, "total", total)
	}
}

// Dispatch queues event for the connections of its owner. It never blocks;
// events are dropped while the queue is full.
func (h *WSHub) Dispatch(event *model.VoyageEvent) {
	data, err := json.Marshal(WSMessage{Type: string(event.Type), Data: event})
	if err != nil {
		h.logger.Error("failed to marshal voyage event", "error", err)
		return
	}

	select {
	case h.broadcast <- ownedMessage{ownerID: event.OwnerID, data: data}:
	default:
		h.logger.Warn("event queue full, dropping event", "type", event.Type, "owner_id", event.OwnerID)
	}
}

// Stop stops the hub and closes every connection
func (h *WSHub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
		h.mu.Lock()
		for client := range h.clients {
			close(client.Send)
			if client.Conn != nil {
				client.Conn.Close()
			}
			delete(h.clients, client)
		}
		h.mu.Unlock()
	})
}

// GetClientCount returns the number of connected clients
func (h *WSHub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ReadPump keeps the connection alive and discards client input
func (c *Client) ReadPump() {
	defer func() {
		select {
		case c.Hub.unregister <- c:
		case <-c.Hub.done:
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(4 * 1024)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("client read error", "client_id", c.ID, "error", err)
			}
			return
		}
	}
}

// WritePump handles outgoing messages to the client
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				// Channel closed
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// WSHandler upgrades authenticated connections onto the hub
type WSHandler struct {
	hub      *WSHub
	tokens   TokenParser
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WebSocket handler. allowedOrigin "*" accepts any origin.
func NewWSHandler(hub *WSHub, tokens TokenParser, allowedOrigin string) *WSHandler {
	return &WSHandler{
		hub:    hub,
		tokens: tokens,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowedOrigin == "*" || origin == "" || origin == allowedOrigin
			},
		},
	}
}

// HandleVoyages streams the caller's voyage events.
// Browsers cannot set headers on a websocket handshake, so the token comes from the query string.
func (h *WSHandler) HandleVoyages(c *gin.Context) {
	claims, err := h.tokens.Parse(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
		return
	}
	ownerID, err := claims.OwnerID()
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.hub.logger.Warn("failed to upgrade connection", "error", err)
		return
	}

	client := &Client{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
		Conn:    conn,
		Send:    make(chan []byte, 64),
		Hub:     h.hub,
	}

	welcome, _ := json.Marshal(WSMessage{Type: "connected", Data: gin.H{"client_id": client.ID}})
	client.Send <- welcome

	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

// GetStats returns WebSocket hub statistics
func (h *WSHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"connected_clients": h.hub.GetClientCount(),
	})
}
