package ws

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/service"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/pkg/logger"
	"github.com/gofiber/websocket/v2"
)

// Conn is the subset of *websocket.Conn the hub writes through
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	WriteJSON(v interface{}) error
	SetPongHandler(h func(appData string) error)
	SetReadDeadline(t time.Time) error
}

// ClientConnection wraps a WebSocket connection with metadata
type ClientConnection struct {
	Conn         Conn
	UserID       uint
	LastPong     time.Time
	SupportsGzip bool
	PingTicker   *time.Ticker
	CloseChan    chan struct{}

	writeMu sync.Mutex
}

func (c *ClientConnection) write(frameType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteMessage(frameType, data)
}

// WriteJSON serializes writes with the hub's pushes and pings
func (c *ClientConnection) WriteJSON(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteJSON(v)
}

// Hub tracks connected users and pushes conversation events to them.
// It is the only in-process shared state on the messaging path.
type Hub struct {
	clients      map[uint]*ClientConnection
	clientsMux   sync.RWMutex
	pingInterval time.Duration
	pongTimeout  time.Duration
	done         chan struct{}
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	hub := &Hub{
		clients:      make(map[uint]*ClientConnection),
		pingInterval: 30 * time.Second,
		pongTimeout:  90 * time.Second,
		done:         make(chan struct{}),
	}
	go hub.connectionHealthChecker()
	return hub
}

// Close stops background workers
func (h *Hub) Close() {
	select {
	case <-h.done:
	default:
		close(h.done)
	}
}

// Register adds a client connection with health monitoring. A second
// connection for the same user replaces the first.
func (h *Hub) Register(userID uint, conn Conn, supportsGzip bool) *ClientConnection {
	client := &ClientConnection{
		Conn:         conn,
		UserID:       userID,
		LastPong:     time.Now(),
		SupportsGzip: supportsGzip,
		PingTicker:   time.NewTicker(h.pingInterval),
		CloseChan:    make(chan struct{}),
	}

	conn.SetPongHandler(func(string) error {
		h.clientsMux.Lock()
		if c, ok := h.clients[userID]; ok {
			c.LastPong = time.Now()
		}
		h.clientsMux.Unlock()
		return conn.SetReadDeadline(time.Now().Add(h.pongTimeout))
	})
	_ = conn.SetReadDeadline(time.Now().Add(h.pongTimeout))

	h.clientsMux.Lock()
	if old, ok := h.clients[userID]; ok {
		old.PingTicker.Stop()
		close(old.CloseChan)
	}
	h.clients[userID] = client
	count := len(h.clients)
	h.clientsMux.Unlock()

	go h.pingRoutine(client)

	logger.Debug().Uint("user_id", userID).Int("total", count).Bool("gzip", supportsGzip).Msg("ws client registered")
	return client
}

// Unregister removes whatever connection the user has
func (h *Hub) Unregister(userID uint) {
	h.unregister(userID, nil)
}

// Release removes the client unless a newer connection already replaced it
func (h *Hub) Release(client *ClientConnection) {
	h.unregister(client.UserID, client)
}

// unregister removes the user's connection. A non-nil client must still be
// the registered one.
func (h *Hub) unregister(userID uint, client *ClientConnection) {
	h.clientsMux.Lock()
	current, ok := h.clients[userID]
	removed := ok && (client == nil || current == client)
	if removed {
		current.PingTicker.Stop()
		close(current.CloseChan)
		delete(h.clients, userID)
	}
	count := len(h.clients)
	h.clientsMux.Unlock()

	if removed {
		logger.Debug().Uint("user_id", userID).Int("total", count).Msg("ws client unregistered")
	}
}

// IsOnline checks if a user is connected
func (h *Hub) IsOnline(userID uint) bool {
	h.clientsMux.RLock()
	defer h.clientsMux.RUnlock()
	_, exists := h.clients[userID]
	return exists
}

// Count returns the number of connected clients
func (h *Hub) Count() int {
	h.clientsMux.RLock()
	defer h.clientsMux.RUnlock()
	return len(h.clients)
}

// Publish sends the event to every listed user that is connected. Offline
// users simply miss it; clients resync through the HTTP API.
func (h *Hub) Publish(userIDs []uint, event service.Event) {
	if len(userIDs) == 0 {
		return
	}
	jsonData, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event", event.Type).Msg("ws event marshal failed")
		return
	}

	h.clientsMux.RLock()
	targets := make([]*ClientConnection, 0, len(userIDs))
	for _, id := range userIDs {
		if c, ok := h.clients[id]; ok {
			targets = append(targets, c)
		}
	}
	h.clientsMux.RUnlock()

	for _, client := range targets {
		frameType, payload := h.encode(client, jsonData)
		if err := client.write(frameType, payload); err != nil {
			logger.Warn().Err(err).Uint("user_id", client.UserID).Str("event", event.Type).Msg("ws push failed")
			h.unregister(client.UserID, client)
		}
	}
}

// encode compresses payloads over 512 bytes for clients that asked for gzip
func (h *Hub) encode(client *ClientConnection, jsonData []byte) (int, []byte) {
	if !client.SupportsGzip || len(jsonData) <= 512 {
		return websocket.TextMessage, jsonData
	}
	compressed, err := compressData(jsonData)
	if err != nil || len(compressed) >= len(jsonData) {
		return websocket.TextMessage, jsonData
	}
	return websocket.BinaryMessage, compressed
}

// pingRoutine sends periodic ping messages to keep connection alive
func (h *Hub) pingRoutine(client *ClientConnection) {
	for {
		select {
		case <-client.CloseChan:
			return
		case <-client.PingTicker.C:
			client.writeMu.Lock()
			err := client.Conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second))
			client.writeMu.Unlock()
			if err != nil {
				logger.Debug().Err(err).Uint("user_id", client.UserID).Msg("ws ping failed")
				h.unregister(client.UserID, client)
				return
			}
		}
	}
}

// connectionHealthChecker removes connections that stopped answering pings
func (h *Hub) connectionHealthChecker() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			h.sweep(time.Now())
		}
	}
}

func (h *Hub) sweep(now time.Time) {
	h.clientsMux.RLock()
	dead := make([]*ClientConnection, 0)
	for _, client := range h.clients {
		if now.Sub(client.LastPong) > h.pongTimeout {
			dead = append(dead, client)
		}
	}
	h.clientsMux.RUnlock()

	for _, client := range dead {
		logger.Debug().Uint("user_id", client.UserID).Msg("ws removing dead connection")
		h.unregister(client.UserID, client)
	}
}

func compressData(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	if _, err := gzipWriter.Write(data); err != nil {
		return nil, err
	}
	if err := gzipWriter.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecompressMessage inflates a gzip-compressed binary frame
func DecompressMessage(data []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}
