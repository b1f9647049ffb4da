package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"motor-monitor/entities"

	"github.com/gorilla/websocket"
)

const (
	EventNewReading = "new_reading"

	sendQueueSize  = 16
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 1024
)

// Frame is the envelope of every server-to-client message.
type Frame struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Manager fans readings out to every connected live viewer.
type Manager struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

func NewManager(logger *slog.Logger) *Manager {
	return &Manager{
		clients: make(map[*Client]struct{}),
		logger:  logger.With("component", "ws"),
	}
}

// Register adds a connection. The caller must then run Serve on the client.
func (m *Manager) Register(conn *websocket.Conn, username string) *Client {
	c := &Client{conn: conn, username: username, send: make(chan []byte, sendQueueSize), mgr: m}

	m.mu.Lock()
	m.clients[c] = struct{}{}
	total := len(m.clients)
	m.mu.Unlock()

	m.logger.Info("viewer connected", "user", username, "viewers", total)
	return c
}

// Unregister removes a client and closes its queue, which ends its write pump.
func (m *Manager) Unregister(c *Client) {
	m.mu.Lock()
	_, ok := m.clients[c]
	if ok {
		delete(m.clients, c)
		close(c.send)
	}
	total := len(m.clients)
	m.mu.Unlock()

	if ok {
		m.logger.Info("viewer disconnected", "user", c.username, "viewers", total)
	}
}

// Publish broadcasts a new_reading frame. It never blocks: a viewer whose
// queue is full is dropped.
func (m *Manager) Publish(_ context.Context, reading entities.Reading) error {
	payload, err := json.Marshal(Frame{Event: EventNewReading, Data: reading})
	if err != nil {
		return err
	}

	var slow []*Client
	m.mu.RLock()
	for c := range m.clients {
		select {
		case c.send <- payload:
		default:
			slow = append(slow, c)
		}
	}
	m.mu.RUnlock()

	for _, c := range slow {
		m.logger.Warn("dropping slow viewer", "user", c.username)
		m.Unregister(c)
	}
	return nil
}

// Count returns the number of connected viewers.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// Client is one websocket viewer.
type Client struct {
	conn     *websocket.Conn
	username string
	send     chan []byte
	mgr      *Manager
}

// Serve runs the write pump in the background and the read pump until the
// connection ends. Incoming messages are discarded.
func (c *Client) Serve() {
	go c.writePump()
	c.readPump()
}

func (c *Client) readPump() {
	defer c.mgr.Unregister(c)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.mgr.logger.Debug("viewer read error", "user", c.username, "error", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
