package ws

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time between keepalive pings
	pingPeriod = 30 * time.Second

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

// Client is one WebSocket connection bound into a lobby. Send enqueues
// without blocking and WritePump drains to the socket, so a slow or broken
// consumer never stalls the lobby.
type Client struct {
	id          string
	name        string
	conn        *websocket.Conn
	send        chan []byte
	connectedAt time.Time
	logger      *slog.Logger
}

// NewClient wraps an upgraded connection for the named member
func NewClient(conn *websocket.Conn, name string, logger *slog.Logger) *Client {
	id := uuid.NewString()
	return &Client{
		id:          id,
		name:        name,
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
		logger: logger.With(
			slog.String("connection", id),
			slog.String("name", name)),
	}
}

// Send enqueues a message for delivery. When the buffer is full the message
// is dropped; the member catches up on the next broadcast.
func (c *Client) Send(message []byte) {
	select {
	case c.send <- message:
	default:
		c.logger.Warn("message dropped - send buffer full")
	}
}

// WritePump drains the send buffer to the socket and keeps the connection
// alive with pings. It runs until the send channel is closed or a write
// fails, and closes the socket on the way out.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
