package stream

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/andrescamacho/devempire-go/internal/application/logging"
	"github.com/andrescamacho/devempire-go/pkg/utils"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Largest action message accepted from a client
	maxMessageSize = 1024

	sendBuffer = 32
)

// Client is one websocket connection. send carries broadcasts and is closed
// by the hub; replies carries answers to this client's own actions.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	replies chan []byte
	id      string // for logs only
}

func newClient(hub *Hub, conn *websocket.Conn, remoteAddr string) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		replies: make(chan []byte, sendBuffer),
		id:      utils.GenerateClientID("ws", remoteAddr),
	}
}

// enqueue hands a reply to the write pump without blocking the reader
func (c *Client) enqueue(payload []byte) {
	select {
	case c.replies <- payload:
	default:
	}
}

// readPump decodes actions until the peer goes away. Pongs extend the read
// deadline to twice the ping interval.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	pongWait := 2 * c.hub.pingInterval
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.hub.logger.Log(logging.LevelWarning, "Stream client read failed", map[string]interface{}{
					"client": c.id,
					"error":  err.Error(),
				})
			}
			return
		}

		var action ActionMessage
		if err := json.Unmarshal(message, &action); err != nil {
			payload, _ := json.Marshal(ErrorMessage{Type: MessageError, Error: "malformed action: " + err.Error()})
			c.enqueue(payload)
			continue
		}
		c.enqueue(c.hub.dispatch(action))
	}
}

// writePump owns all writes to the connection
func (c *Client) writePump() {
	ticker := time.NewTicker(c.hub.pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case reply := <-c.replies:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, reply); err != nil {
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
