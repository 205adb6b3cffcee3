package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	gameApp "github.com/andrescamacho/devempire-go/internal/application/game"
	gameQueries "github.com/andrescamacho/devempire-go/internal/application/game/queries"
	"github.com/andrescamacho/devempire-go/internal/application/logging"
	"github.com/andrescamacho/devempire-go/internal/application/mediator"
	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
)

// Hub keeps the connected clients and fans state changes out to them
type Hub struct {
	mediator     mediator.Mediator
	catalog      *catalog.Catalog
	logger       logging.Logger
	pingInterval time.Duration
	upgrader     websocket.Upgrader

	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
	done       chan struct{}
}

// NewHub creates a hub. Actions from clients are dispatched through m.
func NewHub(m mediator.Mediator, cat *catalog.Catalog, logger logging.Logger, pingInterval time.Duration) *Hub {
	if logger == nil {
		logger = logging.LoggerFromContext(context.Background())
	}
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	return &Hub{
		mediator:     m,
		catalog:      cat,
		logger:       logger,
		pingInterval: pingInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// The stream is served on localhost to a local UI
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run serves registrations and broadcasts until ctx is cancelled, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Log(logging.LevelInfo, "Stream hub shutting down", nil)
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Log(logging.LevelDebug, "Stream client connected", map[string]interface{}{
				"client": client.id,
			})
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Log(logging.LevelDebug, "Stream client disconnected", map[string]interface{}{
					"client": client.id,
				})
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Too slow to keep up
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish is a session observer. Applied outcomes are broadcast; when the
// hub is backed up the message is dropped, as the next tick supersedes it.
func (h *Hub) Publish(out gameApp.Outcome) {
	if !out.Applied || out.State == nil {
		return
	}
	payload, err := json.Marshal(StateMessage{
		Type:     MessageState,
		State:    gameApp.NewStateView(out.State, h.catalog),
		Unlocked: out.Unlocked,
	})
	if err != nil {
		h.logger.Log(logging.LevelError, "Failed to encode state for stream", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	select {
	case h.broadcast <- payload:
	default:
	}
}

// ClientCount is the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the connection, sends the current state and starts
// the client pumps.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Log(logging.LevelWarning, "Stream upgrade failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	client := newClient(h, conn, r.RemoteAddr)
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	if payload, err := h.currentState(); err == nil {
		client.enqueue(payload)
	}

	go client.writePump()
	go client.readPump()
}

// dispatch runs one client action and returns the reply for that client
func (h *Hub) dispatch(msg ActionMessage) []byte {
	ctx := logging.WithLogger(context.Background(), h.logger)

	cmd, err := msg.Command()
	if err == nil {
		var resp mediator.Response
		resp, err = h.mediator.Send(ctx, cmd)
		if err == nil {
			applied := false
			if out, ok := resp.(*gameApp.Outcome); ok && out != nil {
				applied = out.Applied
			}
			payload, _ := json.Marshal(ResultMessage{Type: MessageResult, Action: msg.Action, Applied: applied})
			return payload
		}
	}

	payload, _ := json.Marshal(ErrorMessage{Type: MessageError, Action: msg.Action, Error: err.Error()})
	return payload
}

func (h *Hub) currentState() ([]byte, error) {
	resp, err := h.mediator.Send(logging.WithLogger(context.Background(), h.logger), &gameQueries.GetStateQuery{})
	if err != nil {
		return nil, err
	}
	view := resp.(*gameQueries.GetStateResponse).View
	return json.Marshal(StateMessage{Type: MessageState, State: view})
}
