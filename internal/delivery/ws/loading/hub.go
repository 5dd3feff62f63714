package ws_loading

import (
	"log/slog"
	"sync"

	"github.com/cinetrove/core/internal/model"
)

const (
	EventLoadStarted  = "LOAD_STARTED"
	EventStoreReady   = "STORE_READY"
	EventLoadFailed   = "LOAD_FAILED"
	EventStatsUpdated = "STATS_UPDATED"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Hub fans catalog lifecycle events out to connected loading screens. The
// front end subscribes before the first bulk load resolves and swaps the
// spinner for content (or a retry prompt) on the terminal event.
type Hub struct {
	logger     *slog.Logger
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	mu         sync.RWMutex
}

type HubOption func(*Hub)

func WithLogger(logger *slog.Logger) HubOption {
	return func(h *Hub) {
		h.logger = logger
	}
}

func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		logger:     slog.Default(),
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.handleRegister(client)

		case client := <-h.unregister:
			h.handleUnregister(client)

		case event := <-h.broadcast:
			h.broadcastToAll(event)
		}
	}
}

func (h *Hub) handleRegister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	h.logger.Info("loading client registered")
}

func (h *Hub) handleUnregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	h.logger.Info("loading client unregistered")
}

func (h *Hub) broadcastToAll(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.send <- event:
		default:
			close(client.send)
			delete(h.clients, client)
		}
	}
}

// LoadStarted implements the catalog store's lifecycle notifier.
func (h *Hub) LoadStarted() {
	h.broadcast <- Event{Type: EventLoadStarted}
}

func (h *Hub) LoadFinished(stats model.Stats, err error) {
	if err != nil {
		h.broadcast <- Event{
			Type: EventLoadFailed,
			Payload: map[string]interface{}{
				"error": err.Error(),
			},
		}
		return
	}

	h.broadcast <- Event{
		Type: EventStoreReady,
		Payload: map[string]interface{}{
			"movies":    stats.Movies,
			"genres":    stats.Genres,
			"directors": stats.Directors,
			"actors":    stats.Actors,
			"reviews":   stats.Reviews,
		},
	}
}
