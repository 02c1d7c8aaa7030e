package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/arcwand/spellcaster/internal/spellbook"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// CastEvent is the message broadcast to WebSocket clients when a spell is
// recognized.
type CastEvent struct {
	Spell       string  `json:"spell"`
	Name        string  `json:"name"`
	Incantation string  `json:"incantation"`
	Color       string  `json:"color"`
	Confidence  float64 `json:"confidence"`
	Timestamp   int64   `json:"timestamp"`
}

// ResultsHandler broadcasts spell recognition results via WebSocket.
type ResultsHandler struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewResultsHandler creates a new ResultsHandler.
func NewResultsHandler() *ResultsHandler {
	return &ResultsHandler{
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *ResultsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Publish implements the result sink interface: it broadcasts the cast
// spell to all connected clients.
func (h *ResultsHandler) Publish(spell spellbook.Spell, confidence float64) {
	event := CastEvent{
		Spell:       spell.Key,
		Name:        spell.Name,
		Incantation: spell.Incantation,
		Color:       spell.Color,
		Confidence:  confidence,
		Timestamp:   time.Now().UnixMilli(),
	}

	msg, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.clients {
		conn.WriteMessage(websocket.TextMessage, msg)
	}
}

// ClientCount returns the number of connected clients.
func (h *ResultsHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
