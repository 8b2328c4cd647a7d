package notify

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"

	"github.com/robshop/stock-engine/pkg/logger"
)

// Hub fans bus events out to connected websocket clients (open browser
// views). One hub per process; Run must be started on its own goroutine
// before attaching connections.
type Hub struct {
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	broadcast  chan []byte

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	log     *logger.Logger
}

// NewHub builds the hub and subscribes it to the bus: every published stock
// event is pushed to all connected clients as JSON.
func NewHub(bus *Bus, log *logger.Logger) *Hub {
	h := &Hub{
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		broadcast:  make(chan []byte, 16),
		clients:    make(map[*websocket.Conn]bool),
		log:        log,
	}
	bus.Subscribe(func(ev Event) {
		payload, err := json.Marshal(ev)
		if err != nil {
			log.Error().Err(err).Msg("marshal stock event")
			return
		}
		// Non-blocking: a stalled hub must never hold up a transfer.
		select {
		case h.broadcast <- payload:
		default:
			log.Warn().Msg("hub broadcast buffer full, dropping event")
		}
	})
	return h
}

// Run owns the client set. Blocks; start with `go hub.Run()`.
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()
			h.log.Debug().Msg("stock view connected")

		case conn := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}
