// Package websocket pushes each new search-history entry to connected admin
// dashboards so lookups show up without polling.
package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/Jarecamang/ParkingPassport/internal/domain"
)

type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopOnce   sync.Once
	stopped    bool
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				h.clients[client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer; drop it rather than stall lookups.
					delete(h.clients, client)
					client.Close()
				}
			}
			h.mu.Unlock()
		}
	}
}

// ClientCount reports how many subscribers are currently attached.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Stop gracefully shuts down the hub, closing every connected client. It is
// safe to call from multiple goroutines and blocks until Run() has exited.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.stop)
	})
	<-h.done
}

// BroadcastEntry fans a freshly written audit entry out to all connected
// clients. It never blocks the lookup path: if the hub is saturated or not
// running, the event is dropped.
func (h *Hub) BroadcastEntry(entry *domain.SearchEntry) {
	payload, err := json.Marshal(Message{Type: MessageTypeSearch, Entry: entry})
	if err != nil {
		log.Printf("ERROR [websocket.Hub] failed to marshal entry: %v", err)
		return
	}

	select {
	case h.broadcast <- payload:
	default:
	}
}

// Message is the wire format pushed to feed subscribers.
type Message struct {
	Type  string              `json:"type"`
	Entry *domain.SearchEntry `json:"entry"`
}

const MessageTypeSearch = "search"
