package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Hub fans events out to every connected client. Delivery is fire and
// forget: a publish never blocks the caller, slow clients are dropped,
// and an event with no listeners simply disappears.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

// Event is the wire envelope for every broadcast.
type Event struct {
	Event     string      `json:"event"`
	Timestamp int64       `json:"timestamp"`
	Data      interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.sendToAll(message)
		}
	}
}

// Publish broadcasts an event to all connected observers. It never
// blocks: when the broadcast buffer is full the event is dropped.
func (h *Hub) Publish(event string, payload interface{}) {
	data, err := json.Marshal(Event{
		Event:     event,
		Timestamp: time.Now().Unix(),
		Data:      payload,
	})
	if err != nil {
		log.Printf("websocket: failed to marshal %s event: %v", event, err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		log.Printf("websocket: broadcast buffer full, dropping %s event", event)
	}
}

// ClientCount reports the number of connected observers.
func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[client] = true
	log.Printf("websocket: client registered: %s", client.UserID.Hex())
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		log.Printf("websocket: client unregistered: %s", client.UserID.Hex())
	}
}

func (h *Hub) sendToAll(data []byte) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			close(client.send)
			delete(h.clients, client)
		}
	}
}
