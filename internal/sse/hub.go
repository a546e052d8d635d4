package sse

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Client is one connected stream, following a single farm
type Client struct {
	ID           string
	Address      string
	EventChannel chan Event
	EventFilter  map[string]bool // nil means all events
}

func (c *Client) wants(evt Event) bool {
	if evt.Address != c.Address {
		return false
	}
	return c.EventFilter == nil || c.EventFilter[evt.Type]
}

// Hub fans farm events out to the clients following each farm
type Hub struct {
	clients    map[string]*Client
	broadcast  chan Event
	register   chan *Client
	unregister chan string
	mu         sync.RWMutex
	shutdown   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// NewHub creates a hub. Call Start before registering clients.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan Event, BroadcastBufferSize),
		register:   make(chan *Client, ClientChannelBuffer),
		unregister: make(chan string, ClientChannelBuffer),
		shutdown:   make(chan struct{}),
	}
}

// Start starts the broadcast loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop ends the broadcast loop and closes every client channel
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		for _, client := range h.clients {
			close(client.EventChannel)
		}
		h.clients = make(map[string]*Client)
		h.mu.Unlock()
	})
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()

		case clientID := <-h.unregister:
			h.mu.Lock()
			if client, ok := h.clients[clientID]; ok {
				close(client.EventChannel)
				delete(h.clients, clientID)
			}
			h.mu.Unlock()

		case evt := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				if !client.wants(evt) {
					continue
				}
				// Slow clients miss events rather than stall the hub
				select {
				case client.EventChannel <- evt:
				default:
				}
			}
			h.mu.RUnlock()

		case <-h.shutdown:
			return
		}
	}
}

// Register adds a client following address. An empty types list means every
// event type.
func (h *Hub) Register(address string, types []string) *Client {
	client := &Client{
		ID:           uuid.New().String(),
		Address:      address,
		EventChannel: make(chan Event, ClientEventBuffer),
	}
	if len(types) > 0 {
		client.EventFilter = make(map[string]bool, len(types))
		for _, t := range types {
			client.EventFilter[t] = true
		}
	}

	h.register <- client
	return client
}

// Unregister removes a client and closes its channel
func (h *Hub) Unregister(clientID string) {
	select {
	case h.unregister <- clientID:
	case <-h.shutdown:
	}
}

// Broadcast queues evt for delivery. It never blocks; when the queue is full
// the event is dropped.
func (h *Hub) Broadcast(evt Event) {
	if evt.ID == "" {
		evt.ID = uuid.New().String()
	}

	select {
	case h.broadcast <- evt:
	default:
		slog.Warn(LogMsgEventDropped, "type", evt.Type, "address", evt.Address)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatSSEMessage renders evt in the text/event-stream wire format
func FormatSSEMessage(evt Event) ([]byte, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, err
	}

	msg := "id: " + evt.ID + "\n"
	msg += "event: " + evt.Type + "\n"
	msg += "data: " + string(data) + "\n\n"

	return []byte(msg), nil
}
