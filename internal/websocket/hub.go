package websocket

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/ikkim/grocery-cart/internal/app/service"
	"github.com/ikkim/grocery-cart/pkg/logger"
)

// Client is one browser tab subscribed to the cart feed.
type Client struct {
	ID   string
	Hub  *Hub
	Conn *Conn
	Send chan []byte
}

// Hub fans cart events out to every connected client.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	quit       chan struct{}
	stopOnce   sync.Once

	mu sync.RWMutex
}

var _ service.CartNotifier = (*Hub)(nil)

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		broadcast:  make(chan []byte, 1024),
		quit:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			logger.Info("Cart feed client registered", map[string]interface{}{
				"client_id": client.ID,
				"clients":   total,
			})

		case client := <-h.unregister:
			h.remove(client)

		case message := <-h.broadcast:
			h.mu.RLock()
			var slow []*Client
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					slow = append(slow, client)
				}
			}
			h.mu.RUnlock()
			for _, client := range slow {
				logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
					"client_id": client.ID,
				})
				h.remove(client)
			}

		case <-h.quit:
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			logger.Info("Cart feed stopped")
			return
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.Send)
	}
	remaining := len(h.clients)
	h.mu.Unlock()
	logger.Info("Cart feed client unregistered", map[string]interface{}{
		"client_id": client.ID,
		"clients":   remaining,
	})
}

// Stop disconnects every client and ends Run.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.quit)
	})
}

// Publish broadcasts a cart event. Events are dropped when the hub is
// saturated; clients resync on the next one.
func (h *Hub) Publish(event service.CartEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal cart event", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		logger.Warn("Broadcast channel full, cart event dropped", map[string]interface{}{
			"type": string(event.Type),
		})
	}
}

// Attach registers a connection with the hub, queues initial as its first
// message and starts its pumps.
func (h *Hub) Attach(conn *Conn, initial []byte) *Client {
	client := &Client{
		ID:   uuid.New().String(),
		Hub:  h,
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	if initial != nil {
		client.Send <- initial
	}
	h.Register(client)

	go client.WritePump()
	go client.ReadPump()
	return client
}

func (h *Hub) Register(client *Client) {
	if h.stopped() {
		close(client.Send)
		return
	}
	select {
	case h.register <- client:
	case <-h.quit:
		close(client.Send)
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.quit:
	}
}

func (h *Hub) stopped() bool {
	select {
	case <-h.quit:
		return true
	default:
		return false
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
