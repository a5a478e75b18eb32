package websocket

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Hub fans identity events out to connected dashboard tabs. A user may have
// several tabs open; every tab with that user id receives the event.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	events     chan userEvent
	mu         sync.RWMutex
}

type userEvent struct {
	userID  string
	payload []byte
}

type Client struct {
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan []byte
	UserID string
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan userEvent, 64),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			slog.Info("Client registered", "user_id", client.UserID)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			slog.Info("Client unregistered", "user_id", client.UserID)

		case event := <-h.events:
			h.mu.Lock()
			for client := range h.clients {
				if client.UserID != event.userID {
					continue
				}
				select {
				case client.Send <- event.payload:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// SendToUser queues an event for every connection held by the user
func (h *Hub) SendToUser(userID string, payload []byte) {
	h.events <- userEvent{userID: userID, payload: payload}
}

// RegisterClient attaches a new connection for the given user
func (h *Hub) RegisterClient(conn *websocket.Conn, userID string) *Client {
	client := &Client{
		Hub:    h,
		Conn:   conn,
		Send:   make(chan []byte, 64),
		UserID: userID,
	}

	h.register <- client
	return client
}

// ReadPump drains the connection until it closes. Dashboard clients only
// listen; inbound frames are discarded.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(4 * 1024)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("WebSocket error", "error", err)
			}
			break
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
