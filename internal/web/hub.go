package web

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 8
)

type message struct {
	kind int // websocket.TextMessage or websocket.BinaryMessage
	data []byte
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan message
}

// Hub fans session updates out to every connected websocket client. New
// clients first receive the latest update.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]bool
	last    []message
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*client]bool)}
}

// Broadcast queues msgs for every client. A client that cannot keep up is
// dropped rather than blocking the session.
func (h *Hub) Broadcast(msgs ...message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = msgs
	for c := range h.clients {
	send:
		for _, m := range msgs {
			select {
			case c.send <- m:
			default:
				log.Printf("[web] ws client %v too slow, dropping", c.conn.RemoteAddr())
				h.drop(c)
				break send
			}
		}
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) register(conn *websocket.Conn) *client {
	c := &client{hub: h, conn: conn, send: make(chan message, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = true
	for _, m := range h.last {
		c.send <- m
	}
	h.mu.Unlock()
	go c.writePump()
	return c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.drop(c)
}

// drop must be called with mu held.
func (h *Hub) drop(c *client) {
	if h.clients[c] {
		delete(h.clients, c)
		close(c.send)
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.hub.unregister(c)
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(msg.kind, msg.data); err != nil {
				log.Printf("[web] ws write msg error: %v", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[web] ws write ping error: %v", err)
				return
			}
		}
	}
}
