// Package feed streams JSON messages to websocket subscribers. Each
// subscriber follows one topic, or every topic.
package feed

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 64
)

type message struct {
	topic   string
	payload []byte
}

// Hub fans published messages out to subscribers.
type Hub struct {
	clients    map[*client]struct{}
	broadcast  chan message
	register   chan *client
	unregister chan *client
	done       chan struct{}
	mu         sync.Mutex
	logger     *log.Logger
	upgrader   websocket.Upgrader
}

// NewHub returns a hub; call Run to start delivering. A nil logger discards.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Hub{
		clients:    map[*client]struct{}{},
		broadcast:  make(chan message, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		logger:     logger,
		upgrader:   websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
	}
}

// Run delivers messages until ctx is done, then disconnects everyone.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			return
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			h.mu.Unlock()
		case c := <-h.unregister:
			h.drop(c)
		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				if c.topic != "" && c.topic != m.topic {
					continue
				}
				select {
				case c.send <- m.payload:
				default:
					// Slow reader.
					delete(h.clients, c)
					close(c.send)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Len returns the number of connected subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish queues v for topic's subscribers. It never blocks; when the queue
// is full the message is dropped.
func (h *Hub) Publish(topic string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		h.logger.Printf("feed: encode %s: %v", topic, err)
		return
	}
	select {
	case h.broadcast <- message{topic: topic, payload: payload}:
	default:
		h.logger.Printf("feed: queue full, dropped message for %s", topic)
	}
}

// Serve upgrades the request and streams topic's messages until the peer
// leaves. An empty topic follows everything.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, topic string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &client{hub: h, conn: conn, send: make(chan []byte, sendBuffer), topic: topic}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return nil
	}
	go c.writePump()
	c.readPump()
	return nil
}
