// Package events broadcasts registry snapshots to websocket subscribers.
package events

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"tickmint/internal/domain"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Subscribers never send
	// payloads, only control frames.
	maxMessageSize = 512

	// Per-subscriber send buffer. A subscriber that falls this far behind
	// is disconnected rather than blocking the broadcast path.
	sendBufferSize = 64
)

// Envelope is the wire frame for every broadcast message.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Message types carried in Envelope.Type.
const (
	TypeMintSnapshot        = "mint_snapshot"
	TypeLeaderboardSnapshot = "leaderboard_snapshot"
)

type subscriber struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub fans registry snapshots out to connected websocket subscribers.
// It implements registry.Publisher; publishing never blocks on a slow
// subscriber.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]*subscriber
	upgrader    websocket.Upgrader
	logger      *log.Logger
}

// NewHub creates a hub with no subscribers.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		subscribers: make(map[string]*subscriber),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

// ServeHTTP upgrades the request to a websocket and registers the
// connection as a subscriber until it closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("websocket upgrade failed: %v", err)
		return
	}

	sub := &subscriber{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	h.mu.Lock()
	h.subscribers[sub.id] = sub
	h.mu.Unlock()

	go h.writePump(sub)
	go h.readPump(sub)
}

// PublishMintSnapshot broadcasts a mint snapshot to all subscribers.
func (h *Hub) PublishMintSnapshot(s *domain.MintSnapshot) {
	h.broadcast(TypeMintSnapshot, s)
}

// PublishLeaderboardSnapshot broadcasts a leaderboard snapshot to all subscribers.
func (h *Hub) PublishLeaderboardSnapshot(s *domain.LeaderboardSnapshot) {
	h.broadcast(TypeLeaderboardSnapshot, s)
}

// SubscriberCount reports the number of connected subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, sub := range h.subscribers {
		close(sub.send)
		delete(h.subscribers, id)
	}
}

func (h *Hub) broadcast(msgType string, data any) {
	payload, err := json.Marshal(Envelope{Type: msgType, Data: data})
	if err != nil {
		h.logger.Printf("marshal %s envelope: %v", msgType, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for id, sub := range h.subscribers {
		select {
		case sub.send <- payload:
		default:
			// Subscriber too slow, drop it
			close(sub.send)
			delete(h.subscribers, id)
			h.logger.Printf("dropped slow subscriber %s", id)
		}
	}
}

func (h *Hub) remove(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subscribers[sub.id]; ok {
		close(sub.send)
		delete(h.subscribers, sub.id)
	}
}

func (h *Hub) writePump(sub *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		sub.conn.Close()
	}()

	for {
		select {
		case message, ok := <-sub.send:
			sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				sub.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := sub.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) readPump(sub *subscriber) {
	defer func() {
		h.remove(sub)
		sub.conn.Close()
	}()

	sub.conn.SetReadLimit(maxMessageSize)
	sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	sub.conn.SetPongHandler(func(string) error {
		sub.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			return
		}
	}
}
