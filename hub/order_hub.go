package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/food-ordering-app/utils"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// writeWait bounds each write so a stalled peer cannot hold the hub lock.
const writeWait = 10 * time.Second

// Conn is the part of *websocket.Conn the hub writes to.
type Conn interface {
	SetWriteDeadline(t time.Time) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Hub tracks live websocket connections per user and pushes order events to
// them. Writes happen under the hub lock, so a connection never sees
// concurrent writers.
type Hub struct {
	mutex   sync.Mutex
	clients map[Conn]uint
}

func New() *Hub {
	return &Hub{clients: make(map[Conn]uint)}
}

func (h *Hub) Register(conn Conn, userID uint) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = userID
}

func (h *Hub) Unregister(conn Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

// Connections returns how many connections are open.
func (h *Hub) Connections() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Publish sends event to every connection of the given users. Connections
// that fail a write are dropped.
func (h *Hub) Publish(userIDs []uint, event string, payload interface{}) {
	data, err := json.Marshal(Message{Event: event, Data: payload})
	if err != nil {
		utils.ErrorLogger.Errorf("Error marshaling message: %v", err)
		return
	}

	targets := make(map[uint]bool, len(userIDs))
	for _, id := range userIDs {
		targets[id] = true
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	sent := 0
	for conn, userID := range h.clients {
		if !targets[userID] {
			continue
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Errorf("Error sending %s to user %d: %v", event, userID, err)
			delete(h.clients, conn)
			conn.Close()
			continue
		}
		sent++
	}
	utils.InfoLogger.WithField("event", event).Debugf("delivered to %d connections", sent)
}
