package service

import (
	"log"
	"sync"

	"github.com/benbeisheim/chessrules-backend/internal/ws"
)

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Hub fans game updates out to every connection watching one game. All
// writes go through writeMu since a connection allows one writer at a time.
type Hub struct {
	gameID      string
	connections map[string]Conn
	mu          sync.RWMutex
	writeMu     sync.Mutex
}

func newHub(gameID string) *Hub {
	return &Hub{
		gameID:      gameID,
		connections: make(map[string]Conn),
	}
}

func (h *Hub) add(connID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[connID] = conn
}

func (h *Hub) remove(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.connections, connID)
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// broadcast writes msg to every connection and drops the ones that fail.
func (h *Hub) broadcast(msg ws.Message) {
	h.mu.RLock()
	conns := make(map[string]Conn, len(h.connections))
	for id, conn := range h.connections {
		conns[id] = conn
	}
	h.mu.RUnlock()

	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	for id, conn := range conns {
		h.write(id, conn, msg)
	}
}

// send writes msg to a single connection.
func (h *Hub) send(connID string, msg ws.Message) {
	h.mu.RLock()
	conn, ok := h.connections[connID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	h.write(connID, conn, msg)
}

func (h *Hub) write(id string, conn Conn, msg ws.Message) {
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("hub: write failed game=%s conn=%s err=%v", h.gameID, id, err)
		h.remove(id)
		conn.Close()
	}
}
