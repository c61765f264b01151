package coupon

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Hub tracks the one websocket connection a configurator instance may hold
// for suggestion pushes.
type Hub struct {
	connections map[string]*websocket.Conn
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[string]*websocket.Conn),
	}
}

func (h *Hub) Register(draftID string, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if oldConn, exists := h.connections[draftID]; exists && oldConn != nil {
		_ = oldConn.Close()
	}

	h.connections[draftID] = conn
}

func (h *Hub) Unregister(draftID string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conn, exists := h.connections[draftID]; exists && conn != nil {
		_ = conn.Close()
		delete(h.connections, draftID)
	}
}

func (h *Hub) SendToDraft(draftID string, message interface{}) bool {
	h.mutex.RLock()
	conn, exists := h.connections[draftID]
	h.mutex.RUnlock()

	if !exists || conn == nil {
		return false
	}

	if err := conn.WriteJSON(message); err != nil {
		h.Unregister(draftID)
		return false
	}

	return true
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for draftID, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, draftID)
	}
}
