package ws

import (
	"sync"

	"github.com/shoporbit/shop-api/internal/logging"
	"github.com/shoporbit/shop-api/internal/usecase"
)

// session is the subset of *websocket.Conn the hub needs. Kept as an
// interface so tests can drive the hub without a network.
type session interface {
	WriteJSON(v any) error
	Close() error
}

type pushFrame struct {
	Event   string `json:"event"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// client wraps a bound session with a write mutex. gorilla/websocket allows
// at most one concurrent writer per connection, so every push goes through
// writeJSON. customerID is guarded by the hub mutex.
type client struct {
	wmu        sync.Mutex
	s          session
	customerID string
}

func (c *client) writeJSON(v any) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	return c.s.WriteJSON(v)
}

// Hub tracks which customer is behind which live connection. A customer has
// at most one bound session; a later announce replaces the earlier one.
type Hub struct {
	mu     sync.RWMutex
	byUser map[string]*client
	byConn map[session]*client
}

func NewHub() *Hub {
	return &Hub{
		byUser: make(map[string]*client),
		byConn: make(map[session]*client),
	}
}

// Bind associates a connection with a customer after the client announces
// itself. The previous session for that customer, if any, is closed. A
// connection keeps its client wrapper across re-announces so in-flight
// pushes stay serialized with later ones.
func (h *Hub) Bind(customerID string, s session) {
	h.mu.Lock()
	cl, ok := h.byConn[s]
	if !ok {
		cl = &client{s: s}
		h.byConn[s] = cl
	}
	if old, ok := h.byUser[customerID]; ok && old != cl {
		delete(h.byConn, old.s)
		_ = old.s.Close()
	}
	// Re-announce under a different customer moves the binding.
	if cl.customerID != "" && cl.customerID != customerID {
		delete(h.byUser, cl.customerID)
	}
	cl.customerID = customerID
	h.byUser[customerID] = cl
	h.mu.Unlock()
}

// Unbind drops the connection's binding, if it has one. Safe to call for
// connections that never announced.
func (h *Hub) Unbind(s session) {
	h.mu.Lock()
	if cl, ok := h.byConn[s]; ok {
		delete(h.byConn, s)
		if h.byUser[cl.customerID] == cl {
			delete(h.byUser, cl.customerID)
		}
	}
	h.mu.Unlock()
}

// Online reports whether the customer currently has a bound session.
func (h *Hub) Online(customerID string) bool {
	h.mu.RLock()
	_, ok := h.byUser[customerID]
	h.mu.RUnlock()
	return ok
}

// Notify pushes the event to the customer's live session. Offline customers
// are skipped silently; a failed write unbinds the dead session.
func (h *Hub) Notify(customerID string, ev usecase.Event) {
	h.mu.RLock()
	cl, ok := h.byUser[customerID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	frame := pushFrame{Event: "shippingUpdate", Title: ev.Title, Message: ev.Message}
	if err := cl.writeJSON(frame); err != nil {
		logging.New("ws-hub").Warn("push failed, dropping session",
			"customer_id", customerID, "err", err)
		h.Unbind(cl.s)
		_ = cl.s.Close()
	}
}

var _ usecase.Notifier = (*Hub)(nil)
