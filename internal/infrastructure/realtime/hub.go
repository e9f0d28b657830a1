package realtime

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"booking-service/internal/domain/entity"
	"booking-service/pkg/logger"
)

// Message is the frame pushed to admin reservation views.
type Message struct {
	Topic string                         `json:"topic"`
	Event entity.ReservationChangedEvent `json:"event"`
}

// Hub fans reservation change events out to websocket clients subscribed per property.
// Clients with an empty property receive every event.
type Hub struct {
	topics map[string]map[*Client]struct{}
	global map[*Client]struct{}
	mu     sync.RWMutex
	logger logger.Logger
}

func NewHub(logger logger.Logger) *Hub {
	return &Hub{
		topics: make(map[string]map[*Client]struct{}),
		global: make(map[*Client]struct{}),
		logger: logger,
	}
}

// Attach registers c for propertyID, or for every property when propertyID is empty.
func (h *Hub) Attach(c *Client, propertyID string) {
	propertyID = strings.TrimSpace(propertyID)
	h.mu.Lock()
	defer h.mu.Unlock()
	c.propertyID = propertyID
	if propertyID == "" {
		h.global[c] = struct{}{}
	} else {
		if h.topics[propertyID] == nil {
			h.topics[propertyID] = make(map[*Client]struct{})
		}
		h.topics[propertyID][c] = struct{}{}
	}
	h.logger.Info("ws client attached", "subject", c.subject, "propertyID", propertyID)
}

func (h *Hub) detach(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.topics[c.propertyID]; ok {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.topics, c.propertyID)
		}
	}
	delete(h.global, c)
	c.close()
	h.logger.Debug("ws client detached", "subject", c.subject, "propertyID", c.propertyID)
}

// ClientCount reports how many clients are attached.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := len(h.global)
	for _, subs := range h.topics {
		n += len(subs)
	}
	return n
}

// NotifyReservationChanged broadcasts event to clients watching its property. Slow clients are dropped.
func (h *Hub) NotifyReservationChanged(_ context.Context, event entity.ReservationChangedEvent) error {
	data, err := json.Marshal(Message{Topic: "reservations." + string(event.Action), Event: event})
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.topics[event.PropertyID] {
		h.deliver(c, data)
	}
	for c := range h.global {
		h.deliver(c, data)
	}
	return nil
}

// deliver must be called with h.mu held so detach cannot close c.send concurrently.
func (h *Hub) deliver(c *Client, data []byte) {
	select {
	case c.send <- data:
	default:
		h.logger.Warn("ws send buffer full", "subject", c.subject, "propertyID", c.propertyID)
		go h.detach(c)
	}
}
