package store

import (
	"sync"

	"go.uber.org/zap"

	"trade-journal-go/internal/models"
)

// EventType classifies a push event from the trade store.
type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// Event is one change notification for the trade collection.
type Event struct {
	Type  EventType    `json:"event_type"`
	Trade models.Trade `json:"record"`
}

// Hub fans trade change events out to subscribers. Delivery per subscriber is
// in publish order; a subscriber that falls behind its buffer loses events
// rather than blocking the publisher.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
	logger *zap.Logger
}

// NewHub creates an empty subscription hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subs:   make(map[int]chan Event),
		logger: logger.Named("hub"),
	}
}

// Subscribe registers a new subscriber and returns its event channel together
// with a cancel function that closes it.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan Event, 64)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers the event to every current subscriber.
func (h *Hub) Publish(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ch := range h.subs {
		select {
		case ch <- event:
		default:
			h.logger.Warn("Subscriber buffer full, dropping event",
				zap.Int("subscriber", id),
				zap.String("event_type", string(event.Type)),
				zap.String("trade_id", event.Trade.TradeID))
		}
	}
}
