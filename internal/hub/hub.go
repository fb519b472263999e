// Package hub fans wish events out to websocket subscribers.
package hub

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// EventType identifies what changed on a wish.
type EventType string

const (
	EventMessage EventType = "message"
	EventStatus  EventType = "status"
)

// Event is pushed to every subscriber of a wish.
type Event struct {
	Type      EventType   `json:"type"`
	WishID    string      `json:"wishId"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// Publisher is implemented by Hub. Services depend on it rather than on the hub itself.
type Publisher interface {
	Publish(wishID string, event Event)
}

// Subscription receives the events of one wish until it is unsubscribed.
type Subscription struct {
	ID     string
	WishID string
	C      <-chan Event

	ch chan Event
}

// Hub keeps per-wish subscriber sets.
type Hub struct {
	mu         sync.RWMutex
	subs       map[string]map[string]*Subscription // wishID -> subscriptionID -> sub
	bufferSize int
}

var _ Publisher = (*Hub)(nil)

// New creates a hub whose subscriptions buffer up to bufferSize events.
func New(bufferSize int) *Hub {
	if bufferSize <= 0 {
		bufferSize = 16
	}
	return &Hub{
		subs:       make(map[string]map[string]*Subscription),
		bufferSize: bufferSize,
	}
}

// Subscribe registers a new subscriber for wishID.
func (h *Hub) Subscribe(wishID string) *Subscription {
	ch := make(chan Event, h.bufferSize)
	sub := &Subscription{ID: uuid.NewString(), WishID: wishID, C: ch, ch: ch}

	h.mu.Lock()
	if _, ok := h.subs[wishID]; !ok {
		h.subs[wishID] = make(map[string]*Subscription)
	}
	h.subs[wishID][sub.ID] = sub
	h.mu.Unlock()

	logrus.WithFields(logrus.Fields{"wishID": wishID, "subscriptionID": sub.ID}).Debug("Subscribed to wish events")
	return sub
}

// Unsubscribe removes sub and closes its channel. Calling it twice is safe.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subs[sub.WishID]
	if !ok {
		return
	}
	if _, ok := set[sub.ID]; !ok {
		return
	}
	delete(set, sub.ID)
	close(sub.ch)
	if len(set) == 0 {
		delete(h.subs, sub.WishID)
	}
}

// Publish delivers event to every subscriber of wishID without blocking.
// A subscriber whose buffer is full misses the event.
func (h *Hub) Publish(wishID string, event Event) {
	event.WishID = wishID
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs[wishID] {
		select {
		case sub.ch <- event:
		default:
			logrus.WithFields(logrus.Fields{
				"wishID":         wishID,
				"subscriptionID": sub.ID,
				"type":           event.Type,
			}).Warn("Subscriber buffer full, dropping event")
		}
	}
}

// Subscribers returns how many subscribers wishID has.
func (h *Hub) Subscribers(wishID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[wishID])
}
