package events

import (
	"sync"
	"time"

	"github.com/veritlyapp-cell/liah-backend/pkg/logger"
)

// Event types published by the requisition engine.
const (
	TypeCreated          = "requisition.created"
	TypeApproved         = "requisition.approved"
	TypeRejected         = "requisition.rejected"
	TypeLevelAdvanced    = "requisition.level_advanced"
	TypeActivated        = "requisition.activated"
	TypeClosed           = "requisition.closed"
	TypeCancelled        = "requisition.cancelled"
	TypeDeletionRequest  = "requisition.deletion_requested"
	TypeDeletionResolved = "requisition.deletion_resolved"
)

// Event is a requisition lifecycle notification for UI subscribers. The
// core only publishes; any push mechanism is owned by the transport layer.
type Event struct {
	Type          string                 `json:"type"`
	RequisitionID string                 `json:"requisitionId"`
	HoldingID     string                 `json:"holdingId"`
	Payload       map[string]interface{} `json:"payload,omitempty"`
	Timestamp     time.Time              `json:"timestamp"`
}

// Hub fans events out to subscribers. Slow subscribers drop events rather
// than block publishers.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan Event]string // channel -> holding filter ("" = all)
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]string)}
}

// Subscribe registers a buffered channel receiving events for the given
// holding (empty string subscribes to everything). Callers must
// Unsubscribe when done.
func (h *Hub) Subscribe(holdingID string) chan Event {
	ch := make(chan Event, 64)
	h.mu.Lock()
	h.subs[ch] = holdingID
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// Publish delivers the event to matching subscribers without blocking.
func (h *Hub) Publish(ev Event) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch, holding := range h.subs {
		if holding != "" && holding != ev.HoldingID {
			continue
		}
		select {
		case ch <- ev:
		default:
			logger.Warnf("Event subscriber buffer full, dropping %s for %s", ev.Type, ev.RequisitionID)
		}
	}
}
