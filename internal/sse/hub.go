package sse

import (
	"encoding/json"
	"sync"
)

// Event is one progress update pushed to the UI.
type Event struct {
	Type      string `json:"type"` // "state" or "progress"
	State     string `json:"state,omitempty"`
	Message   string `json:"message,omitempty"`
	PollCount int    `json:"poll_count,omitempty"`
}

// Hub broadcasts workflow events to SSE subscribers. Subscribers own their
// channels; the hub only sends, and drops events for slow readers rather
// than blocking the workflow.
type Hub struct {
	mu          sync.Mutex
	subscribers map[chan []byte]struct{}
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[chan []byte]struct{})}
}

// Subscribe registers ch for events. Callers should buffer the channel and
// must Unsubscribe before closing it.
func (h *Hub) Subscribe(ch chan []byte) {
	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()
}

// Unsubscribe removes ch.
func (h *Hub) Unsubscribe(ch chan []byte) {
	h.mu.Lock()
	delete(h.subscribers, ch)
	h.mu.Unlock()
}

// Publish sends the event to all subscribers without blocking.
func (h *Hub) Publish(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	h.mu.Lock()
	for ch := range h.subscribers {
		select {
		case ch <- payload:
		default:
			// slow subscriber, skip this event
		}
	}
	h.mu.Unlock()
}
