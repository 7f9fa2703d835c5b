package realtime

import "sync"

// Event is one typed change notification. Subscribers react to the event
// itself instead of re-deriving state from a blanket cache invalidation.
type Event struct {
	Table    string `json:"table"`
	Action   string `json:"action"` // "insert" | "update" | "delete"
	UserID   string `json:"user_id,omitempty"`
	RowID    string `json:"row_id,omitempty"`
	Status   string `json:"status,omitempty"`
	Audience string `json:"audience,omitempty"` // "consultants" fans out to the review desk
}

type subscriber struct {
	userID     string
	consultant bool
	ch         chan Event
}

// Hub fans change events out to connected clients, filtered by user id.
type Hub struct {
	mu   sync.RWMutex
	subs map[*subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*subscriber]struct{})}
}

// Subscribe registers a listener for the given user. The returned cancel
// func must be called when the client disconnects.
func (h *Hub) Subscribe(userID string, consultant bool) (<-chan Event, func()) {
	s := &subscriber{userID: userID, consultant: consultant, ch: make(chan Event, 16)}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[s]; ok {
			delete(h.subs, s)
			close(s.ch)
		}
		h.mu.Unlock()
	}
	return s.ch, cancel
}

// Dispatch delivers an event to every matching subscriber. Slow consumers
// are skipped rather than blocking the feed.
func (h *Hub) Dispatch(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs {
		if !matches(s, ev) {
			continue
		}
		select {
		case s.ch <- ev:
		default:
		}
	}
}

func matches(s *subscriber, ev Event) bool {
	if ev.Audience == "consultants" {
		return s.consultant
	}
	return ev.UserID != "" && ev.UserID == s.userID
}
