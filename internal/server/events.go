package server

import (
	"sync"
	"time"

	"github.com/theirongolddev/finportal/internal/model"
)

// Event types.
const (
	EventSnapshot   = "snapshot"
	EventDelta      = "summary_delta"
	EventSubmission = "submission"
)

// Event is emitted when the dashboard changes or a submission lands.
type Event struct {
	ID         int64             `json:"id"`
	Type       string            `json:"type"`
	Timestamp  time.Time         `json:"timestamp"`
	Snapshot   Snapshot          `json:"snapshot"`
	Delta      Delta             `json:"delta"`
	Submission *model.Submission `json:"submission,omitempty"`
}

// hub numbers events, keeps the newest size of them and fans each one out
// to stream subscribers. Slow subscribers miss events rather than block.
type hub struct {
	mu     sync.Mutex
	size   int
	lastID int64
	ring   []Event
	subSeq int
	subs   map[int]chan Event
}

func newHub(size int) *hub {
	return &hub{size: size, subs: make(map[int]chan Event)}
}

// publish assigns ev the next ID, stores it and delivers it.
func (h *hub) publish(ev Event) Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastID++
	ev.ID = h.lastID
	h.ring = append(h.ring, ev)
	if over := len(h.ring) - h.size; over > 0 {
		h.ring = h.ring[over:]
	}
	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	return ev
}

// recent returns a copy of the buffered events, oldest first.
func (h *hub) recent() []Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Event, len(h.ring))
	copy(out, h.ring)
	return out
}

func (h *hub) subscribe(buf int) (int, <-chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subSeq++
	ch := make(chan Event, buf)
	h.subs[h.subSeq] = ch
	return h.subSeq, ch
}

func (h *hub) unsubscribe(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, id)
}

// counts reports buffered events and live subscribers.
func (h *hub) counts() (events, subscribers int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.ring), len(h.subs)
}
