// Package notify broadcasts decision-changed events so in-process
// collaborators can react to consent updates without polling the store.
package notify

import (
	"log/slog"
	"sync"
	"time"

	"consentgate/internal/consent/models"
)

// Event describes one consent decision change. A Cleared event carries
// DecisionUnset.
type Event struct {
	Decision  models.Decision
	Timestamp time.Time
	RequestID string
}

// Broadcaster fans decision events out to subscribers. Delivery is
// best-effort: a subscriber that falls behind loses events rather than
// blocking the consent hot path.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
	closed bool
	logger *slog.Logger
}

// Option configures the Broadcaster.
type Option func(*Broadcaster)

// WithLogger sets a logger for dropped-event reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Broadcaster) {
		b.logger = logger
	}
}

// New constructs an empty broadcaster.
func New(opts ...Option) *Broadcaster {
	b := &Broadcaster{subs: make(map[int]chan Event)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers a buffered subscription. The returned cancel func
// removes the subscription and closes its channel; it is safe to call twice.
func (b *Broadcaster) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(ch)
			}
		})
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber without blocking.
// Subscribers with full buffers are skipped and the drop is logged.
func (b *Broadcaster) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
			if b.logger != nil {
				b.logger.Warn("subscriber buffer full, decision event dropped",
					"decision", event.Decision,
					"request_id", event.RequestID,
				)
			}
		}
	}
}

// Close shuts down the broadcaster and closes all subscriber channels.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
