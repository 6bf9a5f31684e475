package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/marcelsud/troquecommerce-bridge/webhook"
)

/* In-memory implementation of webhook.Repository
 * A fixed-size ring buffer: once full, each Append overwrites the oldest slot.
 * Everything is lost on restart
 */

type Repository struct {
	mu     sync.RWMutex
	buf    []webhook.Event
	head   int // index of the next write
	length int
}

// NewRepository creates a ring buffer holding at most capacity events
func NewRepository(capacity int) (*Repository, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("capacity must be at least 1 (got %d)", capacity)
	}
	return &Repository{
		buf: make([]webhook.Event, capacity),
	}, nil
}

// Append inserts the event as the newest entry, evicting the oldest when full
func (r *Repository) Append(ctx context.Context, event webhook.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buf[r.head] = event
	r.head = (r.head + 1) % len(r.buf)
	if r.length < len(r.buf) {
		r.length++
	}
	return nil
}

// List returns a copy of the log, newest first
func (r *Repository) List(ctx context.Context) ([]webhook.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]webhook.Event, 0, r.length)
	for i := 1; i <= r.length; i++ {
		idx := (r.head - i + len(r.buf)) % len(r.buf)
		events = append(events, r.buf[idx])
	}
	return events, nil
}

// Count returns how many events are held
func (r *Repository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.length, nil
}

// Capacity returns the maximum number of events kept
func (r *Repository) Capacity() int {
	return len(r.buf)
}

func (r *Repository) Close(ctx context.Context) error {
	return nil
}
