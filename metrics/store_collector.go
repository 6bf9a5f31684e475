package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/marcelsud/troquecommerce-bridge/webhook"
)

// StoreCollector implements the Collector interface on top of the event log
type StoreCollector struct {
	events   webhook.Reader
	capacity int
	queueLen func() int
}

// NewStoreCollector creates a collector. queueLen may be nil when no lookup pool is running.
func NewStoreCollector(events webhook.Reader, capacity int, queueLen func() int) *StoreCollector {
	return &StoreCollector{
		events:   events,
		capacity: capacity,
		queueLen: queueLen,
	}
}

// Collect counts the stored events and samples the lookup queue
func (c *StoreCollector) Collect(ctx context.Context) (Snapshot, error) {
	count, err := c.events.Count(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("counting events: %w", err)
	}

	var queued int
	if c.queueLen != nil {
		queued = c.queueLen()
	}

	return Snapshot{
		StoredEvents: int64(count),
		Capacity:     int64(c.capacity),
		LookupQueue:  int64(queued),
		Timestamp:    time.Now(),
	}, nil
}
