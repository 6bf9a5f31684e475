package metrics

import (
	"context"
	"time"
)

// Snapshot represents the current state of the bridge.
type Snapshot struct {
	// StoredEvents is the number of webhook events currently held by the event log
	StoredEvents int64 `json:"stored_events"`

	// Capacity is the maximum number of events the log keeps
	Capacity int64 `json:"capacity"`

	// LookupQueue is the number of ERP lookups waiting for a worker
	LookupQueue int64 `json:"lookup_queue"`

	// Timestamp when the snapshot was taken
	Timestamp time.Time `json:"timestamp"`
}

// Collector defines the interface for sampling gauges.
type Collector interface {
	// Collect gathers the current state of the event log and the lookup queue
	Collect(ctx context.Context) (Snapshot, error)
}

// Recorder counts request outcomes as they happen.
type Recorder interface {
	// RecordWebhook counts one inbound webhook by event code and outcome
	RecordWebhook(ctx context.Context, code, outcome string)

	// RecordLookup counts one ERP lookup by outcome
	RecordLookup(ctx context.Context, outcome string)

	// RecordProxy counts one proxied call by endpoint and the status returned to the caller
	RecordProxy(ctx context.Context, endpoint string, status int)
}

// Nop discards everything. Used by commands and tests that do not export metrics.
type Nop struct{}

func (Nop) RecordWebhook(context.Context, string, string) {}
func (Nop) RecordLookup(context.Context, string)          {}
func (Nop) RecordProxy(context.Context, string, int)      {}
