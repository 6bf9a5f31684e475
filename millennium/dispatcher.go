package millennium

import (
	"context"
	"time"

	"github.com/marcelsud/troquecommerce-bridge/internal/worker"
	"github.com/rs/zerolog"
)

// ResultRecorder receives the outcome of every finished lookup
type ResultRecorder interface {
	RecordLookup(ctx context.Context, outcome string)
}

/* Dispatcher runs lookups in the background so the webhook can be acknowledged immediately
 * No retries, no deduplication; a full queue drops the lookup
 */
type Dispatcher struct {
	pool     *worker.Pool[string]
	lookup   *Lookup
	recorder ResultRecorder
	logger   zerolog.Logger
}

// NewDispatcher starts workers goroutines; each lookup is bounded by timeout
func NewDispatcher(lookup *Lookup, workers, queueSize int, timeout time.Duration, recorder ResultRecorder, logger zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		lookup:   lookup,
		recorder: recorder,
		logger:   logger,
	}
	d.pool = worker.New(workers, queueSize, timeout, logger, d.run)
	return d
}

func (d *Dispatcher) run(ctx context.Context, orderNumber string) {
	result := d.lookup.Run(ctx, orderNumber)
	if d.recorder != nil {
		d.recorder.RecordLookup(ctx, result.Outcome.String())
	}
}

// Submit schedules a lookup and returns immediately; false means it was dropped
func (d *Dispatcher) Submit(orderNumber string) bool {
	if d.pool.Submit(orderNumber) {
		return true
	}
	d.logger.Warn().Str("ecommerce_number", orderNumber).Msg("lookup queue full or draining, dropping ERP lookup")
	if d.recorder != nil {
		d.recorder.RecordLookup(context.Background(), "dropped")
	}
	return false
}

// QueueLen returns how many lookups wait for a worker
func (d *Dispatcher) QueueLen() int {
	return d.pool.QueueLen()
}

// Drain stops accepting lookups and waits for the queued ones
func (d *Dispatcher) Drain(ctx context.Context) error {
	return d.pool.Drain(ctx)
}
