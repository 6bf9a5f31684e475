package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Pool is a fixed-size goroutine pool with a bounded input queue.
// Jobs are detached from the submitter: each one runs under its own timeout.
type Pool[T any] struct {
	queue   chan T
	process func(ctx context.Context, t T)
	timeout time.Duration
	logger  zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// New creates and starts a pool with n goroutines and queue capacity capacity.
func New[T any](n, capacity int, timeout time.Duration, logger zerolog.Logger, fn func(context.Context, T)) *Pool[T] {
	p := &Pool[T]{
		queue:   make(chan T, capacity),
		process: fn,
		timeout: timeout,
		logger:  logger,
	}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			p.run()
		}()
	}
	return p
}

func (p *Pool[T]) run() {
	for t := range p.queue {
		p.execute(t)
	}
}

func (p *Pool[T]) execute(t T) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().Interface("panic", r).Msg("worker job panicked")
		}
	}()
	p.process(ctx, t)
}

// Submit enqueues a job without blocking (returns false if full or draining).
func (p *Pool[T]) Submit(t T) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	select {
	case p.queue <- t:
		return true
	default:
		return false
	}
}

// Drain stops accepting jobs and waits for queued ones to finish or ctx to expire.
func (p *Pool[T]) Drain(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// QueueLen returns how many jobs are currently queued.
func (p *Pool[T]) QueueLen() int {
	return len(p.queue)
}

// QueueCap returns the total queue capacity.
func (p *Pool[T]) QueueCap() int {
	return cap(p.queue)
}
