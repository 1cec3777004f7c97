package async

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/crimson-sun/actionlog/internal/model"
	"github.com/crimson-sun/actionlog/internal/output"
)

const (
	defaultBufferSize   = 1024
	defaultDrainTimeout = 5 * time.Second
)

// ErrClosed is returned by Write after Close.
var ErrClosed = errors.New("async output: closed")

// Option configures an Async wrapper.
type Option func(*Async)

// WithBufferSize sets the channel buffer capacity. Default: 1024.
func WithBufferSize(n int) Option {
	return func(a *Async) { a.bufSize = n }
}

// WithOnError sets the callback invoked when the inner output's Write fails.
// Default: logs a warning via slog.
func WithOnError(f func(error)) Option {
	return func(a *Async) { a.errFunc = f }
}

// WithDropOnFull makes Write drop the action instead of blocking when the
// buffer is full.
func WithDropOnFull() Option {
	return func(a *Async) { a.dropOnFull = true }
}

// WithDrainTimeout bounds how long Close waits for buffered actions.
// Default: 5s.
func WithDrainTimeout(d time.Duration) Option {
	return func(a *Async) { a.drainTimeout = d }
}

// Async moves writes to a slow output off the caller's goroutine. Actions
// are queued on a buffered channel and drained in order by a background
// goroutine. Inner errors go to errFunc rather than the caller.
type Async struct {
	inner        output.Output
	ch           chan model.Action
	done         chan struct{}
	errFunc      func(error)
	bufSize      int
	dropOnFull   bool
	drainTimeout time.Duration
	dropped      atomic.Int64

	mu     sync.RWMutex
	closed bool
}

// New wraps inner and starts the drain goroutine.
func New(inner output.Output, opts ...Option) *Async {
	a := &Async{
		inner:        inner,
		bufSize:      defaultBufferSize,
		drainTimeout: defaultDrainTimeout,
		errFunc:      func(err error) { slog.Warn("async output write error", "error", err) },
	}
	for _, opt := range opts {
		opt(a)
	}
	a.ch = make(chan model.Action, a.bufSize)
	a.done = make(chan struct{})
	go a.drain()
	return a
}

// Write queues the action. It blocks while the buffer is full unless
// WithDropOnFull is set, and gives up when ctx is cancelled.
func (a *Async) Write(ctx context.Context, action model.Action) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return ErrClosed
	}

	if a.dropOnFull {
		select {
		case a.ch <- action:
		default:
			a.dropped.Add(1)
			slog.Warn("async output buffer full, dropping action", "category", action.Category)
		}
		return nil
	}

	select {
	case a.ch <- action:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dropped returns how many actions were discarded on a full buffer.
func (a *Async) Dropped() int64 { return a.dropped.Load() }

// Close stops accepting writes, waits for the queue to drain (bounded by the
// drain timeout), then closes the inner output. Safe to call more than once.
func (a *Async) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	close(a.ch)
	a.mu.Unlock()

	select {
	case <-a.done:
	case <-time.After(a.drainTimeout):
		slog.Warn("async output drain timed out", "pending", len(a.ch))
	}
	return a.inner.Close()
}

func (a *Async) drain() {
	defer close(a.done)
	for action := range a.ch {
		if err := a.inner.Write(context.Background(), action); err != nil {
			a.errFunc(err)
		}
	}
}
