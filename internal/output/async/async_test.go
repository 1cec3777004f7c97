package async

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/crimson-sun/actionlog/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type mockOutput struct {
	mu      sync.Mutex
	actions []model.Action
	closed  bool
	err     error         // if set, Write returns this
	gate    chan struct{} // if set, Write waits for a receive
}

func (m *mockOutput) Write(_ context.Context, a model.Action) error {
	if m.gate != nil {
		<-m.gate
	}
	m.mu.Lock()
	m.actions = append(m.actions, a)
	m.mu.Unlock()
	return m.err
}

func (m *mockOutput) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

func (m *mockOutput) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.actions)
}

func testAction(detail string) model.Action {
	return model.Action{Category: model.CategoryChat, Detail: detail}
}

func TestActionsFlowThroughInOrder(t *testing.T) {
	inner := &mockOutput{}
	a := New(inner, WithBufferSize(16))

	for _, d := range []string{"a", "b", "c"} {
		if err := a.Write(context.Background(), testAction(d)); err != nil {
			t.Fatalf("Write error: %v", err)
		}
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	if inner.count() != 3 {
		t.Fatalf("got %d actions, want 3", inner.count())
	}
	for i, d := range []string{"a", "b", "c"} {
		if inner.actions[i].Detail != d {
			t.Errorf("action %d = %q, want %q", i, inner.actions[i].Detail, d)
		}
	}
	if !inner.closed {
		t.Error("inner output not closed")
	}
}

func TestBackpressureBlocksUntilCancel(t *testing.T) {
	gate := make(chan struct{})
	inner := &mockOutput{gate: gate}
	a := New(inner, WithBufferSize(1))

	// The drain goroutine holds "first"; "second" fills the buffer.
	a.Write(context.Background(), testAction("first"))
	a.Write(context.Background(), testAction("second"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := a.Write(ctx, testAction("third")); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected blocked write to time out, got %v", err)
	}

	close(gate)
	a.Close()
	if inner.count() != 2 {
		t.Errorf("got %d actions, want 2", inner.count())
	}
}

func TestDropOnFull(t *testing.T) {
	gate := make(chan struct{})
	inner := &mockOutput{gate: gate}
	a := New(inner, WithBufferSize(1), WithDropOnFull())

	for i := 0; i < 20; i++ {
		if err := a.Write(context.Background(), testAction("burst")); err != nil {
			t.Fatalf("drop mode should never error, got %v", err)
		}
	}
	close(gate)
	a.Close()

	if a.Dropped() == 0 {
		t.Error("expected some actions to be dropped")
	}
	if got := int64(inner.count()) + a.Dropped(); got != 20 {
		t.Errorf("delivered+dropped = %d, want 20", got)
	}
}

func TestErrorCallbackInvoked(t *testing.T) {
	inner := &mockOutput{err: errors.New("write failed")}
	var errorCount atomic.Int64
	a := New(inner, WithBufferSize(16), WithOnError(func(error) { errorCount.Add(1) }))

	for i := 0; i < 5; i++ {
		a.Write(context.Background(), testAction("failing"))
	}
	a.Close()

	if errorCount.Load() != 5 {
		t.Errorf("error callback called %d times, want 5", errorCount.Load())
	}
}

func TestWriteAfterClose(t *testing.T) {
	a := New(&mockOutput{})
	a.Close()
	if err := a.Write(context.Background(), testAction("late")); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	a := New(&mockOutput{}, WithBufferSize(16))
	a.Write(context.Background(), testAction("idempotent"))

	if err := a.Close(); err != nil {
		t.Fatalf("first Close error: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("second Close error: %v", err)
	}
}

func TestCloseDrainTimeout(t *testing.T) {
	gate := make(chan struct{})
	a := New(&mockOutput{gate: gate}, WithDrainTimeout(20*time.Millisecond))
	a.Write(context.Background(), testAction("stuck"))

	start := time.Now()
	a.Close()
	if time.Since(start) > time.Second {
		t.Error("Close did not honour the drain timeout")
	}
	// Release the drain goroutine so goleak sees it exit.
	close(gate)
	<-a.done
}
