package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/crimson-sun/actionlog/internal/connector"
	"github.com/crimson-sun/actionlog/internal/engine"
	"github.com/crimson-sun/actionlog/internal/model"
	"github.com/crimson-sun/actionlog/internal/session"
	"github.com/crimson-sun/actionlog/internal/transcript"
)

// --- mocks ---

// mockConnector is a minimal connector that sends pre-loaded records.
type mockConnector struct {
	records []transcript.Record
	err     error
}

func (m *mockConnector) Stream(_ context.Context, _ connector.ConnectorConfig) (<-chan transcript.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	ch := make(chan transcript.Record, len(m.records))
	for _, rec := range m.records {
		ch <- rec
	}
	close(ch)
	return ch, nil
}

// blockingConnector never closes its channel.
type blockingConnector struct{}

func (blockingConnector) Stream(_ context.Context, _ connector.ConnectorConfig) (<-chan transcript.Record, error) {
	return make(chan transcript.Record), nil
}

type mockOutput struct {
	mu      sync.Mutex
	actions []model.Action
	closed  bool
}

func (m *mockOutput) Write(_ context.Context, a model.Action) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions = append(m.actions, a)
	return nil
}

func (m *mockOutput) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockOutput) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.actions))
	for i, a := range m.actions {
		out[i] = a.Line()
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func newTestPipeline(conn connector.Connector) (*Pipeline, *mockOutput) {
	sess := session.NewReplay()
	out := &mockOutput{}
	eng := engine.New(sess, out, engine.Options{Enabled: true})
	return New(conn, sess, eng, out), out
}

var login = transcript.Record{
	Type: transcript.TypeState,
	State: &session.State{
		Tick:      ptr(100),
		SceneBase: &model.WorldPoint{X: 3150, Y: 3150},
		Player:    &model.WorldPoint{X: 3200, Y: 3195},
	},
}

var attack = transcript.Record{
	Type: string(model.KindMenuClick), Action: model.MenuNPCFirst,
	Option: "Attack", Target: "Goblin", ID: 42, Param0: 50, Param1: 50,
}

// --- tests ---

func TestStreamAppliesStateBeforeEvents(t *testing.T) {
	conn := &mockConnector{records: []transcript.Record{login, attack, attack}}
	p, out := newTestPipeline(conn)

	if err := p.Stream(context.Background(), connector.ConnectorConfig{}); err != nil {
		t.Fatalf("expected nil error (channel close), got: %v", err)
	}

	lines := out.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line after debounce, got %d: %v", len(lines), lines)
	}
	want := "[Action Logger] NPCInteraction: NPC: Goblin, ID: 42, Location: (3200,3200,0)"
	if lines[0] != want {
		t.Errorf("got %q, want %q", lines[0], want)
	}
	if p.Records() != 3 {
		t.Errorf("expected 3 records, got %d", p.Records())
	}
}

func TestStreamTickAdvancesDebounceWindow(t *testing.T) {
	later := transcript.Record{Type: string(model.KindTick), Tick: 111}
	conn := &mockConnector{records: []transcript.Record{login, attack, later, attack}}
	p, out := newTestPipeline(conn)

	if err := p.Stream(context.Background(), connector.ConnectorConfig{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := len(out.Lines()); n != 2 {
		t.Fatalf("expected 2 lines across the window, got %d", n)
	}
}

func TestStreamSkipsBadRecords(t *testing.T) {
	conn := &mockConnector{records: []transcript.Record{
		login,
		{Err: errors.New("bad json"), Line: 2},
		{Type: "teleport", Line: 3},
		{Type: string(model.KindChat), Line: 4, Speaker: "Zezima", Message: "hi", Channel: model.ChatPublic},
	}}
	p, out := newTestPipeline(conn)

	if err := p.Stream(context.Background(), connector.ConnectorConfig{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Skipped() != 2 {
		t.Errorf("expected 2 skipped records, got %d", p.Skipped())
	}
	if n := len(out.Lines()); n != 1 {
		t.Errorf("expected the chat line to survive, got %d lines", n)
	}
}

func TestStreamConnectorError(t *testing.T) {
	p, _ := newTestPipeline(&mockConnector{err: errors.New("boom")})
	if err := p.Stream(context.Background(), connector.ConnectorConfig{}); err == nil {
		t.Fatal("expected connector error")
	}
}

func TestStreamContextCancel(t *testing.T) {
	p, _ := newTestPipeline(blockingConnector{})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := p.Stream(ctx, connector.ConnectorConfig{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestCloseClosesOutput(t *testing.T) {
	p, out := newTestPipeline(&mockConnector{})
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !out.closed {
		t.Error("expected output closed")
	}
}
