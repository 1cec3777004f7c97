package actionlog

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/actionlog/internal/model"
)

func ptr[T any](v T) *T { return &v }

type recordingSink struct {
	mu      sync.Mutex
	actions []Action
	err     error
	closed  bool
}

func (s *recordingSink) Write(_ context.Context, a Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, a)
	return s.err
}

func (s *recordingSink) Close() error {
	s.closed = true
	return nil
}

func loggedIn() *ReplayHost {
	host := NewReplayHost()
	host.Apply(HostState{
		Tick:      ptr(100),
		SceneBase: &WorldPoint{X: 3150, Y: 3150},
		Player:    &WorldPoint{X: 3200, Y: 3195},
	})
	return host
}

func TestWriterSinkLines(t *testing.T) {
	var buf bytes.Buffer
	l := New(loggedIn(), WithWriter(&buf))

	l.Chat(context.Background(), Chat{Speaker: "<img=2>Zezima", Message: "hi", Type: model.ChatPublic})

	assert.Equal(t, "[Action Logger] Chat: Speaker: Zezima, Channel: public, Message: hi\n", buf.String())
}

func TestDebounceOption(t *testing.T) {
	host := loggedIn()
	sink := &recordingSink{}
	l := New(host, WithSink(sink), WithDebounce(2, 0))
	ctx := context.Background()
	walk := MenuClick{Action: MenuWalk, Option: "Walk here", Param0: 10, Param1: 10}

	l.MenuClick(ctx, walk)
	host.SetTick(101)
	l.MenuClick(ctx, walk)
	host.SetTick(104)
	l.MenuClick(ctx, walk)

	assert.Len(t, sink.actions, 2)
	assert.Equal(t, 1, l.Stats().Suppressed)
}

func TestDisabled(t *testing.T) {
	sink := &recordingSink{}
	l := New(loggedIn(), WithSink(sink), WithEnabled(false))
	l.MenuClick(context.Background(), MenuClick{Action: MenuNPCFirst, Target: "Goblin"})
	assert.Empty(t, sink.actions)
}

func TestProjectilesOffByDefault(t *testing.T) {
	ctx := context.Background()
	ev := ProjectileSeen{Identity: 7, ID: 1465, StartCycle: 10, EndCycle: 40}

	sink := &recordingSink{}
	New(loggedIn(), WithSink(sink)).Projectile(ctx, ev)
	assert.Empty(t, sink.actions)

	sink = &recordingSink{}
	New(loggedIn(), WithSink(sink), WithProjectiles(true)).Projectile(ctx, ev)
	require.Len(t, sink.actions, 1)
	assert.Equal(t, model.CategoryProjectile, sink.actions[0].Category)
}

func TestSinkErrorCallback(t *testing.T) {
	var got error
	sink := &recordingSink{err: errors.New("disk full")}
	l := New(loggedIn(), WithSink(sink), WithOnSinkError(func(err error) { got = err }))

	l.MenuClick(context.Background(), MenuClick{Action: MenuNPCFirst, Target: "Goblin"})

	require.Error(t, got)
	assert.Contains(t, got.Error(), "disk full")
	assert.Equal(t, 1, l.Stats().SinkErrors)
}

func TestConcurrentUse(t *testing.T) {
	sink := &recordingSink{}
	l := New(loggedIn(), WithSink(sink))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Handle(ctx, MenuClick{Action: MenuNPCFirst, Option: "Attack", Target: "Goblin", ID: i})
		}(i)
	}
	wg.Wait()

	assert.Len(t, sink.actions, 20)
}

func TestCloseClosesSink(t *testing.T) {
	sink := &recordingSink{}
	require.NoError(t, New(loggedIn(), WithSink(sink)).Close())
	assert.True(t, sink.closed)
}

func TestCategories(t *testing.T) {
	cats := Categories()
	require.NotEmpty(t, cats)
	for _, c := range cats {
		assert.NotEmpty(t, c.Description, c.Name)
	}
	assert.Equal(t, model.CategoryMenuClick, cats[len(cats)-1].Name)
	assert.True(t, strings.HasPrefix(string(cats[0].Name), "NPC"))
}
