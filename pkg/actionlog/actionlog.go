package actionlog

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/crimson-sun/actionlog/internal/engine"
	"github.com/crimson-sun/actionlog/internal/engine/dedup"
	"github.com/crimson-sun/actionlog/internal/engine/interaction"
	"github.com/crimson-sun/actionlog/internal/output/slogout"
	"github.com/crimson-sun/actionlog/internal/output/stdout"
)

// Host is the client runtime the logger observes. All methods are called
// from inside Logger methods, under its lock.
type Host interface {
	// ResolveScene converts scene-local coordinates to a world tile.
	ResolveScene(p ScenePoint) (WorldPoint, bool)
	// Destination returns the player's pathing destination, if any.
	Destination() (WorldPoint, bool)
	// Tick returns the current game tick.
	Tick() int
	// LocalPlayer returns the player's tile, false before login.
	LocalPlayer() (WorldPoint, bool)
	// ActivePrayers returns the prayers active this tick.
	ActivePrayers() PrayerSet
	// NPCs returns the NPCs loaded in the scene.
	NPCs() []NPC
	// HasLineOfSight reports whether target is visible from area.
	HasLineOfSight(area WorldArea, target WorldPoint) bool
}

// Sink receives emitted actions.
type Sink interface {
	Write(ctx context.Context, a Action) error
	Close() error
}

// Stats counts logger decisions.
type Stats = engine.Stats

// Logger is a per-session action logger.
type Logger struct {
	mu   sync.Mutex
	eng  *engine.Engine
	sink Sink
}

// New creates a Logger observing host.
func New(host Host, opts ...Option) *Logger {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.sink == nil {
		o.sink = slogSink(nil)
	}

	eng := engine.New(host, o.sink, engine.Options{
		Enabled:         o.enabled,
		Projectiles:     o.projectiles,
		Dedup:           dedup.Config{Window: o.window, Capacity: o.capacity},
		ToggleSuppress:  o.toggleSuppress,
		ForgetOnDespawn: o.forgetOnDespawn,
		OnSinkError:     o.onSinkError,
	})
	return &Logger{eng: eng, sink: o.sink}
}

// Handle dispatches any raw event.
func (l *Logger) Handle(ctx context.Context, ev RawEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.eng.Handle(ctx, ev)
}

// MenuClick classifies a menu click.
func (l *Logger) MenuClick(ctx context.Context, ev MenuClick) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.eng.HandleMenuClick(ctx, ev)
}

// Tick runs the per-tick prayer and NPC scans.
func (l *Logger) Tick(ctx context.Context, ev TickEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.eng.HandleTick(ctx, ev)
}

// Chat logs a chat line.
func (l *Logger) Chat(ctx context.Context, ev Chat) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.eng.HandleChat(ctx, ev)
}

// Spawn reports an NPC or ground item appearing.
func (l *Logger) Spawn(ctx context.Context, ev EntitySpawn) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.eng.HandleSpawn(ctx, ev)
}

// Despawn reports an NPC or ground item disappearing.
func (l *Logger) Despawn(ctx context.Context, ev EntityDespawn) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.eng.HandleDespawn(ctx, ev)
}

// Projectile reports a projectile in flight.
func (l *Logger) Projectile(ctx context.Context, ev ProjectileSeen) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.eng.HandleProjectile(ctx, ev)
}

// Stats returns the decision counters.
func (l *Logger) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.eng.Stats()
}

// Close closes the sink.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sink.Close()
}

// IsFishing reports whether the snapshot shows the player fishing.
func IsFishing(s InteractionSnapshot) bool { return interaction.IsFishing(s) }

// IsMining reports whether the snapshot shows the player mining.
func IsMining(s InteractionSnapshot) bool { return interaction.IsMining(s) }

func slogSink(logger *slog.Logger) Sink { return slogout.New(logger) }

func writerSink(w io.Writer) Sink { return stdout.NewWriter(w, false, false) }
