package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crimson-sun/actionlog/internal/engine/classifier"
	"github.com/crimson-sun/actionlog/internal/engine/dedup"
	"github.com/crimson-sun/actionlog/internal/engine/seen"
	"github.com/crimson-sun/actionlog/internal/engine/toggle"
	"github.com/crimson-sun/actionlog/internal/model"
	"github.com/crimson-sun/actionlog/internal/output"
)

// Session is the host runtime the engine observes.
type Session interface {
	classifier.Resolver

	// Tick returns the current simulation tick.
	Tick() int
	// LocalPlayer returns the player's location, false before login.
	LocalPlayer() (model.WorldPoint, bool)
	// ActivePrayers returns the prayers active this tick.
	ActivePrayers() model.PrayerSet
	// NPCs returns the NPCs currently loaded in the scene.
	NPCs() []model.NPC
	// HasLineOfSight reports whether target is visible from area.
	HasLineOfSight(area model.WorldArea, target model.WorldPoint) bool
}

// Options controls which events are processed.
type Options struct {
	Enabled         bool
	Projectiles     bool
	Dedup           dedup.Config
	ToggleSuppress  int  // ticks; 0 uses toggle.DefaultSuppress
	ForgetOnDespawn bool // re-announce NPCs that leave and re-enter the scene
	OnSinkError     func(error)
}

// Stats counts engine decisions since creation.
type Stats struct {
	Emitted    int
	Suppressed int
	Unmapped   int
	SinkErrors int
}

// Engine turns raw session events into debounced audit lines. It owns all
// per-session state and must be driven from a single goroutine.
type Engine struct {
	sess        Session
	out         output.Output
	opts        Options
	cache       *dedup.Cache
	toggles     *toggle.Tracker
	npcs        *seen.Registry
	projectiles *seen.Registry
	stats       Stats
}

// New creates an Engine for one session.
func New(sess Session, out output.Output, opts Options) *Engine {
	if opts.OnSinkError == nil {
		opts.OnSinkError = func(err error) { slog.Warn("action sink write failed", "error", err) }
	}
	return &Engine{
		sess:        sess,
		out:         out,
		opts:        opts,
		cache:       dedup.New(opts.Dedup),
		toggles:     toggle.New(opts.ToggleSuppress),
		npcs:        seen.New(),
		projectiles: seen.New(),
	}
}

// Handle dispatches a raw event to its handler.
func (e *Engine) Handle(ctx context.Context, ev model.RawEvent) {
	switch v := ev.(type) {
	case model.MenuClick:
		e.HandleMenuClick(ctx, v)
	case model.Tick:
		e.HandleTick(ctx, v)
	case model.Chat:
		e.HandleChat(ctx, v)
	case model.EntitySpawn:
		e.HandleSpawn(ctx, v)
	case model.EntityDespawn:
		e.HandleDespawn(ctx, v)
	case model.ProjectileSeen:
		e.HandleProjectile(ctx, v)
	default:
		slog.Debug("ignoring unsupported event", "type", fmt.Sprintf("%T", ev))
	}
}

// HandleMenuClick classifies a menu click and emits it through the debounce
// gate. Intentionally unmapped clicks are dropped.
func (e *Engine) HandleMenuClick(ctx context.Context, ev model.MenuClick) {
	if !e.opts.Enabled {
		return
	}
	a, ok := classifier.Classify(ev, e.sess)
	if !ok {
		e.stats.Unmapped++
		metricUnmapped.Inc()
		return
	}
	e.emitDebounced(ctx, a)
}

// HandleTick runs the per-tick passes: prayer transitions, then NPC discovery.
func (e *Engine) HandleTick(ctx context.Context, ev model.Tick) {
	if !e.opts.Enabled {
		return
	}
	player, ok := e.sess.LocalPlayer()
	if !ok {
		return
	}

	for _, a := range e.toggles.Update(e.sess.ActivePrayers(), ev.Number) {
		e.write(ctx, a)
	}

	for _, npc := range e.sess.NPCs() {
		e.announceNPC(ctx, npc, player, ev.Number)
	}
}

// HandleChat emits a chat line through the debounce gate.
func (e *Engine) HandleChat(ctx context.Context, ev model.Chat) {
	if !e.opts.Enabled {
		return
	}
	e.emitDebounced(ctx, classifier.ClassifyChat(ev))
}

// HandleSpawn announces new NPCs and ground items.
func (e *Engine) HandleSpawn(ctx context.Context, ev model.EntitySpawn) {
	if !e.opts.Enabled {
		return
	}
	switch ev.Entity.Kind {
	case model.EntityNPC:
		player, ok := e.sess.LocalPlayer()
		if !ok {
			return
		}
		e.announceNPC(ctx, model.NPC{
			Identity: ev.Identity,
			Name:     ev.Name,
			ID:       ev.ID,
			Location: ev.Position,
		}, player, e.sess.Tick())
	case model.EntityGroundItem:
		if a, ok := classifier.ClassifyGroundItem(ev); ok {
			e.emitDebounced(ctx, a)
		}
	}
}

// HandleDespawn reports ground items leaving the scene.
func (e *Engine) HandleDespawn(ctx context.Context, ev model.EntityDespawn) {
	if !e.opts.Enabled {
		return
	}
	switch ev.Entity.Kind {
	case model.EntityNPC:
		if e.opts.ForgetOnDespawn {
			e.npcs.Forget(ev.Identity)
		}
	case model.EntityGroundItem:
		if a, ok := classifier.ClassifyGroundItem(ev); ok {
			e.emitDebounced(ctx, a)
		}
	}
}

// HandleProjectile announces each projectile once.
func (e *Engine) HandleProjectile(ctx context.Context, ev model.ProjectileSeen) {
	if !e.opts.Enabled || !e.opts.Projectiles {
		return
	}
	if !e.projectiles.Announce(ev.Identity) {
		return
	}
	loc := model.UnknownLocation
	if ev.Position != nil {
		loc = ev.Position.String()
	}
	e.write(ctx, model.Action{
		Category: model.CategoryProjectile,
		Detail: fmt.Sprintf("Projectile ID: %d, Location: %s, StartCycle: %d, EndCycle: %d",
			ev.ID, loc, ev.StartCycle, ev.EndCycle),
		Tick: e.sess.Tick(),
	})
}

// Stats returns a copy of the decision counters.
func (e *Engine) Stats() Stats {
	return e.stats
}

func (e *Engine) announceNPC(ctx context.Context, npc model.NPC, player model.WorldPoint, tick int) {
	if !e.npcs.Announce(npc.Identity) {
		return
	}
	area := model.WorldArea{Origin: player, Width: 1, Height: 1}
	los := e.sess.HasLineOfSight(area, npc.Location)
	e.write(ctx, model.Action{
		Category: model.CategoryNPCDetected,
		Detail: fmt.Sprintf("NPC: %s, ID: %d, Location: %s, Line of Sight: %t",
			npc.Name, npc.ID, npc.Location, los),
		Tick: tick,
	})
}

func (e *Engine) emitDebounced(ctx context.Context, a model.Action) {
	a.Tick = e.sess.Tick()
	if !e.cache.ShouldEmit(dedup.KeyFor(a), a.Tick) {
		e.stats.Suppressed++
		metricSuppressed.WithLabelValues(string(a.Category)).Inc()
		return
	}
	e.write(ctx, a)
}

func (e *Engine) write(ctx context.Context, a model.Action) {
	e.stats.Emitted++
	metricEmitted.WithLabelValues(string(a.Category)).Inc()
	if err := e.out.Write(ctx, a); err != nil {
		e.stats.SinkErrors++
		metricSinkErrors.Inc()
		e.opts.OnSinkError(fmt.Errorf("engine: write %s: %w", a.Category, err))
	}
}
