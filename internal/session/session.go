// Package session provides a simulated host session whose state is driven by
// recorded transcript records rather than a live game client.
package session

import (
	"github.com/crimson-sun/actionlog/internal/model"
)

// SceneSize is the width and height of the loaded scene in tiles.
const SceneSize = 104

// State is a partial update to the simulated host. Nil fields leave the
// current value unchanged.
type State struct {
	Tick             *int                       `json:"tick,omitempty" yaml:"tick,omitempty"`
	SceneBase        *model.WorldPoint          `json:"scene_base,omitempty" yaml:"scene_base,omitempty"`
	Player           *model.WorldPoint          `json:"player,omitempty" yaml:"player,omitempty"`
	LoggedOut        bool                       `json:"logged_out,omitempty" yaml:"logged_out,omitempty"`
	Destination      *model.WorldPoint          `json:"destination,omitempty" yaml:"destination,omitempty"`
	ClearDestination bool                       `json:"clear_destination,omitempty" yaml:"clear_destination,omitempty"`
	Prayers          *[]model.Prayer            `json:"prayers,omitempty" yaml:"prayers,omitempty"`
	NPCs             *[]model.NPC               `json:"npcs,omitempty" yaml:"npcs,omitempty"`
	Blocked          *[]model.WorldPoint        `json:"blocked,omitempty" yaml:"blocked,omitempty"`
	Interaction      *model.InteractionSnapshot `json:"interaction,omitempty" yaml:"interaction,omitempty"`
}

// Replay is an in-memory host session. The zero value is a logged-out
// session with no scene loaded.
type Replay struct {
	tick        int
	base        model.WorldPoint
	hasScene    bool
	player      model.WorldPoint
	hasPlayer   bool
	dest        model.WorldPoint
	hasDest     bool
	prayers     model.PrayerSet
	npcs        []model.NPC
	blocked     map[model.WorldPoint]struct{}
	interaction model.InteractionSnapshot
}

// NewReplay returns an empty session.
func NewReplay() *Replay {
	return &Replay{interaction: model.InteractionSnapshot{Animation: -1}}
}

// Apply merges a state update into the session.
func (r *Replay) Apply(s State) {
	if s.Tick != nil {
		r.tick = *s.Tick
	}
	if s.SceneBase != nil {
		r.base, r.hasScene = *s.SceneBase, true
	}
	if s.Player != nil {
		r.player, r.hasPlayer = *s.Player, true
	}
	if s.LoggedOut {
		r.hasPlayer = false
	}
	if s.Destination != nil {
		r.dest, r.hasDest = *s.Destination, true
	}
	if s.ClearDestination {
		r.hasDest = false
	}
	if s.Prayers != nil {
		r.prayers = model.NewPrayerSet(*s.Prayers...)
	}
	if s.NPCs != nil {
		r.npcs = append(r.npcs[:0], *s.NPCs...)
	}
	if s.Blocked != nil {
		r.blocked = make(map[model.WorldPoint]struct{}, len(*s.Blocked))
		for _, p := range *s.Blocked {
			r.blocked[p] = struct{}{}
		}
	}
	if s.Interaction != nil {
		r.interaction = *s.Interaction
	}
}

// SetTick advances the session clock.
func (r *Replay) SetTick(n int) { r.tick = n }

func (r *Replay) Tick() int { return r.tick }

// ResolveScene translates a scene tile to a world tile. Points outside the
// loaded scene, or any point before a scene is loaded, have no position.
func (r *Replay) ResolveScene(p model.ScenePoint) (model.WorldPoint, bool) {
	if !r.hasScene || p.X < 0 || p.Y < 0 || p.X >= SceneSize || p.Y >= SceneSize {
		return model.WorldPoint{}, false
	}
	return model.WorldPoint{X: r.base.X + p.X, Y: r.base.Y + p.Y, Plane: r.base.Plane}, true
}

func (r *Replay) Destination() (model.WorldPoint, bool) { return r.dest, r.hasDest }

func (r *Replay) LocalPlayer() (model.WorldPoint, bool) { return r.player, r.hasPlayer }

func (r *Replay) ActivePrayers() model.PrayerSet { return r.prayers }

func (r *Replay) NPCs() []model.NPC { return r.npcs }

func (r *Replay) Interaction() model.InteractionSnapshot { return r.interaction }

// HasLineOfSight walks a straight tile line from the area's nearest tile to
// target and fails on the first blocked tile in between. Different planes
// never see each other.
func (r *Replay) HasLineOfSight(area model.WorldArea, target model.WorldPoint) bool {
	if area.Origin.Plane != target.Plane {
		return false
	}
	if area.Contains(target) {
		return true
	}
	from := model.WorldPoint{
		X:     clamp(target.X, area.Origin.X, area.Origin.X+area.Width-1),
		Y:     clamp(target.Y, area.Origin.Y, area.Origin.Y+area.Height-1),
		Plane: target.Plane,
	}
	blocked := false
	line(from, target, func(p model.WorldPoint) {
		if p == from || p == target {
			return
		}
		if _, ok := r.blocked[p]; ok {
			blocked = true
		}
	})
	return !blocked
}

// line visits every tile on the Bresenham line from a to b inclusive.
func line(a, b model.WorldPoint, visit func(model.WorldPoint)) {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)
	err := dx + dy
	x, y := a.X, a.Y
	for {
		visit(model.WorldPoint{X: x, Y: y, Plane: a.Plane})
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func clamp(v, lo, hi int) int { return max(lo, min(v, hi)) }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
