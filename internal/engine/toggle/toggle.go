// Package toggle diffs the set of active prayers between ticks.
package toggle

import (
	"github.com/crimson-sun/actionlog/internal/model"
)

// DefaultSuppress is how many ticks a prayer stays quiet after a logged
// transition.
const DefaultSuppress = 3

// Tracker reports prayer transitions with per-prayer debounce. Its
// suppression state is independent of the general debounce cache.
type Tracker struct {
	suppress      int
	previous      model.PrayerSet
	suppressUntil map[model.Prayer]int
}

// New creates a Tracker. A non-positive suppress uses DefaultSuppress.
func New(suppress int) *Tracker {
	if suppress <= 0 {
		suppress = DefaultSuppress
	}
	return &Tracker{
		suppress:      suppress,
		suppressUntil: make(map[model.Prayer]int),
	}
}

// Update diffs now against the previous tick's set and returns one
// PrayerToggle action per unsuppressed transition, enabled transitions first.
// now always becomes the new previous set, whether or not anything was logged.
func (t *Tracker) Update(now model.PrayerSet, tick int) []model.Action {
	var out []model.Action
	now.Minus(t.previous).Each(func(p model.Prayer) {
		if a, ok := t.transition(p, "Enabled", tick); ok {
			out = append(out, a)
		}
	})
	t.previous.Minus(now).Each(func(p model.Prayer) {
		if a, ok := t.transition(p, "Disabled", tick); ok {
			out = append(out, a)
		}
	})
	t.previous = now
	return out
}

// Active returns the set recorded by the last Update.
func (t *Tracker) Active() model.PrayerSet {
	return t.previous
}

func (t *Tracker) transition(p model.Prayer, verb string, tick int) (model.Action, bool) {
	if until, ok := t.suppressUntil[p]; ok && tick < until {
		return model.Action{}, false
	}
	t.suppressUntil[p] = tick + t.suppress
	return model.Action{
		Category: model.CategoryPrayerToggle,
		Detail:   verb + ": " + p.String(),
		Tick:     tick,
	}, true
}
