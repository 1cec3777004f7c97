// Package transcript defines the recorded form of a session: a sequence of
// records, each an optional host state update followed by an optional raw
// event.
package transcript

import (
	"fmt"

	"github.com/crimson-sun/actionlog/internal/model"
	"github.com/crimson-sun/actionlog/internal/session"
)

// TypeState marks a record that only updates host state.
const TypeState = "state"

// Record is one transcript entry. Which event fields are read depends on Type.
type Record struct {
	Type  string         `json:"type" yaml:"type"`
	State *session.State `json:"state,omitempty" yaml:"state,omitempty"`

	// tick
	Tick int `json:"tick,omitempty" yaml:"tick,omitempty"`

	// menu_click
	Action model.MenuAction `json:"action,omitempty" yaml:"action,omitempty"`
	Option string           `json:"option,omitempty" yaml:"option,omitempty"`
	Target string           `json:"target,omitempty" yaml:"target,omitempty"`
	ID     int              `json:"id,omitempty" yaml:"id,omitempty"`
	Param0 int              `json:"param0,omitempty" yaml:"param0,omitempty"`
	Param1 int              `json:"param1,omitempty" yaml:"param1,omitempty"`

	// chat
	Speaker string         `json:"speaker,omitempty" yaml:"speaker,omitempty"`
	Message string         `json:"message,omitempty" yaml:"message,omitempty"`
	Channel model.ChatType `json:"channel,omitempty" yaml:"channel,omitempty"`

	// entity_spawn, entity_despawn
	Entity *Entity `json:"entity,omitempty" yaml:"entity,omitempty"`

	// projectile_seen
	Projectile *Projectile `json:"projectile,omitempty" yaml:"projectile,omitempty"`

	// Err is set by readers when the entry could not be decoded.
	Err error `json:"-" yaml:"-"`
	// Line is the 1-based position of the entry in its source, when known.
	Line int `json:"-" yaml:"-"`
}

// Entity is the recorded payload of a spawn or despawn.
type Entity struct {
	Kind     model.EntityKind `json:"kind" yaml:"kind"`
	Identity uint64           `json:"identity" yaml:"identity"`
	Name     string           `json:"name,omitempty" yaml:"name,omitempty"`
	ID       int              `json:"id,omitempty" yaml:"id,omitempty"`
	Position model.WorldPoint `json:"position" yaml:"position"`
	Quantity int              `json:"quantity,omitempty" yaml:"quantity,omitempty"`
}

// Projectile is the recorded payload of a projectile sighting.
type Projectile struct {
	Identity   uint64            `json:"identity" yaml:"identity"`
	ID         int               `json:"id" yaml:"id"`
	StartCycle int               `json:"start_cycle" yaml:"start_cycle"`
	EndCycle   int               `json:"end_cycle" yaml:"end_cycle"`
	Position   *model.WorldPoint `json:"position,omitempty" yaml:"position,omitempty"`
}

// Event converts the record to a raw event. State-only records return nil.
func (r Record) Event() (model.RawEvent, error) {
	switch model.EventKind(r.Type) {
	case model.KindMenuClick:
		return model.MenuClick{
			Action: r.Action,
			Option: r.Option,
			Target: r.Target,
			ID:     r.ID,
			Param0: r.Param0,
			Param1: r.Param1,
		}, nil
	case model.KindTick:
		return model.Tick{Number: r.Tick}, nil
	case model.KindChat:
		return model.Chat{Speaker: r.Speaker, Message: r.Message, Type: r.Channel}, nil
	case model.KindEntitySpawn:
		if r.Entity == nil {
			return nil, fmt.Errorf("transcript: %s record without entity", r.Type)
		}
		return model.EntitySpawn{Entity: r.Entity.model()}, nil
	case model.KindEntityDespawn:
		if r.Entity == nil {
			return nil, fmt.Errorf("transcript: %s record without entity", r.Type)
		}
		return model.EntityDespawn{Entity: r.Entity.model()}, nil
	case model.KindProjectileSeen:
		if r.Projectile == nil {
			return nil, fmt.Errorf("transcript: %s record without projectile", r.Type)
		}
		p := r.Projectile
		return model.ProjectileSeen{
			Identity:   p.Identity,
			ID:         p.ID,
			StartCycle: p.StartCycle,
			EndCycle:   p.EndCycle,
			Position:   p.Position,
		}, nil
	case TypeState:
		return nil, nil
	default:
		return nil, fmt.Errorf("transcript: unknown record type %q", r.Type)
	}
}

// Apply pushes the record's state update, if any, into sess. A tick record
// also advances the session clock so the tick pass sees its own number.
func (r Record) Apply(sess *session.Replay) {
	if r.State != nil {
		sess.Apply(*r.State)
	}
	if model.EventKind(r.Type) == model.KindTick {
		sess.SetTick(r.Tick)
	}
}

func (e Entity) model() model.Entity {
	return model.Entity{
		Kind:     e.Kind,
		Identity: e.Identity,
		Name:     e.Name,
		ID:       e.ID,
		Position: e.Position,
		Quantity: e.Quantity,
	}
}
