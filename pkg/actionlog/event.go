package actionlog

import (
	"github.com/crimson-sun/actionlog/internal/model"
	"github.com/crimson-sun/actionlog/internal/session"
)

// Raw events delivered by the host.
type (
	RawEvent       = model.RawEvent
	MenuClick      = model.MenuClick
	TickEvent      = model.Tick
	Chat           = model.Chat
	ChatType       = model.ChatType
	EntitySpawn    = model.EntitySpawn
	EntityDespawn  = model.EntityDespawn
	Entity         = model.Entity
	EntityKind     = model.EntityKind
	ProjectileSeen = model.ProjectileSeen
	MenuAction     = model.MenuAction
)

// Host state types.
type (
	ScenePoint          = model.ScenePoint
	WorldPoint          = model.WorldPoint
	WorldArea           = model.WorldArea
	NPC                 = model.NPC
	Prayer              = model.Prayer
	PrayerSet           = model.PrayerSet
	InteractionSnapshot = model.InteractionSnapshot
)

// Emitted actions.
type (
	Action   = model.Action
	Category = model.Category
)

// Menu codes used most often by hosts; see the internal table for the rest.
const (
	MenuNPCFirst     = model.MenuNPCFirst
	MenuWalk         = model.MenuWalk
	MenuItemFifth    = model.MenuItemFifth
	MenuCCOp         = model.MenuCCOp
	MenuUnknown      = model.MenuUnknown
	EntityNPC        = model.EntityNPC
	EntityGroundItem = model.EntityGroundItem
)

// ReplayHost is an in-memory Host driven by explicit state updates. It backs
// transcript replay and is handy in tests.
type ReplayHost = session.Replay

// HostState is a partial update applied to a ReplayHost.
type HostState = session.State

// NewReplayHost returns a logged-out ReplayHost with no scene loaded.
func NewReplayHost() *ReplayHost { return session.NewReplay() }
