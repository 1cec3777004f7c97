package model

// EventKind identifies the variant carried by a RawEvent.
type EventKind string

const (
	KindMenuClick      EventKind = "menu_click"
	KindTick           EventKind = "tick"
	KindChat           EventKind = "chat"
	KindEntitySpawn    EventKind = "entity_spawn"
	KindEntityDespawn  EventKind = "entity_despawn"
	KindProjectileSeen EventKind = "projectile_seen"
)

// RawEvent is a low-level session event as delivered by the host.
// The concrete variants below are the only implementations.
type RawEvent interface {
	Kind() EventKind
	rawEvent()
}

// MenuClick is a menu option the user selected.
type MenuClick struct {
	Action MenuAction
	Option string // menu option text, e.g. "Attack"
	Target string // menu target text, may carry <col=...> markup
	ID     int
	Param0 int
	Param1 int
}

// Tick marks the start of a host simulation step.
type Tick struct {
	Number int
}

// Chat is a single chat line.
type Chat struct {
	Speaker string
	Message string
	Type    ChatType
}

// EntityKind identifies what kind of entity a spawn or despawn refers to.
type EntityKind string

const (
	EntityNPC        EntityKind = "npc"
	EntityGroundItem EntityKind = "ground_item"
	EntityObject     EntityKind = "object"
)

// Entity is the payload shared by spawn and despawn notices.
// Identity is stable for the lifetime of the in-session object, unlike ID
// which is a reusable definition id.
type Entity struct {
	Kind     EntityKind
	Identity uint64
	Name     string
	ID       int
	Position WorldPoint
	Quantity int
}

// EntitySpawn announces that an entity entered the scene.
type EntitySpawn struct{ Entity }

// EntityDespawn announces that an entity left the scene.
type EntityDespawn struct{ Entity }

// ProjectileSeen reports a projectile observed in flight.
type ProjectileSeen struct {
	Identity   uint64
	ID         int
	StartCycle int
	EndCycle   int
	Position   *WorldPoint // nil when the host could not place it
}

func (MenuClick) Kind() EventKind      { return KindMenuClick }
func (Tick) Kind() EventKind           { return KindTick }
func (Chat) Kind() EventKind           { return KindChat }
func (EntitySpawn) Kind() EventKind    { return KindEntitySpawn }
func (EntityDespawn) Kind() EventKind  { return KindEntityDespawn }
func (ProjectileSeen) Kind() EventKind { return KindProjectileSeen }

func (MenuClick) rawEvent()      {}
func (Tick) rawEvent()           {}
func (Chat) rawEvent()           {}
func (EntitySpawn) rawEvent()    {}
func (EntityDespawn) rawEvent()  {}
func (ProjectileSeen) rawEvent() {}

// ChatType is the channel a chat line arrived on.
type ChatType string

const (
	ChatPublic  ChatType = "public"
	ChatPrivate ChatType = "private"
	ChatClan    ChatType = "clan"
	ChatFriends ChatType = "friends"
	ChatGame    ChatType = "game"
	ChatTrade   ChatType = "trade"
)
