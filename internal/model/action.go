package model

// Category is a semantic action label from the closed category table.
type Category string

const (
	CategoryNPCInteraction      Category = "NPCInteraction"
	CategoryObjectInteraction   Category = "ObjectInteraction"
	CategoryItemPickup          Category = "ItemPickup"
	CategoryItemDrop            Category = "ItemDrop"
	CategoryPlayerInteraction   Category = "PlayerInteraction"
	CategoryInventoryItem       Category = "InventoryItem"
	CategoryWidgetTarget        Category = "WidgetTarget"
	CategoryWidgetAction        Category = "WidgetAction"
	CategoryWidgetContinue      Category = "WidgetContinue"
	CategoryWalkHere            Category = "WalkHere"
	CategoryChat                Category = "Chat"
	CategoryNPCDetected         Category = "NPCDetected"
	CategoryProjectile          Category = "Projectile"
	CategoryGroundItemSpawned   Category = "GroundItemSpawned"
	CategoryGroundItemDespawned Category = "GroundItemDespawned"
	CategoryPrayerToggle        Category = "PrayerToggle"
	CategoryMenuClick           Category = "MenuClick" // diagnostic fallback
)

// Categories lists every label in the closed table, in declaration order.
func Categories() []Category {
	return []Category{
		CategoryNPCInteraction,
		CategoryObjectInteraction,
		CategoryItemPickup,
		CategoryItemDrop,
		CategoryPlayerInteraction,
		CategoryInventoryItem,
		CategoryWidgetTarget,
		CategoryWidgetAction,
		CategoryWidgetContinue,
		CategoryWalkHere,
		CategoryChat,
		CategoryNPCDetected,
		CategoryProjectile,
		CategoryGroundItemSpawned,
		CategoryGroundItemDespawned,
		CategoryPrayerToggle,
		CategoryMenuClick,
	}
}

// Action is a classified semantic action ready for the debounce gate.
type Action struct {
	Category Category `json:"category"`
	Detail   string   `json:"detail"`
	Tick     int      `json:"tick"`
}

// LinePrefix is prepended to every emitted audit line.
const LinePrefix = "[Action Logger]"

// Line renders the action as a single audit line.
func (a Action) Line() string {
	return LinePrefix + " " + string(a.Category) + ": " + a.Detail
}
