// Package taxonomy describes the closed table of action categories and the
// raw menu codes that feed each one.
package taxonomy

import (
	"github.com/crimson-sun/actionlog/internal/engine/classifier"
	"github.com/crimson-sun/actionlog/internal/model"
)

// Entry documents one category.
type Entry struct {
	Category model.Category     `json:"category"`
	Desc     string             `json:"description"`
	Source   string             `json:"source"`          // event that produces it
	Codes    []model.MenuAction `json:"codes,omitempty"` // menu codes mapped here, if any
}

var descriptions = map[model.Category]struct{ desc, source string }{
	model.CategoryNPCInteraction:      {"Menu option on an NPC, with its world location", "menu click"},
	model.CategoryObjectInteraction:   {"Menu option on a scene object, with its world location", "menu click"},
	model.CategoryItemPickup:          {"Menu option on an item lying on the ground", "menu click"},
	model.CategoryItemDrop:            {"Item dropped from the inventory", "menu click"},
	model.CategoryPlayerInteraction:   {"Menu option on another player", "menu click"},
	model.CategoryInventoryItem:       {"Inventory item option with decoded widget and slot", "menu click"},
	model.CategoryWidgetTarget:        {"Selecting a spell or item to use on a target", "menu click"},
	model.CategoryWidgetAction:        {"Interface component option", "menu click"},
	model.CategoryWidgetContinue:      {"Dialogue continue", "menu click"},
	model.CategoryWalkHere:            {"Walk to a tile, falling back to the pathing destination", "menu click"},
	model.CategoryChat:                {"Chat line", "chat"},
	model.CategoryNPCDetected:         {"First sighting of an NPC this session, with line of sight", "tick, npc spawn"},
	model.CategoryProjectile:          {"First sighting of a projectile in flight", "projectile"},
	model.CategoryGroundItemSpawned:   {"Item appeared on the ground", "ground item spawn"},
	model.CategoryGroundItemDespawned: {"Item removed from the ground", "ground item despawn"},
	model.CategoryPrayerToggle:        {"Prayer clicked in the interface or toggled between ticks", "menu click, tick"},
	model.CategoryMenuClick:           {"Any other menu code, logged with its raw code", "menu click"},
}

// Default returns the category table in declaration order.
func Default() []Entry {
	codes := make(map[model.Category][]model.MenuAction)
	for _, a := range model.MenuActions() {
		cat := classifier.Family(a)
		codes[cat] = append(codes[cat], a)
	}

	cats := model.Categories()
	out := make([]Entry, 0, len(cats))
	for _, c := range cats {
		d := descriptions[c]
		out = append(out, Entry{Category: c, Desc: d.desc, Source: d.source, Codes: codes[c]})
	}
	return out
}
