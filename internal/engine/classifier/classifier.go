package classifier

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/crimson-sun/actionlog/internal/model"
)

// Resolver maps scene coordinates to world coordinates. Implemented by the
// host session.
type Resolver interface {
	// ResolveScene returns false when the point has no world position.
	ResolveScene(p model.ScenePoint) (model.WorldPoint, bool)
	// Destination returns the player's current pathing destination, if any.
	Destination() (model.WorldPoint, bool)
}

// family groups raw menu codes that share a category and detail template.
type family int

const (
	familyNone family = iota
	familyNPC
	familyObject
	familyGroundItem
	familyPlayer
	familyInventory
	familyDrop
	familyWidgetTarget
	familyCustomComponent
	familyContinue
	familyWalk
)

// families is checked in this order; the first family containing the code wins.
var families = []struct {
	fam   family
	codes []model.MenuAction
}{
	{familyNPC, []model.MenuAction{
		model.MenuWidgetTargetOnNPC, model.MenuNPCFirst, model.MenuNPCSecond,
		model.MenuNPCThird, model.MenuNPCFourth, model.MenuNPCFifth,
	}},
	{familyObject, []model.MenuAction{
		model.MenuWidgetTargetOnObject, model.MenuObjectFirst, model.MenuObjectSecond,
		model.MenuObjectThird, model.MenuObjectFourth, model.MenuObjectFifth,
	}},
	{familyGroundItem, []model.MenuAction{
		model.MenuWidgetTargetOnGround, model.MenuGroundItemFirst, model.MenuGroundItemSecond,
		model.MenuGroundItemThird, model.MenuGroundItemFourth, model.MenuGroundItemFifth,
	}},
	{familyPlayer, []model.MenuAction{
		model.MenuPlayerFirst, model.MenuPlayerSecond, model.MenuPlayerThird,
		model.MenuPlayerFourth, model.MenuPlayerFifth, model.MenuWidgetTargetOnPlayer,
	}},
	{familyInventory, []model.MenuAction{
		model.MenuItemFirst, model.MenuItemSecond, model.MenuItemThird, model.MenuItemFourth,
	}},
	{familyDrop, []model.MenuAction{model.MenuItemFifth}},
	{familyWidgetTarget, []model.MenuAction{model.MenuWidgetTarget}},
	{familyCustomComponent, []model.MenuAction{model.MenuCCOp, model.MenuCCOpLowPriority}},
	{familyContinue, []model.MenuAction{model.MenuWidgetContinue}},
	{familyWalk, []model.MenuAction{model.MenuWalk}},
}

var familyOf = func() map[model.MenuAction]family {
	m := make(map[model.MenuAction]family)
	for _, f := range families {
		for _, c := range f.codes {
			if _, seen := m[c]; !seen {
				m[c] = f.fam
			}
		}
	}
	return m
}()

// dropOption is matched case-sensitively.
const dropOption = "Drop"

var fold = cases.Fold()

// Classify maps a menu click to a semantic action. The second result is false
// when the click is intentionally unmapped and must not be logged.
func Classify(ev model.MenuClick, r Resolver) (model.Action, bool) {
	switch familyOf[ev.Action] {
	case familyNPC:
		return located(model.CategoryNPCInteraction, "NPC", ev, r), true
	case familyObject:
		return located(model.CategoryObjectInteraction, "Object", ev, r), true
	case familyGroundItem:
		return located(model.CategoryItemPickup, "Item", ev, r), true
	case familyPlayer:
		return model.Action{
			Category: model.CategoryPlayerInteraction,
			Detail:   fmt.Sprintf("Option: %s, Target: %s, ID: %d", ev.Option, ev.Target, ev.ID),
		}, true
	case familyInventory:
		w := model.WidgetID(ev.Param1)
		return model.Action{
			Category: model.CategoryInventoryItem,
			Detail: fmt.Sprintf("Option: %s, Item: %s, ID: %d, Slot: %d, WidgetId: %d (group=%d, child=%d)",
				ev.Option, ev.Target, ev.ID, ev.Param0, int(w), w.Group(), w.Child()),
		}, true
	case familyDrop:
		if ev.Option != dropOption {
			return model.Action{}, false
		}
		return model.Action{
			Category: model.CategoryItemDrop,
			Detail:   fmt.Sprintf("Item: %s, ID: %d", ev.Target, ev.ID),
		}, true
	case familyWidgetTarget:
		w := model.WidgetID(ev.Param1)
		return model.Action{
			Category: model.CategoryWidgetTarget,
			Detail: fmt.Sprintf("Option: %s, Target: %s, WidgetId: %d (group=%d, child=%d), Slot: %d",
				ev.Option, ev.Target, int(w), w.Group(), w.Child(), ev.Param0),
		}, true
	case familyCustomComponent:
		if strings.Contains(fold.String(ev.Option), "prayer") {
			return model.Action{
				Category: model.CategoryPrayerToggle,
				Detail:   fmt.Sprintf("Prayer: %s", ev.Target),
			}, true
		}
		w := model.WidgetID(ev.Param1)
		return model.Action{
			Category: model.CategoryWidgetAction,
			Detail: fmt.Sprintf("Option: %s, Target: %s, WidgetId: %d (group=%d, child=%d), Param0: %d",
				ev.Option, ev.Target, int(w), w.Group(), w.Child(), ev.Param0),
		}, true
	case familyContinue:
		w := model.WidgetID(ev.Param1)
		return model.Action{
			Category: model.CategoryWidgetContinue,
			Detail:   fmt.Sprintf("WidgetId: %d (group=%d, child=%d)", int(w), w.Group(), w.Child()),
		}, true
	case familyWalk:
		wp, ok := r.ResolveScene(model.ScenePoint{X: ev.Param0, Y: ev.Param1})
		if !ok {
			// minimap clicks carry no scene coordinate
			wp, ok = r.Destination()
		}
		return model.Action{
			Category: model.CategoryWalkHere,
			Detail:   "Location: " + model.FormatLocation(wp, ok),
		}, true
	default:
		return model.Action{
			Category: model.CategoryMenuClick,
			Detail: fmt.Sprintf("MenuOption: %s, Target: %s, ID: %d, MenuAction: %s",
				ev.Option, ev.Target, ev.ID, ev.Action),
		}, true
	}
}

func located(cat model.Category, label string, ev model.MenuClick, r Resolver) model.Action {
	wp, ok := r.ResolveScene(model.ScenePoint{X: ev.Param0, Y: ev.Param1})
	return model.Action{
		Category: cat,
		Detail: fmt.Sprintf("%s: %s, ID: %d, Location: %s",
			label, ev.Target, ev.ID, model.FormatLocation(wp, ok)),
	}
}

// Family reports the category a menu code maps to, ignoring option text.
// Codes with option-dependent mapping report their primary category.
func Family(a model.MenuAction) model.Category {
	switch familyOf[a] {
	case familyNPC:
		return model.CategoryNPCInteraction
	case familyObject:
		return model.CategoryObjectInteraction
	case familyGroundItem:
		return model.CategoryItemPickup
	case familyPlayer:
		return model.CategoryPlayerInteraction
	case familyInventory:
		return model.CategoryInventoryItem
	case familyDrop:
		return model.CategoryItemDrop
	case familyWidgetTarget:
		return model.CategoryWidgetTarget
	case familyCustomComponent:
		return model.CategoryWidgetAction
	case familyContinue:
		return model.CategoryWidgetContinue
	case familyWalk:
		return model.CategoryWalkHere
	default:
		return model.CategoryMenuClick
	}
}
