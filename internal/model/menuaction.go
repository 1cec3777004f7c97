package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
)

// MenuAction is the raw interaction code attached to a menu option.
type MenuAction int

const (
	MenuUnknown              MenuAction = -1
	MenuWidgetTargetOnObject MenuAction = 2
	MenuObjectFirst          MenuAction = 3
	MenuObjectSecond         MenuAction = 4
	MenuObjectThird          MenuAction = 5
	MenuObjectFourth         MenuAction = 6
	MenuWidgetTargetOnNPC    MenuAction = 8
	MenuNPCFirst             MenuAction = 9
	MenuNPCSecond            MenuAction = 10
	MenuNPCThird             MenuAction = 11
	MenuNPCFourth            MenuAction = 12
	MenuNPCFifth             MenuAction = 13
	MenuWidgetTargetOnPlayer MenuAction = 15
	MenuWidgetTargetOnGround MenuAction = 17
	MenuGroundItemFirst      MenuAction = 18
	MenuGroundItemSecond     MenuAction = 19
	MenuGroundItemThird      MenuAction = 20
	MenuGroundItemFourth     MenuAction = 21
	MenuGroundItemFifth      MenuAction = 22
	MenuWalk                 MenuAction = 23
	MenuWidgetType1          MenuAction = 24
	MenuWidgetTarget         MenuAction = 25
	MenuWidgetClose          MenuAction = 26
	MenuWidgetType4          MenuAction = 28
	MenuWidgetType5          MenuAction = 29
	MenuWidgetContinue       MenuAction = 30
	MenuItemFirst            MenuAction = 33
	MenuItemSecond           MenuAction = 34
	MenuItemThird            MenuAction = 35
	MenuItemFourth           MenuAction = 36
	MenuItemFifth            MenuAction = 37
	MenuItemUse              MenuAction = 38
	MenuPlayerFirst          MenuAction = 44
	MenuPlayerSecond         MenuAction = 45
	MenuPlayerThird          MenuAction = 46
	MenuPlayerFourth         MenuAction = 47
	MenuPlayerFifth          MenuAction = 48
	MenuCCOp                 MenuAction = 57
	MenuWidgetTargetOnWidget MenuAction = 58
	MenuObjectFifth          MenuAction = 1001
	MenuExamineObject        MenuAction = 1002
	MenuExamineNPC           MenuAction = 1003
	MenuExamineGroundItem    MenuAction = 1004
	MenuCancel               MenuAction = 1006
	MenuCCOpLowPriority      MenuAction = 1007
	MenuRuneLite             MenuAction = 1500
)

var menuActionNames = map[MenuAction]string{
	MenuUnknown:              "UNKNOWN",
	MenuWidgetTargetOnObject: "WIDGET_TARGET_ON_GAME_OBJECT",
	MenuObjectFirst:          "GAME_OBJECT_FIRST_OPTION",
	MenuObjectSecond:         "GAME_OBJECT_SECOND_OPTION",
	MenuObjectThird:          "GAME_OBJECT_THIRD_OPTION",
	MenuObjectFourth:         "GAME_OBJECT_FOURTH_OPTION",
	MenuObjectFifth:          "GAME_OBJECT_FIFTH_OPTION",
	MenuWidgetTargetOnNPC:    "WIDGET_TARGET_ON_NPC",
	MenuNPCFirst:             "NPC_FIRST_OPTION",
	MenuNPCSecond:            "NPC_SECOND_OPTION",
	MenuNPCThird:             "NPC_THIRD_OPTION",
	MenuNPCFourth:            "NPC_FOURTH_OPTION",
	MenuNPCFifth:             "NPC_FIFTH_OPTION",
	MenuWidgetTargetOnPlayer: "WIDGET_TARGET_ON_PLAYER",
	MenuWidgetTargetOnGround: "WIDGET_TARGET_ON_GROUND_ITEM",
	MenuGroundItemFirst:      "GROUND_ITEM_FIRST_OPTION",
	MenuGroundItemSecond:     "GROUND_ITEM_SECOND_OPTION",
	MenuGroundItemThird:      "GROUND_ITEM_THIRD_OPTION",
	MenuGroundItemFourth:     "GROUND_ITEM_FOURTH_OPTION",
	MenuGroundItemFifth:      "GROUND_ITEM_FIFTH_OPTION",
	MenuWalk:                 "WALK",
	MenuWidgetType1:          "WIDGET_TYPE_1",
	MenuWidgetTarget:         "WIDGET_TARGET",
	MenuWidgetClose:          "WIDGET_CLOSE",
	MenuWidgetType4:          "WIDGET_TYPE_4",
	MenuWidgetType5:          "WIDGET_TYPE_5",
	MenuWidgetContinue:       "WIDGET_CONTINUE",
	MenuItemFirst:            "ITEM_FIRST_OPTION",
	MenuItemSecond:           "ITEM_SECOND_OPTION",
	MenuItemThird:            "ITEM_THIRD_OPTION",
	MenuItemFourth:           "ITEM_FOURTH_OPTION",
	MenuItemFifth:            "ITEM_FIFTH_OPTION",
	MenuItemUse:              "ITEM_USE",
	MenuPlayerFirst:          "PLAYER_FIRST_OPTION",
	MenuPlayerSecond:         "PLAYER_SECOND_OPTION",
	MenuPlayerThird:          "PLAYER_THIRD_OPTION",
	MenuPlayerFourth:         "PLAYER_FOURTH_OPTION",
	MenuPlayerFifth:          "PLAYER_FIFTH_OPTION",
	MenuCCOp:                 "CC_OP",
	MenuWidgetTargetOnWidget: "WIDGET_TARGET_ON_WIDGET",
	MenuExamineObject:        "EXAMINE_OBJECT",
	MenuExamineNPC:           "EXAMINE_NPC",
	MenuExamineGroundItem:    "EXAMINE_ITEM_GROUND",
	MenuCancel:               "CANCEL",
	MenuCCOpLowPriority:      "CC_OP_LOW_PRIORITY",
	MenuRuneLite:             "RUNELITE",
}

var menuActionsByName = func() map[string]MenuAction {
	m := make(map[string]MenuAction, len(menuActionNames))
	for a, n := range menuActionNames {
		m[n] = a
	}
	return m
}()

// String returns the upper-snake name of the code, or its number when the
// code is not in the table.
func (a MenuAction) String() string {
	if n, ok := menuActionNames[a]; ok {
		return n
	}
	return strconv.Itoa(int(a))
}

// ParseMenuAction accepts either a code name ("NPC_FIRST_OPTION") or a
// decimal code. Unlisted numeric codes are preserved as-is.
func ParseMenuAction(s string) (MenuAction, error) {
	if a, ok := menuActionsByName[s]; ok {
		return a, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return MenuUnknown, fmt.Errorf("unknown menu action %q", s)
	}
	return MenuAction(n), nil
}

func (a MenuAction) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *MenuAction) UnmarshalText(b []byte) error {
	v, err := ParseMenuAction(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// UnmarshalJSON accepts the raw integer code hosts send as well as a code
// name or quoted number.
func (a *MenuAction) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		return a.UnmarshalText([]byte(s))
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("menu action: %w", err)
	}
	*a = MenuAction(n)
	return nil
}

// MenuActions returns every named code in ascending order.
func MenuActions() []MenuAction {
	out := make([]MenuAction, 0, len(menuActionNames))
	for a := range menuActionNames {
		out = append(out, a)
	}
	slices.Sort(out)
	return out
}
