package model

import "fmt"

// ScenePoint is a tile coordinate relative to the loaded scene.
type ScenePoint struct {
	X int
	Y int
}

// WorldPoint is an absolute tile coordinate.
type WorldPoint struct {
	X     int `json:"x" yaml:"x"`
	Y     int `json:"y" yaml:"y"`
	Plane int `json:"plane" yaml:"plane"`
}

func (p WorldPoint) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Plane)
}

// UnknownLocation is rendered wherever a position cannot be resolved.
const UnknownLocation = "unknown"

// FormatLocation renders p, or UnknownLocation when ok is false.
func FormatLocation(p WorldPoint, ok bool) string {
	if !ok {
		return UnknownLocation
	}
	return p.String()
}

// WorldArea is a rectangle of tiles anchored at its south-west corner.
type WorldArea struct {
	Origin WorldPoint
	Width  int
	Height int
}

// Contains reports whether p lies inside the area on the same plane.
func (a WorldArea) Contains(p WorldPoint) bool {
	return p.Plane == a.Origin.Plane &&
		p.X >= a.Origin.X && p.X < a.Origin.X+a.Width &&
		p.Y >= a.Origin.Y && p.Y < a.Origin.Y+a.Height
}

// WidgetID is a packed (group, child) UI element identifier.
type WidgetID int

// NewWidgetID packs group and child into a WidgetID.
func NewWidgetID(group, child int) WidgetID {
	return WidgetID(group<<16 | child&0xFFFF)
}

// Group returns the interface group half of the id.
func (w WidgetID) Group() int { return int(w) >> 16 }

// Child returns the component half of the id.
func (w WidgetID) Child() int { return int(w) & 0xFFFF }

// NPC is a non-player character currently loaded in the scene.
type NPC struct {
	Identity uint64     `json:"identity" yaml:"identity"`
	Name     string     `json:"name" yaml:"name"`
	ID       int        `json:"id" yaml:"id"`
	Location WorldPoint `json:"location" yaml:"location"`
}

// InteractionSnapshot is the local player's animation and interaction target
// for the current tick.
type InteractionSnapshot struct {
	Animation     int    `json:"animation" yaml:"animation"`
	HasTarget     bool   `json:"has_target" yaml:"has_target"`
	TargetName    string `json:"target_name" yaml:"target_name"`
	TargetGraphic int    `json:"target_graphic" yaml:"target_graphic"`
}
