package model

import (
	"fmt"
	"math/bits"
)

// Prayer is a toggleable protection or boost mode.
type Prayer uint8

const (
	ThickSkin Prayer = iota
	BurstOfStrength
	ClarityOfThought
	SharpEye
	MysticWill
	RockSkin
	SuperhumanStrength
	ImprovedReflexes
	RapidRestore
	RapidHeal
	ProtectItem
	HawkEye
	MysticLore
	SteelSkin
	UltimateStrength
	IncredibleReflexes
	ProtectFromMagic
	ProtectFromMissiles
	ProtectFromMelee
	EagleEye
	MysticMight
	Retribution
	Redemption
	Smite
	Preserve
	Chivalry
	Piety
	Rigour
	Augury

	prayerCount
)

var prayerNames = [prayerCount]string{
	"THICK_SKIN",
	"BURST_OF_STRENGTH",
	"CLARITY_OF_THOUGHT",
	"SHARP_EYE",
	"MYSTIC_WILL",
	"ROCK_SKIN",
	"SUPERHUMAN_STRENGTH",
	"IMPROVED_REFLEXES",
	"RAPID_RESTORE",
	"RAPID_HEAL",
	"PROTECT_ITEM",
	"HAWK_EYE",
	"MYSTIC_LORE",
	"STEEL_SKIN",
	"ULTIMATE_STRENGTH",
	"INCREDIBLE_REFLEXES",
	"PROTECT_FROM_MAGIC",
	"PROTECT_FROM_MISSILES",
	"PROTECT_FROM_MELEE",
	"EAGLE_EYE",
	"MYSTIC_MIGHT",
	"RETRIBUTION",
	"REDEMPTION",
	"SMITE",
	"PRESERVE",
	"CHIVALRY",
	"PIETY",
	"RIGOUR",
	"AUGURY",
}

// Prayers returns every prayer in declaration order.
func Prayers() []Prayer {
	out := make([]Prayer, prayerCount)
	for i := range out {
		out[i] = Prayer(i)
	}
	return out
}

func (p Prayer) String() string {
	if p < prayerCount {
		return prayerNames[p]
	}
	return fmt.Sprintf("PRAYER_%d", uint8(p))
}

// ParsePrayer looks a prayer up by its upper-snake name.
func ParsePrayer(s string) (Prayer, error) {
	for i, n := range prayerNames {
		if n == s {
			return Prayer(i), nil
		}
	}
	return 0, fmt.Errorf("unknown prayer %q", s)
}

func (p Prayer) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Prayer) UnmarshalText(b []byte) error {
	v, err := ParsePrayer(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// PrayerSet is a fixed-size set of prayers.
type PrayerSet uint64

// NewPrayerSet returns a set holding ps.
func NewPrayerSet(ps ...Prayer) PrayerSet {
	var s PrayerSet
	for _, p := range ps {
		s = s.Add(p)
	}
	return s
}

func (s PrayerSet) Has(p Prayer) bool           { return s&(1<<p) != 0 }
func (s PrayerSet) Add(p Prayer) PrayerSet      { return s | 1<<p }
func (s PrayerSet) Remove(p Prayer) PrayerSet   { return s &^ (1 << p) }
func (s PrayerSet) Minus(o PrayerSet) PrayerSet { return s &^ o }
func (s PrayerSet) Len() int                    { return bits.OnesCount64(uint64(s)) }

// Each calls fn for every member in declaration order.
func (s PrayerSet) Each(fn func(Prayer)) {
	for s != 0 {
		p := Prayer(bits.TrailingZeros64(uint64(s)))
		fn(p)
		s = s.Remove(p)
	}
}

// Slice returns the members in declaration order.
func (s PrayerSet) Slice() []Prayer {
	out := make([]Prayer, 0, s.Len())
	s.Each(func(p Prayer) { out = append(out, p) })
	return out
}
