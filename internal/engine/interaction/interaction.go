// Package interaction classifies what the local player is doing from the
// current animation and interaction target. The predicates are pure and look
// at one snapshot only.
package interaction

import (
	"strings"

	"github.com/crimson-sun/actionlog/internal/model"
)

const (
	// NoAnimation is the idle sentinel the host reports between animations.
	NoAnimation = -1

	// FlyingFishGraphic marks the minnow platform spot where flying fish
	// steal the catch; standing at it is not fishing.
	FlyingFishGraphic = 1387

	// ChiselEssenceAnimation is the dense essence chiselling animation,
	// counted as mining.
	ChiselEssenceAnimation = 7202

	fishingSpotName = "Fishing spot"
)

// FishingAnimations holds every animation played while fishing.
var FishingAnimations = set(
	618,  // harpoon
	619,  // lobster pot
	620,  // big net
	621,  // small net
	622,  // oily rod
	623,  // rod
	1193, // karambwan vessel
	5108, // barb-tail harpoon
	6709, // barehanded
	7151, // sacred eels
	7401, // dragon harpoon
	7402, // infernal harpoon
	7553, // infernal eels
	8336, // crystal harpoon
	8784, // trailblazer harpoon
)

// MiningAnimations holds the rock mining animation per pickaxe.
var MiningAnimations = set(
	624,  // rune
	625,  // bronze
	626,  // iron
	627,  // steel
	628,  // adamant
	629,  // mithril
	3873, // black
	4482, // infernal
	7139, // dragon
	7283, // 3rd age
	8313, // gilded
	8347, // crystal
	642,  // dragon (or)
)

// WallMiningAnimations holds the motherlode wall animation per pickaxe.
// The host resets these to NoAnimation for a tick whenever ore is received,
// so a caller that needs continuity must apply its own grace window.
var WallMiningAnimations = set(
	3866, // black
	4481, // infernal
	6752, // rune
	6753, // bronze
	6754, // iron
	6755, // steel
	6756, // adamant
	6757, // mithril
	6758, // dragon
	7282, // 3rd age
	8346, // crystal
)

// IsFishing reports whether the snapshot shows the player fishing: targeting a
// fishing spot that is not the flying-fish variant while playing a fishing
// animation.
func IsFishing(s model.InteractionSnapshot) bool {
	if !s.HasTarget || !strings.Contains(s.TargetName, fishingSpotName) {
		return false
	}
	if s.TargetGraphic == FlyingFishGraphic {
		return false
	}
	_, ok := FishingAnimations[s.Animation]
	return ok
}

// IsMining reports whether the current animation is a mining animation.
func IsMining(s model.InteractionSnapshot) bool {
	if _, ok := MiningAnimations[s.Animation]; ok {
		return true
	}
	if s.Animation == ChiselEssenceAnimation {
		return true
	}
	_, ok := WallMiningAnimations[s.Animation]
	return ok
}

func set(ids ...int) map[int]struct{} {
	m := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}
