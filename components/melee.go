package components

import "github.com/yohamta/donburi"

// AttackSwingData is the host's melee swing animation. A dash rides alongside
// it and ends when the swing ends.
type AttackSwingData struct {
	Active    bool
	TicksLeft int
	Total     int
	// HitThisSwing holds targets the host's own swing has already damaged.
	HitThisSwing map[donburi.Entity]struct{}
}

var AttackSwing = donburi.NewComponentType[AttackSwingData]()
