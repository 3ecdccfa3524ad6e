package components

import (
	"github.com/automoto/leapdash/shared/gamemath"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// ObjectData wraps the resolv collider of an entity. Data points back at the
// owning donburi.Entity so collision checks can resolve entries.
type ObjectData struct {
	*resolv.Object
}

// MoveTo places the collider's top-left at p and refreshes its cells.
func (o ObjectData) MoveTo(p gamemath.Vec2) {
	o.X = p.X
	o.Y = p.Y
	o.Update()
}

var Object = donburi.NewComponentType[ObjectData]()
