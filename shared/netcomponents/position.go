package netcomponents

import (
	"github.com/automoto/leapdash/shared/gamemath"
	"github.com/yohamta/donburi"
)

// NetPositionData is the best-effort ground position the relay syncs for
// every actor. Jump offsets and dash residue are never folded into it.
type NetPositionData struct {
	X, Y float64
}

// Vec returns the position as a vector.
func (p NetPositionData) Vec() gamemath.Vec2 {
	return gamemath.Vec2{X: p.X, Y: p.Y}
}

var NetPosition = donburi.NewComponentType[NetPositionData]()

// LerpNetPosition is the snapshot interpolation function registered for
// NetPosition.
func LerpNetPosition(from, to NetPositionData, t float64) *NetPositionData {
	v := gamemath.Lerp(from.Vec(), to.Vec(), t)
	return &NetPositionData{X: v.X, Y: v.Y}
}
