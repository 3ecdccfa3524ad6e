package action

import (
	"log"

	"github.com/automoto/leapdash/shared/gamemath"
	"github.com/automoto/leapdash/shared/leveldata"
	"github.com/automoto/leapdash/tags"
	"github.com/solarlune/resolv"
)

// Level pairs the tile grid with the resolv space used for swept movement.
type Level struct {
	Grid  *leveldata.TileGrid
	Space *resolv.Space
	// Solids counts the colliders built from the grid.
	Solids int

	scratch *resolv.Object
}

// NewLevel builds a collision space from the grid. Walls, water, jumpable
// scenery and placed objects all stop walking and dashing; only jumps cross
// them.
func NewLevel(grid *leveldata.TileGrid) *Level {
	w, h := grid.PixelSize()
	space := resolv.NewSpace(w, h, 16, 16)
	lvl := &Level{Grid: grid, Space: space}

	const size = float64(gamemath.TileSize)
	blocking := leveldata.FlagSolid | leveldata.FlagWater | leveldata.FlagJumpable
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			t := gamemath.Tile{X: x, Y: y}
			_, hasObstacle := grid.ObstacleAt(t)
			if grid.FlagsAt(t)&blocking == 0 && !hasObstacle {
				continue
			}
			obj := resolv.NewObject(float64(x)*size, float64(y)*size, size, size, tags.ResolvSolid)
			obj.SetShape(resolv.NewRectangle(0, 0, size, size))
			obj.Data = t
			space.Add(obj)
			lvl.Solids++
		}
	}

	lvl.scratch = resolv.NewObject(0, 0, 1, 1, tags.ResolvSensor)
	space.Add(lvl.scratch)

	log.Printf("[action] level %q: %d solid tiles, %dx%d px", grid.Name, lvl.Solids, w, h)
	return lvl
}

// Blocked reports whether a box at pos would overlap a solid collider or
// leave the map. obj is the mover's collider; nil checks with a scratch box.
func (l *Level) Blocked(obj *resolv.Object, pos gamemath.Vec2, w, h float64) bool {
	mw, mh := l.Grid.PixelSize()
	if pos.X < 0 || pos.Y < 0 || pos.X+w > float64(mw) || pos.Y+h > float64(mh) {
		return true
	}
	if obj == nil {
		obj = l.scratch
		obj.W, obj.H = w, h
	}
	check := obj.Check(pos.X-obj.X, pos.Y-obj.Y, tags.ResolvSolid)
	if check == nil {
		return false
	}
	for _, o := range check.Objects {
		if boxOverlap(pos.X, pos.Y, w, h, o.X, o.Y, o.W, o.H) {
			return true
		}
	}
	return false
}

// boxOverlap is a strict AABB test; touching edges do not overlap. resolv
// reports everything sharing a cell, so callers confirm with this.
func boxOverlap(ax, ay, aw, ah, bx, by, bw, bh float64) bool {
	return ax < bx+bw && ax+aw > bx && ay < by+bh && ay+ah > by
}
