// Package leveldata provides TMX level parsing shared between client and relay.
// It has no dependencies on ebitengine, donburi, or resolv; pure data only.
package leveldata

import "github.com/automoto/leapdash/shared/gamemath"

// TileFlags describes the static terrain of one tile.
type TileFlags uint8

const (
	// FlagSolid marks a Buildings tile that is not Passable.
	FlagSolid TileFlags = 1 << iota
	// FlagWater marks a tile whose Back layer has Water=true.
	FlagWater
	// FlagJumpable marks a tile that can be cleared mid-air but not landed on.
	FlagJumpable
)

// Has reports whether all bits of o are set.
func (f TileFlags) Has(o TileFlags) bool { return f&o == o }

// Obstacle is a placed object occupying one tile, e.g. a trash can or boulder.
type Obstacle struct {
	Tile gamemath.Tile
	Kind string
}

// SpawnPoint is a player or hostile spawn location (top-left of the box).
type SpawnPoint struct {
	X, Y   float64
	W, H   float64
	Index  int
	Health int
}

// TileGrid holds all terrain data parsed from a TMX level file.
type TileGrid struct {
	Name          string
	Width         int // tiles
	Height        int // tiles
	TileWidth     int
	TileHeight    int
	Flags         []TileFlags
	Obstacles     map[gamemath.Tile]Obstacle
	PlayerSpawns  []SpawnPoint
	HostileSpawns []SpawnPoint
}

// NewTileGrid returns an empty, fully walkable grid. Tests and tools build
// synthetic maps with it.
func NewTileGrid(w, h int) *TileGrid {
	return &TileGrid{
		Width:      w,
		Height:     h,
		TileWidth:  gamemath.TileSize,
		TileHeight: gamemath.TileSize,
		Flags:      make([]TileFlags, w*h),
		Obstacles:  make(map[gamemath.Tile]Obstacle),
	}
}

// InBounds reports whether t lies inside the map.
func (g *TileGrid) InBounds(t gamemath.Tile) bool {
	return t.X >= 0 && t.Y >= 0 && t.X < g.Width && t.Y < g.Height
}

// FlagsAt returns the flags of t. Out-of-bounds tiles read as solid.
func (g *TileGrid) FlagsAt(t gamemath.Tile) TileFlags {
	if !g.InBounds(t) {
		return FlagSolid
	}
	return g.Flags[t.Y*g.Width+t.X]
}

// Set overwrites the flags of t. Out-of-bounds writes are ignored.
func (g *TileGrid) Set(t gamemath.Tile, f TileFlags) {
	if g.InBounds(t) {
		g.Flags[t.Y*g.Width+t.X] = f
	}
}

// ObstacleAt returns the object on t, if any.
func (g *TileGrid) ObstacleAt(t gamemath.Tile) (Obstacle, bool) {
	o, ok := g.Obstacles[t]
	return o, ok
}

// PixelSize returns the map size in pixels.
func (g *TileGrid) PixelSize() (int, int) {
	return g.Width * g.TileWidth, g.Height * g.TileHeight
}
