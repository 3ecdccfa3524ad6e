package gamemath

import "math"

// TileSize is the edge length of a world tile in pixels.
const TileSize = 64

// Tile is an integer tile coordinate.
type Tile struct {
	X, Y int
}

func (t Tile) Add(o Tile) Tile { return Tile{t.X + o.X, t.Y + o.Y} }

func (t Tile) Scale(n int) Tile { return Tile{t.X * n, t.Y * n} }

// FacingStep returns the unit tile step for a facing value (0 up, 1 right,
// 2 down, 3 left). Unknown values step nowhere.
func FacingStep(facing int) Tile {
	switch facing {
	case 0:
		return Tile{0, -1}
	case 1:
		return Tile{1, 0}
	case 2:
		return Tile{0, 1}
	case 3:
		return Tile{-1, 0}
	default:
		return Tile{}
	}
}

// FacingVector is FacingStep as a unit vector.
func FacingVector(facing int) Vec2 {
	s := FacingStep(facing)
	return Vec2{float64(s.X), float64(s.Y)}
}

// TileAt returns the tile containing the center of a w x h box whose
// top-left corner is at pos.
func TileAt(pos Vec2, w, h float64) Tile {
	return Tile{
		X: int(math.Floor((pos.X + w/2) / TileSize)),
		Y: int(math.Floor((pos.Y + h/2) / TileSize)),
	}
}

// TileTarget returns the top-left position that centers a w x h box on tile t.
func TileTarget(t Tile, w, h float64) Vec2 {
	return Vec2{
		X: float64(t.X*TileSize+TileSize/2) - w/2,
		Y: float64(t.Y*TileSize+TileSize/2) - h/2,
	}
}
