package core

import (
	"fmt"
	"log"
	"strings"

	"github.com/automoto/leapdash/assets"
	"github.com/automoto/leapdash/shared/gamemath"
	"github.com/automoto/leapdash/shared/leveldata"
)

// ServerLevel holds the bounds and spawn data the relay needs for a level.
type ServerLevel struct {
	Grid        *leveldata.TileGrid
	SpawnPoints []leveldata.SpawnPoint
	MapWidth    int
	MapHeight   int
}

// NewServerLevel wraps a parsed grid.
func NewServerLevel(grid *leveldata.TileGrid) *ServerLevel {
	w, h := grid.PixelSize()
	log.Printf("[relay] loaded level %q: %d spawn points, %dx%d map",
		grid.Name, len(grid.PlayerSpawns), w, h)
	return &ServerLevel{
		Grid:        grid,
		SpawnPoints: grid.PlayerSpawns,
		MapWidth:    w,
		MapHeight:   h,
	}
}

// LoadServerLevel loads a level embedded in the assets package. An unknown
// name fails with the list of levels that do exist.
func LoadServerLevel(name string) (*ServerLevel, error) {
	levels, names, err := leveldata.LoadAllLevels(assets.Levels(), "levels")
	if err != nil {
		return nil, fmt.Errorf("load levels: %w", err)
	}
	grid, ok := levels[name]
	if !ok {
		return nil, fmt.Errorf("unknown level %q (have %s)", name, strings.Join(names, ", "))
	}
	return NewServerLevel(grid), nil
}

// Spawn returns the spawn for the n-th joined peer, cycling through the
// level's spawn points.
func (l *ServerLevel) Spawn(n int) gamemath.Vec2 {
	if len(l.SpawnPoints) == 0 {
		return gamemath.Vec2{X: gamemath.TileSize, Y: gamemath.TileSize}
	}
	sp := l.SpawnPoints[n%len(l.SpawnPoints)]
	return gamemath.Vec2{X: sp.X, Y: sp.Y}
}

// Clamp keeps a reported position inside the map.
func (l *ServerLevel) Clamp(p gamemath.Vec2) gamemath.Vec2 {
	return gamemath.Vec2{
		X: gamemath.ClampFloat(p.X, 0, float64(l.MapWidth)),
		Y: gamemath.ClampFloat(p.Y, 0, float64(l.MapHeight)),
	}
}
