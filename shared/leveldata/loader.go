package leveldata

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/automoto/leapdash/shared/gamemath"
	"github.com/lafriks/go-tiled"
)

// Layer and object group names read from TMX files.
const (
	LayerBack        = "Back"
	LayerBuildings   = "Buildings"
	GroupObjects     = "Objects"
	GroupSpawns      = "Spawns"
	propWater        = "Water"
	propPassable     = "Passable"
	propJumpable     = "Jumpable"
	propObstacleKind = "kind"
)

// ErrNoLayer is returned when a map lacks the Buildings layer.
var ErrNoLayer = errors.New("missing Buildings layer")

// LoadTileGrid parses a TMX file into a TileGrid. It takes an fs.FS so callers
// can pass embed.FS (client) or os.DirFS (relay).
func LoadTileGrid(fsys fs.FS, tmxPath string) (*TileGrid, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	if levelMap.TileWidth != gamemath.TileSize || levelMap.TileHeight != gamemath.TileSize {
		return nil, fmt.Errorf("load TMX %s: tile size %dx%d, want %d", tmxPath,
			levelMap.TileWidth, levelMap.TileHeight, gamemath.TileSize)
	}

	grid := NewTileGrid(levelMap.Width, levelMap.Height)
	grid.Name = strings.TrimSuffix(filepath.Base(tmxPath), ".tmx")

	foundBuildings := false
	for _, layer := range levelMap.Layers {
		switch layer.Name {
		case LayerBack:
			grid.readLayer(layer, levelMap.Width, levelMap.Height, false)
		case LayerBuildings:
			foundBuildings = true
			grid.readLayer(layer, levelMap.Width, levelMap.Height, true)
		}
	}
	if !foundBuildings {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, ErrNoLayer)
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case GroupObjects:
			for _, o := range og.Objects {
				kind := o.Properties.GetString(propObstacleKind)
				if kind == "" {
					kind = o.Name
				}
				t := tileOfObject(o.X, o.Y, o.Width, o.Height)
				grid.Obstacles[t] = Obstacle{Tile: t, Kind: kind}
			}
		case GroupSpawns:
			for _, o := range og.Objects {
				sp := SpawnPoint{
					X:      o.X,
					Y:      o.Y,
					W:      o.Width,
					H:      o.Height,
					Index:  o.Properties.GetInt("spawnIndex"),
					Health: o.Properties.GetInt("health"),
				}
				if o.Name == "hostile" {
					grid.HostileSpawns = append(grid.HostileSpawns, sp)
				} else {
					grid.PlayerSpawns = append(grid.PlayerSpawns, sp)
				}
			}
		}
	}

	sort.Slice(grid.PlayerSpawns, func(i, j int) bool {
		return grid.PlayerSpawns[i].Index < grid.PlayerSpawns[j].Index
	})

	return grid, nil
}

// readLayer folds one tile layer's tileset properties into the grid flags.
// Any non-nil Buildings tile is solid unless it carries Passable=true.
func (g *TileGrid) readLayer(layer *tiled.Layer, w, h int, buildings bool) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			tile := layer.Tiles[y*w+x]
			if tile.IsNil() {
				continue
			}

			water, passable, jumpable := false, false, false
			if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
				water = tilesetTile.Properties.GetString(propWater) == "true"
				passable = tilesetTile.Properties.GetString(propPassable) == "true"
				jumpable = tilesetTile.Properties.GetString(propJumpable) == "true"
			}

			t := gamemath.Tile{X: x, Y: y}
			f := g.FlagsAt(t)
			if water {
				f |= FlagWater
			}
			switch {
			case jumpable:
				f |= FlagJumpable
			case buildings && !passable:
				f |= FlagSolid
			}
			g.Set(t, f)
		}
	}
}

func tileOfObject(x, y, w, h float64) gamemath.Tile {
	return gamemath.Tile{
		X: int(math.Floor((x + w/2) / gamemath.TileSize)),
		Y: int(math.Floor((y + h/2) / gamemath.TileSize)),
	}
}

// LoadAllLevels discovers all .tmx files in levelsDir within fsys and returns
// a map keyed by stem name plus a sorted list of names.
func LoadAllLevels(fsys fs.FS, levelsDir string) (map[string]*TileGrid, []string, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", levelsDir)
	}

	levels := make(map[string]*TileGrid, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		grid, err := LoadTileGrid(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		levels[grid.Name] = grid
		names = append(names, grid.Name)
	}

	sort.Strings(names)
	return levels, names, nil
}
