package leveldata_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/automoto/leapdash/assets"
	"github.com/automoto/leapdash/shared/gamemath"
	"github.com/automoto/leapdash/shared/leveldata"
)

func TestLoadDemoLevel(t *testing.T) {
	grid, err := leveldata.LoadTileGrid(assets.Levels(), assets.LevelPath(""))
	if err != nil {
		t.Fatalf("load demo: %v", err)
	}
	if grid.Width != 20 || grid.Height != 12 {
		t.Fatalf("size = %dx%d, want 20x12", grid.Width, grid.Height)
	}

	tests := []struct {
		name string
		tile gamemath.Tile
		want leveldata.TileFlags
	}{
		{"border wall", gamemath.Tile{X: 0, Y: 0}, leveldata.FlagSolid},
		{"open grass", gamemath.Tile{X: 3, Y: 3}, 0},
		{"fence", gamemath.Tile{X: 8, Y: 3}, leveldata.FlagJumpable},
		{"interior wall", gamemath.Tile{X: 12, Y: 3}, leveldata.FlagSolid},
		{"archway", gamemath.Tile{X: 12, Y: 5}, 0},
		{"pond", gamemath.Tile{X: 14, Y: 8}, leveldata.FlagWater},
		{"outside map", gamemath.Tile{X: -1, Y: 4}, leveldata.FlagSolid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := grid.FlagsAt(tt.tile); got != tt.want {
				t.Fatalf("FlagsAt(%+v) = %b, want %b", tt.tile, got, tt.want)
			}
		})
	}

	if o, ok := grid.ObstacleAt(gamemath.Tile{X: 5, Y: 7}); !ok || o.Kind != "trashcan" {
		t.Fatalf("expected trashcan at (5,7), got %+v ok=%v", o, ok)
	}
	if len(grid.PlayerSpawns) != 3 || grid.PlayerSpawns[0].Index != 0 {
		t.Fatalf("player spawns = %+v", grid.PlayerSpawns)
	}
	if len(grid.HostileSpawns) != 3 || grid.HostileSpawns[2].Health != 45 {
		t.Fatalf("hostile spawns = %+v", grid.HostileSpawns)
	}
}

func TestLoadTileGridMissingLayer(t *testing.T) {
	fsys := fstest.MapFS{
		"levels/empty.tmx": {Data: []byte(`<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="2" height="1" tilewidth="64" tileheight="64" infinite="0">
 <layer id="1" name="Back" width="2" height="1">
  <data encoding="csv">
0,0
</data>
 </layer>
</map>
`)},
	}
	_, err := leveldata.LoadTileGrid(fsys, "levels/empty.tmx")
	if !errors.Is(err, leveldata.ErrNoLayer) {
		t.Fatalf("expected ErrNoLayer, got %v", err)
	}
}

func TestLoadAllLevels(t *testing.T) {
	levels, names, err := leveldata.LoadAllLevels(assets.Levels(), "levels")
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(names) == 0 || names[0] != "demo" {
		t.Fatalf("names = %v", names)
	}
	if levels["demo"] == nil {
		t.Fatal("demo level missing from map")
	}
}

func TestGridSetIgnoresOutOfBounds(t *testing.T) {
	g := leveldata.NewTileGrid(2, 2)
	g.Set(gamemath.Tile{X: 5, Y: 5}, leveldata.FlagWater)
	g.Set(gamemath.Tile{X: 1, Y: 1}, leveldata.FlagWater|leveldata.FlagJumpable)
	if !g.FlagsAt(gamemath.Tile{X: 1, Y: 1}).Has(leveldata.FlagJumpable) {
		t.Fatal("expected jumpable flag to stick")
	}
	if w, h := g.PixelSize(); w != 128 || h != 128 {
		t.Fatalf("pixel size = %dx%d", w, h)
	}
}
