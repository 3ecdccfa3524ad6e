package trajectory

import (
	"testing"

	"github.com/automoto/leapdash/shared/gamemath"
)

type tileKind int

const (
	open tileKind = iota
	blocking
	vaultable
	unlandable
)

type fakeEnv map[gamemath.Tile]tileKind

func (e fakeEnv) IsBlocking(t gamemath.Tile) bool  { return e[t] == blocking }
func (e fakeEnv) IsVaultable(t gamemath.Tile) bool { return e[t] == vaultable }
func (e fakeEnv) IsLandable(t gamemath.Tile) bool  { return e[t] == open }

func TestPlan(t *testing.T) {
	east := 1
	tests := []struct {
		name string
		env  fakeEnv
		req  Request
		want gamemath.Tile
		dist int
	}{
		{
			name: "vault then land then wall",
			env: fakeEnv{
				{X: 6, Y: 5}: vaultable,
				{X: 7, Y: 5}: open,
				{X: 8, Y: 5}: blocking,
			},
			req:  Request{From: gamemath.Tile{X: 5, Y: 5}, Facing: east, Magnitude: 3},
			want: gamemath.Tile{X: 7, Y: 5},
			dist: 2,
		},
		{
			name: "open field takes full distance",
			env:  fakeEnv{},
			req:  Request{From: gamemath.Tile{X: 0, Y: 0}, Facing: 2, Magnitude: 4},
			want: gamemath.Tile{X: 0, Y: 4},
			dist: 4,
		},
		{
			name: "wall right ahead is a vertical hop",
			env:  fakeEnv{{X: 6, Y: 5}: blocking},
			req:  Request{From: gamemath.Tile{X: 5, Y: 5}, Facing: east, Magnitude: 3},
			want: gamemath.Tile{X: 5, Y: 5},
			dist: 0,
		},
		{
			name: "unlandable stops scan",
			env:  fakeEnv{{X: 7, Y: 5}: unlandable},
			req:  Request{From: gamemath.Tile{X: 5, Y: 5}, Facing: east, Magnitude: 4},
			want: gamemath.Tile{X: 6, Y: 5},
			dist: 1,
		},
		{
			name: "never crosses a wall even with landable tiles beyond",
			env:  fakeEnv{{X: 5, Y: 4}: blocking},
			req:  Request{From: gamemath.Tile{X: 5, Y: 5}, Facing: 0, Magnitude: 3},
			want: gamemath.Tile{X: 5, Y: 5},
			dist: 0,
		},
		{
			name: "zero magnitude defaults to one tile",
			env:  fakeEnv{},
			req:  Request{From: gamemath.Tile{X: 2, Y: 2}, Facing: 3, Magnitude: 0},
			want: gamemath.Tile{X: 1, Y: 2},
			dist: 1,
		},
		{
			name: "mounted floor extends scan",
			env:  fakeEnv{},
			req:  Request{From: gamemath.Tile{X: 0, Y: 0}, Facing: east, Magnitude: 1, Mounted: true, MountedMinDistance: 3},
			want: gamemath.Tile{X: 3, Y: 0},
			dist: 3,
		},
		{
			name: "hop over anything ignores vault rules but not walls",
			env: fakeEnv{
				{X: 1, Y: 0}: unlandable,
				{X: 2, Y: 0}: vaultable,
				{X: 3, Y: 0}: blocking,
			},
			req:  Request{From: gamemath.Tile{X: 0, Y: 0}, Facing: east, Magnitude: 5, HopOverAnything: true},
			want: gamemath.Tile{X: 2, Y: 0},
			dist: 2,
		},
		{
			name: "vaultable at the end of the scan keeps earlier landing",
			env:  fakeEnv{{X: 2, Y: 0}: vaultable},
			req:  Request{From: gamemath.Tile{X: 0, Y: 0}, Facing: east, Magnitude: 2},
			want: gamemath.Tile{X: 1, Y: 0},
			dist: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Plan(tt.env, tt.req)
			if got.Tile != tt.want || got.Distance != tt.dist {
				t.Fatalf("Plan = %+v, want tile %+v distance %d", got, tt.want, tt.dist)
			}
			if tt.env.IsBlocking(got.Tile) {
				t.Fatalf("landed on a blocking tile %+v", got.Tile)
			}
		})
	}
}

func TestCandidateTarget(t *testing.T) {
	current := gamemath.Vec2{X: 330, Y: 333}
	hop := Candidate{Tile: gamemath.Tile{X: 5, Y: 5}}
	if got := hop.Target(current, 32, 32); got != current {
		t.Fatalf("vertical hop moved to %+v", got)
	}
	c := Candidate{Tile: gamemath.Tile{X: 7, Y: 5}, Distance: 2}
	if got := c.Target(current, 32, 32); got != (gamemath.Vec2{X: 464, Y: 336}) {
		t.Fatalf("target = %+v", got)
	}
}
