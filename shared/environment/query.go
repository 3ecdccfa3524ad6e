// Package environment answers read-only questions about world tiles for the
// trajectory planner. Every predicate is pure: the same inputs within a tick
// give the same answer, and nothing is cached or mutated.
package environment

import (
	"github.com/automoto/leapdash/config"
	"github.com/automoto/leapdash/shared/gamemath"
	"github.com/automoto/leapdash/shared/leveldata"
)

// Occupant is what stands on a tile besides terrain and objects.
type Occupant int

const (
	OccupantNone Occupant = iota
	OccupantPlayer
	OccupantNPC
)

// Terrain is the static map. *leveldata.TileGrid implements it.
type Terrain interface {
	FlagsAt(t gamemath.Tile) leveldata.TileFlags
	ObstacleAt(t gamemath.Tile) (leveldata.Obstacle, bool)
}

// Occupancy reports actors standing on tiles.
type Occupancy interface {
	OccupantAt(t gamemath.Tile) Occupant
}

// OccupancyMap is an Occupancy built once per tick.
type OccupancyMap map[gamemath.Tile]Occupant

func (m OccupancyMap) OccupantAt(t gamemath.Tile) Occupant {
	return m[t]
}

// Query evaluates tile predicates under a landing policy.
type Query struct {
	terrain Terrain
	occ     Occupancy
	policy  config.LandingConfig
}

// New returns a Query. occ may be nil when nothing occupies tiles.
func New(terrain Terrain, occ Occupancy, policy config.LandingConfig) *Query {
	if occ == nil {
		occ = OccupancyMap(nil)
	}
	return &Query{terrain: terrain, occ: occ, policy: policy}
}

// IsBlocking reports a tile that stops a trajectory outright: walls and
// anything outside the map.
func (q *Query) IsBlocking(t gamemath.Tile) bool {
	f := q.terrain.FlagsAt(t)
	return f.Has(leveldata.FlagSolid) && !f.Has(leveldata.FlagJumpable)
}

// IsVaultable reports a tile that can be cleared mid-air but not landed on.
func (q *Query) IsVaultable(t gamemath.Tile) bool {
	if q.IsBlocking(t) {
		return false
	}
	if q.terrain.FlagsAt(t).Has(leveldata.FlagJumpable) {
		return true
	}
	o, ok := q.terrain.ObstacleAt(t)
	return ok && q.canClear(o.Kind)
}

// IsLandable reports a passable tile with no water, no object and no
// occupant the policy forbids landing on.
func (q *Query) IsLandable(t gamemath.Tile) bool {
	f := q.terrain.FlagsAt(t)
	if f.Has(leveldata.FlagSolid) || f.Has(leveldata.FlagWater) || f.Has(leveldata.FlagJumpable) {
		return false
	}
	if _, ok := q.terrain.ObstacleAt(t); ok {
		return false
	}
	switch q.occ.OccupantAt(t) {
	case OccupantPlayer:
		return q.policy.ThroughPlayers
	case OccupantNPC:
		return q.policy.ThroughNPCs
	default:
		return true
	}
}

func (q *Query) canClear(kind string) bool {
	switch kind {
	case "trashcan":
		return q.policy.OverTrashCans
	case "boulder":
		return q.policy.OverBoulders
	case "stump":
		return q.policy.OverStumps
	case "log":
		return q.policy.OverLogs
	case "fence", "sapling", "weeds":
		return true
	default:
		return false
	}
}
