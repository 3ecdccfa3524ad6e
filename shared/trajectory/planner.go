// Package trajectory picks landing tiles for jumps.
package trajectory

import "github.com/automoto/leapdash/shared/gamemath"

// Env is the subset of the environment query service the planner consults.
type Env interface {
	IsBlocking(t gamemath.Tile) bool
	IsVaultable(t gamemath.Tile) bool
	IsLandable(t gamemath.Tile) bool
}

// Request describes one planning pass.
type Request struct {
	From      gamemath.Tile
	Facing    int
	Magnitude int // desired distance in tiles
	Mounted   bool
	// MountedMinDistance is the scan floor for mounted actors.
	MountedMinDistance int
	// HopOverAnything ignores vault and landing rules; only walls stop the scan.
	HopOverAnything bool
}

// Candidate is the planner's pick. Distance 0 means a vertical-only hop.
type Candidate struct {
	Tile     gamemath.Tile
	Distance int
	Scanned  int // tiles examined before stopping
}

// Distance returns the effective scan length for a request.
func (r Request) Distance() int {
	d := r.Magnitude
	if d <= 0 {
		d = 1
	}
	if r.Mounted && d < r.MountedMinDistance {
		d = r.MountedMinDistance
	}
	return d
}

// Plan walks outward from r.From along the facing direction. Blocking tiles
// end the scan, vaultable tiles are skipped, landable tiles become the new
// best landing, and anything else ends the scan keeping the previous best.
func Plan(env Env, r Request) Candidate {
	step := gamemath.FacingStep(r.Facing)
	best := Candidate{Tile: r.From}
	if step == (gamemath.Tile{}) {
		return best
	}

	dist := r.Distance()
	for i := 1; i <= dist; i++ {
		t := r.From.Add(step.Scale(i))
		best.Scanned = i
		if env.IsBlocking(t) {
			break
		}
		if r.HopOverAnything {
			best.Tile, best.Distance = t, i
			continue
		}
		if env.IsVaultable(t) {
			continue
		}
		if !env.IsLandable(t) {
			break
		}
		best.Tile, best.Distance = t, i
	}
	return best
}

// Target converts a candidate into the top-left position of a w x h actor
// centered on the landing tile. A vertical hop keeps the current position.
func (c Candidate) Target(current gamemath.Vec2, w, h float64) gamemath.Vec2 {
	if c.Distance == 0 {
		return current
	}
	return gamemath.TileTarget(c.Tile, w, h)
}
