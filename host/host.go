// Package host is the top-down tile world the action core plugs into:
// walking, melee swings, hostiles and position reports. It stays free of any
// rendering so the relay and tests can run it headless.
package host

import (
	"log"

	"github.com/automoto/leapdash/action"
	"github.com/automoto/leapdash/components"
	"github.com/automoto/leapdash/shared/gamemath"
	"github.com/automoto/leapdash/shared/messages"
	"github.com/automoto/leapdash/shared/netconfig"
	"github.com/automoto/leapdash/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// ReportEvery is how many ticks pass between position reports.
const ReportEvery = 3

// Host drives one local actor through a session.
type Host struct {
	sess  *action.Session
	local *donburi.Entry
	reach *resolv.Object

	seq  uint32
	tick uint64
}

// New spawns the local actor on the level's first player spawn and every
// hostile spawn. Levels without a player spawn start the actor at tile (1,1).
func New(sess *action.Session, weapon netconfig.WeaponCategory) *Host {
	grid := sess.Level.Grid
	cfg := sess.Config()

	pos := gamemath.TileTarget(gamemath.Tile{X: 1, Y: 1}, cfg.Host.ActorWidth, cfg.Host.ActorHeight)
	if len(grid.PlayerSpawns) > 0 {
		sp := grid.PlayerSpawns[0]
		pos = gamemath.Vec2{X: sp.X, Y: sp.Y}
	}

	h := &Host{sess: sess}
	h.local = sess.SpawnLocal(0, pos, weapon)
	h.reach = resolv.NewObject(0, 0, 1, 1, tags.ResolvSensor)
	sess.Level.Space.Add(h.reach)

	for _, sp := range grid.HostileSpawns {
		w, hh := sp.W, sp.H
		if w <= 0 || hh <= 0 {
			w, hh = cfg.Host.HostileWidth, cfg.Host.HostileWidth
		}
		hp := sp.Health
		if hp <= 0 {
			hp = 30
		}
		sess.SpawnHostile(sp.X, sp.Y, w, hh, hp)
	}
	log.Printf("[host] level %q: local actor at %v, %d hostiles", grid.Name, pos, len(grid.HostileSpawns))
	return h
}

// Local returns the locally controlled actor.
func (h *Host) Local() *donburi.Entry {
	return h.local
}

// SetActorID stamps the relay-assigned identity on the local actor.
func (h *Host) SetActorID(id uint64) {
	components.Actor.Get(h.local).ID = id
}

// Tick runs one fixed step. Inbound peer messages must already be drained.
func (h *Host) Tick(pressed [components.ButtonCount]bool) {
	e := h.local
	h.sess.BeginTick(e, pressed)
	h.startSwing(e)
	h.sess.Advance()
	h.walk(e)
	h.swing(e)
	h.sess.EndTick()
	h.decay()
	h.tick++
}

// Report returns a position update every ReportEvery ticks.
func (h *Host) Report() (messages.PositionUpdate, bool) {
	if h.tick%ReportEvery != 0 {
		return messages.PositionUpdate{}, false
	}
	a := components.Actor.Get(h.local)
	h.seq++
	return messages.PositionUpdate{
		Sequence: h.seq,
		Position: a.Position,
		Facing:   int(a.Facing),
		Mounted:  a.Mount != donburi.Null,
	}, true
}

// walk moves the actor along its facing, one axis at a time, stopping at
// solid tiles.
func (h *Host) walk(e *donburi.Entry) {
	if !h.sess.PreMove(e) {
		return
	}
	a := components.Actor.Get(e)
	if !a.Moving {
		if !components.AttackSwing.Get(e).Active {
			a.Frame = h.sess.Config().Host.IdleFrame
		}
		return
	}
	obj := components.Object.Get(e).Object
	step := gamemath.FacingVector(int(a.Facing)).Scale(a.Speed)

	pos := a.Position
	if step.X != 0 && !h.sess.Level.Blocked(obj, gamemath.Vec2{X: pos.X + step.X, Y: pos.Y}, a.W, a.H) {
		pos.X += step.X
	}
	if step.Y != 0 && !h.sess.Level.Blocked(obj, gamemath.Vec2{X: pos.X, Y: pos.Y + step.Y}, a.W, a.H) {
		pos.Y += step.Y
	}
	h.sess.Place(e, pos)
	a.Frame = 1 + int(h.tick/8)%4
}
