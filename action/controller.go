package action

import (
	"github.com/automoto/leapdash/components"
	"github.com/automoto/leapdash/shared/netconfig"
	"github.com/automoto/leapdash/tags"
	"github.com/yohamta/donburi"
)

// Controller advances every local action once per tick. Jump and dash never
// write the same actor in one tick because each refuses to start while the
// actor is locked.
type Controller struct {
	s *Session
}

// Advance runs one tick of every running local action.
func (c *Controller) Advance() {
	c.s.Jumps.sweep()
	c.s.Dashes.sweep()
	tags.Player.Each(c.s.World, func(e *donburi.Entry) {
		c.s.guard(e, "jump", func() { c.s.Jumps.Advance(e) })
		c.s.guard(e, "dash", func() { c.s.Dashes.Advance(e) })
	})
}

// BeginTick installs this tick's buttons for a local actor, then runs the
// cooldown filter, sprint and the jump gate in that order.
func (s *Session) BeginTick(e *donburi.Entry, pressed [components.ButtonCount]bool) {
	s.guard(e, "input", func() {
		components.Jump.Get(e).Landed = false
		pressed = s.Gate.FilterInput(e, pressed)
		in := components.Input.Get(e)
		in.Advance(pressed)

		a := components.Actor.Get(e)
		f, held := in.MoveFacing()
		a.Moving = held && !a.Locked
		if a.Moving {
			a.Facing = netconfig.Facing(f)
		}

		s.Sprints.Update(e)
		s.Gate.Jump(e)
	})
}

// OnAttackStarted tells the core the host began an attack swing for e. The
// swing becomes a dash when sprint allows it.
func (s *Session) OnAttackStarted(e *donburi.Entry) Rejection {
	r := RejectNone
	s.guard(e, "attack", func() { r = s.Dashes.TryStart(e) })
	return r
}

// Advance runs the local controller.
func (s *Session) Advance() {
	s.Local.Advance()
}

// EndTick counts down cooldowns, advances peer shadows and removes anything
// killed during the tick.
func (s *Session) EndTick() {
	dt := s.Config().TickSeconds()
	components.Cooldowns.Each(s.World, func(e *donburi.Entry) {
		cd := components.Cooldowns.Get(e)
		for w, left := range cd.Dash {
			left -= dt
			if left <= 0 {
				delete(cd.Dash, w)
				continue
			}
			cd.Dash[w] = left
		}
	})
	s.Peers.Advance()
	s.flushDead()
	s.tick++
}
