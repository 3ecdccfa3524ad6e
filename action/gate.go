package action

import (
	"github.com/automoto/leapdash/components"
	"github.com/automoto/leapdash/shared/gamemath"
	"github.com/yohamta/donburi"
)

// Gate is the activation entry point: it filters raw input, turns jump
// presses into charges and releases, and validates preconditions.
type Gate struct {
	s *Session
}

// FilterInput runs before any other input handling. It drops the attack
// button while the weapon's dash cooldown runs and the attack would become a
// dash, so the host never starts that swing. A dropped press stays dropped
// until the button is released, so holding attack through a cooldown does
// not fire again when it expires.
func (g *Gate) FilterInput(e *donburi.Entry, pressed [components.ButtonCount]bool) [components.ButtonCount]bool {
	cd := components.Cooldowns.Get(e)
	if !pressed[components.ButtonAttack] {
		cd.AttackLatched = false
		return pressed
	}
	if cd.AttackLatched {
		pressed[components.ButtonAttack] = false
		return pressed
	}
	if !g.s.Dashes.WouldTrigger(e) {
		return pressed
	}
	weapon := components.Weapon.Get(e).Category
	if cd.Remaining(weapon) <= 0 {
		return pressed
	}
	if !components.Input.Get(e).Pressed(components.ButtonAttack) {
		g.s.reject(RejectCooldown)
	}
	cd.AttackLatched = true
	pressed[components.ButtonAttack] = false
	return pressed
}

// Jump handles the jump button for one tick: instant press, or charge while
// held and fire on release.
func (g *Gate) Jump(e *donburi.Entry) {
	cfg := g.s.Config()
	in := components.Input.Get(e)
	jump := components.Jump.Get(e)

	if cfg.Jump.Instant {
		jump.Charging = false
		if in.JustPressed(components.ButtonJump) {
			g.s.Jumps.Start(e, -1)
		}
		return
	}

	if in.JustPressed(components.ButtonJump) {
		if r := g.s.Jumps.CanStart(e); r != RejectNone {
			g.s.reject(r)
			return
		}
		jump.Charging = true
		jump.ChargeSeconds = 0
		return
	}
	if !jump.Charging {
		return
	}
	if in.Pressed(components.ButtonJump) {
		jump.ChargeSeconds += cfg.TickSeconds()
		return
	}
	jump.Charging = false
	g.s.Jumps.Start(e, gamemath.ChargePercent(jump.ChargeSeconds, cfg.Jump.ChargeCeilingSeconds))
}

// Charge returns the current charge percentage, or false when not charging.
func (g *Gate) Charge(e *donburi.Entry) (float64, bool) {
	jump := components.Jump.Get(e)
	if !jump.Charging {
		return 0, false
	}
	return gamemath.ChargePercent(jump.ChargeSeconds, g.s.Config().Jump.ChargeCeilingSeconds), true
}
