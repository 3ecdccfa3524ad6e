package action

import (
	"github.com/automoto/leapdash/components"
	"github.com/automoto/leapdash/shared/gamemath"
	"github.com/yohamta/donburi"
)

const (
	damageEventTicks = 45
	healthBarTicks   = 90
)

// PreMove is the host's movement seam. It returns false while a transient
// action owns the actor, in which case the host must not move or animate it.
func (s *Session) PreMove(e *donburi.Entry) bool {
	if !e.Valid() || !e.HasComponent(components.Actor) {
		return false
	}
	if components.Actor.Get(e).Locked {
		return false
	}
	if e.HasComponent(components.Jump) && components.Jump.Get(e).Landed {
		return false
	}
	return !s.Dashes.Active(e)
}

// PreDamage is the host's damage seam. It scales an attacker's roll range
// for a dash in progress or an attack landed mid-jump.
func (s *Session) PreDamage(attacker *donburi.Entry, lo, hi int) (int, int) {
	if !attacker.Valid() {
		return lo, hi
	}
	if s.Dashes.Active(attacker) {
		cfg := components.Dash.Get(attacker).State.Config
		lo, hi = gamemath.ScaleDamage(lo, hi, cfg.Dash.DamageMultiplier)
	}
	if s.Jumps.Active(attacker) {
		cfg := components.Jump.Get(attacker).State.Config
		if cfg.Jump.EnableJumpAttack {
			lo, hi = gamemath.ScaleDamage(lo, hi, cfg.Jump.AttackMultiplier)
		}
	}
	return lo, hi
}

// Damage applies amount to a hostile. Killed hostiles leave the collision
// space at once and the world at the end of the tick.
func (s *Session) Damage(target, attacker *donburi.Entry, amount int, dash bool) {
	if !target.Valid() || !target.HasComponent(components.Health) {
		return
	}
	hp := components.Health.Get(target)
	if hp.Current <= 0 {
		return
	}
	hp.Current -= amount
	if hp.Current < 0 {
		hp.Current = 0
	}
	components.DamageEvent.SetValue(target, components.DamageEventData{
		Amount:   amount,
		Attacker: attacker.Entity(),
		Dash:     dash,
		TTL:      damageEventTicks,
	})
	components.HealthBar.SetValue(target, components.HealthBarData{TimeToLive: healthBarTicks})
	s.debugf("hit entity=%v for %d (dash=%v), %d/%d left", target.Entity(), amount, dash, hp.Current, hp.Max)

	if hp.Current == 0 {
		if target.HasComponent(components.Object) {
			if o := components.Object.Get(target); o.Object != nil {
				s.Level.Space.Remove(o.Object)
			}
		}
		s.dead = append(s.dead, target.Entity())
	}
}

// Roll returns a uniform damage roll in [lo, hi].
func (s *Session) Roll(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.IntN(hi-lo+1)
}

// flushDead removes hostiles killed during the tick.
func (s *Session) flushDead() {
	for _, ent := range s.dead {
		if s.World.Valid(ent) {
			s.World.Remove(ent)
		}
	}
	s.dead = s.dead[:0]
}
