package host

import (
	"github.com/automoto/leapdash/components"
	"github.com/automoto/leapdash/shared/gamemath"
	"github.com/automoto/leapdash/tags"
	"github.com/yohamta/donburi"
)

// startSwing begins a melee swing on a fresh attack press and tells the core,
// which may turn it into a dash.
func (h *Host) startSwing(e *donburi.Entry) {
	in := components.Input.Get(e)
	swing := components.AttackSwing.Get(e)
	if !in.JustPressed(components.ButtonAttack) || swing.Active {
		return
	}
	ticks := h.sess.Config().Host.SwingTicks
	*swing = components.AttackSwingData{
		Active:       true,
		TicksLeft:    ticks,
		Total:        ticks,
		HitThisSwing: make(map[donburi.Entity]struct{}),
	}
	// A refused dash still swings as a plain attack.
	h.sess.OnAttackStarted(e)
}

// swing lands the plain melee hit in front of the actor and counts the swing
// down. Dash hits are handled by the core and shared through HitThisSwing.
func (h *Host) swing(e *donburi.Entry) {
	swing := components.AttackSwing.Get(e)
	if !swing.Active {
		return
	}
	defer func() {
		swing.TicksLeft--
		if swing.TicksLeft <= 0 {
			swing.Active = false
		}
	}()
	if h.sess.Dashes.Active(e) {
		return
	}

	a := components.Actor.Get(e)
	cfg := h.sess.Config()
	weapon := components.Weapon.Get(e).Category
	reach := h.reach
	ahead := a.Position.Add(facingOffset(a))
	reach.X, reach.Y, reach.W, reach.H = ahead.X, ahead.Y, a.W, a.H
	reach.Update()

	check := reach.Check(0, 0, tags.ResolvHostile)
	if check == nil {
		return
	}
	roll := cfg.Host.Weapon(weapon)
	for _, o := range check.Objects {
		if !overlaps(reach.X, reach.Y, reach.W, reach.H, o.X, o.Y, o.W, o.H) {
			continue
		}
		target, ok := o.Data.(donburi.Entity)
		if !ok || !h.sess.World.Valid(target) {
			continue
		}
		if _, done := swing.HitThisSwing[target]; done {
			continue
		}
		swing.HitThisSwing[target] = struct{}{}
		lo, hi := h.sess.PreDamage(e, roll.MinDamage, roll.MaxDamage)
		h.sess.Damage(h.sess.World.Entry(target), e, h.sess.Roll(lo, hi), false)
	}
}

// decay counts down the on-screen damage numbers and health bars.
func (h *Host) decay() {
	components.DamageEvent.Each(h.sess.World, func(e *donburi.Entry) {
		if ev := components.DamageEvent.Get(e); ev.TTL > 0 {
			ev.TTL--
		}
	})
	components.HealthBar.Each(h.sess.World, func(e *donburi.Entry) {
		if bar := components.HealthBar.Get(e); bar.TimeToLive > 0 {
			bar.TimeToLive--
		}
	})
}

func facingOffset(a *components.ActorData) gamemath.Vec2 {
	v := gamemath.FacingVector(int(a.Facing))
	return gamemath.Vec2{X: v.X * a.W / 2, Y: v.Y * a.H / 2}
}

func overlaps(ax, ay, aw, ah, bx, by, bw, bh float64) bool {
	return ax < bx+bw && ax+aw > bx && ay < by+bh && ay+ah > by
}
