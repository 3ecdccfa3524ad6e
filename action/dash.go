package action

import (
	"github.com/automoto/leapdash/components"
	"github.com/automoto/leapdash/shared/gamemath"
	"github.com/automoto/leapdash/shared/messages"
	"github.com/automoto/leapdash/shared/netconfig"
	"github.com/automoto/leapdash/tags"
	"github.com/yohamta/donburi"
)

// DashController owns the local dash-attack state machines.
type DashController struct {
	s       *Session
	running map[donburi.Entity]uint64
}

// WouldTrigger reports whether an attack pressed now would become a dash,
// ignoring cooldown and stamina.
func (d *DashController) WouldTrigger(e *donburi.Entry) bool {
	cfg := d.s.Config()
	if !cfg.Dash.Enabled {
		return false
	}
	return components.Sprint.Get(e).Recently(cfg.Dash.GraceSeconds)
}

// TryStart turns an attack that just began into a dash when the actor is
// sprinting or inside the grace window. RejectNoSprint means a plain attack.
func (d *DashController) TryStart(e *donburi.Entry) Rejection {
	cfg := d.s.Config()
	if !cfg.Dash.Enabled {
		return RejectDisabled
	}
	if !d.WouldTrigger(e) {
		return RejectNoSprint
	}
	dash := components.Dash.Get(e)
	if dash.Active || components.Jump.Get(e).Active {
		return d.s.reject(RejectBusy)
	}
	a := components.Actor.Get(e)
	if a.Locked {
		return d.s.reject(RejectLocked)
	}
	weapon := components.Weapon.Get(e).Category
	cd := components.Cooldowns.Get(e)
	if cd.Remaining(weapon) > 0 {
		return d.s.reject(RejectCooldown)
	}
	if a.Stamina < cfg.Dash.StaminaCost {
		return d.s.reject(RejectStamina)
	}

	a.Stamina -= cfg.Dash.StaminaCost
	dir := gamemath.FacingVector(int(a.Facing))
	if c := cfg.Dash.Cooldown(weapon); c > 0 {
		if cd.Dash == nil {
			cd.Dash = make(map[netconfig.WeaponCategory]float64)
		}
		cd.Dash[weapon] = c
	}

	dash.Active = true
	dash.Weapon = weapon
	dash.Hit = make(map[donburi.Entity]struct{})
	dash.State = components.ActionState{
		Kind:          netconfig.ActionDash,
		Duration:      cfg.Dash.DurationTicks,
		Start:         a.Position,
		Target:        a.Position.Add(dir.Scale(cfg.Dash.StepPixels * float64(cfg.Dash.DurationTicks))),
		Direction:     dir,
		Authoritative: true,
		Config:        cfg,
	}
	a.Locked = true
	if d.running == nil {
		d.running = make(map[donburi.Entity]uint64)
	}
	d.running[e.Entity()] = a.ID

	d.s.debugf("dash start actor=%d weapon=%s dir=%v", a.ID, weapon, dir)
	d.s.emit(messages.DashStarted{ActorID: a.ID, Direction: dir})
	return RejectNone
}

// Advance steps a running dash forward, lands its hits and ends it when the
// swing ends, a wall is in the way or the step budget runs out.
func (d *DashController) Advance(e *donburi.Entry) {
	dash := components.Dash.Get(e)
	if !dash.Active {
		return
	}
	st := &dash.State
	a := components.Actor.Get(e)

	if !components.AttackSwing.Get(e).Active {
		d.stop(e, "swing ended")
		return
	}
	if st.Done() {
		d.stop(e, "duration")
		return
	}

	next := a.Position.Add(st.Direction.Scale(st.Config.Dash.StepPixels))
	if d.s.Level.Blocked(components.Object.Get(e).Object, next, a.W, a.H) {
		d.stop(e, "obstructed")
		return
	}
	d.s.Place(e, next)
	st.Progress++
	d.hits(e)

	if st.Done() {
		d.stop(e, "duration")
	}
}

// hits damages every hostile inside the inflated hit volume that this
// activation has not already damaged.
func (d *DashController) hits(attacker *donburi.Entry) {
	dash := components.Dash.Get(attacker)
	a := components.Actor.Get(attacker)
	cfg := dash.State.Config
	if !cfg.Dash.DedupPerActivation {
		clear(dash.Hit)
	}

	pad := cfg.Dash.Inflate(dash.Weapon)
	x, y := a.Position.X-pad, a.Position.Y-pad
	w, h := a.W+2*pad, a.H+2*pad
	sensor := d.s.sensor
	sensor.X, sensor.Y, sensor.W, sensor.H = x, y, w, h
	sensor.Update()

	check := sensor.Check(0, 0, tags.ResolvHostile)
	if check == nil {
		return
	}
	swing := components.AttackSwing.Get(attacker)
	roll := cfg.Host.Weapon(dash.Weapon)
	for _, o := range check.Objects {
		if !boxOverlap(x, y, w, h, o.X, o.Y, o.W, o.H) {
			continue
		}
		target, ok := o.Data.(donburi.Entity)
		if !ok || !d.s.World.Valid(target) {
			continue
		}
		if _, done := dash.Hit[target]; done {
			continue
		}
		dash.Hit[target] = struct{}{}
		if swing.HitThisSwing != nil {
			swing.HitThisSwing[target] = struct{}{}
		}
		lo, hi := d.s.PreDamage(attacker, roll.MinDamage, roll.MaxDamage)
		d.s.Damage(d.s.World.Entry(target), attacker, d.s.Roll(lo, hi), true)
	}
}

func (d *DashController) stop(e *donburi.Entry, reason string) {
	dash := components.Dash.Get(e)
	a := components.Actor.Get(e)
	dash.Active = false
	a.Locked = false
	delete(d.running, e.Entity())
	d.s.debugf("dash stop actor=%d after %d ticks: %s", a.ID, dash.State.Progress, reason)
	d.s.emit(messages.DashStopped{ActorID: a.ID})
}

// sweep forgets dashes whose actor was removed and tells peers they ended.
func (d *DashController) sweep() {
	var gone []donburi.Entity
	for ent := range d.running {
		if !d.s.World.Valid(ent) {
			gone = append(gone, ent)
		}
	}
	for _, ent := range gone {
		id := d.running[ent]
		delete(d.running, ent)
		d.s.emit(messages.DashStopped{ActorID: id})
	}
}

// Active reports whether the entity is dashing.
func (d *DashController) Active(e *donburi.Entry) bool {
	return e.HasComponent(components.Dash) && components.Dash.Get(e).Active
}

func dashStopped(id uint64) messages.DashStopped {
	return messages.DashStopped{ActorID: id}
}
