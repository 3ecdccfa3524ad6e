package action

import (
	"log"

	"github.com/automoto/leapdash/components"
	"github.com/automoto/leapdash/shared/environment"
	"github.com/automoto/leapdash/shared/gamemath"
	"github.com/automoto/leapdash/shared/messages"
	"github.com/automoto/leapdash/shared/netconfig"
	"github.com/automoto/leapdash/shared/trajectory"
	"github.com/automoto/leapdash/tags"
	"github.com/yohamta/donburi"
)

// flight remembers who a running jump belongs to, so the lock can still be
// released if the actor disappears mid-air.
type flight struct {
	id    uint64
	mount donburi.Entity
}

// JumpController owns the local jump state machines.
type JumpController struct {
	s       *Session
	flights map[donburi.Entity]flight
}

// CanStart checks the activation preconditions without side effects.
func (j *JumpController) CanStart(e *donburi.Entry) Rejection {
	cfg := j.s.Config()
	if !cfg.Jump.Enabled {
		return RejectDisabled
	}
	jump := components.Jump.Get(e)
	if jump.Active || components.Dash.Get(e).Active {
		return RejectBusy
	}
	a := components.Actor.Get(e)
	if a.Locked {
		return RejectLocked
	}
	_, mounted := j.s.mountOf(a)
	if !(mounted && cfg.Jump.NoStaminaOnMount) && a.Stamina < cfg.Jump.StaminaCost {
		return RejectStamina
	}
	return RejectNone
}

// Start plans and begins a jump. charge is the release percentage in [0, 1],
// or negative for an instant jump.
func (j *JumpController) Start(e *donburi.Entry, charge float64) Rejection {
	if r := j.CanStart(e); r != RejectNone {
		return j.s.reject(r)
	}

	cfg := j.s.Config()
	a := components.Actor.Get(e)
	mount, mounted := j.s.mountOf(a)

	magnitude := gamemath.MaxJumpDistance(a.Moving, a.Speed, cfg.Jump.NormalDistance, cfg.Jump.DistanceScale)
	if charge >= 0 && cfg.Jump.ChargeAffectsDistance {
		magnitude = gamemath.ChargedJumpDistance(magnitude, charge)
	}

	env := environment.New(j.s.Level.Grid, j.s.occupancy(e, mount), cfg.Landing)
	cand := trajectory.Plan(env, trajectory.Request{
		From:               a.Tile(),
		Facing:             int(a.Facing),
		Magnitude:          magnitude,
		Mounted:            mounted,
		MountedMinDistance: cfg.Jump.MountedMinDistance,
		HopOverAnything:    cfg.Jump.HopOverAnything,
	})
	target := cand.Target(a.Position, a.W, a.H)

	bonus := 1.0
	if a.Moving {
		bonus = cfg.Jump.MovingHeightBonus
	}
	height := gamemath.JumpHeight(cfg.Jump.Height, charge, bonus)
	if mounted {
		height *= cfg.Jump.MountHeightMultiplier
	}

	if !(mounted && cfg.Jump.NoStaminaOnMount) {
		a.Stamina -= cfg.Jump.StaminaCost
	}

	jump := components.Jump.Get(e)
	jump.Charging = false
	jump.ChargeSeconds = 0
	jump.Active = true
	jump.OriginalFrame = a.Frame
	jump.State = components.ActionState{
		Kind:          netconfig.ActionJump,
		Duration:      cfg.Jump.DurationTicks,
		Start:         a.Position,
		Target:        target,
		PeakHeight:    height,
		Authoritative: true,
		Mounted:       mounted,
		Config:        cfg,
	}

	a.Locked = true
	f := flight{id: a.ID, mount: donburi.Null}
	if mounted {
		components.Actor.Get(mount).Locked = true
		f.mount = mount.Entity()
	}
	if j.flights == nil {
		j.flights = make(map[donburi.Entity]flight)
	}
	j.flights[e.Entity()] = f

	j.s.debugf("jump start actor=%d from=%v to=%v dist=%d peak=%.1f mounted=%v",
		a.ID, cand.Tile, target, cand.Distance, height, mounted)
	j.s.emit(messages.JumpStarted{
		ActorID:       a.ID,
		Start:         a.Position,
		Target:        target,
		DurationTicks: cfg.Jump.DurationTicks,
		PeakHeight:    height,
		IsMounted:     mounted,
	})
	return RejectNone
}

// Advance moves a running jump one tick along its arc.
func (j *JumpController) Advance(e *donburi.Entry) {
	jump := components.Jump.Get(e)
	if !jump.Active {
		return
	}
	st := &jump.State
	a := components.Actor.Get(e)
	cfg := st.Config

	st.Progress++
	pos := gamemath.ArcPosition(st.Start, st.Target, st.Progress, st.Duration)
	offset := gamemath.ArcOffset(st.Progress, st.Duration, st.PeakHeight)
	j.s.Place(e, pos)

	if mount, ok := j.s.mountOf(a); ok && st.Mounted {
		components.Actor.Get(mount).OffsetY = offset
		components.Mount.Get(mount).OffsetY = offset
		a.OffsetY = offset * cfg.Jump.MountBounceFactor
	} else {
		a.OffsetY = offset
	}

	if !cfg.Jump.IsSitFrame(jump.OriginalFrame) {
		if st.Progress*2 < st.Duration {
			a.Frame = cfg.Jump.RisingFrame
		} else {
			a.Frame = cfg.Jump.FallingFrame
		}
	}

	if st.Done() {
		j.finish(e)
	}
}

// finish lands the actor exactly on the target and hands control back to
// the host. Peers end their shadow on their own duration, so landing sends
// nothing.
func (j *JumpController) finish(e *donburi.Entry) {
	jump := components.Jump.Get(e)
	a := components.Actor.Get(e)
	j.s.Place(e, jump.State.Target)
	a.OffsetY = 0
	a.Locked = false
	a.Frame = jump.OriginalFrame
	if mount, ok := j.s.mountOf(a); ok {
		ma := components.Actor.Get(mount)
		ma.OffsetY = 0
		ma.Locked = false
		components.Mount.Get(mount).OffsetY = 0
	}
	jump.Active = false
	jump.Landed = true
	delete(j.flights, e.Entity())
	j.s.debugf("jump landed actor=%d at=%v", a.ID, a.Position)
}

// sweep drops flights whose actor was removed and unlocks any surviving mount.
func (j *JumpController) sweep() {
	var gone []donburi.Entity
	for ent := range j.flights {
		if !j.s.World.Valid(ent) {
			gone = append(gone, ent)
		}
	}
	for _, ent := range gone {
		f := j.flights[ent]
		delete(j.flights, ent)
		if f.mount != donburi.Null && j.s.World.Valid(f.mount) {
			m := j.s.World.Entry(f.mount)
			ma := components.Actor.Get(m)
			ma.Locked = false
			ma.OffsetY = 0
			components.Mount.Get(m).Rider = donburi.Null
			components.Mount.Get(m).OffsetY = 0
		}
		log.Printf("[action] jump of actor %d dropped: entity vanished mid-flight", f.id)
	}
}

// Active reports whether the entity is mid-jump.
func (j *JumpController) Active(e *donburi.Entry) bool {
	return e.HasComponent(components.Jump) && components.Jump.Get(e).Active
}

// occupancy maps the tiles of every other actor and hostile for landing
// checks. self and its mount are left out.
func (s *Session) occupancy(self, mount *donburi.Entry) environment.OccupancyMap {
	occ := make(environment.OccupancyMap)
	skip := func(e *donburi.Entry) bool {
		return e.Entity() == self.Entity() || (mount != nil && e.Entity() == mount.Entity())
	}
	tags.Player.Each(s.World, func(e *donburi.Entry) {
		if !skip(e) {
			occ[components.Actor.Get(e).Tile()] = environment.OccupantPlayer
		}
	})
	tags.Remote.Each(s.World, func(e *donburi.Entry) {
		a := components.Actor.Get(e)
		occ[gamemath.TileAt(components.Remote.Get(e).Display, a.W, a.H)] = environment.OccupantPlayer
	})
	tags.Hostile.Each(s.World, func(e *donburi.Entry) {
		o := components.Object.Get(e)
		occ[gamemath.TileAt(gamemath.Vec2{X: o.X, Y: o.Y}, o.W, o.H)] = environment.OccupantNPC
	})
	tags.Mount.Each(s.World, func(e *donburi.Entry) {
		if skip(e) || components.Mount.Get(e).Rider != donburi.Null {
			return
		}
		occ[components.Actor.Get(e).Tile()] = environment.OccupantNPC
	})
	return occ
}

// Place writes a ground position to the actor, its collider and its mount.
func (s *Session) Place(e *donburi.Entry, pos gamemath.Vec2) {
	a := components.Actor.Get(e)
	a.Position = pos
	if e.HasComponent(components.Object) {
		if o := components.Object.Get(e); o.Object != nil {
			o.MoveTo(pos)
		}
	}
	if m, ok := s.mountOf(a); ok {
		components.Actor.Get(m).Position = pos
	}
}
