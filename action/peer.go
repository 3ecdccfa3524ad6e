package action

import (
	"log"

	"github.com/automoto/leapdash/archetypes"
	"github.com/automoto/leapdash/components"
	"github.com/automoto/leapdash/config"
	"github.com/automoto/leapdash/shared/gamemath"
	"github.com/automoto/leapdash/shared/messages"
	"github.com/automoto/leapdash/shared/netconfig"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// PeerRecord is a shadow of an action another client is performing. It is
// never authoritative: it only steers how the peer is drawn.
type PeerRecord struct {
	ActorID uint64
	Entity  donburi.Entity
	State   components.ActionState
	// Affected holds hostiles the shadow already flashed.
	Affected map[donburi.Entity]struct{}

	// anchorOnly is set when the peer had no known position at start; the
	// record then animates height only and leaves ground motion to snapshots.
	anchorOnly bool
	blend      *gween.Tween
	factor     float64
}

// PeerLayer reconstructs remote actions from inbound start and stop messages
// and owns the roster of remote actors.
type PeerLayer struct {
	s       *Session
	records map[uint64]*PeerRecord
	roster  map[uint64]donburi.Entity
}

func newPeerLayer(s *Session) *PeerLayer {
	return &PeerLayer{
		s:       s,
		records: make(map[uint64]*PeerRecord),
		roster:  make(map[uint64]donburi.Entity),
	}
}

// Record returns the running shadow for a peer, if any.
func (p *PeerLayer) Record(id uint64) (*PeerRecord, bool) {
	rec, ok := p.records[id]
	return rec, ok
}

// Shadowing reports whether a shadow action currently steers the peer.
func (p *PeerLayer) Shadowing(id uint64) bool {
	_, ok := p.records[id]
	return ok
}

// Count returns the number of running shadows.
func (p *PeerLayer) Count() int {
	return len(p.records)
}

// Lookup returns the remote actor entry for a peer id.
func (p *PeerLayer) Lookup(id uint64) (*donburi.Entry, bool) {
	ent, ok := p.roster[id]
	if !ok || !p.s.World.Valid(ent) {
		return nil, false
	}
	return p.s.World.Entry(ent), true
}

// ApplyRemotePosition records the latest best-effort position for a peer,
// creating its actor on first sight.
func (p *PeerLayer) ApplyRemotePosition(id uint64, pos gamemath.Vec2, facing netconfig.Facing, mounted bool) *donburi.Entry {
	e, ok := p.Lookup(id)
	if !ok {
		cfg := p.s.Config()
		e = archetypes.Remote.Spawn(p.s.World)
		components.Actor.SetValue(e, components.ActorData{
			ID:       id,
			Position: pos,
			W:        cfg.Host.ActorWidth,
			H:        cfg.Host.ActorHeight,
			Facing:   facing,
			Mount:    donburi.Null,
		})
		components.Remote.SetValue(e, components.RemoteData{Display: pos})
		p.roster[id] = e.Entity()
		log.Printf("[peer] actor %d joined the roster", id)
	}

	a := components.Actor.Get(e)
	a.Position = pos
	a.Facing = facing

	ni := components.NetInterp.Get(e)
	if ni.Initialized {
		ni.Prev = ni.Target
	} else {
		ni.Prev = pos
		ni.Initialized = true
	}
	ni.Target = pos
	ni.T = 0
	components.Remote.Get(e).Mounted = mounted
	return e
}

// RemoveRemote drops a peer and any shadow it had.
func (p *PeerLayer) RemoveRemote(id uint64) {
	if e, ok := p.Lookup(id); ok {
		e.Remove()
	}
	delete(p.roster, id)
	delete(p.records, id)
}

// RemoveMissing drops every peer not in present.
func (p *PeerLayer) RemoveMissing(present map[uint64]bool) {
	var gone []uint64
	for id := range p.roster {
		if !present[id] {
			gone = append(gone, id)
		}
	}
	for _, id := range gone {
		p.RemoveRemote(id)
		log.Printf("[peer] actor %d left the roster", id)
	}
}

// OnJumpStarted starts or replaces a jump shadow. The shadow is anchored on
// the peer's last known position and reuses only the message's displacement.
func (p *PeerLayer) OnJumpStarted(msg messages.JumpStarted) {
	e, ok := p.Lookup(msg.ActorID)
	if !ok {
		p.s.debugf("jump start for unknown peer %d ignored", msg.ActorID)
		return
	}
	cfg := p.s.Config()
	p.replace(e, msg.ActorID)

	duration := msg.DurationTicks
	if duration <= 0 {
		duration = cfg.Jump.DurationTicks
	}
	rec := &PeerRecord{
		ActorID: msg.ActorID,
		Entity:  e.Entity(),
		State: components.ActionState{
			Kind:       netconfig.ActionJump,
			Duration:   duration,
			PeakHeight: msg.PeakHeight,
			Mounted:    msg.IsMounted,
			Config:     cfg,
		},
	}
	if known, ok := components.NetInterp.Get(e).Known(); ok {
		rec.State.Start = known
		rec.State.Target = known.Add(msg.Target.Sub(msg.Start))
	} else {
		disp := components.Remote.Get(e).Display
		rec.State.Start, rec.State.Target = disp, disp
		rec.anchorOnly = true
	}
	p.start(rec)
}

// OnDashStarted starts or replaces a dash shadow.
func (p *PeerLayer) OnDashStarted(msg messages.DashStarted) {
	e, ok := p.Lookup(msg.ActorID)
	if !ok {
		p.s.debugf("dash start for unknown peer %d ignored", msg.ActorID)
		return
	}
	length := msg.Direction.Len()
	if length == 0 {
		p.s.debugf("dash start for peer %d has no direction", msg.ActorID)
		return
	}
	cfg := p.s.Config()
	p.replace(e, msg.ActorID)

	dir := msg.Direction.Scale(1 / length)
	rec := &PeerRecord{
		ActorID: msg.ActorID,
		Entity:  e.Entity(),
		State: components.ActionState{
			Kind:      netconfig.ActionDash,
			Duration:  cfg.Dash.DurationTicks,
			Direction: dir,
			Config:    cfg,
		},
		Affected: make(map[donburi.Entity]struct{}),
	}
	if known, ok := components.NetInterp.Get(e).Known(); ok {
		rec.State.Start = known
	} else {
		rec.State.Start = components.Remote.Get(e).Display
	}
	rec.State.Target = rec.State.Start.Add(dir.Scale(cfg.Dash.StepPixels * float64(cfg.Dash.DurationTicks)))
	components.Remote.Get(e).Velocity = dir.Scale(cfg.Dash.StepPixels)
	p.start(rec)
}

// OnDashStopped ends a dash shadow. A stop without a matching start is a no-op.
func (p *PeerLayer) OnDashStopped(msg messages.DashStopped) {
	rec, ok := p.records[msg.ActorID]
	if !ok || rec.State.Kind != netconfig.ActionDash {
		p.s.debugf("dash stop for peer %d without a shadow", msg.ActorID)
		return
	}
	if e, ok := p.Lookup(msg.ActorID); ok {
		p.finish(e, rec)
	}
	delete(p.records, msg.ActorID)
}

// Advance steps every shadow one tick, then removes those that finished or
// whose actor vanished. Peers without a shadow ease toward their last
// snapshot position.
func (p *PeerLayer) Advance() {
	var done []uint64
	for id, rec := range p.records {
		e, ok := p.Lookup(id)
		if !ok || e.Entity() != rec.Entity {
			done = append(done, id)
			continue
		}
		finished := true
		p.s.guard(e, "peer", func() { finished = p.step(e, rec) })
		if finished {
			done = append(done, id)
		}
	}
	for _, id := range done {
		rec := p.records[id]
		if e, ok := p.Lookup(id); ok && e.Entity() == rec.Entity {
			p.finish(e, rec)
		}
		delete(p.records, id)
	}

	blend := p.s.Config().Peer.Blend
	for id, ent := range p.roster {
		if _, shadowed := p.records[id]; shadowed || !p.s.World.Valid(ent) {
			continue
		}
		e := p.s.World.Entry(ent)
		ni := components.NetInterp.Get(e)
		if !ni.Initialized {
			continue
		}
		r := components.Remote.Get(e)
		r.Display = gamemath.Approach(r.Display, ni.Target, blend)
		ni.T = gamemath.ClampFloat(ni.T+blend, 0, 1)
	}
}

// RiderOffsetY converts a shadow jump's offset into the offset its rider is
// drawn with. Unmounted jumps return offset unchanged.
func (rec *PeerRecord) RiderOffsetY(offset float64) float64 {
	if !rec.State.Mounted || rec.State.Config == nil {
		return offset
	}
	return offset * rec.State.Config.Jump.MountBounceFactor
}

func (p *PeerLayer) start(rec *PeerRecord) {
	rec.blend = newBlend(rec.State.Config)
	p.records[rec.ActorID] = rec
	p.s.debugf("peer %d shadow %s from %v to %v", rec.ActorID, rec.State.Kind, rec.State.Start, rec.State.Target)
}

// replace ends an earlier shadow for the same peer before a new one starts.
func (p *PeerLayer) replace(e *donburi.Entry, id uint64) {
	if old, ok := p.records[id]; ok {
		p.finish(e, old)
		delete(p.records, id)
	}
}

func (p *PeerLayer) step(e *donburi.Entry, rec *PeerRecord) bool {
	st := &rec.State
	r := components.Remote.Get(e)
	a := components.Actor.Get(e)
	rec.factor = rec.nextFactor()
	st.Progress++

	switch st.Kind {
	case netconfig.ActionJump:
		if !rec.anchorOnly {
			ideal := gamemath.ArcPosition(st.Start, st.Target, st.Progress, st.Duration)
			r.Display = gamemath.Approach(r.Display, ideal, rec.factor)
		}
		a.OffsetY = gamemath.ArcOffset(st.Progress, st.Duration, st.PeakHeight)
	case netconfig.ActionDash:
		ideal := st.Start.Add(r.Velocity.Scale(float64(st.Progress)))
		r.Display = gamemath.Approach(r.Display, ideal, rec.factor)
		p.flash(e, rec)
	}
	return st.Done()
}

// flash shows the health bar of hostiles a shadow dash passes through. The
// performer's client applies the damage itself.
func (p *PeerLayer) flash(e *donburi.Entry, rec *PeerRecord) {
	a := components.Actor.Get(e)
	disp := components.Remote.Get(e).Display
	components.Health.Each(p.s.World, func(h *donburi.Entry) {
		if !h.HasComponent(components.Object) {
			return
		}
		if _, seen := rec.Affected[h.Entity()]; seen {
			return
		}
		o := components.Object.Get(h)
		if o.Object == nil || !boxOverlap(disp.X, disp.Y, a.W, a.H, o.X, o.Y, o.W, o.H) {
			return
		}
		rec.Affected[h.Entity()] = struct{}{}
		components.HealthBar.SetValue(h, components.HealthBarData{TimeToLive: healthBarTicks})
	})
}

func (p *PeerLayer) finish(e *donburi.Entry, rec *PeerRecord) {
	switch rec.State.Kind {
	case netconfig.ActionJump:
		components.Actor.Get(e).OffsetY = 0
	case netconfig.ActionDash:
		components.Remote.Get(e).Velocity = gamemath.Vec2{}
	}
	p.s.debugf("peer %d shadow %s ended after %d ticks", rec.ActorID, rec.State.Kind, rec.State.Progress)
}

// newBlend eases the display blend in from zero so a fresh shadow does not
// jerk the peer toward its first ideal position.
func newBlend(cfg *config.Movement) *gween.Tween {
	if cfg.Peer.BlendRampTicks <= 0 {
		return nil
	}
	return gween.New(0, float32(cfg.Peer.Blend), float32(cfg.Peer.BlendRampTicks), ease.OutQuad)
}

func (rec *PeerRecord) nextFactor() float64 {
	if rec.blend == nil {
		return rec.State.Config.Peer.Blend
	}
	v, _ := rec.blend.Update(1)
	return float64(v)
}
