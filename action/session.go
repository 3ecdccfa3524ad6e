// Package action runs transient timed actions (jump arcs, dash attacks and
// sprint) for the local actor and reconstructs the same actions for remote
// peers. Everything here runs on the single simulation goroutine.
package action

import (
	"log"
	"math/rand/v2"

	"github.com/automoto/leapdash/archetypes"
	"github.com/automoto/leapdash/components"
	"github.com/automoto/leapdash/config"
	"github.com/automoto/leapdash/shared/gamemath"
	"github.com/automoto/leapdash/shared/leveldata"
	"github.com/automoto/leapdash/shared/netconfig"
	"github.com/automoto/leapdash/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// Sink receives outbound reconciliation messages. *network.Client satisfies it.
type Sink interface {
	SendMessage(msg any) error
}

// Rejection explains why an activation was refused. It is surfaced as a
// denial cue and never as an error.
type Rejection int

const (
	RejectNone Rejection = iota
	RejectDisabled
	RejectBusy
	RejectLocked
	RejectStamina
	RejectCooldown
	RejectNoSprint
)

func (r Rejection) String() string {
	switch r {
	case RejectDisabled:
		return "disabled"
	case RejectBusy:
		return "busy"
	case RejectLocked:
		return "locked"
	case RejectStamina:
		return "stamina"
	case RejectCooldown:
		return "cooldown"
	case RejectNoSprint:
		return "no sprint"
	default:
		return "none"
	}
}

// Options configures a Session.
type Options struct {
	Config *config.Store
	Grid   *leveldata.TileGrid
	Sink   Sink
	Seed   uint64
}

// Session is the per-game-session context. It owns the world, the collision
// space and one instance of each controller; nothing here is process-global.
type Session struct {
	World donburi.World
	Level *Level

	Jumps   *JumpController
	Dashes  *DashController
	Sprints *SprintController
	Gate    *Gate
	Local   *Controller
	Peers   *PeerLayer

	cfg    *config.Store
	out    Sink
	rng    *rand.Rand
	sensor *resolv.Object
	tick   uint64
	dead   []donburi.Entity

	// LastRejection is the most recent denied activation, for the HUD.
	LastRejection     Rejection
	LastRejectionTick uint64
}

// NewSession builds a session over grid. A nil Config uses the defaults.
func NewSession(opts Options) *Session {
	store := opts.Config
	if store == nil {
		store = config.MustStore(config.Default())
	}
	grid := opts.Grid
	if grid == nil {
		grid = leveldata.NewTileGrid(32, 32)
	}

	s := &Session{
		World: donburi.NewWorld(),
		cfg:   store,
		out:   opts.Sink,
		rng:   rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
	}
	s.Level = NewLevel(grid)
	s.sensor = resolv.NewObject(0, 0, 1, 1, tags.ResolvSensor)
	s.sensor.SetShape(resolv.NewRectangle(0, 0, 1, 1))
	s.Level.Space.Add(s.sensor)

	s.Jumps = &JumpController{s: s}
	s.Dashes = &DashController{s: s}
	s.Sprints = &SprintController{s: s}
	s.Gate = &Gate{s: s}
	s.Local = &Controller{s: s}
	s.Peers = newPeerLayer(s)
	return s
}

// Config returns the current configuration snapshot.
func (s *Session) Config() *config.Movement {
	return s.cfg.Snapshot()
}

// SetSink replaces the outbound message sink.
func (s *Session) SetSink(out Sink) {
	s.out = out
}

// Tick returns the number of completed EndTick calls.
func (s *Session) Tick() uint64 {
	return s.tick
}

// SpawnLocal creates the locally controlled actor with its top-left at pos.
func (s *Session) SpawnLocal(id uint64, pos gamemath.Vec2, weapon netconfig.WeaponCategory) *donburi.Entry {
	cfg := s.Config()
	e := archetypes.Player.Spawn(s.World)
	components.Actor.SetValue(e, components.ActorData{
		ID:       id,
		Position: pos,
		W:        cfg.Host.ActorWidth,
		H:        cfg.Host.ActorHeight,
		Facing:   netconfig.FacingDown,
		Speed:    cfg.Host.WalkSpeed,
		Frame:    cfg.Host.IdleFrame,
		Stamina:  cfg.Host.MaxStamina,
		Mount:    donburi.Null,
	})
	obj := resolv.NewObject(pos.X, pos.Y, cfg.Host.ActorWidth, cfg.Host.ActorHeight, tags.ResolvActor)
	obj.SetShape(resolv.NewRectangle(0, 0, cfg.Host.ActorWidth, cfg.Host.ActorHeight))
	obj.Data = e.Entity()
	s.Level.Space.Add(obj)
	components.Object.SetValue(e, components.ObjectData{Object: obj})
	components.Weapon.SetValue(e, components.WeaponData{Category: weapon})
	components.Cooldowns.SetValue(e, components.CooldownsData{
		Dash: make(map[netconfig.WeaponCategory]float64),
	})
	components.Sprint.SetValue(e, components.SprintData{LastTap: -1})
	return e
}

// SpawnMount creates an unridden mount at pos.
func (s *Session) SpawnMount(pos gamemath.Vec2, w, h float64) *donburi.Entry {
	e := archetypes.Mount.Spawn(s.World)
	components.Actor.SetValue(e, components.ActorData{
		Position: pos,
		W:        w,
		H:        h,
		Mount:    donburi.Null,
	})
	components.Mount.SetValue(e, components.MountData{Rider: donburi.Null})
	return e
}

// Ride seats rider on mount. Locked actors cannot mount or dismount.
func (s *Session) Ride(rider, mount *donburi.Entry) bool {
	a := components.Actor.Get(rider)
	if a.Locked || !mount.HasComponent(components.Mount) {
		return false
	}
	m := components.Mount.Get(mount)
	if m.Rider != donburi.Null && m.Rider != rider.Entity() {
		return false
	}
	m.Rider = rider.Entity()
	a.Mount = mount.Entity()
	components.Actor.Get(mount).Position = a.Position
	return true
}

// Dismount leaves the current mount. It is refused mid-action.
func (s *Session) Dismount(rider *donburi.Entry) bool {
	a := components.Actor.Get(rider)
	if a.Locked || a.Mount == donburi.Null {
		return false
	}
	if s.World.Valid(a.Mount) {
		components.Mount.Get(s.World.Entry(a.Mount)).Rider = donburi.Null
	}
	a.Mount = donburi.Null
	return true
}

// SpawnHostile creates a damageable target.
func (s *Session) SpawnHostile(x, y, w, h float64, hp int) *donburi.Entry {
	e := archetypes.Hostile.Spawn(s.World)
	obj := resolv.NewObject(x, y, w, h, tags.ResolvHostile)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	obj.Data = e.Entity()
	s.Level.Space.Add(obj)
	components.Object.SetValue(e, components.ObjectData{Object: obj})
	components.Health.SetValue(e, components.HealthData{Current: hp, Max: hp})
	return e
}

// mountOf returns the live mount entry an actor rides, if any.
func (s *Session) mountOf(a *components.ActorData) (*donburi.Entry, bool) {
	if a.Mount == donburi.Null || !s.World.Valid(a.Mount) {
		return nil, false
	}
	e := s.World.Entry(a.Mount)
	if !e.HasComponent(components.Mount) {
		return nil, false
	}
	return e, true
}

func (s *Session) emit(msg any) {
	if s.out == nil {
		return
	}
	if err := s.out.SendMessage(msg); err != nil {
		s.debugf("send %T: %v", msg, err)
	}
}

func (s *Session) reject(r Rejection) Rejection {
	s.LastRejection = r
	s.LastRejectionTick = s.tick
	s.debugf("activation rejected: %s", r)
	return r
}

func (s *Session) debugf(format string, args ...any) {
	if s.Config().Debug {
		log.Printf("[action] "+format, args...)
	}
}

// guard runs fn for one actor and converts a panic into a logged failure
// that releases the actor's movement lock, so one actor's fault never stops
// the tick for the others.
func (s *Session) guard(e *donburi.Entry, what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			var id uint64
			if e.Valid() && e.HasComponent(components.Actor) {
				id = components.Actor.Get(e).ID
			}
			log.Printf("[action] %s panicked for actor %d (entity %v): %v", what, id, e.Entity(), r)
			s.releaseAfterFault(e)
		}
	}()
	fn()
}

func (s *Session) releaseAfterFault(e *donburi.Entry) {
	if !e.Valid() || !e.HasComponent(components.Actor) {
		return
	}
	a := components.Actor.Get(e)
	a.Locked = false
	a.OffsetY = 0
	if m, ok := s.mountOf(a); ok {
		ma := components.Actor.Get(m)
		ma.Locked = false
		ma.OffsetY = 0
	}
	if e.HasComponent(components.Jump) {
		components.Jump.Get(e).Active = false
		components.Jump.Get(e).Charging = false
		delete(s.Jumps.flights, e.Entity())
	}
	if e.HasComponent(components.Dash) && components.Dash.Get(e).Active {
		components.Dash.Get(e).Active = false
		delete(s.Dashes.running, e.Entity())
		s.emit(dashStopped(a.ID))
	}
}
