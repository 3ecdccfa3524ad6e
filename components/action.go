package components

import (
	"github.com/automoto/leapdash/config"
	"github.com/automoto/leapdash/shared/gamemath"
	"github.com/automoto/leapdash/shared/netconfig"
	"github.com/yohamta/donburi"
)

// ActionState is one running transient action. Locally authoritative states
// drive the actor exactly; shadow states only approximate a peer.
type ActionState struct {
	Kind          netconfig.ActionKind
	Progress      int // elapsed ticks
	Duration      int // planned ticks
	Start, Target gamemath.Vec2
	PeakHeight    float64       // jump only
	Direction     gamemath.Vec2 // dash only, unit length
	Authoritative bool
	Mounted       bool

	// Config is the snapshot the action started with.
	Config *config.Movement
}

// Done reports whether the planned duration has elapsed.
func (s *ActionState) Done() bool {
	return s.Progress >= s.Duration
}

// JumpData is the local jump machine. Charging and Active are exclusive.
type JumpData struct {
	Charging      bool
	ChargeSeconds float64
	Active        bool
	State         ActionState
	OriginalFrame int
	Landed        bool // only on the tick the jump finished; the host skips walking
}

var Jump = donburi.NewComponentType[JumpData]()

// DashData is the local dash machine.
type DashData struct {
	Active bool
	State  ActionState
	Weapon netconfig.WeaponCategory
	// Hit is the set of targets already damaged by this activation.
	Hit map[donburi.Entity]struct{}
}

var Dash = donburi.NewComponentType[DashData]()

// CooldownsData holds per weapon category countdowns in seconds.
type CooldownsData struct {
	Dash          map[netconfig.WeaponCategory]float64
	AttackLatched bool // a held press was dropped on cooldown; stays dropped until released
}

// Remaining returns the seconds left on a category's dash cooldown.
func (c *CooldownsData) Remaining(w netconfig.WeaponCategory) float64 {
	return c.Dash[w]
}

var Cooldowns = donburi.NewComponentType[CooldownsData]()

// SprintData is the sprint mode state of the local actor.
type SprintData struct {
	Active       bool
	Toggled      bool    // toggle mode latch
	Timer        float64 // double-tap time left
	DrainTimer   float64 // seconds until the next stamina drain
	SinceEnded   float64 // seconds since sprint last ended, for the grace window
	EverSprinted bool

	LastTap  int     // direction button of the previous tap, -1 for none
	SinceTap float64 // seconds since the previous tap
	TapCount int     // double taps that started a sprint
}

// Recently reports whether the actor is sprinting or stopped within grace seconds.
func (s *SprintData) Recently(grace float64) bool {
	if s.Active {
		return true
	}
	return s.EverSprinted && s.SinceEnded <= grace
}

var Sprint = donburi.NewComponentType[SprintData]()
