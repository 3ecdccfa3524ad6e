package messages

import "github.com/automoto/leapdash/shared/gamemath"

// JumpStarted is sent when an actor takes off. Start and Target are the fully
// resolved ground positions; receivers re-anchor them on their own view of
// the actor.
type JumpStarted struct {
	ActorID       uint64
	Start         gamemath.Vec2
	Target        gamemath.Vec2
	DurationTicks int
	PeakHeight    float64
	IsMounted     bool
}

// DashStarted is sent when a dash attack activates.
type DashStarted struct {
	ActorID   uint64
	Direction gamemath.Vec2 // unit vector fixed at activation
}

// DashStopped is sent when a dash ends for any reason.
type DashStopped struct {
	ActorID uint64
}
