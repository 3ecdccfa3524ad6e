package netcomponents

import "github.com/yohamta/donburi"

// NetActorData carries the discrete per-actor state peers need to
// reconstruct actions: identity, facing and whether the actor rides a mount.
type NetActorData struct {
	ActorID  uint64
	Name     string
	Facing   int
	Mounted  bool
	Sequence uint32 // last applied PositionUpdate
}

var NetActor = donburi.NewComponentType[NetActorData]()
