package messages

import "github.com/automoto/leapdash/shared/gamemath"

// PositionUpdate is the best-effort position report each client sends to the
// relay every few ticks. The relay folds it into the synced snapshot.
type PositionUpdate struct {
	Sequence uint32 // increasing; the relay drops stale updates
	Position gamemath.Vec2
	Facing   int
	Mounted  bool
}
