package components

import (
	"github.com/automoto/leapdash/shared/gamemath"
	"github.com/yohamta/donburi"
)

// NetInterpData stores interpolation state for smooth rendering of remote
// actors between relay snapshots.
type NetInterpData struct {
	Prev, Target gamemath.Vec2
	T            float64
	Initialized  bool
}

// Known returns the last position the relay reported for the peer.
func (n *NetInterpData) Known() (gamemath.Vec2, bool) {
	return n.Target, n.Initialized
}

var NetInterp = donburi.NewComponentType[NetInterpData]()

// RemoteData marks an actor driven by another client.
type RemoteData struct {
	// Display is where the actor is drawn. Snapshots pull it toward the
	// known position; shadow actions pull it along the action path.
	Display gamemath.Vec2
	// Velocity is the per-tick displacement a shadow dash moves the display
	// along. It is zero outside a dash.
	Velocity gamemath.Vec2
	Mounted  bool
}

var Remote = donburi.NewComponentType[RemoteData]()
