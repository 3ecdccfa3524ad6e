package scenes

import (
	"fmt"
	"image/color"
	"log"
	"sync"

	"github.com/automoto/leapdash/network"
	"github.com/automoto/leapdash/shared/gamemath"
	"github.com/automoto/leapdash/shared/netcomponents"
	"github.com/automoto/leapdash/shared/netconfig"
	"github.com/automoto/leapdash/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/leap-fish/necs/esync"
)

// NetworkedScene runs a session joined to a relay. Positions arrive as
// snapshots; jumps and dashes arrive as action messages and are replayed as
// shadows by the session's peer layer.
type NetworkedScene struct {
	setup        Setup
	sceneChanger SceneChanger
	netClient    *network.Client
	play         *play
	err          error
	once         sync.Once

	reports network.ReportBuffer
	acked   uint32 // last report the relay echoed back
	present map[uint64]bool
}

func NewNetworkedScene(sc SceneChanger, client *network.Client, setup Setup) *NetworkedScene {
	return &NetworkedScene{
		setup:        setup,
		sceneChanger: sc,
		netClient:    client,
		present:      make(map[uint64]bool),
	}
}

func (ns *NetworkedScene) Update() {
	switch ns.netClient.State() {
	case network.StateDisconnected, network.StateError:
		if err := ns.netClient.LastError(); err != nil {
			log.Printf("[networked] %v, continuing offline", err)
		} else {
			log.Println("[networked] disconnected, continuing offline")
		}
		ns.netClient.Disconnect()
		ns.sceneChanger.ChangeScene(NewWorldScene(ns.sceneChanger, ns.setup))
		return
	case network.StateJoinedGame:
	default:
		return
	}

	ns.once.Do(ns.configure)
	if ns.play == nil {
		return
	}

	ns.drainActions()
	if snap := ns.netClient.LatestSnapshot(); snap != nil {
		ns.applySnapshot(*snap)
	}

	ns.play.host.Tick(systems.PollButtons())

	if u, ok := ns.play.host.Report(); ok {
		ns.reports.Store(u)
		if err := ns.netClient.SendMessage(u); err != nil && ns.setup.Debug {
			log.Printf("[networked] send report %d: %v", u.Sequence, err)
		}
	}

	ns.play.ecs.Update()
}

func (ns *NetworkedScene) Draw(screen *ebiten.Image) {
	if ns.play == nil {
		switch {
		case ns.err != nil:
			drawMessage(screen, ns.err.Error())
		default:
			drawMessage(screen, "connecting...")
		}
		return
	}
	screen.Fill(color.Black)
	ns.play.ecs.Draw(screen)
}

func (ns *NetworkedScene) configure() {
	info := ns.netClient.Info()
	p, err := newPlay(ns.setup, info.Level, ns.netClient, ns.status)
	if err != nil {
		log.Printf("[networked] %v", err)
		ns.err = err
		return
	}
	p.host.SetActorID(info.ActorID)
	ns.play = p
}

func (ns *NetworkedScene) status() string {
	info := ns.netClient.Info()
	return fmt.Sprintf("%s  actor #%d  unacked %d",
		info.ServerName, info.ActorID, len(ns.reports.Pending(ns.acked)))
}

// drainActions hands queued peer actions to the peer layer. Stops go first so
// a stale stop never cuts short a dash that started after it.
func (ns *NetworkedScene) drainActions() {
	peers := ns.play.sess.Peers
	for _, msg := range ns.netClient.DrainDashStopped() {
		peers.OnDashStopped(msg)
	}
	for _, msg := range ns.netClient.DrainJumpStarted() {
		peers.OnJumpStarted(msg)
	}
	for _, msg := range ns.netClient.DrainDashStarted() {
		peers.OnDashStarted(msg)
	}
}

// applySnapshot feeds relay positions into the peer layer and drops peers the
// relay no longer lists. The local actor's own entry is only used to measure
// how far the relay lags behind its reports.
func (ns *NetworkedScene) applySnapshot(snapshot esync.WorldSnapshot) {
	self := ns.netClient.Info().ActorID
	clear(ns.present)

	for _, ent := range snapshot {
		var pos *netcomponents.NetPositionData
		var actor *netcomponents.NetActorData
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			switch v := instance.(type) {
			case netcomponents.NetPositionData:
				pos = &v
			case netcomponents.NetActorData:
				actor = &v
			}
		}
		if pos == nil || actor == nil || actor.ActorID == 0 {
			continue
		}

		p := pos.Vec()
		if actor.ActorID == self {
			ns.checkDrift(actor.Sequence, p)
			continue
		}
		ns.present[actor.ActorID] = true
		ns.play.sess.Peers.ApplyRemotePosition(actor.ActorID, p, netconfig.Facing(actor.Facing), actor.Mounted)
	}

	ns.play.sess.Peers.RemoveMissing(ns.present)
}

func (ns *NetworkedScene) checkDrift(seq uint32, relay gamemath.Vec2) {
	if seq <= ns.acked {
		return
	}
	ns.acked = seq
	if d := ns.reports.Drift(seq, relay.X, relay.Y); d > gamemath.TileSize && ns.setup.Debug {
		log.Printf("[networked] relay copy of report %d is %.0fpx off", seq, d)
	}
}
