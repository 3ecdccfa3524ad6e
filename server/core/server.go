package core

import (
	"log"
	"sync"

	"github.com/automoto/leapdash/shared/messages"
	"github.com/automoto/leapdash/shared/netcomponents"
	"github.com/automoto/leapdash/shared/netconfig"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
)

// conn is the part of a router client the relay talks to.
type conn interface {
	Id() string
	SendMessage(msg any) error
}

// peer is one joined client.
type peer struct {
	entity  donburi.Entity
	actorID uint64
	name    string
	lastSeq uint32
}

// Server relays best-effort positions as synced snapshots and forwards
// action messages between peers. It never simulates actions itself.
type Server struct {
	cfg       Config
	world     donburi.World
	level     *ServerLevel
	loop      *GameLoop
	transport *transports.WsServerTransport

	commands chan func()

	// peers is only touched on the loop goroutine.
	peers     map[conn]*peer
	nextActor uint64
	joined    int

	mu    sync.RWMutex
	count int
}

// NewServer creates a relay for one level.
func NewServer(cfg Config, level *ServerLevel) *Server {
	world := donburi.NewWorld()

	s := &Server{
		cfg:      cfg,
		world:    world,
		level:    level,
		commands: make(chan func(), 256),
		peers:    make(map[conn]*peer),
	}
	s.loop = NewGameLoop(s, cfg.TickRate)

	srvsync.UseEsync(world)
	return s
}

// Start registers the router callbacks, runs the loop and serves websocket
// clients on the configured port.
func (s *Server) Start() error {
	s.setupRouterCallbacks()
	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(s.cfg.Port, "", nil)
	return s.transport.Start()
}

// Stop halts the loop.
func (s *Server) Stop() {
	s.loop.Stop()
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Printf("[relay] client connected: %s", client.Id())
	})
	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		s.enqueue(func() { s.onDisconnect(client, err) })
	})
	router.On(func(client *router.NetworkClient, msg messages.JoinRequest) {
		s.enqueue(func() { s.onJoin(client, msg) })
	})
	router.On(func(client *router.NetworkClient, msg messages.PositionUpdate) {
		s.enqueue(func() { s.onPosition(client, msg) })
	})
	router.On(func(client *router.NetworkClient, msg messages.JumpStarted) {
		s.enqueue(func() { s.onJumpStarted(client, msg) })
	})
	router.On(func(client *router.NetworkClient, msg messages.DashStarted) {
		s.enqueue(func() { s.onDashStarted(client, msg) })
	})
	router.On(func(client *router.NetworkClient, msg messages.DashStopped) {
		s.enqueue(func() { s.onDashStopped(client, msg) })
	})
	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[relay] client error: %v", err)
	})
}

// enqueue hands a router callback to the loop goroutine. A full queue drops
// the command; every message the relay handles is best effort.
func (s *Server) enqueue(cmd func()) {
	select {
	case s.commands <- cmd:
	default:
		log.Println("[relay] command queue full, dropping")
	}
}

// ProcessCommands runs every queued command. It is called once per tick.
func (s *Server) ProcessCommands() {
	for {
		select {
		case cmd := <-s.commands:
			cmd()
		default:
			return
		}
	}
}

func (s *Server) onJoin(c conn, req messages.JoinRequest) {
	if _, ok := s.peers[c]; ok {
		return
	}
	if reason := s.admit(req); reason != "" {
		log.Printf("[relay] rejected %s: %s", c.Id(), reason)
		s.send(c, messages.JoinRejected{Reason: reason})
		return
	}

	entity := s.world.Create(netcomponents.NetPosition, netcomponents.NetActor)
	entry := s.world.Entry(entity)

	s.nextActor++
	spawn := s.level.Spawn(s.joined)
	s.joined++
	netcomponents.NetPosition.Set(entry, &netcomponents.NetPositionData{X: spawn.X, Y: spawn.Y})
	netcomponents.NetActor.Set(entry, &netcomponents.NetActorData{
		ActorID: s.nextActor,
		Name:    req.PlayerName,
		Facing:  int(netconfig.FacingDown),
	})

	if err := srvsync.NetworkSync(s.world, &entity,
		srvsync.WithInterp(netcomponents.NetPosition),
		netcomponents.NetActor,
	); err != nil {
		log.Printf("[relay] network sync for %s: %v", c.Id(), err)
		s.world.Remove(entity)
		return
	}

	p := &peer{entity: entity, actorID: s.nextActor, name: req.PlayerName}
	s.peers[c] = p
	s.setCount(len(s.peers))

	var nid esync.NetworkId
	if id := esync.GetNetworkId(entry); id != nil {
		nid = *id
	}
	s.send(c, messages.JoinAccepted{
		NetworkID:  nid,
		ActorID:    p.actorID,
		ServerName: s.cfg.Name,
		TickRate:   s.cfg.TickRate,
		Level:      s.cfg.Level,
	})
	log.Printf("[relay] %s joined as actor %d (%q)", c.Id(), p.actorID, p.name)
}

func (s *Server) admit(req messages.JoinRequest) string {
	switch {
	case s.cfg.Version != "" && req.Version != s.cfg.Version:
		return "version mismatch: relay wants " + s.cfg.Version
	case req.Level != "" && req.Level != s.cfg.Level:
		return "relay is playing " + s.cfg.Level
	case s.cfg.MaxPeers > 0 && len(s.peers) >= s.cfg.MaxPeers:
		return "relay is full"
	}
	return ""
}

func (s *Server) onDisconnect(c conn, err error) {
	if err != nil {
		log.Printf("[relay] %s disconnected: %v", c.Id(), err)
	} else {
		log.Printf("[relay] %s disconnected", c.Id())
	}
	p, ok := s.peers[c]
	if !ok {
		return
	}
	delete(s.peers, c)
	s.setCount(len(s.peers))
	if s.world.Valid(p.entity) {
		s.world.Remove(p.entity)
	}
	// A dash cut short by a disconnect still ends on every peer.
	s.broadcast(c, messages.DashStopped{ActorID: p.actorID})
}

func (s *Server) onPosition(c conn, u messages.PositionUpdate) {
	p, ok := s.peers[c]
	if !ok || !s.world.Valid(p.entity) {
		return
	}
	if u.Sequence <= p.lastSeq {
		return
	}
	p.lastSeq = u.Sequence

	entry := s.world.Entry(p.entity)
	pos := s.level.Clamp(u.Position)
	np := netcomponents.NetPosition.Get(entry)
	np.X, np.Y = pos.X, pos.Y
	na := netcomponents.NetActor.Get(entry)
	na.Facing = u.Facing
	na.Mounted = u.Mounted
	na.Sequence = u.Sequence
}

// Action messages are forwarded with the sender's identity stamped over
// whatever the client put in ActorID.

func (s *Server) onJumpStarted(c conn, msg messages.JumpStarted) {
	if p, ok := s.peers[c]; ok {
		msg.ActorID = p.actorID
		s.broadcast(c, msg)
	}
}

func (s *Server) onDashStarted(c conn, msg messages.DashStarted) {
	if p, ok := s.peers[c]; ok {
		msg.ActorID = p.actorID
		s.broadcast(c, msg)
	}
}

func (s *Server) onDashStopped(c conn, msg messages.DashStopped) {
	if p, ok := s.peers[c]; ok {
		msg.ActorID = p.actorID
		s.broadcast(c, msg)
	}
}

// broadcast sends msg to every joined peer except from.
func (s *Server) broadcast(from conn, msg any) {
	for c := range s.peers {
		if c == from {
			continue
		}
		s.send(c, msg)
	}
}

func (s *Server) send(c conn, msg any) {
	if err := c.SendMessage(msg); err != nil {
		log.Printf("[relay] send %T to %s: %v", msg, c.Id(), err)
	}
}

func (s *Server) setCount(n int) {
	s.mu.Lock()
	s.count = n
	s.mu.Unlock()
}

// World returns the synced world.
func (s *Server) World() donburi.World {
	return s.world
}

// PlayerCount returns the number of joined peers. Safe from any goroutine.
func (s *Server) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}
