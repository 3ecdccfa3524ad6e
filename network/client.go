package network

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/automoto/leapdash/shared/messages"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
)

// ErrNotConnected is returned by SendMessage before the transport is up.
var ErrNotConnected = errors.New("not connected")

const (
	writeTimeout = 2 * time.Second
	inboxSize    = 16
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedGame
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateJoinedGame:
		return "joined"
	case StateError:
		return "error"
	default:
		return "disconnected"
	}
}

// JoinInfo is what the relay told us when it accepted the join.
type JoinInfo struct {
	NetworkID  esync.NetworkId
	ActorID    uint64
	ServerName string
	TickRate   int
	Level      string
}

// inbox queues peer action messages between the router goroutines and the
// game loop. Every queue is best effort: a full queue drops the newest.
type inbox struct {
	jumps     chan messages.JumpStarted
	dashes    chan messages.DashStarted
	dashStops chan messages.DashStopped
	snapshot  chan esync.WorldSnapshot // size 1, latest wins
}

func newInbox() inbox {
	return inbox{
		jumps:     make(chan messages.JumpStarted, inboxSize),
		dashes:    make(chan messages.DashStarted, inboxSize),
		dashStops: make(chan messages.DashStopped, inboxSize),
		snapshot:  make(chan esync.WorldSnapshot, 1),
	}
}

// Client is the game's connection to a relay. Router callbacks run on necs
// goroutines, so everything but the inbox is guarded by mu.
type Client struct {
	mu        sync.RWMutex
	state     ClientState
	lastError error
	info      JoinInfo
	conn      *websocket.Conn

	in inbox
}

func NewClient() *Client {
	return &Client{state: StateDisconnected, in: newInbox()}
}

// Connect dials address in the background. The join request goes out as soon
// as the socket is up; State reports StateJoinedGame once it is accepted.
func (c *Client) Connect(address, version, playerName, level string) {
	c.setState(StateConnecting, nil)

	join := messages.JoinRequest{Version: version, PlayerName: playerName, Level: level}
	router.OnConnect(func(_ *router.NetworkClient) {
		log.Println("[client] connected to relay")
		c.setState(StateConnected, nil)
		if err := c.SendMessage(join); err != nil {
			c.setState(StateError, fmt.Errorf("send join request: %w", err))
		}
	})
	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) { c.onJoinAccepted(msg) })
	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		log.Printf("[client] join rejected: %s", msg.Reason)
		c.setState(StateError, fmt.Errorf("join rejected: %s", msg.Reason))
	})
	router.On(func(_ *router.NetworkClient, snap esync.WorldSnapshot) { c.onSnapshot(snap) })
	router.On(func(_ *router.NetworkClient, msg messages.JumpStarted) { offer(c.in.jumps, msg) })
	router.On(func(_ *router.NetworkClient, msg messages.DashStarted) { offer(c.in.dashes, msg) })
	router.On(func(_ *router.NetworkClient, msg messages.DashStopped) { offer(c.in.dashStops, msg) })
	router.OnDisconnect(func(_ *router.NetworkClient, err error) { c.onDisconnect(err) })
	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setState(StateError, fmt.Errorf("connect %s: %w", address, err))
		}
	}()
}

func (c *Client) onJoinAccepted(msg messages.JoinAccepted) {
	log.Printf("[client] joined %q as actor %d (network id %d, %d ticks/s, level %s)",
		msg.ServerName, msg.ActorID, msg.NetworkID, msg.TickRate, msg.Level)
	c.mu.Lock()
	c.info = JoinInfo{
		NetworkID:  msg.NetworkID,
		ActorID:    msg.ActorID,
		ServerName: msg.ServerName,
		TickRate:   msg.TickRate,
		Level:      msg.Level,
	}
	c.state = StateJoinedGame
	c.mu.Unlock()
}

func (c *Client) onSnapshot(snap esync.WorldSnapshot) {
	select {
	case <-c.in.snapshot:
	default:
	}
	c.in.snapshot <- snap
}

func (c *Client) onDisconnect(err error) {
	log.Printf("[client] disconnected: %v", err)
	c.mu.Lock()
	if c.state != StateError {
		c.state = StateDisconnected
	}
	c.conn = nil
	c.mu.Unlock()
}

// Disconnect closes the socket and drops every router callback.
func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}
	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

// Info returns the join details. It is zero until the join is accepted.
func (c *Client) Info() JoinInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.info
}

// LatestSnapshot returns the most recent snapshot not yet taken, or nil.
func (c *Client) LatestSnapshot() *esync.WorldSnapshot {
	select {
	case snap := <-c.in.snapshot:
		return &snap
	default:
		return nil
	}
}

// SendMessage serializes msg with the router codec and writes it to the relay.
func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()
	if conn == nil {
		return ErrNotConnected
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize %T: %w", msg, err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageBinary, payload)
}

// setState moves to state. A non-nil err is kept for LastError.
func (c *Client) setState(state ClientState, err error) {
	c.mu.Lock()
	c.state = state
	if err != nil || state == StateConnecting {
		c.lastError = err
	}
	c.mu.Unlock()
}

// DrainJumpStarted returns all pending peer jump starts, non-blocking.
func (c *Client) DrainJumpStarted() []messages.JumpStarted {
	return drainChan(c.in.jumps)
}

// DrainDashStarted returns all pending peer dash starts, non-blocking.
func (c *Client) DrainDashStarted() []messages.DashStarted {
	return drainChan(c.in.dashes)
}

// DrainDashStopped returns all pending peer dash stops, non-blocking.
func (c *Client) DrainDashStopped() []messages.DashStopped {
	return drainChan(c.in.dashStops)
}

func offer[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
		log.Printf("[client] dropped %T: queue full", v)
	}
}

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
