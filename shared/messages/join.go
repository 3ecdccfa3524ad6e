package messages

import "github.com/leap-fish/necs/esync"

// JoinRequest is sent by a client after connecting to request joining a session.
type JoinRequest struct {
	Version    string
	PlayerName string
	Level      string
}

// JoinAccepted is sent by the relay when a client's join request is accepted.
// ActorID is the identity stamped on every action message the client sends.
type JoinAccepted struct {
	NetworkID  esync.NetworkId
	ActorID    uint64
	ServerName string
	TickRate   int
	Level      string
}

// JoinRejected is sent by the relay when a client's join request is rejected.
type JoinRejected struct {
	Reason string
}
