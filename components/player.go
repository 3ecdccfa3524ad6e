package components

import (
	"github.com/automoto/leapdash/shared/gamemath"
	"github.com/automoto/leapdash/shared/netconfig"
	"github.com/yohamta/donburi"
)

// ActorData is the host-owned record of a movement-capable entity. Transient
// actions write Position, OffsetY, Frame and Locked directly while they own
// the actor.
type ActorData struct {
	ID       uint64 // network-wide identity; 0 until joined
	Position gamemath.Vec2
	W, H     float64
	Facing   netconfig.Facing
	Speed    float64 // current movement speed in pixels per tick
	Moving   bool    // movement input held this tick
	Locked   bool    // host movement and animation suspended
	Frame    int     // animation frame
	OffsetY  float64 // vertical display offset, negative is up
	Stamina  float64
	Mount    donburi.Entity // ridden mount, donburi.Null when on foot
}

// Tile returns the tile containing the actor's center.
func (a *ActorData) Tile() gamemath.Tile {
	return gamemath.TileAt(a.Position, a.W, a.H)
}

// Center returns the center of the actor's box.
func (a *ActorData) Center() gamemath.Vec2 {
	return gamemath.Vec2{X: a.Position.X + a.W/2, Y: a.Position.Y + a.H/2}
}

var Actor = donburi.NewComponentType[ActorData]()

// MountData marks a rideable creature. Rider is donburi.Null when unridden.
type MountData struct {
	Rider   donburi.Entity
	OffsetY float64
}

var Mount = donburi.NewComponentType[MountData]()

// WeaponData is the equipped melee weapon.
type WeaponData struct {
	Category netconfig.WeaponCategory
}

var Weapon = donburi.NewComponentType[WeaponData]()
