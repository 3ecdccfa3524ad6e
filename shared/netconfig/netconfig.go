// Package netconfig defines lightweight enums shared between client and relay
// for network serialization. It must have zero dependencies on ebiten or any
// graphics library so the relay binary stays headless.
package netconfig

// ActionKind identifies a transient action.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionJump
	ActionDash
)

func (k ActionKind) String() string {
	switch k {
	case ActionJump:
		return "jump"
	case ActionDash:
		return "dash"
	default:
		return "none"
	}
}

// WeaponCategory is the closed set of melee weapon classes. Each category has
// its own dash cooldown and hit-volume inflation.
type WeaponCategory int

const (
	WeaponNone WeaponCategory = iota
	WeaponSword
	WeaponDagger
	WeaponClub
)

func (w WeaponCategory) String() string {
	switch w {
	case WeaponSword:
		return "sword"
	case WeaponDagger:
		return "dagger"
	case WeaponClub:
		return "club"
	default:
		return "none"
	}
}

// ParseWeaponCategory is the inverse of String. Unknown names map to WeaponNone.
func ParseWeaponCategory(name string) WeaponCategory {
	switch name {
	case "sword":
		return WeaponSword
	case "dagger":
		return WeaponDagger
	case "club":
		return WeaponClub
	default:
		return WeaponNone
	}
}

// Facing is one of the four cardinal directions, numbered clockwise from up.
type Facing int

const (
	FacingUp Facing = iota
	FacingRight
	FacingDown
	FacingLeft
)

func (f Facing) String() string {
	switch f {
	case FacingUp:
		return "up"
	case FacingRight:
		return "right"
	case FacingDown:
		return "down"
	case FacingLeft:
		return "left"
	default:
		return "unknown"
	}
}

// SprintMode selects how sprint is activated.
type SprintMode int

const (
	SprintDoubleTap SprintMode = iota
	SprintHold
	SprintToggle
)

// ParseSprintMode maps a config name to a mode. Unknown names fall back to double tap.
func ParseSprintMode(name string) SprintMode {
	switch name {
	case "hold":
		return SprintHold
	case "toggle":
		return SprintToggle
	default:
		return SprintDoubleTap
	}
}

func (m SprintMode) String() string {
	switch m {
	case SprintHold:
		return "hold"
	case SprintToggle:
		return "toggle"
	default:
		return "doubletap"
	}
}
