package components

import (
	"github.com/automoto/leapdash/shared/gamemath"
	"github.com/yohamta/donburi"
)

// CameraData is the client view center and the bounds it is clamped to.
type CameraData struct {
	Position gamemath.Vec2
	Bounds   gamemath.Vec2 // level size in pixels
}

var Camera = donburi.NewComponentType[CameraData]()

// SettingsData holds client toggles flipped at runtime.
type SettingsData struct {
	Debug bool
}

var Settings = donburi.NewComponentType[SettingsData]()
