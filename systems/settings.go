package systems

import (
	"github.com/automoto/leapdash/components"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi/ecs"
)

// GetOrCreateSettings returns the singleton settings component.
func GetOrCreateSettings(e *ecs.ECS) *components.SettingsData {
	entry, ok := components.Settings.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.Settings))
	}
	return components.Settings.Get(entry)
}

// UpdateSettings toggles the debug overlay on F3.
func UpdateSettings(e *ecs.ECS) {
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		s := GetOrCreateSettings(e)
		s.Debug = !s.Debug
	}
}
