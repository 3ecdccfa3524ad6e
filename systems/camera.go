package systems

import (
	"math"

	"github.com/automoto/leapdash/components"
	"github.com/automoto/leapdash/config"
	"github.com/automoto/leapdash/shared/gamemath"
	"github.com/automoto/leapdash/tags"
	"github.com/yohamta/donburi/ecs"
)

const cameraSmoothing = 0.15

// CreateCamera adds the camera singleton for a level of the given pixel size.
func CreateCamera(e *ecs.ECS, levelW, levelH int) {
	entry := e.World.Entry(e.World.Create(components.Camera))
	components.Camera.SetValue(entry, components.CameraData{
		Bounds: gamemath.Vec2{X: float64(levelW), Y: float64(levelH)},
	})
}

// UpdateCamera follows the local actor, keeping the level filling the screen.
// The jump offset is ignored so the view does not bob with the arc.
func UpdateCamera(e *ecs.ECS) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)

	playerEntry, ok := tags.Player.First(e.World)
	if !ok {
		return
	}
	target := components.Actor.Get(playerEntry).Center()

	halfW := float64(config.C.Width) / 2
	halfH := float64(config.C.Height) / 2
	target.X = clampView(target.X, halfW, camera.Bounds.X)
	target.Y = clampView(target.Y, halfH, camera.Bounds.Y)

	if camera.Position == (gamemath.Vec2{}) {
		camera.Position = target
		return
	}
	camera.Position = gamemath.Approach(camera.Position, target, cameraSmoothing)
}

// clampView keeps a view center inside [half, size-half]. Levels smaller
// than the screen are centered.
func clampView(v, half, size float64) float64 {
	if size <= 2*half {
		return size / 2
	}
	return math.Max(half, math.Min(size-half, v))
}

// viewOffset returns the translation from world to screen coordinates.
func viewOffset(e *ecs.ECS, screenW, screenH int) (float64, float64) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return 0, 0
	}
	camera := components.Camera.Get(cameraEntry)
	return float64(screenW)/2 - camera.Position.X, float64(screenH)/2 - camera.Position.Y
}
