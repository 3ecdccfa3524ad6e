package systems

import (
	"github.com/automoto/leapdash/components"
	"github.com/hajimehoshi/ebiten/v2"
)

// analogDeadzone is the stick deflection below which input is ignored.
const analogDeadzone = 0.25

var keyBindings = [components.ButtonCount][]ebiten.Key{
	components.ButtonUp:     {ebiten.KeyW, ebiten.KeyArrowUp},
	components.ButtonRight:  {ebiten.KeyD, ebiten.KeyArrowRight},
	components.ButtonDown:   {ebiten.KeyS, ebiten.KeyArrowDown},
	components.ButtonLeft:   {ebiten.KeyA, ebiten.KeyArrowLeft},
	components.ButtonJump:   {ebiten.KeySpace},
	components.ButtonAttack: {ebiten.KeyJ, ebiten.KeyX},
	components.ButtonSprint: {ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
}

var padBindings = [components.ButtonCount][]ebiten.StandardGamepadButton{
	components.ButtonUp:     {ebiten.StandardGamepadButtonLeftTop},
	components.ButtonRight:  {ebiten.StandardGamepadButtonLeftRight},
	components.ButtonDown:   {ebiten.StandardGamepadButtonLeftBottom},
	components.ButtonLeft:   {ebiten.StandardGamepadButtonLeftLeft},
	components.ButtonJump:   {ebiten.StandardGamepadButtonRightBottom},
	components.ButtonAttack: {ebiten.StandardGamepadButtonRightLeft},
	components.ButtonSprint: {ebiten.StandardGamepadButtonFrontTopRight},
}

// Reusable slice for gamepad IDs to avoid allocations
var gamepadIDs []ebiten.GamepadID

// PollButtons reads the keyboard and every standard gamepad into one pressed
// set. The action core derives edges from consecutive sets itself.
func PollButtons() [components.ButtonCount]bool {
	var pressed [components.ButtonCount]bool

	for b, keys := range keyBindings {
		for _, key := range keys {
			if ebiten.IsKeyPressed(key) {
				pressed[b] = true
			}
		}
	}

	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])
	for _, id := range gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for b, buttons := range padBindings {
			for _, btn := range buttons {
				if ebiten.IsStandardGamepadButtonPressed(id, btn) {
					pressed[b] = true
				}
			}
		}
		mergeStick(&pressed, id)
	}
	return pressed
}

// mergeStick folds the left stick into the direction buttons.
func mergeStick(pressed *[components.ButtonCount]bool, id ebiten.GamepadID) {
	h := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	v := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	if h < -analogDeadzone {
		pressed[components.ButtonLeft] = true
	}
	if h > analogDeadzone {
		pressed[components.ButtonRight] = true
	}
	if v < -analogDeadzone {
		pressed[components.ButtonUp] = true
	}
	if v > analogDeadzone {
		pressed[components.ButtonDown] = true
	}
}
