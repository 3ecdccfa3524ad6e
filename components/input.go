package components

import "github.com/yohamta/donburi"

// Button is a logical input, decoupled from keys and gamepads.
type Button int

const (
	ButtonUp Button = iota
	ButtonRight
	ButtonDown
	ButtonLeft
	ButtonJump
	ButtonAttack
	ButtonSprint
	ButtonCount // Must be last - used for array sizing
)

// InputData stores the current and previous tick's pressed state for all
// buttons. JustPressed/JustReleased are computed on demand.
type InputData struct {
	Current  [ButtonCount]bool
	Previous [ButtonCount]bool
}

// Advance rolls Current into Previous and installs the new pressed state.
func (in *InputData) Advance(pressed [ButtonCount]bool) {
	in.Previous = in.Current
	in.Current = pressed
}

func (in *InputData) Pressed(b Button) bool { return in.Current[b] }

func (in *InputData) JustPressed(b Button) bool { return in.Current[b] && !in.Previous[b] }

func (in *InputData) JustReleased(b Button) bool { return !in.Current[b] && in.Previous[b] }

// MoveFacing returns the facing of the first held direction button, checked
// in facing order.
func (in *InputData) MoveFacing() (int, bool) {
	for b := ButtonUp; b <= ButtonLeft; b++ {
		if in.Current[b] {
			return int(b), true
		}
	}
	return 0, false
}

var Input = donburi.NewComponentType[InputData]()
