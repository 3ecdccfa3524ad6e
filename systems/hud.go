package systems

import (
	"fmt"
	"image/color"

	"github.com/automoto/leapdash/action"
	"github.com/automoto/leapdash/components"
	"github.com/automoto/leapdash/shared/netconfig"
	"github.com/automoto/leapdash/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/font/basicfont"
)

const (
	hudBarWidth  = 130
	hudBarHeight = 13
	hudMargin    = 10
	hudLine      = 16

	// rejectionTicks is how long a denied activation stays on the HUD.
	rejectionTicks = 60
)

var (
	colorStamina = color.RGBA{230, 200, 40, 255}
	colorCharge  = color.RGBA{120, 200, 255, 255}
	colorDenied  = color.RGBA{255, 90, 90, 255}
)

// NewHUDRenderer draws the local actor's stamina, sprint, cooldown and jump
// charge, the last denied activation and a status line from status.
func NewHUDRenderer(sess *action.Session, status func() string) func(*ecs.ECS, *ebiten.Image) {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		entry, ok := tags.Player.First(e.World)
		if !ok {
			return
		}
		cfg := sess.Config()
		a := components.Actor.Get(entry)

		vector.FillRect(screen, hudMargin, hudMargin, hudBarWidth, hudBarHeight, colorHPBack, false)
		ratio := float32(0)
		if cfg.Host.MaxStamina > 0 {
			ratio = float32(a.Stamina / cfg.Host.MaxStamina)
		}
		vector.FillRect(screen, hudMargin, hudMargin, hudBarWidth*ratio, hudBarHeight, colorStamina, false)

		y := hudMargin + hudBarHeight + hudLine
		line := func(s string, c color.Color) {
			text.Draw(screen, s, basicfont.Face7x13, hudMargin, y, c)
			y += hudLine
		}

		sp := components.Sprint.Get(entry)
		sprint := "walk"
		if sp.Active {
			sprint = "sprint"
		}
		status := fmt.Sprintf("%s (%s)  speed %.1f", sprint, cfg.Sprint.ModeID(), a.Speed)
		if cfg.Sprint.ModeID() == netconfig.SprintDoubleTap {
			status += fmt.Sprintf("  taps %d", sp.TapCount)
		}
		line(status, colorWhite)

		weapon := components.Weapon.Get(entry).Category
		if left := components.Cooldowns.Get(entry).Remaining(weapon); left > 0 {
			line(fmt.Sprintf("%s dash %.1fs", weapon, left), colorWhite)
		} else {
			line(fmt.Sprintf("%s dash ready", weapon), colorWhite)
		}

		if charge, ok := sess.Gate.Charge(entry); ok {
			vector.FillRect(screen, hudMargin, float32(y-hudLine+4), hudBarWidth, 6, colorHPBack, false)
			vector.FillRect(screen, hudMargin, float32(y-hudLine+4), hudBarWidth*float32(charge), 6, colorCharge, false)
			y += 8
			line(fmt.Sprintf("charge %d%%", int(charge*100)), colorCharge)
		}

		if sess.LastRejection != action.RejectNone && sess.Tick()-sess.LastRejectionTick < rejectionTicks {
			line("denied: "+sess.LastRejection.String(), colorDenied)
		}

		if status != nil {
			if s := status(); s != "" {
				text.Draw(screen, s, basicfont.Face7x13, hudMargin, screen.Bounds().Dy()-hudMargin, colorWhite)
			}
		}
	}
}
