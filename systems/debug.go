package systems

import (
	"fmt"
	"image/color"

	"github.com/automoto/leapdash/action"
	"github.com/automoto/leapdash/components"
	"github.com/automoto/leapdash/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/font/basicfont"
)

var (
	colorPath  = color.RGBA{255, 255, 0, 255}
	colorKnown = color.RGBA{0, 255, 255, 255}
)

// NewDebugRenderer outlines running actions: the local jump path and target
// tile, the dash direction, and for each peer the relay-known position next
// to the displayed one.
func NewDebugRenderer(sess *action.Session) func(*ecs.ECS, *ebiten.Image) {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		if !GetOrCreateSettings(e).Debug {
			return
		}
		camX, camY := viewOffset(e, screen.Bounds().Dx(), screen.Bounds().Dy())

		tags.Player.Each(e.World, func(entry *donburi.Entry) {
			a := components.Actor.Get(entry)
			if j := components.Jump.Get(entry); j.Active {
				st := j.State
				vector.StrokeLine(screen,
					float32(st.Start.X+a.W/2+camX), float32(st.Start.Y+a.H/2+camY),
					float32(st.Target.X+a.W/2+camX), float32(st.Target.Y+a.H/2+camY),
					1, colorPath, false)
				vector.StrokeRect(screen, float32(st.Target.X+camX), float32(st.Target.Y+camY),
					float32(a.W), float32(a.H), 1, colorPath, false)
			}
			if d := components.Dash.Get(entry); d.Active {
				c := a.Center()
				end := c.Add(d.State.Direction.Scale(d.State.Config.Dash.StepPixels * float64(d.State.Duration-d.State.Progress)))
				vector.StrokeLine(screen, float32(c.X+camX), float32(c.Y+camY),
					float32(end.X+camX), float32(end.Y+camY), 1, colorPath, false)
			}
		})

		tags.Remote.Each(e.World, func(entry *donburi.Entry) {
			a := components.Actor.Get(entry)
			known, ok := components.NetInterp.Get(entry).Known()
			if !ok {
				return
			}
			vector.StrokeRect(screen, float32(known.X+camX), float32(known.Y+camY),
				float32(a.W), float32(a.H), 1, colorKnown, false)
			if rec, ok := sess.Peers.Record(a.ID); ok {
				st := rec.State
				label := fmt.Sprintf("%s %d/%d", st.Kind, st.Progress, st.Duration)
				text.Draw(screen, label, basicfont.Face7x13, int(known.X+camX), int(known.Y+a.H+camY)+12, colorKnown)
			}
		})

		text.Draw(screen, fmt.Sprintf("tick %d  shadows %d  tps %.0f", sess.Tick(), sess.Peers.Count(), ebiten.ActualTPS()),
			basicfont.Face7x13, screen.Bounds().Dx()-260, hudMargin+hudLine, colorWhite)
	}
}
