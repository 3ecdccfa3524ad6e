package systems

import (
	"fmt"
	"image/color"

	"github.com/automoto/leapdash/action"
	"github.com/automoto/leapdash/components"
	"github.com/automoto/leapdash/shared/gamemath"
	"github.com/automoto/leapdash/shared/leveldata"
	"github.com/automoto/leapdash/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/font/basicfont"
)

var (
	colorGround   = color.RGBA{46, 84, 52, 255}
	colorSolid    = color.RGBA{96, 96, 96, 255}
	colorWater    = color.RGBA{40, 90, 170, 255}
	colorJumpable = color.RGBA{120, 90, 50, 255}
	colorObstacle = color.RGBA{150, 130, 100, 255}
	colorLocal    = color.RGBA{80, 220, 80, 255}
	colorMount    = color.RGBA{170, 120, 70, 255}
	colorHostile  = color.RGBA{200, 50, 50, 255}
	colorShadow   = color.RGBA{0, 0, 0, 90}
	colorWhite    = color.RGBA{255, 255, 255, 255}
	colorHPBack   = color.RGBA{40, 40, 40, 255}
	colorHP       = color.RGBA{40, 220, 40, 255}
)

var peerColors = []color.RGBA{
	{80, 160, 255, 255},
	{255, 200, 60, 255},
	{220, 100, 255, 255},
	{60, 230, 210, 255},
}

// NewLevelRenderer draws the tiles of grid visible on screen.
func NewLevelRenderer(grid *leveldata.TileGrid) func(*ecs.ECS, *ebiten.Image) {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
		camX, camY := viewOffset(e, w, h)
		ts := float64(gamemath.TileSize)

		x0, y0 := int(-camX/ts), int(-camY/ts)
		for ty := max(y0, 0); ty <= y0+h/gamemath.TileSize+1 && ty < grid.Height; ty++ {
			for tx := max(x0, 0); tx <= x0+w/gamemath.TileSize+1 && tx < grid.Width; tx++ {
				t := gamemath.Tile{X: tx, Y: ty}
				c := colorGround
				switch f := grid.FlagsAt(t); {
				case f.Has(leveldata.FlagSolid):
					c = colorSolid
				case f.Has(leveldata.FlagWater):
					c = colorWater
				case f.Has(leveldata.FlagJumpable):
					c = colorJumpable
				}
				x, y := float32(float64(tx)*ts+camX), float32(float64(ty)*ts+camY)
				vector.FillRect(screen, x, y, float32(ts), float32(ts), c, false)
				if _, ok := grid.Obstacles[t]; ok {
					vector.FillRect(screen, x+12, y+12, float32(ts)-24, float32(ts)-24, colorObstacle, false)
				}
			}
		}
	}
}

// NewActorRenderer draws mounts, hostiles, remote peers and the local actor.
// Jumping actors are drawn raised by their offset above a ground shadow.
func NewActorRenderer(sess *action.Session) func(*ecs.ECS, *ebiten.Image) {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		camX, camY := viewOffset(e, screen.Bounds().Dx(), screen.Bounds().Dy())

		tags.Hostile.Each(e.World, func(entry *donburi.Entry) {
			drawHostile(screen, entry, camX, camY)
		})

		tags.Mount.Each(e.World, func(entry *donburi.Entry) {
			a := components.Actor.Get(entry)
			off := components.Mount.Get(entry).OffsetY
			drawBody(screen, a.Position, a.W, a.H, off, colorMount, camX, camY)
		})

		tags.Remote.Each(e.World, func(entry *donburi.Entry) {
			a := components.Actor.Get(entry)
			r := components.Remote.Get(entry)
			off := a.OffsetY
			if rec, ok := sess.Peers.Record(a.ID); ok {
				off = rec.RiderOffsetY(off)
			}
			c := peerColors[int(a.ID)%len(peerColors)]
			drawBody(screen, r.Display, a.W, a.H, off, c, camX, camY)
			label := fmt.Sprintf("#%d", a.ID)
			text.Draw(screen, label, basicfont.Face7x13,
				int(r.Display.X+camX), int(r.Display.Y+off+camY)-4, colorWhite)
		})

		tags.Player.Each(e.World, func(entry *donburi.Entry) {
			a := components.Actor.Get(entry)
			drawBody(screen, a.Position, a.W, a.H, a.OffsetY, colorLocal, camX, camY)

			// facing marker
			c := a.Center().Add(gamemath.FacingVector(int(a.Facing)).Scale(a.W / 3))
			vector.FillRect(screen, float32(c.X+camX-3), float32(c.Y+a.OffsetY+camY-3), 6, 6, colorWhite, false)

			if sw := components.AttackSwing.Get(entry); sw.Active {
				vector.StrokeRect(screen, float32(a.Position.X+camX), float32(a.Position.Y+a.OffsetY+camY),
					float32(a.W), float32(a.H), 2, colorWhite, false)
			}
		})
	}
}

func drawBody(screen *ebiten.Image, pos gamemath.Vec2, w, h, offY float64, c color.RGBA, camX, camY float64) {
	if offY != 0 {
		vector.FillRect(screen, float32(pos.X+camX+4), float32(pos.Y+h+camY-6), float32(w-8), 6, colorShadow, false)
	}
	vector.FillRect(screen, float32(pos.X+camX), float32(pos.Y+offY+camY), float32(w), float32(h), c, false)
}

func drawHostile(screen *ebiten.Image, entry *donburi.Entry, camX, camY float64) {
	o := components.Object.Get(entry)
	if o.Object == nil {
		return
	}
	x, y := float32(o.X+camX), float32(o.Y+camY)
	vector.FillRect(screen, x, y, float32(o.W), float32(o.H), colorHostile, false)

	if bar := components.HealthBar.Get(entry); bar.TimeToLive > 0 {
		ratio := float32(components.Health.Get(entry).Ratio())
		vector.FillRect(screen, x, y-8, float32(o.W), 5, colorHPBack, false)
		vector.FillRect(screen, x, y-8, float32(o.W)*ratio, 5, colorHP, false)
	}
	if ev := components.DamageEvent.Get(entry); ev.TTL > 0 {
		label := fmt.Sprintf("-%d", ev.Amount)
		if ev.Dash {
			label += "!"
		}
		text.Draw(screen, label, basicfont.Face7x13, int(x)+int(o.W)+2, int(y)+10, colorWhite)
	}
}
