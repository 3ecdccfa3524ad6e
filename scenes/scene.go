package scenes

import (
	"fmt"
	"image/color"

	"github.com/automoto/leapdash/action"
	"github.com/automoto/leapdash/assets"
	"github.com/automoto/leapdash/config"
	"github.com/automoto/leapdash/host"
	"github.com/automoto/leapdash/shared/leveldata"
	"github.com/automoto/leapdash/shared/netconfig"
	"github.com/automoto/leapdash/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/font/basicfont"
)

const layerDefault ecs.LayerID = 0

// SceneChanger allows scenes to trigger transitions
type SceneChanger interface {
	ChangeScene(scene interface{})
}

// Setup is what the player picked on the command line.
type Setup struct {
	Config *config.Store
	Level  string
	Weapon netconfig.WeaponCategory
	Debug  bool
}

// play is one running session: the core, the host world around it and the
// ECS that renders them.
type play struct {
	ecs  *ecs.ECS
	sess *action.Session
	host *host.Host
}

func newPlay(setup Setup, level string, sink action.Sink, status func() string) (*play, error) {
	grid, err := leveldata.LoadTileGrid(assets.Levels(), assets.LevelPath(level))
	if err != nil {
		return nil, fmt.Errorf("load level %q: %w", level, err)
	}

	sess := action.NewSession(action.Options{
		Config: setup.Config,
		Grid:   grid,
		Sink:   sink,
	})
	p := &play{
		ecs:  ecs.NewECS(sess.World),
		sess: sess,
		host: host.New(sess, setup.Weapon),
	}

	systems.GetOrCreateSettings(p.ecs).Debug = setup.Debug
	w, h := grid.PixelSize()
	systems.CreateCamera(p.ecs, w, h)

	p.ecs.AddSystem(systems.UpdateSettings)
	p.ecs.AddSystem(systems.UpdateCamera)
	p.ecs.AddRenderer(layerDefault, systems.NewLevelRenderer(grid))
	p.ecs.AddRenderer(layerDefault, systems.NewActorRenderer(sess))
	p.ecs.AddRenderer(layerDefault, systems.NewDebugRenderer(sess))
	p.ecs.AddRenderer(layerDefault, systems.NewHUDRenderer(sess, status))
	return p, nil
}

// drawMessage fills the screen with a single centered line.
func drawMessage(screen *ebiten.Image, msg string) {
	screen.Fill(color.Black)
	x := screen.Bounds().Dx()/2 - len(msg)*7/2
	y := screen.Bounds().Dy() / 2
	text.Draw(screen, msg, basicfont.Face7x13, x, y, color.White)
}
