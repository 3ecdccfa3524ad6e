package scenes

import (
	"image/color"
	"log"
	"sync"

	"github.com/automoto/leapdash/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// WorldScene runs a session with no relay. Actions are simulated locally and
// nothing is sent anywhere.
type WorldScene struct {
	setup        Setup
	sceneChanger SceneChanger
	play         *play
	err          error
	once         sync.Once
}

func NewWorldScene(sc SceneChanger, setup Setup) *WorldScene {
	return &WorldScene{setup: setup, sceneChanger: sc}
}

func (ws *WorldScene) Update() {
	ws.once.Do(ws.configure)
	if ws.play == nil {
		return
	}
	ws.play.host.Tick(systems.PollButtons())
	ws.play.ecs.Update()
}

func (ws *WorldScene) Draw(screen *ebiten.Image) {
	if ws.play == nil {
		if ws.err != nil {
			drawMessage(screen, ws.err.Error())
		}
		return
	}
	screen.Fill(color.Black)
	ws.play.ecs.Draw(screen)
}

func (ws *WorldScene) configure() {
	p, err := newPlay(ws.setup, ws.setup.Level, nil, func() string { return "offline" })
	if err != nil {
		log.Printf("[world] %v", err)
		ws.err = err
		return
	}
	ws.play = p
}
