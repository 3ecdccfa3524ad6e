package main

import (
	"flag"
	"image"
	"log"

	"github.com/automoto/leapdash/assets"
	"github.com/automoto/leapdash/config"
	"github.com/automoto/leapdash/network"
	"github.com/automoto/leapdash/scenes"
	"github.com/automoto/leapdash/shared/netconfig"
	"github.com/automoto/leapdash/shared/protocol"
	"github.com/hajimehoshi/ebiten/v2"
)

// version is sent with the join request; relays started with a version only
// admit matching clients.
const version = "0.1.0"

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	addr := flag.String("addr", "", "relay address host:port; empty plays offline")
	name := flag.String("name", "player", "name shown to peers")
	level := flag.String("level", assets.DefaultLevel, "level to play offline")
	weapon := flag.String("weapon", "sword", "weapon category: sword, dagger or club")
	configPath := flag.String("config", "", "YAML movement overlay, reloaded on change")
	debug := flag.Bool("debug", false, "start with the debug overlay and action logging on")
	flag.Parse()

	movement := config.Default()
	if *configPath != "" {
		m, err := config.LoadFile(*configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		movement = m
	}
	if *debug {
		movement.Debug = true
	}
	store, err := config.NewStore(movement)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if *configPath != "" {
		w, err := config.NewWatcher(*configPath, store)
		if err != nil {
			log.Printf("[config] hot reload disabled: %v", err)
		} else {
			defer w.Close()
			go logReloads(w)
		}
	}

	category := netconfig.ParseWeaponCategory(*weapon)
	if category == netconfig.WeaponNone {
		log.Fatalf("unknown weapon %q", *weapon)
	}

	setup := scenes.Setup{
		Config: store,
		Level:  *level,
		Weapon: category,
		Debug:  movement.Debug,
	}

	g := &Game{}
	if *addr == "" {
		g.scene = scenes.NewWorldScene(g, setup)
	} else {
		// Register network components for client-side deserialization
		if err := protocol.RegisterComponents(); err != nil {
			log.Fatalf("Failed to register network components: %v", err)
		}
		client := network.NewClient()
		client.Connect(*addr, version, *name, "")
		g.scene = scenes.NewNetworkedScene(g, client, setup)
	}

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle("leapdash")
	ebiten.SetTPS(movement.TickRate)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

func logReloads(w *config.Watcher) {
	for {
		select {
		case m, ok := <-w.Events:
			if !ok {
				return
			}
			log.Printf("[config] now: sprint mode %s, dash cooldown %v, jump instant %v",
				m.Sprint.ModeID(), m.Dash.CooldownEnabled, m.Jump.Instant)
		case <-w.Errors:
			// the watcher logs rejected reloads itself
		}
	}
}
