package core

import (
	"log"
	"sync"
	"time"

	"github.com/leap-fish/necs/esync/srvsync"
)

// GameLoop drains queued commands and pushes a snapshot every tick. The relay
// never simulates; a tick is only bookkeeping plus sync.
type GameLoop struct {
	server   *Server
	interval time.Duration
	ticks    uint64
	done     chan struct{}
	stopOnce sync.Once
}

func NewGameLoop(server *Server, tickRate int) *GameLoop {
	return &GameLoop{
		server:   server,
		interval: time.Second / time.Duration(tickRate),
		done:     make(chan struct{}),
	}
}

// Run blocks until Stop.
func (g *GameLoop) Run() {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()
	log.Printf("[relay] loop running every %s", g.interval)

	for {
		select {
		case <-g.done:
			log.Printf("[relay] loop stopped after %d ticks", g.ticks)
			return
		case <-ticker.C:
			start := time.Now()
			g.step()
			if took := time.Since(start); took > g.interval {
				log.Printf("[relay] tick %d took %s, over the %s budget", g.ticks, took, g.interval)
			}
		}
	}
}

// Stop ends Run. Calling it more than once is harmless.
func (g *GameLoop) Stop() {
	g.stopOnce.Do(func() { close(g.done) })
}

func (g *GameLoop) step() {
	g.ticks++
	g.server.ProcessCommands()
	if err := srvsync.DoSync(); err != nil {
		log.Printf("[relay] sync: %v", err)
	}
}
