package action

import (
	"testing"

	"github.com/automoto/leapdash/components"
	"github.com/automoto/leapdash/config"
	"github.com/automoto/leapdash/shared/gamemath"
	"github.com/automoto/leapdash/shared/netconfig"
)

func buttons(bs ...components.Button) [components.ButtonCount]bool {
	var p [components.ButtonCount]bool
	for _, b := range bs {
		p[b] = true
	}
	return p
}

func TestSprintDoubleTap(t *testing.T) {
	s, _ := newTestSession(t, nil)
	e := spawnAt(s, 1, gamemath.Tile{X: 5, Y: 5}, netconfig.FacingRight)
	sp := components.Sprint.Get(e)
	a := components.Actor.Get(e)

	s.BeginTick(e, buttons(components.ButtonRight))
	s.BeginTick(e, buttons())
	if sp.Active {
		t.Fatal("single tap started sprint")
	}
	s.BeginTick(e, buttons(components.ButtonRight))
	if !sp.Active {
		t.Fatal("double tap did not start sprint")
	}
	if sp.TapCount != 1 {
		t.Fatalf("tap count = %d, want 1", sp.TapCount)
	}
	if a.Speed != 7.5 {
		t.Fatalf("speed = %v, want 7.5", a.Speed)
	}

	for i := 0; i < 40; i++ {
		s.BeginTick(e, buttons(components.ButtonRight))
	}
	if !sp.Active {
		t.Fatal("sprint ended early")
	}
	if a.Stamina != 95 {
		t.Fatalf("stamina = %v, want one drain of 5", a.Stamina)
	}
	for i := 0; i < 30; i++ {
		s.BeginTick(e, buttons(components.ButtonRight))
	}
	if sp.Active {
		t.Fatal("sprint outlived its duration")
	}
	if a.Speed != 5 {
		t.Fatalf("speed after sprint = %v", a.Speed)
	}
	if !sp.Recently(0.25) {
		t.Fatal("grace window not open right after sprint ended")
	}
	for i := 0; i < 20; i++ {
		s.BeginTick(e, buttons())
	}
	if sp.Recently(0.25) {
		t.Fatal("grace window still open after 20 ticks")
	}
}

func TestSprintSlowTapsDoNotSprint(t *testing.T) {
	s, _ := newTestSession(t, nil)
	e := spawnAt(s, 1, gamemath.Tile{X: 5, Y: 5}, netconfig.FacingRight)
	s.BeginTick(e, buttons(components.ButtonRight))
	for i := 0; i < 30; i++ {
		s.BeginTick(e, buttons())
	}
	s.BeginTick(e, buttons(components.ButtonRight))
	if components.Sprint.Get(e).Active {
		t.Fatal("taps half a second apart started sprint")
	}
}

func TestSprintHoldAndToggle(t *testing.T) {
	tests := []struct {
		mode  string
		ticks [][components.ButtonCount]bool
		want  []bool
	}{
		{
			mode:  "hold",
			ticks: [][components.ButtonCount]bool{buttons(components.ButtonSprint), buttons(components.ButtonSprint), buttons()},
			want:  []bool{true, true, false},
		},
		{
			mode:  "toggle",
			ticks: [][components.ButtonCount]bool{buttons(components.ButtonSprint), buttons(), buttons(), buttons(components.ButtonSprint)},
			want:  []bool{true, true, true, false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			s, _ := newTestSession(t, func(m *config.Movement) { m.Sprint.Mode = tt.mode })
			e := spawnAt(s, 1, gamemath.Tile{X: 5, Y: 5}, netconfig.FacingRight)
			for i, p := range tt.ticks {
				s.BeginTick(e, p)
				if got := components.Sprint.Get(e).Active; got != tt.want[i] {
					t.Fatalf("tick %d: active = %v, want %v", i, got, tt.want[i])
				}
			}
		})
	}
}

func TestSprintNeedsStamina(t *testing.T) {
	s, _ := newTestSession(t, func(m *config.Movement) { m.Sprint.Mode = "hold" })
	e := spawnAt(s, 1, gamemath.Tile{X: 5, Y: 5}, netconfig.FacingRight)
	components.Actor.Get(e).Stamina = 1
	s.BeginTick(e, buttons(components.ButtonSprint))
	if components.Sprint.Get(e).Active {
		t.Fatal("sprint started at minimum stamina")
	}
}

func TestMountedSprintSpeed(t *testing.T) {
	s, _ := newTestSession(t, func(m *config.Movement) { m.Sprint.Mode = "hold" })
	e := spawnAt(s, 1, gamemath.Tile{X: 5, Y: 5}, netconfig.FacingRight)
	s.Ride(e, s.SpawnMount(gamemath.Vec2{}, 48, 48))
	s.BeginTick(e, buttons(components.ButtonSprint))
	if got := components.Actor.Get(e).Speed; got != 10 {
		t.Fatalf("mounted sprint speed = %v, want 10", got)
	}
}
