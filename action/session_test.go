package action

import (
	"testing"

	"github.com/automoto/leapdash/components"
	"github.com/automoto/leapdash/config"
	"github.com/automoto/leapdash/shared/gamemath"
	"github.com/automoto/leapdash/shared/leveldata"
	"github.com/automoto/leapdash/shared/netconfig"
	"github.com/yohamta/donburi"
)

type recorder struct {
	msgs []any
}

func (r *recorder) SendMessage(msg any) error {
	r.msgs = append(r.msgs, msg)
	return nil
}

func count[T any](msgs []any) int {
	n := 0
	for _, m := range msgs {
		if _, ok := m.(T); ok {
			n++
		}
	}
	return n
}

func last[T any](t *testing.T, msgs []any) T {
	t.Helper()
	for i := len(msgs) - 1; i >= 0; i-- {
		if m, ok := msgs[i].(T); ok {
			return m
		}
	}
	var zero T
	t.Fatalf("no %T sent, got %v", zero, msgs)
	return zero
}

// newTestSession builds a 12x12 open grid session. mutate may adjust the
// defaults before they are published.
func newTestSession(t *testing.T, mutate func(*config.Movement)) (*Session, *recorder) {
	t.Helper()
	m := config.Default()
	if mutate != nil {
		mutate(&m)
	}
	store, err := config.NewStore(m)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	out := &recorder{}
	s := NewSession(Options{
		Config: store,
		Grid:   leveldata.NewTileGrid(12, 12),
		Sink:   out,
		Seed:   7,
	})
	return s, out
}

// spawnAt places a local actor centered on tile t facing f.
func spawnAt(s *Session, id uint64, t gamemath.Tile, f netconfig.Facing) *donburi.Entry {
	cfg := s.Config()
	e := s.SpawnLocal(id, gamemath.TileTarget(t, cfg.Host.ActorWidth, cfg.Host.ActorHeight), netconfig.WeaponSword)
	components.Actor.Get(e).Facing = f
	return e
}

func TestNewSessionUsesDefaults(t *testing.T) {
	s := NewSession(Options{})
	if s.Config().Jump.DurationTicks != 30 {
		t.Fatalf("duration = %d, want 30", s.Config().Jump.DurationTicks)
	}
	if s.Level.Grid == nil || s.Level.Space == nil {
		t.Fatal("level not built")
	}
}

func TestLevelBlocked(t *testing.T) {
	grid := leveldata.NewTileGrid(4, 4)
	grid.Set(gamemath.Tile{X: 2, Y: 1}, leveldata.FlagSolid)
	grid.Set(gamemath.Tile{X: 1, Y: 2}, leveldata.FlagWater)
	lvl := NewLevel(grid)
	if lvl.Solids != 2 {
		t.Fatalf("solids = %d, want 2", lvl.Solids)
	}

	tests := []struct {
		name string
		pos  gamemath.Vec2
		want bool
	}{
		{"open", gamemath.Vec2{X: 10, Y: 10}, false},
		{"wall", gamemath.Vec2{X: 130, Y: 70}, true},
		{"water", gamemath.Vec2{X: 70, Y: 130}, true},
		{"touching wall edge", gamemath.Vec2{X: 96, Y: 70}, false},
		{"off map", gamemath.Vec2{X: -1, Y: 10}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lvl.Blocked(nil, tt.pos, 32, 32); got != tt.want {
				t.Fatalf("Blocked(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestGuardRecoversAndKeepsOthersRunning(t *testing.T) {
	s, _ := newTestSession(t, func(m *config.Movement) { m.Jump.Instant = true })
	broken := spawnAt(s, 1, gamemath.Tile{X: 2, Y: 2}, netconfig.FacingRight)
	healthy := spawnAt(s, 2, gamemath.Tile{X: 2, Y: 8}, netconfig.FacingRight)

	jump := components.Jump.Get(broken)
	jump.Active = true
	jump.State = components.ActionState{Kind: netconfig.ActionJump, Duration: 30}
	components.Actor.Get(broken).Locked = true

	if r := s.Jumps.Start(healthy, -1); r != RejectNone {
		t.Fatalf("start = %v", r)
	}
	s.Advance()

	if components.Actor.Get(broken).Locked {
		t.Fatal("faulting actor still locked")
	}
	if components.Jump.Get(broken).Active {
		t.Fatal("faulting jump still active")
	}
	if p := components.Jump.Get(healthy).State.Progress; p != 1 {
		t.Fatalf("healthy progress = %d, want 1", p)
	}
}

func TestRideAndDismount(t *testing.T) {
	s, _ := newTestSession(t, nil)
	e := spawnAt(s, 1, gamemath.Tile{X: 3, Y: 3}, netconfig.FacingRight)
	m := s.SpawnMount(gamemath.Vec2{}, 48, 48)

	if !s.Ride(e, m) {
		t.Fatal("ride refused")
	}
	if got := components.Actor.Get(m).Position; got != components.Actor.Get(e).Position {
		t.Fatalf("mount at %v, rider at %v", got, components.Actor.Get(e).Position)
	}
	components.Actor.Get(e).Locked = true
	if s.Dismount(e) {
		t.Fatal("dismount allowed while locked")
	}
	components.Actor.Get(e).Locked = false
	if !s.Dismount(e) {
		t.Fatal("dismount refused")
	}
	if components.Mount.Get(m).Rider != donburi.Null {
		t.Fatal("mount still ridden")
	}
}
