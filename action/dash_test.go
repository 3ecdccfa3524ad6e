package action

import (
	"testing"

	"github.com/automoto/leapdash/components"
	"github.com/automoto/leapdash/config"
	"github.com/automoto/leapdash/shared/gamemath"
	"github.com/automoto/leapdash/shared/leveldata"
	"github.com/automoto/leapdash/shared/messages"
	"github.com/automoto/leapdash/shared/netconfig"
	"github.com/yohamta/donburi"
)

// readyToDash puts e in a state where an attack becomes a dash.
func readyToDash(e *donburi.Entry) {
	components.Sprint.Get(e).Active = true
	components.AttackSwing.SetValue(e, components.AttackSwingData{
		Active:       true,
		TicksLeft:    18,
		Total:        18,
		HitThisSwing: make(map[donburi.Entity]struct{}),
	})
}

func TestAttackWithoutSprintIsPlain(t *testing.T) {
	s, out := newTestSession(t, nil)
	e := spawnAt(s, 1, gamemath.Tile{X: 5, Y: 5}, netconfig.FacingRight)
	if r := s.OnAttackStarted(e); r != RejectNoSprint {
		t.Fatalf("OnAttackStarted = %v, want no sprint", r)
	}
	if components.Dash.Get(e).Active || len(out.msgs) != 0 {
		t.Fatal("plain attack started a dash")
	}
}

func TestDashRunsFullDuration(t *testing.T) {
	s, out := newTestSession(t, nil)
	e := spawnAt(s, 1, gamemath.Tile{X: 5, Y: 5}, netconfig.FacingRight)
	readyToDash(e)
	a := components.Actor.Get(e)
	start := a.Position

	if r := s.OnAttackStarted(e); r != RejectNone {
		t.Fatalf("OnAttackStarted = %v", r)
	}
	if msg := last[messages.DashStarted](t, out.msgs); msg.Direction != (gamemath.Vec2{X: 1}) {
		t.Fatalf("direction = %v", msg.Direction)
	}
	if a.Stamina != 95 {
		t.Fatalf("stamina = %v, want 95", a.Stamina)
	}
	if s.PreMove(e) {
		t.Fatal("host may move a dashing actor")
	}

	for i := 0; i < 10; i++ {
		s.Advance()
	}
	if want := start.Add(gamemath.Vec2{X: 180}); a.Position != want {
		t.Fatalf("position = %v, want %v", a.Position, want)
	}
	if components.Dash.Get(e).Active || a.Locked {
		t.Fatal("dash did not end after its duration")
	}
	if count[messages.DashStopped](out.msgs) != 1 {
		t.Fatalf("messages = %v", out.msgs)
	}
}

func TestDashStopsAtWall(t *testing.T) {
	grid := leveldata.NewTileGrid(12, 12)
	grid.Set(gamemath.Tile{X: 7, Y: 5}, leveldata.FlagSolid)
	out := &recorder{}
	s := NewSession(Options{Grid: grid, Sink: out})
	e := spawnAt(s, 1, gamemath.Tile{X: 5, Y: 5}, netconfig.FacingRight)
	readyToDash(e)

	s.OnAttackStarted(e)
	for i := 0; i < 10; i++ {
		s.Advance()
	}
	a := components.Actor.Get(e)
	if a.Position.X != 336+4*18 {
		t.Fatalf("x = %v, want stop before the wall at %v", a.Position.X, 336+4*18)
	}
	if a.Locked || count[messages.DashStopped](out.msgs) != 1 {
		t.Fatalf("locked=%v messages=%v", a.Locked, out.msgs)
	}
}

func TestDashEndsWithSwing(t *testing.T) {
	s, out := newTestSession(t, nil)
	e := spawnAt(s, 1, gamemath.Tile{X: 5, Y: 5}, netconfig.FacingRight)
	readyToDash(e)
	s.OnAttackStarted(e)
	s.Advance()
	s.Advance()
	components.AttackSwing.Get(e).Active = false
	s.Advance()

	dash := components.Dash.Get(e)
	if dash.Active || dash.State.Progress != 2 {
		t.Fatalf("active=%v progress=%d", dash.Active, dash.State.Progress)
	}
	if count[messages.DashStopped](out.msgs) != 1 {
		t.Fatalf("messages = %v", out.msgs)
	}
}

func TestSecondDashInsideCooldownRejected(t *testing.T) {
	s, out := newTestSession(t, nil)
	e := spawnAt(s, 1, gamemath.Tile{X: 2, Y: 5}, netconfig.FacingRight)
	readyToDash(e)
	s.OnAttackStarted(e)
	for i := 0; i < 10; i++ {
		s.Advance()
		s.EndTick()
	}
	sent := len(out.msgs)

	readyToDash(e)
	if r := s.OnAttackStarted(e); r != RejectCooldown {
		t.Fatalf("second dash = %v, want cooldown", r)
	}
	if components.Dash.Get(e).Active || len(out.msgs) != sent {
		t.Fatal("rejected dash left state or sent a message")
	}

	cd := components.Cooldowns.Get(e)
	prev := cd.Remaining(netconfig.WeaponSword)
	for prev > 0 {
		s.EndTick()
		cur := cd.Remaining(netconfig.WeaponSword)
		if cur >= prev {
			t.Fatalf("cooldown went from %v to %v", prev, cur)
		}
		if cur > 0 && s.OnAttackStarted(e) != RejectCooldown {
			t.Fatalf("dash allowed with %v left", cur)
		}
		prev = cur
	}
	if r := s.OnAttackStarted(e); r != RejectNone {
		t.Fatalf("dash after cooldown = %v", r)
	}
}

func TestDashCooldownToggle(t *testing.T) {
	s, _ := newTestSession(t, func(m *config.Movement) { m.Dash.CooldownEnabled = false })
	e := spawnAt(s, 1, gamemath.Tile{X: 2, Y: 5}, netconfig.FacingRight)
	readyToDash(e)
	s.OnAttackStarted(e)
	if got := components.Cooldowns.Get(e).Remaining(netconfig.WeaponSword); got != 0 {
		t.Fatalf("cooldown = %v with cooldowns disabled", got)
	}
}

func TestDashHitsEachTargetOncePerActivation(t *testing.T) {
	tests := []struct {
		name       string
		dedup      bool
		wantSingle bool
	}{
		{"per activation", true, true},
		{"per tick", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSession(t, func(m *config.Movement) { m.Dash.DedupPerActivation = tt.dedup })
			e := spawnAt(s, 1, gamemath.Tile{X: 2, Y: 5}, netconfig.FacingRight)
			h := s.SpawnHostile(300, 330, 40, 40, 1000)
			readyToDash(e)
			s.OnAttackStarted(e)
			for i := 0; i < 10; i++ {
				s.Advance()
			}

			lost := 1000 - components.Health.Get(h).Current
			if lost == 0 {
				t.Fatal("dash never hit")
			}
			single := lost >= 12 && lost <= 18
			if single != tt.wantSingle {
				t.Fatalf("lost %d health, single hit = %v", lost, single)
			}
			ev := components.DamageEvent.Get(h)
			if !ev.Dash || ev.Attacker != e.Entity() {
				t.Fatalf("damage event = %+v", ev)
			}
			if _, ok := components.AttackSwing.Get(e).HitThisSwing[h.Entity()]; !ok {
				t.Fatal("dash hit not shared with the swing")
			}
		})
	}
}

func TestDashKillRemovesHostileAtEndOfTick(t *testing.T) {
	s, _ := newTestSession(t, nil)
	e := spawnAt(s, 1, gamemath.Tile{X: 2, Y: 5}, netconfig.FacingRight)
	h := s.SpawnHostile(300, 330, 40, 40, 1)
	readyToDash(e)
	s.OnAttackStarted(e)
	for i := 0; i < 10 && h.Valid(); i++ {
		s.Advance()
		s.EndTick()
	}
	if h.Valid() {
		t.Fatal("dead hostile still in the world")
	}
}

func TestPreDamage(t *testing.T) {
	s, _ := newTestSession(t, instant)
	e := spawnAt(s, 1, gamemath.Tile{X: 5, Y: 5}, netconfig.FacingRight)

	if lo, hi := s.PreDamage(e, 10, 15); lo != 10 || hi != 15 {
		t.Fatalf("idle = %d-%d", lo, hi)
	}
	s.Jumps.Start(e, -1)
	if lo, hi := s.PreDamage(e, 10, 15); lo != 15 || hi != 22 {
		t.Fatalf("mid-jump = %d-%d, want 15-22", lo, hi)
	}
	for i := 0; i < 30; i++ {
		s.Advance()
	}
	readyToDash(e)
	s.OnAttackStarted(e)
	if lo, hi := s.PreDamage(e, 10, 15); lo != 12 || hi != 18 {
		t.Fatalf("dashing = %d-%d, want 12-18", lo, hi)
	}
}

func TestFilterInputDropsAttackOnCooldown(t *testing.T) {
	s, _ := newTestSession(t, nil)
	e := spawnAt(s, 1, gamemath.Tile{X: 5, Y: 5}, netconfig.FacingRight)
	components.Cooldowns.Get(e).Dash[netconfig.WeaponSword] = 1

	var attack [components.ButtonCount]bool
	attack[components.ButtonAttack] = true

	if got := s.Gate.FilterInput(e, attack); !got[components.ButtonAttack] {
		t.Fatal("attack dropped while not sprinting")
	}
	components.Sprint.Get(e).Active = true
	if got := s.Gate.FilterInput(e, attack); got[components.ButtonAttack] {
		t.Fatal("attack kept during cooldown")
	}
	if s.LastRejection != RejectCooldown {
		t.Fatalf("LastRejection = %v", s.LastRejection)
	}

	delete(components.Cooldowns.Get(e).Dash, netconfig.WeaponSword)
	if got := s.Gate.FilterInput(e, attack); got[components.ButtonAttack] {
		t.Fatal("held attack came back when the cooldown expired")
	}
	var released [components.ButtonCount]bool
	s.Gate.FilterInput(e, released)
	if got := s.Gate.FilterInput(e, attack); !got[components.ButtonAttack] {
		t.Fatal("fresh press after release still dropped")
	}
}
