package action

import (
	"github.com/automoto/leapdash/components"
	"github.com/automoto/leapdash/shared/netconfig"
	"github.com/yohamta/donburi"
)

// SprintController runs sprint mode and sets the actor's movement speed.
type SprintController struct {
	s *Session
}

// Update advances sprint for one tick. It must run after the input state for
// the tick has been installed.
func (c *SprintController) Update(e *donburi.Entry) {
	cfg := c.s.Config()
	dt := cfg.TickSeconds()
	sp := components.Sprint.Get(e)
	a := components.Actor.Get(e)
	in := components.Input.Get(e)

	if !cfg.Sprint.Enabled {
		if sp.Active {
			c.stop(sp)
		}
		a.Speed = cfg.Host.WalkSpeed
		return
	}

	if !sp.Active {
		sp.SinceEnded += dt
	}
	sp.SinceTap += dt

	var want bool
	switch cfg.Sprint.ModeID() {
	case netconfig.SprintHold:
		want = in.Pressed(components.ButtonSprint)
	case netconfig.SprintToggle:
		if in.JustPressed(components.ButtonSprint) {
			sp.Toggled = !sp.Toggled
		}
		want = sp.Toggled
	default:
		if sp.Timer > 0 {
			sp.Timer -= dt
		}
		if b, ok := justPressedDirection(in); ok {
			if sp.LastTap == int(b) && sp.SinceTap <= cfg.Sprint.TapWindowSeconds {
				sp.Timer = cfg.Sprint.DurationSeconds
				sp.LastTap = -1
				sp.TapCount++
			} else {
				sp.LastTap = int(b)
			}
			sp.SinceTap = 0
		}
		want = sp.Timer > 0
	}

	canMove := !a.Locked
	if want && !sp.Active && canMove && a.Stamina > cfg.Sprint.MinStamina {
		sp.Active = true
		sp.DrainTimer = cfg.Sprint.FirstDrainSeconds
		c.s.debugf("sprint start actor=%d mode=%s", a.ID, cfg.Sprint.ModeID())
	}

	if sp.Active {
		switch {
		case !want, !canMove, a.Stamina <= cfg.Sprint.MinStamina:
			c.stop(sp)
		case a.Moving:
			sp.DrainTimer -= dt
			if sp.DrainTimer <= 0 {
				a.Stamina -= cfg.Sprint.StaminaPerSecond
				if a.Stamina < 0 {
					a.Stamina = 0
				}
				sp.DrainTimer += 1
			}
		}
	}

	a.Speed = cfg.Host.WalkSpeed
	if sp.Active {
		if _, mounted := c.s.mountOf(a); mounted {
			a.Speed *= cfg.Sprint.MountSpeedMultiplier
		} else {
			a.Speed *= cfg.Sprint.SpeedMultiplier
		}
	}
}

func (c *SprintController) stop(sp *components.SprintData) {
	sp.Active = false
	sp.Toggled = false
	sp.Timer = 0
	sp.SinceEnded = 0
	sp.EverSprinted = true
}

func justPressedDirection(in *components.InputData) (components.Button, bool) {
	for b := components.ButtonUp; b <= components.ButtonLeft; b++ {
		if in.JustPressed(b) {
			return b, true
		}
	}
	return 0, false
}
