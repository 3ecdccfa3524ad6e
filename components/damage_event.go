package components

import "github.com/yohamta/donburi"

// HealthData is the hit points of a damageable entity.
type HealthData struct {
	Current int
	Max     int
}

// Ratio returns Current/Max clamped to [0, 1].
func (h *HealthData) Ratio() float64 {
	if h.Max <= 0 || h.Current <= 0 {
		return 0
	}
	if h.Current >= h.Max {
		return 1
	}
	return float64(h.Current) / float64(h.Max)
}

// HealthBarData shows a hostile's bar for TimeToLive more ticks.
type HealthBarData struct {
	TimeToLive int
}

// DamageEventData records the last hit a target took, for the HUD.
type DamageEventData struct {
	Amount   int
	Attacker donburi.Entity
	Dash     bool // landed by a dash activation
	TTL      int  // ticks left on screen
}

var (
	Health      = donburi.NewComponentType[HealthData]()
	HealthBar   = donburi.NewComponentType[HealthBarData]()
	DamageEvent = donburi.NewComponentType[DamageEventData]()
)
