package config

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Store publishes immutable Movement snapshots. Reads are lock-free so the
// tick loop never waits on a reload.
type Store struct {
	cur atomic.Pointer[Movement]
}

// NewStore validates m and returns a store holding it.
func NewStore(m Movement) (*Store, error) {
	s := &Store{}
	if err := s.Replace(m); err != nil {
		return nil, err
	}
	return s, nil
}

// MustStore is NewStore for values known to be valid, such as Default().
func MustStore(m Movement) *Store {
	s, err := NewStore(m)
	if err != nil {
		panic(err)
	}
	return s
}

// Snapshot returns the current configuration. Callers must not modify it.
func (s *Store) Snapshot() *Movement {
	return s.cur.Load()
}

// Replace validates m and publishes it as the new snapshot.
func (s *Store) Replace(m Movement) error {
	if err := m.Validate(); err != nil {
		return err
	}
	s.cur.Store(&m)
	return nil
}

// Validate checks the values the simulation divides by or loops on.
func (m *Movement) Validate() error {
	switch {
	case m.TickRate <= 0:
		return fmt.Errorf("%w: tick_rate must be positive, got %d", ErrInvalid, m.TickRate)
	case m.Jump.DurationTicks <= 0:
		return fmt.Errorf("%w: jump.duration_ticks must be positive, got %d", ErrInvalid, m.Jump.DurationTicks)
	case m.Jump.ChargeCeilingSeconds <= 0:
		return fmt.Errorf("%w: jump.charge_ceiling_seconds must be positive", ErrInvalid)
	case m.Jump.Height < 0:
		return fmt.Errorf("%w: jump.height must not be negative", ErrInvalid)
	case m.Jump.MountedMinDistance < 1:
		return fmt.Errorf("%w: jump.mounted_min_distance must be at least 1", ErrInvalid)
	case m.Dash.DurationTicks <= 0:
		return fmt.Errorf("%w: dash.duration_ticks must be positive, got %d", ErrInvalid, m.Dash.DurationTicks)
	case m.Dash.StepPixels <= 0:
		return fmt.Errorf("%w: dash.step_pixels must be positive", ErrInvalid)
	case m.Dash.GraceSeconds < 0:
		return fmt.Errorf("%w: dash.grace_seconds must not be negative", ErrInvalid)
	case m.Peer.Blend <= 0 || m.Peer.Blend > 1:
		return fmt.Errorf("%w: peer.blend must be in (0, 1], got %v", ErrInvalid, m.Peer.Blend)
	case m.Host.ActorWidth <= 0 || m.Host.ActorHeight <= 0:
		return fmt.Errorf("%w: host actor size must be positive", ErrInvalid)
	}
	switch m.Sprint.Mode {
	case "doubletap", "hold", "toggle":
	default:
		return fmt.Errorf("%w: sprint.mode %q is not doubletap, hold or toggle", ErrInvalid, m.Sprint.Mode)
	}
	return nil
}
