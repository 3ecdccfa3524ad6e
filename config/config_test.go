package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/automoto/leapdash/shared/netconfig"
)

func TestDefaultsAreValid(t *testing.T) {
	m := Default()
	if err := m.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if m.Jump.DurationTicks != 30 || m.Jump.Height != 36 {
		t.Fatalf("unexpected jump defaults: %+v", m.Jump)
	}
	if m.Dash.GraceSeconds != 0.25 || !m.Dash.DedupPerActivation {
		t.Fatalf("unexpected dash defaults: %+v", m.Dash)
	}
}

func TestDefaultCopiesSitFrames(t *testing.T) {
	m := Default()
	m.Jump.SitFrames[0] = 99
	if Defaults.Jump.SitFrames[0] != 29 {
		t.Fatal("Default() shares SitFrames with Defaults")
	}
}

func TestWeaponTables(t *testing.T) {
	d := Default().Dash
	tests := []struct {
		weapon   netconfig.WeaponCategory
		cooldown float64
		inflate  float64
	}{
		{netconfig.WeaponSword, 1.5, 24},
		{netconfig.WeaponDagger, 0.5, 12},
		{netconfig.WeaponClub, 3, 32},
		{netconfig.WeaponNone, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.weapon.String(), func(t *testing.T) {
			if got := d.Cooldown(tt.weapon); got != tt.cooldown {
				t.Fatalf("Cooldown = %v, want %v", got, tt.cooldown)
			}
			if got := d.Inflate(tt.weapon); got != tt.inflate {
				t.Fatalf("Inflate = %v, want %v", got, tt.inflate)
			}
		})
	}

	d.CooldownEnabled = false
	if got := d.Cooldown(netconfig.WeaponClub); got != 0 {
		t.Fatalf("disabled cooldown = %v, want 0", got)
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	m, err := Parse([]byte("jump:\n  height: 50\nsprint:\n  mode: hold\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.Jump.Height != 50 {
		t.Fatalf("height = %v, want 50", m.Jump.Height)
	}
	if m.Jump.DurationTicks != 30 {
		t.Fatalf("duration lost its default: %d", m.Jump.DurationTicks)
	}
	if m.Sprint.ModeID() != netconfig.SprintHold {
		t.Fatalf("mode = %v, want hold", m.Sprint.ModeID())
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"zero duration", "jump:\n  duration_ticks: 0\n"},
		{"blend too large", "peer:\n  blend: 1.5\n"},
		{"unknown sprint mode", "sprint:\n  mode: sometimes\n"},
		{"negative grace", "dash:\n  grace_seconds: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}

	if _, err := Parse([]byte("jump: [")); err == nil || !strings.Contains(err.Error(), "unmarshal") {
		t.Fatalf("expected unmarshal error, got %v", err)
	}
}

func TestStoreReplaceKeepsOldSnapshot(t *testing.T) {
	s := MustStore(Default())
	before := s.Snapshot()

	next := Default()
	next.Jump.Height = 80
	if err := s.Replace(next); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if before.Jump.Height != 36 {
		t.Fatalf("old snapshot mutated: %v", before.Jump.Height)
	}
	if s.Snapshot().Jump.Height != 80 {
		t.Fatalf("new snapshot not published")
	}

	bad := Default()
	bad.TickRate = 0
	if err := s.Replace(bad); err == nil {
		t.Fatal("expected invalid replace to fail")
	}
	if s.Snapshot().TickRate != 60 {
		t.Fatal("invalid replace was published")
	}
}

func waitReload(t *testing.T, w *Watcher) *Movement {
	t.Helper()
	select {
	case m := <-w.Events:
		return m
	case err := <-w.Errors:
		t.Fatalf("reload failed: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("no reload")
	}
	return nil
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWatcherReloadsWatchedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movement.yaml")
	writeFile(t, path, "jump:\n  height: 40\n")

	store := MustStore(Default())
	w := newWatcher(path, store)
	defer w.Close()

	if w.handle(filepath.Join(dir, "other.yaml")) {
		t.Fatal("unrelated file matched")
	}
	if !w.handle(path) {
		t.Fatal("watched file did not match")
	}
	if m := waitReload(t, w); m.Jump.Height != 40 {
		t.Fatalf("event carried height %v", m.Jump.Height)
	}
	if store.Snapshot().Jump.Height != 40 {
		t.Fatalf("height = %v, want 40", store.Snapshot().Jump.Height)
	}
}

func TestWatcherTruncateThenWriteReloadsFinalContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movement.yaml")
	writeFile(t, path, "")

	store := MustStore(Default())
	w := newWatcher(path, store)
	defer w.Close()

	w.handle(path)
	time.Sleep(5 * time.Millisecond)
	writeFile(t, path, "jump:\n  height: 99\n")
	w.handle(path)

	if store.Snapshot().Jump.Height != 36 {
		t.Fatal("reloaded before the file went quiet")
	}
	if m := waitReload(t, w); m.Jump.Height != 99 {
		t.Fatalf("first reload carried height %v, want 99", m.Jump.Height)
	}
	select {
	case m := <-w.Events:
		t.Fatalf("second reload with height %v", m.Jump.Height)
	case <-time.After(3 * reloadDebounce):
	}
	if store.Snapshot().Jump.Height != 99 {
		t.Fatalf("live height = %v, want 99", store.Snapshot().Jump.Height)
	}
}

func TestWatcherRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movement.yaml")
	writeFile(t, path, "tick_rate: 0\n")

	store := MustStore(Default())
	w := newWatcher(path, store)
	w.reload()

	if store.Snapshot().TickRate != 60 {
		t.Fatal("invalid file replaced the snapshot")
	}
	select {
	case err := <-w.Errors:
		if !errors.Is(err, ErrInvalid) {
			t.Fatalf("expected ErrInvalid, got %v", err)
		}
	default:
		t.Fatal("expected an error report")
	}
}

func TestWatcherCloseCancelsPendingReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movement.yaml")
	writeFile(t, path, "jump:\n  height: 50\n")

	store := MustStore(Default())
	w := newWatcher(path, store)
	w.handle(path)
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	time.Sleep(3 * reloadDebounce)
	if store.Snapshot().Jump.Height != 36 {
		t.Fatal("reload ran after Close")
	}
}
