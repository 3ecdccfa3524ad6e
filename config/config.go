package config

import "github.com/automoto/leapdash/shared/netconfig"

// JumpConfig contains all jump arc configuration values
type JumpConfig struct {
	Enabled               bool    `yaml:"enabled"`
	Instant               bool    `yaml:"instant"`                 // skip charging; fixed height and distance
	ChargeAffectsDistance bool    `yaml:"charge_affects_distance"` // charge scales distance as well as height
	ChargeCeilingSeconds  float64 `yaml:"charge_ceiling_seconds"`  // hold time for a full charge
	DurationTicks         int     `yaml:"duration_ticks"`
	Height                float64 `yaml:"height"` // peak arc height in pixels
	NormalDistance        float64 `yaml:"normal_distance"`
	DistanceScale         float64 `yaml:"distance_scale"`      // bonus tiles per unit of speed above walking
	MovingHeightBonus     float64 `yaml:"moving_height_bonus"` // height multiplier while moving
	StaminaCost           float64 `yaml:"stamina_cost"`
	NoStaminaOnMount      bool    `yaml:"no_stamina_on_mount"`
	HopOverAnything       bool    `yaml:"hop_over_anything"` // skip landing checks entirely

	// Mounted jumps
	MountHeightMultiplier float64 `yaml:"mount_height_multiplier"`
	MountBounceFactor     float64 `yaml:"mount_bounce_factor"` // rider offset = mount offset * factor
	MountedMinDistance    int     `yaml:"mounted_min_distance"`

	// Attacks landed mid-jump
	EnableJumpAttack bool    `yaml:"enable_jump_attack"`
	AttackMultiplier float64 `yaml:"attack_multiplier"`

	// Animation frames
	SitFrames    []int `yaml:"sit_frames"` // frames that keep their pose during a jump
	RisingFrame  int   `yaml:"rising_frame"`
	FallingFrame int   `yaml:"falling_frame"`
}

// LandingConfig controls which occupied tiles a jump may land on or clear.
type LandingConfig struct {
	ThroughPlayers bool `yaml:"through_players"`
	ThroughNPCs    bool `yaml:"through_npcs"`
	OverTrashCans  bool `yaml:"over_trash_cans"`
	OverBoulders   bool `yaml:"over_boulders"`
	OverStumps     bool `yaml:"over_stumps"`
	OverLogs       bool `yaml:"over_logs"`
}

// DashConfig contains dash-attack configuration values
type DashConfig struct {
	Enabled          bool    `yaml:"enabled"`
	StepPixels       float64 `yaml:"step_pixels"`    // forward move per tick
	DurationTicks    int     `yaml:"duration_ticks"` // max ticks of forward movement
	StaminaCost      float64 `yaml:"stamina_cost"`
	DamageMultiplier float64 `yaml:"damage_multiplier"`
	GraceSeconds     float64 `yaml:"grace_seconds"` // sprint still counts this long after it ends

	// Each target is hit at most once per activation. When false the hit set
	// is cleared every tick instead.
	DedupPerActivation bool `yaml:"dedup_per_activation"`

	CooldownEnabled bool    `yaml:"cooldown_enabled"`
	SwordCooldown   float64 `yaml:"sword_cooldown"` // seconds
	DaggerCooldown  float64 `yaml:"dagger_cooldown"`
	ClubCooldown    float64 `yaml:"club_cooldown"`

	// Hit volume growth beyond the actor box, per side, in pixels
	SwordInflate  float64 `yaml:"sword_inflate"`
	DaggerInflate float64 `yaml:"dagger_inflate"`
	ClubInflate   float64 `yaml:"club_inflate"`
}

// Cooldown returns the dash cooldown in seconds for a weapon category.
func (d DashConfig) Cooldown(w netconfig.WeaponCategory) float64 {
	if !d.CooldownEnabled {
		return 0
	}
	switch w {
	case netconfig.WeaponSword:
		return d.SwordCooldown
	case netconfig.WeaponDagger:
		return d.DaggerCooldown
	case netconfig.WeaponClub:
		return d.ClubCooldown
	default:
		return 0
	}
}

// Inflate returns the hit volume padding for a weapon category.
func (d DashConfig) Inflate(w netconfig.WeaponCategory) float64 {
	switch w {
	case netconfig.WeaponSword:
		return d.SwordInflate
	case netconfig.WeaponDagger:
		return d.DaggerInflate
	case netconfig.WeaponClub:
		return d.ClubInflate
	default:
		return 0
	}
}

// SprintConfig contains sprint configuration values
type SprintConfig struct {
	Enabled              bool    `yaml:"enabled"`
	Mode                 string  `yaml:"mode"`        // "doubletap", "hold" or "toggle"
	TapWindowSeconds     float64 `yaml:"tap_window"`  // max gap between double-tap presses
	DurationSeconds      float64 `yaml:"duration"`    // double-tap sprint length
	SpeedMultiplier      float64 `yaml:"speed"`       // on foot
	MountSpeedMultiplier float64 `yaml:"mount_speed"` // while mounted
	StaminaPerSecond     float64 `yaml:"stamina_per_second"`
	FirstDrainSeconds    float64 `yaml:"first_drain"` // delay before the first drain
	MinStamina           float64 `yaml:"min_stamina"` // sprint stops at or below this
}

// ModeID returns the parsed sprint mode.
func (s SprintConfig) ModeID() netconfig.SprintMode {
	return netconfig.ParseSprintMode(s.Mode)
}

// PeerConfig tunes how remote actions are reconstructed.
type PeerConfig struct {
	Blend          float64 `yaml:"blend"`            // fraction of the gap closed per tick
	BlendRampTicks int     `yaml:"blend_ramp_ticks"` // ticks to ease blend in from zero
}

// WeaponConfig is the damage roll of one weapon category.
type WeaponConfig struct {
	MinDamage int `yaml:"min_damage"`
	MaxDamage int `yaml:"max_damage"`
}

// HostConfig covers the host simulation the actions ride on.
type HostConfig struct {
	WalkSpeed    float64 `yaml:"walk_speed"` // pixels per tick
	ActorWidth   float64 `yaml:"actor_width"`
	ActorHeight  float64 `yaml:"actor_height"`
	MaxStamina   float64 `yaml:"max_stamina"`
	SwingTicks   int     `yaml:"swing_ticks"` // attack animation length
	IdleFrame    int     `yaml:"idle_frame"`
	HostileWidth float64 `yaml:"hostile_width"`

	Sword  WeaponConfig `yaml:"sword"`
	Dagger WeaponConfig `yaml:"dagger"`
	Club   WeaponConfig `yaml:"club"`
}

// Weapon returns the damage roll for a category.
func (h HostConfig) Weapon(w netconfig.WeaponCategory) WeaponConfig {
	switch w {
	case netconfig.WeaponSword:
		return h.Sword
	case netconfig.WeaponDagger:
		return h.Dagger
	case netconfig.WeaponClub:
		return h.Club
	default:
		return WeaponConfig{MinDamage: 1, MaxDamage: 2}
	}
}

// Movement is one immutable configuration snapshot. Actions read it once at
// start time; reloads publish a new value instead of mutating this one.
type Movement struct {
	Debug    bool          `yaml:"debug"`
	TickRate int           `yaml:"tick_rate"`
	Jump     JumpConfig    `yaml:"jump"`
	Landing  LandingConfig `yaml:"landing"`
	Dash     DashConfig    `yaml:"dash"`
	Sprint   SprintConfig  `yaml:"sprint"`
	Peer     PeerConfig    `yaml:"peer"`
	Host     HostConfig    `yaml:"host"`
}

// TickSeconds returns the length of one simulation tick.
func (m *Movement) TickSeconds() float64 {
	if m.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1 / float64(m.TickRate)
}

// IsSitFrame reports whether frame is a seated pose.
func (j JumpConfig) IsSitFrame(frame int) bool {
	for _, f := range j.SitFrames {
		if f == frame {
			return true
		}
	}
	return false
}

// Config holds client window configuration
type Config struct {
	Width  int
	Height int
}

// Global configuration instances
var (
	C        *Config
	Defaults Movement
)

func init() {
	C = &Config{
		Width:  1280,
		Height: 768,
	}

	Defaults = Movement{
		Debug:    false,
		TickRate: 60,
		Jump: JumpConfig{
			Enabled:               true,
			Instant:               false,
			ChargeAffectsDistance: true,
			ChargeCeilingSeconds:  0.75,
			DurationTicks:         30,
			Height:                36,
			NormalDistance:        1.5,
			DistanceScale:         0.5,
			MovingHeightBonus:     1.25,
			StaminaCost:           0,
			NoStaminaOnMount:      false,
			HopOverAnything:       false,
			MountHeightMultiplier: 1.7,
			MountBounceFactor:     0.55,
			MountedMinDistance:    3,
			EnableJumpAttack:      true,
			AttackMultiplier:      1.5, // 50% bonus
			SitFrames:             []int{29, 58, 62},
			RisingFrame:           12,
			FallingFrame:          11,
		},
		Landing: LandingConfig{
			ThroughPlayers: true,
			ThroughNPCs:    true,
			OverTrashCans:  true,
			OverBoulders:   false,
			OverStumps:     false,
			OverLogs:       false,
		},
		Dash: DashConfig{
			Enabled:            true,
			StepPixels:         18,
			DurationTicks:      10,
			StaminaCost:        5,
			DamageMultiplier:   1.25, // 25% bonus
			GraceSeconds:       0.25,
			DedupPerActivation: true,
			CooldownEnabled:    true,
			SwordCooldown:      1.5,
			DaggerCooldown:     0.5,
			ClubCooldown:       3,
			SwordInflate:       24,
			DaggerInflate:      12,
			ClubInflate:        32,
		},
		Sprint: SprintConfig{
			Enabled:              true,
			Mode:                 "doubletap",
			TapWindowSeconds:     0.3,
			DurationSeconds:      1,
			SpeedMultiplier:      1.5,
			MountSpeedMultiplier: 2.0,
			StaminaPerSecond:     5,
			FirstDrainSeconds:    0.5,
			MinStamina:           1,
		},
		Peer: PeerConfig{
			Blend:          0.35,
			BlendRampTicks: 6,
		},
		Host: HostConfig{
			WalkSpeed:    5,
			ActorWidth:   32,
			ActorHeight:  32,
			MaxStamina:   100,
			SwingTicks:   18,
			IdleFrame:    0,
			HostileWidth: 40,
			Sword:        WeaponConfig{MinDamage: 10, MaxDamage: 15},
			Dagger:       WeaponConfig{MinDamage: 5, MaxDamage: 8},
			Club:         WeaponConfig{MinDamage: 16, MaxDamage: 24},
		},
	}
}

// Default returns a copy of the built-in defaults with its own SitFrames slice.
func Default() Movement {
	m := Defaults
	m.Jump.SitFrames = append([]int(nil), Defaults.Jump.SitFrames...)
	return m
}
