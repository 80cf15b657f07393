// Package config provides YAML-based tuning configuration for the moto-rush
// simulation. The config is loaded once at run start and threaded through
// constructors as an immutable value; no system reads global mutable state.
package config

// MotoConfig contains every tuning constant of the simulation core.
type MotoConfig struct {
	Road       RoadConfig       `yaml:"road"`
	Player     PlayerConfig     `yaml:"player"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Spawning   SpawnConfig      `yaml:"spawning"`
	Pickups    PickupConfig     `yaml:"pickups"`
	Combat     CombatConfig     `yaml:"combat"`
	Rage       RageConfig       `yaml:"rage"`
	Score      ScoreConfig      `yaml:"score"`
	Death      DeathConfig      `yaml:"death"`
	Rhythm     RhythmConfig     `yaml:"rhythm"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RoadConfig defines the track geometry and scroll speeds, in world units
// (pixels of the original 1920-wide playfield).
type RoadConfig struct {
	Width              float64 `yaml:"width"`                // Visible playfield width
	LaneCount          int     `yaml:"lane_count"`           // Number of horizontal lanes
	LaneHeight         float64 `yaml:"lane_height"`          // Vertical extent of one lane
	BaseSpeed          float64 `yaml:"base_speed"`           // Road scroll speed, units/s
	VehicleSpeedFactor float64 `yaml:"vehicle_speed_factor"` // Vehicles scroll at base*(1-factor)
	LaneCrossTime      float64 `yaml:"lane_cross_time"`      // Seconds to cross one lane
}

// VehicleSpeed returns the effective scroll speed of vehicles.
// Vehicles drive forward, so they approach slower than the road.
func (r RoadConfig) VehicleSpeed() float64 {
	return r.BaseSpeed * (1 - r.VehicleSpeedFactor)
}

// PlayerConfig defines the player footprint and position.
type PlayerConfig struct {
	X      float64 `yaml:"x"`      // Fixed horizontal position
	Width  float64 `yaml:"width"`  // Hit box width
	Height float64 `yaml:"height"` // Hit box height
}

// ObstacleConfig defines per-kind obstacle footprints and type weights.
type ObstacleConfig struct {
	BarrierWidth   float64 `yaml:"barrier_width"`
	BarrierHeight  float64 `yaml:"barrier_height"`
	VehicleWidth   float64 `yaml:"vehicle_width"`
	VehicleHeight  float64 `yaml:"vehicle_height"`
	VehicleShrinkW float64 `yaml:"vehicle_shrink_w"` // Hit box shrink vs sprite
	VehicleShrinkH float64 `yaml:"vehicle_shrink_h"`
	VehicleOffsetX float64 `yaml:"vehicle_offset_x"` // Hit box offset vs sprite
	HazardWidth    float64 `yaml:"hazard_width"`
	HazardHeight   float64 `yaml:"hazard_height"`
	VehicleLinger  float64 `yaml:"vehicle_linger"` // Dying animation seconds
	SkinCount      int     `yaml:"skin_count"`     // Distinct barrier skins
	HazardSizes    int     `yaml:"hazard_sizes"`   // Distinct hazard size/orientation variants

	// Three-way type weights, linearly interpolated by difficulty
	BarrierWeightLow  float64 `yaml:"barrier_weight_low"`
	BarrierWeightHigh float64 `yaml:"barrier_weight_high"`
	VehicleWeightLow  float64 `yaml:"vehicle_weight_low"`
	VehicleWeightHigh float64 `yaml:"vehicle_weight_high"`
	HazardWeightLow   float64 `yaml:"hazard_weight_low"`
	HazardWeightHigh  float64 `yaml:"hazard_weight_high"`

	// Fixed override weights while rage is active
	RageBarrierWeight float64 `yaml:"rage_barrier_weight"`
	RageVehicleWeight float64 `yaml:"rage_vehicle_weight"`
	RageHazardWeight  float64 `yaml:"rage_hazard_weight"`
}

// SpawnConfig defines the wave spawn timer and lead distances.
type SpawnConfig struct {
	IntervalMax     float64 `yaml:"interval_max"`      // Wave interval at difficulty 0
	IntervalMin     float64 `yaml:"interval_min"`      // Wave interval at difficulty 1
	MaxPerWave      int     `yaml:"max_per_wave"`      // Obstacles per wave at difficulty 1
	MarginMin       float64 `yaml:"margin_min"`        // Fixed minimum spawn margin
	WarningDuration float64 `yaml:"warning_duration"`  // Lane warning indicator lead, seconds
	VehicleExtra    float64 `yaml:"vehicle_extra"`     // Extra warning time for slow vehicles
	GraceDuration   float64 `yaml:"grace_duration"`    // No spawns right after (re)start
}

// PickupConfig defines pickup spawning and collection.
type PickupConfig struct {
	ChanceBehindBarrier float64 `yaml:"chance_behind_barrier"` // Probability per barrier spawn
	AmmoShare           float64 `yaml:"ammo_share"`            // Fraction of pickups that are ammo
	Radius              float64 `yaml:"radius"`                // Collection radius
	BehindOffset        float64 `yaml:"behind_offset"`         // Distance behind the barrier
	AmmoPerPickup       int     `yaml:"ammo_per_pickup"`
	MaxAmmo             int     `yaml:"max_ammo"`
}

// CombatConfig defines the slash and projectile parameters.
type CombatConfig struct {
	SlashWidth       float64 `yaml:"slash_width"`        // Base slash hit box width
	SlashHeight      float64 `yaml:"slash_height"`       // Slash hit box height (lane-local)
	SlashOffset      float64 `yaml:"slash_offset"`       // Base forward offset
	SlashSpeedWiden  float64 `yaml:"slash_speed_widen"`  // Extra width per unit speed ratio
	SlashSpeedReach  float64 `yaml:"slash_speed_reach"`  // Extra offset per unit speed ratio
	ProjectileSpeed  float64 `yaml:"projectile_speed"`   // Initial projectile speed, units/s
	ProjectileAccel  float64 `yaml:"projectile_accel"`   // Speed ramp per second of age
	ProjectileRadius float64 `yaml:"projectile_radius"`
}

// RageConfig defines the rage meter and its active window.
type RageConfig struct {
	FillPerKill    float64 `yaml:"fill_per_kill"`   // Meter gain per melee kill
	Max            float64 `yaml:"max"`             // Meter capacity
	Duration       float64 `yaml:"duration"`        // Active window, seconds
	RampUp         float64 `yaml:"ramp_up"`         // Speed multiplier ease-in, seconds
	RampDown       float64 `yaml:"ramp_down"`       // Speed multiplier ease-out, seconds
	SpeedMult      float64 `yaml:"speed_mult"`      // Peak speed multiplier
	ShockwaveBonus int     `yaml:"shockwave_bonus"` // Points per obstacle destroyed on expiry
}

// ScoreConfig defines scoring, streaks and proximity bonuses.
type ScoreConfig struct {
	DistanceRate   float64 `yaml:"distance_rate"`   // Points per second survived
	SlashBonus     int     `yaml:"slash_bonus"`     // Base points per melee kill
	ProximityScale float64 `yaml:"proximity_scale"` // Bonus scale for center-screen kills
	StreakWindow   float64 `yaml:"streak_window"`   // Rolling window, seconds
	StreakStep     float64 `yaml:"streak_step"`     // Multiplier gain per streak level
}

// DeathConfig defines the four-phase death transition timings.
type DeathConfig struct {
	RampDuration float64 `yaml:"ramp_duration"` // Eased overlay fade-in
	SnapDuration float64 `yaml:"snap_duration"` // Quick finish to full cover
	HoldDuration float64 `yaml:"hold_duration"` // Submission decision window
	FadeDuration float64 `yaml:"fade_duration"` // Reveal of the prepared screen
}

// RhythmConfig defines rhythm-mode geometry. The scheduler uses these to
// compute lead times so events land on the beat.
type RhythmConfig struct {
	SpawnMargin    float64 `yaml:"spawn_margin"`    // Spawn distance past the right edge
	KillZoneX      float64 `yaml:"kill_zone_x"`     // Forced-resolution threshold
	SweetSpotX     float64 `yaml:"sweet_spot_x"`    // Enemy target position mid-track
	CountdownBeats int     `yaml:"countdown_beats"` // Countdown length before playback
}

// DifficultyConfig defines the endless-mode difficulty ramp.
type DifficultyConfig struct {
	InitialLevel float64 `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	RampSeconds  float64 `yaml:"ramp_seconds"`  // Time to reach level 1.0
}

// Preset represents a named difficulty level.
type Preset string

const (
	PresetEasy   Preset = "easy"
	PresetNormal Preset = "normal"
	PresetHard   Preset = "hard"
	PresetFixed  Preset = "fixed"
)

// ApplyPreset adjusts the difficulty section for a named preset.
func ApplyPreset(cfg *MotoConfig, preset Preset) {
	switch preset {
	case PresetEasy:
		cfg.Difficulty.InitialLevel = 0.0
	case PresetNormal:
		cfg.Difficulty.InitialLevel = 0.3
	case PresetHard:
		cfg.Difficulty.InitialLevel = 0.7
	case PresetFixed:
		cfg.Difficulty.RampSeconds = 0 // No progression
	}
}
