package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the simulation configuration.
// Search order: customPath -> ~/.moto/configs/moto.yaml -> ./configs/moto.yaml -> embedded default
func Load(customPath string) (MotoConfig, error) {
	var cfg MotoConfig

	// Try custom path first; an explicit path that fails is an error
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("moto.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil && cfg.Validate() == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/moto.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultMotoYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home
// is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".moto", "configs", filename)
}

// Validate rejects configurations that cannot drive a coherent simulation.
// These are authoring errors and should fail fast, not be clamped.
func (c MotoConfig) Validate() error {
	if c.Road.LaneCount < 2 {
		return fmt.Errorf("config: lane_count must be at least 2, got %d", c.Road.LaneCount)
	}
	if c.Road.BaseSpeed <= 0 {
		return fmt.Errorf("config: base_speed must be positive, got %v", c.Road.BaseSpeed)
	}
	if c.Road.VehicleSpeedFactor < 0 || c.Road.VehicleSpeedFactor >= 1 {
		return fmt.Errorf("config: vehicle_speed_factor must be in [0,1), got %v", c.Road.VehicleSpeedFactor)
	}
	if c.Spawning.MaxPerWave < 1 || c.Spawning.MaxPerWave > c.Road.LaneCount {
		return fmt.Errorf("config: max_per_wave must be in [1,%d], got %d", c.Road.LaneCount, c.Spawning.MaxPerWave)
	}
	if c.Spawning.IntervalMin <= 0 || c.Spawning.IntervalMin > c.Spawning.IntervalMax {
		return fmt.Errorf("config: wave intervals must satisfy 0 < min <= max")
	}
	if c.Obstacles.SkinCount < 2 || c.Obstacles.HazardSizes < 2 {
		return fmt.Errorf("config: skin_count and hazard_sizes need at least 2 variants")
	}
	if c.Rhythm.KillZoneX >= c.Rhythm.SweetSpotX {
		return fmt.Errorf("config: kill_zone_x must be left of sweet_spot_x")
	}
	return nil
}
