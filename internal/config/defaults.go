package config

import (
	_ "embed"
)

//go:embed defaults/moto.yaml
var defaultMotoYAML []byte

// Default returns the default simulation configuration. The values mirror
// the tuning of the original 1920-wide playfield: the road scrolls at 1000
// units/s and vehicles drive forward at 65% of road speed, so they approach
// at 350 units/s.
func Default() MotoConfig {
	return MotoConfig{
		Road: RoadConfig{
			Width:              1920,
			LaneCount:          4,
			LaneHeight:         120,
			BaseSpeed:          1000,
			VehicleSpeedFactor: 0.65,
			LaneCrossTime:      0.3,
		},
		Player: PlayerConfig{
			X:      300,
			Width:  110,
			Height: 70,
		},
		Obstacles: ObstacleConfig{
			BarrierWidth:   90,
			BarrierHeight:  100,
			VehicleWidth:   220,
			VehicleHeight:  110,
			VehicleShrinkW: 50,
			VehicleShrinkH: 30,
			VehicleOffsetX: -15,
			HazardWidth:    140,
			HazardHeight:   40,
			VehicleLinger:  0.45,
			SkinCount:      5,
			HazardSizes:    4,

			BarrierWeightLow:  0.30,
			BarrierWeightHigh: 0.45,
			VehicleWeightLow:  0.20,
			VehicleWeightHigh: 0.35,
			HazardWeightLow:   0.50,
			HazardWeightHigh:  0.20,

			RageBarrierWeight: 0.70,
			RageVehicleWeight: 0.20,
			RageHazardWeight:  0.10,
		},
		Spawning: SpawnConfig{
			IntervalMax:     1.60,
			IntervalMin:     0.55,
			MaxPerWave:      3,
			MarginMin:       120,
			WarningDuration: 0.90,
			VehicleExtra:    0.35,
			GraceDuration:   1.50,
		},
		Pickups: PickupConfig{
			ChanceBehindBarrier: 0.22,
			AmmoShare:           0.70,
			Radius:              60,
			BehindOffset:        180,
			AmmoPerPickup:       3,
			MaxAmmo:             9,
		},
		Combat: CombatConfig{
			SlashWidth:       140,
			SlashHeight:      90,
			SlashOffset:      80,
			SlashSpeedWiden:  60,
			SlashSpeedReach:  50,
			ProjectileSpeed:  1400,
			ProjectileAccel:  2200,
			ProjectileRadius: 18,
		},
		Rage: RageConfig{
			FillPerKill:    18,
			Max:            100,
			Duration:       6.0,
			RampUp:         0.6,
			RampDown:       0.8,
			SpeedMult:      1.6,
			ShockwaveBonus: 50,
		},
		Score: ScoreConfig{
			DistanceRate:   10,
			SlashBonus:     100,
			ProximityScale: 1.5,
			StreakWindow:   3.0,
			StreakStep:     0.25,
		},
		Death: DeathConfig{
			RampDuration: 0.9,
			SnapDuration: 0.15,
			HoldDuration: 1.2,
			FadeDuration: 0.5,
		},
		Rhythm: RhythmConfig{
			SpawnMargin:    120,
			KillZoneX:      200,
			SweetSpotX:     960,
			CountdownBeats: 4,
		},
		Difficulty: DifficultyConfig{
			InitialLevel: 0.0,
			RampSeconds:  90,
		},
	}
}
