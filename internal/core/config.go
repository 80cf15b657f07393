package core

// RuntimeConfig is passed to the run machine at initialization.
// It carries platform concerns (screen, tick rate) and the weekly seed
// used for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Simulation ticks per second (default 60)
	Seed     int64  // RNG seed; derived from WeekKey when 0
	WeekKey  string // Calendar week key, e.g. "2026-W35"
	Player   string // Identified player name; empty means anonymous
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}
