// moto is a terminal motorcycle runner with a weekly seeded leaderboard
// and a beat-mapped rhythm mode.
//
// Usage:
//
//	moto play                - Endless run against the weekly pattern
//	moto rhythm <course>     - Play a beat-mapped course file
//	moto scores              - Show this week's leaderboard
//	moto serve               - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Override the weekly RNG seed
//	--db <path>     - Set database path (default: ~/.moto/moto.db)
//	--name <name>   - Player name for score submission
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/moto-rush/internal/config"
	"github.com/vovakirdan/moto-rush/internal/core"
	"github.com/vovakirdan/moto-rush/internal/leaderboard"
	"github.com/vovakirdan/moto-rush/internal/rng"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagName   string

	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "moto",
	Short: "Moto Rush - a terminal motorcycle runner",
	Long: `Moto Rush is a four-lane motorcycle runner for the terminal.
Dodge traffic, slash barriers, build rage and chase the weekly board.
Everyone on the same calendar week rides the same obstacle pattern.

Available commands:
  play     - Endless run against the weekly pattern
  rhythm   - Play a beat-mapped course file
  scores   - View the weekly leaderboard
  serve    - Start SSH server for remote play

Examples:
  moto play
  moto play --difficulty hard --name ava
  moto rhythm courses/neon-highway.json
  moto scores
  moto serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = this week's shared seed)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", leaderboard.DefaultPath, "Path to leaderboard database")
	rootCmd.PersistentFlags().StringVar(&flagName, "name", "", "Player name for score submission (empty = anonymous)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(rhythmCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// gameConfig loads and validates the tuning config with flags applied.
func gameConfig() (config.MotoConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.MotoConfig{}, err
	}
	if flagDifficulty != "" {
		config.ApplyPreset(&cfg, config.Preset(flagDifficulty))
	}
	if err := cfg.Validate(); err != nil {
		return config.MotoConfig{}, err
	}
	return cfg, nil
}

// runtimeConfig builds the per-run runtime config from the terminal and
// the global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		WeekKey:  rng.WeekKey(time.Now()),
		Player:   flagName,
	}
}
