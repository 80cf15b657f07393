package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/moto-rush/internal/leaderboard"
	"github.com/vovakirdan/moto-rush/internal/platform/tui"
	"github.com/vovakirdan/moto-rush/internal/run"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Ride an endless run",
	Long: `Start an endless run against this week's obstacle pattern.

Controls:
  W/S, Up/Down - Switch lanes
  Space        - Slash (destroys barriers up close)
  F            - Fire a projectile (consumes ammo)
  P            - Pause
  R            - Restart (after a run ends)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  moto play
  moto play --difficulty hard
  moto play --name ava --seed 12345
  moto play --config ./my-tuning.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := gameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rt := runtimeConfig()

	// The run continues without a store; end screens degrade to a
	// local-only view
	var gw *run.Gateway
	store, err := leaderboard.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open leaderboard database: %v\n", err)
	} else {
		gw = run.NewGateway(store)
		defer store.Close()
	}

	machine := run.NewMachine(cfg, rt, gw)
	if err := tui.Run(machine, rt); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
