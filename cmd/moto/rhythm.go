package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/moto-rush/internal/course"
	"github.com/vovakirdan/moto-rush/internal/leaderboard"
	"github.com/vovakirdan/moto-rush/internal/platform/tui"
	"github.com/vovakirdan/moto-rush/internal/run"
)

var rhythmCmd = &cobra.Command{
	Use:   "rhythm <course.json> [more courses...]",
	Short: "Play a beat-mapped course",
	Long: `Play one or more course files in rhythm mode.

Every event in a course file is scheduled so it resolves exactly on its
beat: barriers explode at the kill zone, enemy cars cross the sweet spot
mid-track. Courses carry their own seed, so a track replays identically.

The playback clock is the simulation clock; course files are produced by
the offline track generator from audio analysis.

Examples:
  moto rhythm courses/neon-highway.json
  moto rhythm courses/*.json`,
	Args: cobra.MinimumNArgs(1),
	Run:  runRhythm,
}

func runRhythm(_ *cobra.Command, args []string) {
	cfg, err := gameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	courses := make([]*course.Course, 0, len(args))
	for _, path := range args {
		c, err := course.Load(path, cfg.Road.LaneCount)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		courses = append(courses, c)
	}

	rt := runtimeConfig()

	var gw *run.Gateway
	store, err := leaderboard.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open leaderboard database: %v\n", err)
	} else {
		gw = run.NewGateway(store)
		defer store.Close()
	}

	machine := run.NewRhythmMachine(cfg, rt, gw, courses)
	if err := tui.Run(machine, rt); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
