package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/moto-rush/internal/leaderboard"
	"github.com/vovakirdan/moto-rush/internal/rng"
)

var flagWeek string

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the weekly leaderboard",
	Long: `Display the top 10 runs for a weekly board.

Defaults to the current week; pass --week to inspect an older board.

Examples:
  moto scores
  moto scores --week 2026-W34`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagWeek, "week", "", "Week key to show (default: current week)")
}

func runScores(_ *cobra.Command, _ []string) {
	week := flagWeek
	if week == "" {
		week = rng.WeekKey(time.Now())
	}

	store, err := leaderboard.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening leaderboard database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	entries, err := store.TopN(week, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Weekly Leaderboard - %s\n", week)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No runs recorded yet this week.")
		fmt.Println()
		fmt.Println("Play 'moto play' to set the first score!")
		return
	}

	fmt.Printf("  %-4s  %-12s  %-10s  %-9s  %s\n", "Rank", "Rider", "Score", "Survived", "Date")
	fmt.Printf("  %-4s  %-12s  %-10s  %-9s  %s\n", "----", "-----", "-----", "--------", "----")

	for i, e := range entries {
		name := e.Name
		if name == "" {
			name = "anonymous"
		}
		dateStr := e.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-12s  %-10d  %7.1fs  %s\n", i+1, name, e.Score, e.SurvivalSecs, dateStr)
	}

	fmt.Println()
	if high, err := store.HighScore(week); err == nil {
		fmt.Printf("Best: %d\n", high)
	}
}
