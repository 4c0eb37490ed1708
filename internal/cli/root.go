// Package cli implements the MoodMuse command-line interface using Cobra.
// Each subcommand maps to a daemon capability (serve, activities, progress,
// streak, badges, journal).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "moodmuse",
	Short: "MoodMuse — Your personal mood companion",
	Long: `MoodMuse is a local-first mood journaling and wellbeing engine.
Track mood-boosting activities, build streaks, unlock badges, and keep a
reflective journal — all stored on your own machine.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
