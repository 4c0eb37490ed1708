package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moodmuse-app/moodmuse/internal/daemon"
)

func init() {
	rootCmd.AddCommand(streakCmd)
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the daily activity streak",
	RunE:  runStreak,
}

func runStreak(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	s := d.Tracker.Streak()
	if s.TotalActiveDays == 0 {
		fmt.Println("No streak yet. Complete an activity to start one!")
		return nil
	}

	fmt.Printf("Current streak:    %d day(s)\n", s.CurrentStreak)
	fmt.Printf("Longest streak:    %d day(s)\n", s.LongestStreak)
	fmt.Printf("Total active days: %d\n", s.TotalActiveDays)
	fmt.Printf("Last activity:     %s\n", s.LastActivityDate)
	return nil
}
