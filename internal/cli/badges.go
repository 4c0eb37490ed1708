package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/moodmuse-app/moodmuse/internal/daemon"
)

func init() {
	badgesCmd.Flags().BoolVar(&badgesAll, "all", false, "Include locked badges")
	rootCmd.AddCommand(badgesCmd)
}

var badgesAll bool

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "Show unlocked badges and progress toward the rest",
	RunE:  runBadges,
}

func runBadges(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	badges := d.Tracker.Badges()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BADGE\tCATEGORY\tPROGRESS\tUNLOCKED")
	shown := 0
	for _, b := range badges {
		if !b.Unlocked() && !badgesAll {
			continue
		}
		shown++
		unlocked := "-"
		if b.Unlocked() {
			unlocked = b.UnlockedAt.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s %s\t%s\t%.0f%%\t%s\n",
			b.Icon,
			b.Title,
			b.Category,
			b.Progress,
			unlocked,
		)
	}
	if shown == 0 {
		fmt.Println("No badges unlocked yet. Run 'moodmuse badges --all' to see what's waiting.")
		return nil
	}
	return w.Flush()
}
