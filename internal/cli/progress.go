package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/moodmuse-app/moodmuse/internal/daemon"
	"github.com/moodmuse-app/moodmuse/internal/infra/catalog"
)

func init() {
	rootCmd.AddCommand(progressCmd)
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show per-activity progress and the overall summary",
	RunE:  runProgress,
}

func runProgress(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	progress := d.Tracker.AllProgress()
	if len(progress) == 0 {
		fmt.Println("No activities completed yet. Run 'moodmuse activities' to browse the catalog.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ACTIVITY\tCOMPLETIONS\tTIME\tAVG EFFECT\tSTREAK\tLAST DONE")
	for _, p := range progress {
		title := p.ActivityID
		if a := catalog.Lookup(p.ActivityID); a != nil {
			title = a.Title
		}
		fmt.Fprintf(w, "%s\t%d\t%dm\t%.1f\t%dd\t%s\n",
			title,
			p.TotalCompletions,
			p.TotalTimeMin,
			p.AverageEffectiveness,
			p.StreakDays,
			p.LastCompleted.Format("2006-01-02 15:04"),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	sum := d.Tracker.Summarize()
	fmt.Printf("\n%d sessions completed, %dm total, %.1f average effectiveness, %d/%d badges\n",
		sum.CompletedSessions, sum.TotalTimeMin, sum.AverageEffectiveness,
		sum.BadgesUnlocked, sum.BadgesTotal)
	return nil
}
