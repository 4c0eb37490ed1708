package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/moodmuse-app/moodmuse/internal/domain"
	"github.com/moodmuse-app/moodmuse/internal/infra/catalog"
)

func init() {
	activitiesCmd.Flags().StringVar(&activitiesCategory, "category", "", "Filter by category (mindfulness, physical, social, creative)")
	rootCmd.AddCommand(activitiesCmd)
}

var activitiesCategory string

var activitiesCmd = &cobra.Command{
	Use:     "activities",
	Aliases: []string{"ls"},
	Short:   "List the available mood-boosting activities",
	RunE:    runActivities,
}

func runActivities(cmd *cobra.Command, args []string) error {
	activities := catalog.All()
	if activitiesCategory != "" {
		activities = catalog.ByCategory(domain.ActivityCategory(activitiesCategory))
		if len(activities) == 0 {
			return fmt.Errorf("no activities in category %q", activitiesCategory)
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tDURATION\tDIFFICULTY")
	for _, a := range activities {
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%dm\t%s\n",
			a.ID,
			a.Icon,
			a.Title,
			a.Category,
			a.DurationMin,
			a.Difficulty,
		)
	}
	return w.Flush()
}
