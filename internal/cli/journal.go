package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/moodmuse-app/moodmuse/internal/app/journal"
	"github.com/moodmuse-app/moodmuse/internal/daemon"
)

func init() {
	journalCmd.Flags().IntVar(&journalLimit, "limit", 10, "Number of entries to show")
	journalCmd.AddCommand(journalAddCmd)
	rootCmd.AddCommand(journalCmd)
}

var journalLimit int

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show recent journal entries",
	RunE:  runJournal,
}

var journalAddCmd = &cobra.Command{
	Use:   "add <mood> <text...>",
	Short: "Add a journal entry",
	Long:  `Add a journal entry. Mood is one of the mood emoji (or any short label).`,
	Args:  cobra.MinimumNArgs(2),
	RunE:  runJournalAdd,
}

func runJournal(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	entries, err := d.Journal.Entries(journalLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		prompt := journal.PromptOfDay(time.Now())
		fmt.Println("No entries yet. Today's prompt:")
		fmt.Printf("  %s\n", prompt.Text)
		return nil
	}

	total, err := d.DB.JournalEntryCount()
	if err != nil {
		return err
	}

	for _, e := range entries {
		fmt.Printf("%s  %s  %s\n", e.CreatedAt.Format("2006-01-02 15:04"), e.Mood, e.Text)
		if e.Reply != "" {
			fmt.Printf("    muse: %s\n", e.Reply)
		}
	}
	fmt.Printf("\n%d of %d entries shown\n", len(entries), total)
	return nil
}

func runJournalAdd(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	mood := args[0]
	text := strings.Join(args[1:], " ")

	entry, err := d.Journal.AddEntry(mood, "", text)
	if err != nil {
		return err
	}
	fmt.Printf("Saved entry %s\n", entry.ID)
	return nil
}
