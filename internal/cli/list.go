package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/questforge/questforge/internal/daemon"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List your quests",
	RunE:    runList,
}

func runList(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	state := d.Engine.State()
	if len(state.Habits) == 0 {
		fmt.Println("No quests yet. Run 'questforge add <name>' to get started.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDIFFICULTY\tRECURS\tSTREAK\tDONE\tTODAY")
	for _, h := range state.Habits {
		today := ""
		if h.Completed {
			today = "✓"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			shortID(h.ID), h.Name, h.Difficulty, h.Recurring,
			h.Streak, h.TotalCompletions, today)
	}
	return w.Flush()
}
