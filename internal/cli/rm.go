package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/questforge/questforge/internal/daemon"
)

func init() {
	rootCmd.AddCommand(rmCmd)
}

var rmCmd = &cobra.Command{
	Use:   "rm QUEST",
	Short: "Delete a quest",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

func runRm(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	habit, err := resolveHabit(d, args[0])
	if err != nil {
		return err
	}

	if err := d.Engine.DeleteHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Removed %q\n", habit.Name)
	return nil
}
