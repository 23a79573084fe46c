package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/questforge/questforge/internal/daemon"
)

func init() {
	rootCmd.AddCommand(skipCmd)
}

var skipCmd = &cobra.Command{
	Use:   "skip QUEST",
	Short: "Skip a quest and take the health penalty",
	Args:  cobra.ExactArgs(1),
	RunE:  runSkip,
}

func runSkip(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	habit, err := resolveHabit(d, args[0])
	if err != nil {
		return err
	}

	if err := d.Engine.SkipHabit(habit.ID); err != nil {
		return err
	}

	c := d.Engine.State().Character
	fmt.Printf("Skipped %q. Health: %d/%d\n", habit.Name, c.Health, c.MaxHealth)
	return nil
}
