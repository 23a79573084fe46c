package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/questforge/questforge/internal/daemon"
	"github.com/questforge/questforge/internal/domain"
)

func init() {
	addCmd.Flags().StringVarP(&addDifficulty, "difficulty", "d", "medium", "easy, medium or hard")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "stat trained on completion (strength, intelligence, agility, charisma)")
	addCmd.Flags().StringVarP(&addRecurring, "recurring", "r", "daily", "daily, weekly, monthly or permanent")
	rootCmd.AddCommand(addCmd)
}

var (
	addDifficulty string
	addCategory   string
	addRecurring  string
)

var addCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a new quest",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	habit, err := d.Engine.AddHabit(
		args[0],
		domain.Difficulty(addDifficulty),
		domain.Stat(addCategory),
		domain.Recurrence(addRecurring),
	)
	if err != nil {
		return err
	}

	fmt.Printf("Added quest %q (%s, %s) [%s]\n",
		habit.Name, habit.Difficulty, habit.Recurring, shortID(habit.ID))
	return nil
}
