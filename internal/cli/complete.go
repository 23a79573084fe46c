package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/questforge/questforge/internal/daemon"
)

func init() {
	rootCmd.AddCommand(completeCmd)
}

var completeCmd = &cobra.Command{
	Use:     "complete QUEST",
	Aliases: []string{"done"},
	Short:   "Complete a quest and collect the reward",
	Args:    cobra.ExactArgs(1),
	RunE:    runComplete,
}

func runComplete(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	habit, err := resolveHabit(d, args[0])
	if err != nil {
		return err
	}

	result, err := d.Engine.CompleteHabit(habit.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Completed %q: +%d XP, +%d gold", habit.Name, result.Reward.XP, result.Reward.Gold)
	if result.Reward.StatGain > 0 {
		fmt.Printf(", +%d %s", result.Reward.StatGain, result.Reward.Stat)
	}
	fmt.Println()

	if result.LeveledUp {
		fmt.Printf("⬆ Level up! You are now level %d.\n", result.NewLevel)
	}
	if result.Milestone != nil {
		fmt.Printf("%s %d-day streak: %s! Bonus: %d gold, %d XP.\n",
			result.Milestone.Icon, result.Milestone.Days, result.Milestone.Name,
			result.Milestone.Gold, result.Milestone.XP)
	}
	return nil
}
