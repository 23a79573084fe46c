package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/questforge/questforge/internal/daemon"
	"github.com/questforge/questforge/internal/rules"
)

func init() {
	streakCmd.AddCommand(streakFreezeCmd)
	streakCmd.AddCommand(streakRecoverCmd)
	rootCmd.AddCommand(streakCmd)
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show streak status",
	RunE:  runStreak,
}

var streakFreezeCmd = &cobra.Command{
	Use:   "freeze",
	Short: fmt.Sprintf("Buy a streak freeze for %d gold (protects through tomorrow)", rules.StreakFreezeCost),
	RunE:  runStreakFreeze,
}

var streakRecoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Pay gold to restore a recently broken streak",
	RunE:  runStreakRecover,
}

func runStreak(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	sd := d.Engine.State().StreakData
	fmt.Printf("Current streak: %d days (×%.2f reward multiplier)\n",
		sd.CurrentStreak, rules.StreakMultiplier(sd.CurrentStreak))
	fmt.Printf("Longest streak: %d days\n", sd.LongestStreak)

	if sd.Frozen(time.Now()) {
		fmt.Printf("Freeze active until %s\n", sd.FreezeUntil.Format("Jan 2 15:04"))
	}
	if next, ok := rules.NextMilestone(sd.CurrentStreak); ok {
		fmt.Printf("Next milestone: %s %s at %d days (%d gold, %d XP)\n",
			next.Icon, next.Name, next.Days, next.Gold, next.XP)
	}
	if offer, ok := rules.RecoveryOfferFor(sd, time.Now()); ok && sd.CurrentStreak == 0 {
		fmt.Printf("Recovery available: restore your %d-day streak for %d gold ('questforge streak recover')\n",
			offer.StreakToRecover, offer.Cost)
	}
	return nil
}

func runStreakFreeze(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Engine.FreezeStreak(); err != nil {
		return err
	}

	sd := d.Engine.State().StreakData
	fmt.Printf("Streak frozen until %s.\n", sd.FreezeUntil.Format("Jan 2 15:04"))
	return nil
}

func runStreakRecover(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Engine.RecoverStreak(); err != nil {
		return err
	}

	sd := d.Engine.State().StreakData
	fmt.Printf("Streak restored: %d days.\n", sd.CurrentStreak)
	return nil
}
