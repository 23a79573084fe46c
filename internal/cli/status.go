package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/questforge/questforge/internal/daemon"
	"github.com/questforge/questforge/internal/rules"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show your character sheet",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	state := d.Engine.State()
	c := state.Character
	rank := rules.HeroRankFor(c.Stats)
	unlocked, total := rules.AchievementProgress(state.Achievements)

	fmt.Printf("%s — %s %s (level %d, %s)\n",
		c.Name, rank.Rank.Icon, rank.Rank.Name, c.Level, rules.LevelName(c.Level))
	fmt.Printf("  Class:   %s\n", c.Class)
	fmt.Printf("  XP:      %d / %d (total %d)\n", c.XP, c.XPToNextLevel, c.TotalXP)
	fmt.Printf("  Health:  %d / %d\n", c.Health, c.MaxHealth)
	fmt.Printf("  Gold:    %d\n", c.Gold)
	fmt.Printf("  Stats:   STR %d  INT %d  AGI %d  CHA %d (total %d)\n",
		c.Stats.Strength, c.Stats.Intelligence, c.Stats.Agility, c.Stats.Charisma,
		rank.TotalStats)
	fmt.Printf("  Streak:  %d days (longest %d)\n",
		state.StreakData.CurrentStreak, state.StreakData.LongestStreak)
	fmt.Printf("  Awards:  %d / %d achievements\n", unlocked, total)

	if c.InRecovery(time.Now()) {
		fmt.Printf("  ⚠ Recovery mode until %s — rewards halved.\n",
			c.RecoveryModeEndTime.Format("15:04"))
	}
	if next := rank.Next; next != nil {
		fmt.Printf("  Next rank: %s at %d total stats (%d%% there)\n",
			next.Name, next.MinStats, rank.ProgressPct)
	}
	return nil
}
