package rules

import (
	"time"

	"github.com/questforge/questforge/internal/domain"
)

// HP penalties. Skips are voluntary and cheap; missed recurring quests
// scale with the recurrence window.
const (
	SkipPenaltyHP    = 10
	DailyPenaltyHP   = 15
	WeeklyPenaltyHP  = 25
	MonthlyPenaltyHP = 50
)

// RecoveryModeDuration and RecoveryModeModifier govern the 24h reward
// debuff after a death.
const (
	RecoveryModeDuration = 24 * time.Hour
	RecoveryModeModifier = 0.5
)

// DeathXPPenalty is the flat XP loss on death, floored at zero total.
const DeathXPPenalty = 10

// MissPenaltyHP returns the HP cost of missing a quest with the given
// recurrence. Permanent quests carry no miss penalty; skipping is the
// only way they cost HP.
func MissPenaltyHP(r domain.Recurrence) int {
	switch r {
	case domain.RecurrenceDaily:
		return DailyPenaltyHP
	case domain.RecurrenceWeekly:
		return WeeklyPenaltyHP
	case domain.RecurrenceMonthly:
		return MonthlyPenaltyHP
	default:
		return 0
	}
}

// DeathOutcome is the full set of character changes a death applies.
type DeathOutcome struct {
	GoldLost        int
	XPLost          int
	ReviveHP        int
	RecoveryEndTime time.Time
}

// ApplyDeath mutates the character for a death at health <= 0: half the
// gold (floored), a flat XP penalty, revival at 1 HP (or the shield's
// revive HP when protected), streak reset handled by the caller.
// Protection from an immortal shield skips every penalty except the
// revive itself.
func ApplyDeath(c *domain.Character, now time.Time, protectedHP int) DeathOutcome {
	if protectedHP > 0 {
		c.Health = protectedHP
		if c.Health > c.MaxHealth {
			c.Health = c.MaxHealth
		}
		return DeathOutcome{ReviveHP: c.Health}
	}

	out := DeathOutcome{ReviveHP: 1}
	out.GoldLost = c.Gold / 2
	c.Gold -= out.GoldLost

	// XP loss comes out of the current level's progress only; a death
	// never demotes the hero.
	out.XPLost = DeathXPPenalty
	if out.XPLost > c.XP {
		out.XPLost = c.XP
	}
	c.XP -= out.XPLost
	c.TotalXP -= out.XPLost

	c.Health = 1
	c.DeathCount++
	out.RecoveryEndTime = now.Add(RecoveryModeDuration)
	c.RecoveryModeEndTime = &out.RecoveryEndTime
	return out
}

// RecoveryMultiplier returns the reward debuff factor, 0.5 while the
// character is in post-death recovery and 1.0 otherwise.
func RecoveryMultiplier(c domain.Character, now time.Time) float64 {
	if c.InRecovery(now) {
		return RecoveryModeModifier
	}
	return 1.0
}
