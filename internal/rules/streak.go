package rules

import (
	"time"

	"github.com/questforge/questforge/internal/domain"
)

// StreakFreezeCost is the gold price of a 1-day streak freeze.
const StreakFreezeCost = 100

// Weekly bonus granted every 7th streak day, independent of milestones.
const (
	WeeklyBonusGold = 200
	WeeklyBonusXP   = 500
)

// StreakMilestone is a one-time reward plus a forward multiplier that
// applies to all reward calculations from that day on.
type StreakMilestone struct {
	Days       int
	Name       string
	Icon       string
	Gold       int
	XP         int
	Multiplier float64
}

var streakMilestones = []StreakMilestone{
	{3, "Committed", "🔥", 50, 100, 1.1},
	{7, "Weekly Warrior", "⚡", 100, 200, 1.15},
	{14, "Fortnight Champion", "💪", 200, 400, 1.2},
	{30, "Monthly Master", "👑", 500, 1000, 1.3},
	{50, "Dedication King", "🏆", 750, 1500, 1.4},
	{75, "Legendary Streak", "⭐", 1000, 2000, 1.5},
	{100, "Centurion", "💯", 2000, 5000, 1.75},
	{150, "Unstoppable", "🚀", 3000, 7500, 2.0},
	{200, "Mythic Dedication", "✨", 5000, 10000, 2.5},
	{365, "Year of Excellence", "🎆", 10000, 25000, 3.0},
}

// StreakMultiplier returns the forward multiplier for a streak length.
func StreakMultiplier(days int) float64 {
	for i := len(streakMilestones) - 1; i >= 0; i-- {
		if days >= streakMilestones[i].Days {
			return streakMilestones[i].Multiplier
		}
	}
	return 1.0
}

// MilestoneAt returns the milestone hit exactly at the given streak
// length, if any. Streaks grow one day at a time, so crossings always
// land exactly on a table entry.
func MilestoneAt(days int) (StreakMilestone, bool) {
	for _, m := range streakMilestones {
		if m.Days == days {
			return m, true
		}
	}
	return StreakMilestone{}, false
}

// NextMilestone returns the first milestone above the given streak.
func NextMilestone(days int) (StreakMilestone, bool) {
	for _, m := range streakMilestones {
		if days < m.Days {
			return m, true
		}
	}
	return StreakMilestone{}, false
}

// WeeklyBonus reports the flat bonus for every 7th streak day.
func WeeklyBonus(days int) (gold, xp int, ok bool) {
	if days > 0 && days%7 == 0 {
		return WeeklyBonusGold, WeeklyBonusXP, true
	}
	return 0, 0, false
}

// startOfDay truncates t to midnight local time. Day boundaries for
// streak purposes are calendar days, not 24h windows.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// hasCompletionOn reports whether any habit was completed on the
// calendar day containing t.
func hasCompletionOn(habits []domain.Habit, t time.Time) bool {
	for _, h := range habits {
		if h.CompletedOn(t) {
			return true
		}
	}
	return false
}

// StreakResult carries the updated streak state plus the transition
// signals the engine turns into rewards and notifications.
type StreakResult struct {
	Streak  domain.StreakData
	Changed bool // state differs from the input
	Grew    bool // currentStreak incremented
	Broken  bool // streak reset to zero this evaluation
}

// EvaluateStreak advances the streak state machine for the current day.
// Idempotent within a calendar day. A day with activity but no
// completion keeps the streak alive without incrementing it; the streak
// only breaks once a full day passes with neither completion nor an
// active freeze.
func EvaluateStreak(s domain.StreakData, habits []domain.Habit, now time.Time) StreakResult {
	today := startOfDay(now)

	if s.LastActiveDate == nil {
		// First evaluation ever. Start the streak if something was
		// completed today, otherwise just mark the login day.
		out := s
		out.LastActiveDate = &today
		out.TotalLoginDays++
		if hasCompletionOn(habits, now) {
			out.CurrentStreak = 1
			if out.LongestStreak < 1 {
				out.LongestStreak = 1
			}
		}
		return StreakResult{Streak: out, Changed: true, Grew: out.CurrentStreak > s.CurrentStreak}
	}

	lastDay := startOfDay(*s.LastActiveDate)
	daysDiff := int(today.Sub(lastDay).Hours() / 24)

	if daysDiff <= 0 {
		// Same calendar day — nothing to do.
		return StreakResult{Streak: s}
	}

	out := s
	out.LastActiveDate = &today
	out.TotalLoginDays++

	if daysDiff == 1 {
		// Consecutive day: increment only on a completion; a completion-
		// free day is tolerated (grace) and does not decrement.
		if hasCompletionOn(habits, now) {
			out.CurrentStreak++
		}
	} else {
		// Missed at least one full day.
		if s.Frozen(today) {
			// Freeze covers the gap; it lapses on its own expiry.
			return StreakResult{Streak: out, Changed: true}
		}
		broken := s.CurrentStreak > 0
		out.CurrentStreak = 0
		out.FreezeActive = false
		out.FreezeUntil = nil
		if broken {
			return StreakResult{Streak: out, Changed: true, Broken: true}
		}
	}

	if out.CurrentStreak > out.LongestStreak {
		out.LongestStreak = out.CurrentStreak
	}
	return StreakResult{Streak: out, Changed: true, Grew: out.CurrentStreak > s.CurrentStreak}
}

// ApplyFreeze activates a streak freeze through the end of tomorrow.
// Gold checks happen in the engine before calling this.
func ApplyFreeze(s domain.StreakData, now time.Time) domain.StreakData {
	until := startOfDay(now).AddDate(0, 0, 2).Add(-time.Second)
	s.FreezeActive = true
	s.FreezeUntil = &until
	s.StreakFreezes++
	return s
}

// ApplyFreezeFor activates a freeze for an item-supplied duration
// (streak shield consumables).
func ApplyFreezeFor(s domain.StreakData, now time.Time, d time.Duration) domain.StreakData {
	until := now.Add(d)
	s.FreezeActive = true
	s.FreezeUntil = &until
	return s
}

// RecoveryOffer is the paid option to restore a just-broken streak.
type RecoveryOffer struct {
	Cost            int
	StreakToRecover int
}

// RecoveryOfferFor returns the recovery offer, valid within 24h of the
// break for streaks that reached at least 3 days.
func RecoveryOfferFor(s domain.StreakData, now time.Time) (RecoveryOffer, bool) {
	if s.LastActiveDate == nil || s.LongestStreak < 3 {
		return RecoveryOffer{}, false
	}
	if now.Sub(*s.LastActiveDate) > 24*time.Hour {
		return RecoveryOffer{}, false
	}
	cost := 10 * s.LongestStreak
	if cost > 500 {
		cost = 500
	}
	return RecoveryOffer{Cost: cost, StreakToRecover: s.LongestStreak}, true
}

// ApplyRecovery restores the longest streak after a paid recovery.
func ApplyRecovery(s domain.StreakData, now time.Time) domain.StreakData {
	today := startOfDay(now)
	s.CurrentStreak = s.LongestStreak
	s.LastActiveDate = &today
	return s
}
