package domain

import "time"

// StreakData tracks consecutive calendar days with at least one habit
// completion. Invariant: LongestStreak >= CurrentStreak.
// Day boundaries are midnight local time.
type StreakData struct {
	CurrentStreak  int        `json:"currentStreak"`
	LongestStreak  int        `json:"longestStreak"`
	LastActiveDate *time.Time `json:"lastActiveDate,omitempty"`
	StreakFreezes  int        `json:"streakFreezes"` // freezes purchased, lifetime
	TotalLoginDays int        `json:"totalLoginDays"`
	FreezeActive   bool       `json:"freezeActive"`
	FreezeUntil    *time.Time `json:"freezeUntil,omitempty"`
}

// Frozen reports whether an unexpired freeze covers the given time.
func (s StreakData) Frozen(now time.Time) bool {
	return s.FreezeActive && s.FreezeUntil != nil && !now.After(*s.FreezeUntil)
}
