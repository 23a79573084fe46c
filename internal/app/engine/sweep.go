package engine

import (
	"time"

	"github.com/questforge/questforge/internal/domain"
	"github.com/questforge/questforge/internal/rules"
)

// Sweep is the periodic maintenance pass: recurring quests whose period
// has rolled over become completable again, lapsed shop effects are
// pruned, and the streak is re-evaluated against the calendar.
func (s *Service) Sweep() {
	s.mu.Lock()
	now := s.now()
	changed := false

	for i := range s.state.Habits {
		h := &s.state.Habits[i]
		if h.Completed && periodRolledOver(*h, now) {
			h.Completed = false
			changed = true
		}
	}

	if rules.PruneExpired(&s.state.Inventory, now) > 0 {
		changed = true
	}

	// Recovery mode expiry needs no action (InRecovery is
	// time-checked), but drop the stale pointer once it has passed.
	if c := &s.state.Character; c.RecoveryModeEndTime != nil && !now.Before(*c.RecoveryModeEndTime) {
		c.RecoveryModeEndTime = nil
		changed = true
	}

	if changed {
		s.persistDebounced(domain.StatePatch{
			Character: &s.state.Character,
			Habits:    &s.state.Habits,
			Inventory: &s.state.Inventory,
		})
	}
	s.mu.Unlock()

	s.RefreshStreak()
}

// periodRolledOver reports whether enough days have passed since the
// last completion for the quest to become completable again: 1 day for
// daily, 7 for weekly, 30 for monthly, counted midnight to midnight.
// Permanent quests never reset.
func periodRolledOver(h domain.Habit, now time.Time) bool {
	if h.LastCompleted == nil {
		return false
	}
	days := daysSinceCompletion(*h.LastCompleted, now)
	switch h.Recurring {
	case domain.RecurrenceDaily:
		return days >= 1
	case domain.RecurrenceWeekly:
		return days >= 7
	case domain.RecurrenceMonthly:
		return days >= 30
	default:
		return false
	}
}

// daysSinceCompletion counts whole calendar days between the midnight
// of the completion and the midnight of now.
func daysSinceCompletion(last, now time.Time) int {
	ly, lm, ld := last.Date()
	a := time.Date(ly, lm, ld, 0, 0, 0, 0, last.Location())
	ny, nm, nd := now.Date()
	b := time.Date(ny, nm, nd, 0, 0, 0, 0, now.Location())
	return int(b.Sub(a) / (24 * time.Hour))
}
