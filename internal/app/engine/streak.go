package engine

import (
	"fmt"

	"github.com/questforge/questforge/internal/domain"
	"github.com/questforge/questforge/internal/infra/metrics"
	"github.com/questforge/questforge/internal/rules"
)

// FreezeStreak buys a 1-day streak freeze with gold.
func (s *Service) FreezeStreak() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.state.StreakData.Frozen(now) {
		metrics.ActionErrors.WithLabelValues("freeze").Inc()
		return domain.ErrStreakAlreadyFrozen
	}
	if s.state.Character.Gold < rules.StreakFreezeCost {
		metrics.ActionErrors.WithLabelValues("freeze").Inc()
		return domain.ErrInsufficientFunds
	}

	s.state.Character.Gold -= rules.StreakFreezeCost
	s.state.StreakData = rules.ApplyFreeze(s.state.StreakData, now)

	metrics.ActionsTotal.WithLabelValues("freeze").Inc()
	s.notify(domain.Notification{
		Type:    domain.NotifyItemUsed,
		Title:   "🧊 Streak frozen",
		Message: "Your streak is protected through the end of tomorrow.",
	})
	s.persistNow(domain.StatePatch{
		Character:  &s.state.Character,
		StreakData: &s.state.StreakData,
	})
	return nil
}

// RecoverStreak pays to restore the longest streak after a break.
// Only valid within 24 hours of the last active day.
func (s *Service) RecoverStreak() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.state.StreakData.CurrentStreak > 0 {
		metrics.ActionErrors.WithLabelValues("recover").Inc()
		return domain.ErrNothingToRecover
	}
	offer, ok := rules.RecoveryOfferFor(s.state.StreakData, now)
	if !ok {
		metrics.ActionErrors.WithLabelValues("recover").Inc()
		return domain.ErrRecoveryUnavailable
	}
	if s.state.Character.Gold < offer.Cost {
		metrics.ActionErrors.WithLabelValues("recover").Inc()
		return domain.ErrInsufficientFunds
	}

	s.state.Character.Gold -= offer.Cost
	s.state.StreakData = rules.ApplyRecovery(s.state.StreakData, now)

	metrics.ActionsTotal.WithLabelValues("recover").Inc()
	s.notify(domain.Notification{
		Type:    domain.NotifyStreakMilestone,
		Title:   "🔥 Streak recovered",
		Message: fmt.Sprintf("You're back on a %d-day streak! (−%d gold)", offer.StreakToRecover, offer.Cost),
	})
	s.persistNow(domain.StatePatch{
		Character:  &s.state.Character,
		StreakData: &s.state.StreakData,
	})
	return nil
}

// RefreshStreak re-evaluates the account streak against the calendar.
// Called on startup and by the periodic sweep so breaks surface even
// when the player takes no action.
func (s *Service) RefreshStreak() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	res := rules.EvaluateStreak(s.state.StreakData, s.state.Habits, now)
	if !res.Changed {
		return
	}
	broken := res.Broken
	lost := s.state.StreakData.CurrentStreak
	s.state.StreakData = res.Streak

	if broken {
		msg := fmt.Sprintf("Your %d-day streak has ended.", lost)
		if offer, ok := rules.RecoveryOfferFor(s.state.StreakData, now); ok {
			msg += fmt.Sprintf(" Recover it within 24h for %d gold.", offer.Cost)
		}
		s.notify(domain.Notification{
			Type:    domain.NotifyStreakBroken,
			Title:   "💔 Streak broken",
			Message: msg,
		})
		s.logEvent(domain.TimelineEvent{
			Type:        domain.EventStreakBroken,
			Level:       s.state.Character.Level,
			Description: fmt.Sprintf("%d-day streak ended", lost),
			Icon:        "💔",
		})
	}
	s.persistDebounced(domain.StatePatch{StreakData: &s.state.StreakData})
}
