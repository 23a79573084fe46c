package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/questforge/questforge/internal/domain"
	"github.com/questforge/questforge/internal/infra/metrics"
	"github.com/questforge/questforge/internal/rules"
)

// AddHabit creates a new quest. The slot budget counts every habit
// against the base capacity plus purchased quest-slot unlocks.
func (s *Service) AddHabit(name string, difficulty domain.Difficulty, category domain.Stat, recurring domain.Recurrence) (domain.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		return domain.Habit{}, domain.ErrEmptyHabitName
	}
	if !difficulty.IsValid() {
		return domain.Habit{}, fmt.Errorf("%w: %q", domain.ErrInvalidDifficulty, difficulty)
	}
	if category == "" {
		category = domain.StatStrength
	}
	if !category.IsValid() {
		return domain.Habit{}, fmt.Errorf("%w: %q", domain.ErrInvalidStat, category)
	}
	if recurring == "" {
		recurring = domain.RecurrencePermanent
	}
	if !recurring.IsValid() {
		return domain.Habit{}, fmt.Errorf("%w: %q", domain.ErrInvalidRecurrence, recurring)
	}
	if len(s.state.Habits) >= rules.QuestSlotCapacity(s.state.Inventory) {
		return domain.Habit{}, domain.ErrQuestSlotsFull
	}

	h := domain.Habit{
		ID:         uuid.NewString(),
		Name:       name,
		Difficulty: difficulty,
		Category:   category,
		Recurring:  recurring,
		CreatedAt:  s.now(),
	}
	s.state.Habits = append(s.state.Habits, h)
	metrics.ActionsTotal.WithLabelValues("add_habit").Inc()

	s.persistNow(domain.StatePatch{Habits: &s.state.Habits})
	s.logEvent(domain.TimelineEvent{
		Type:        domain.EventQuestCreated,
		Level:       s.state.Character.Level,
		Description: fmt.Sprintf("New quest: %s", name),
		Icon:        "📝",
		Details:     fmt.Sprintf("%s difficulty, %s category", difficulty, category),
	})
	return h, nil
}

// DeleteHabit removes a quest. Lifetime progress tied to the habit is
// gone with it; character-level gains stay.
func (s *Service) DeleteHabit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Habits {
		if s.state.Habits[i].ID != id {
			continue
		}
		s.state.Habits = append(s.state.Habits[:i], s.state.Habits[i+1:]...)
		metrics.ActionsTotal.WithLabelValues("delete_habit").Inc()
		s.persistNow(domain.StatePatch{Habits: &s.state.Habits})
		return nil
	}
	metrics.ActionErrors.WithLabelValues("delete_habit").Inc()
	return domain.ErrHabitNotFound
}

// CompleteResult reports what a completion paid out.
type CompleteResult struct {
	Reward    rules.Reward
	LeveledUp bool
	NewLevel  int
	Milestone *rules.StreakMilestone
}

// CompleteHabit runs the full completion pipeline: multipliers, reward
// application, level derivation, class evaluation, ascendant check,
// streak advancement, achievement scan, then immediate persistence.
// Any validation failure leaves the state untouched.
func (s *Service) CompleteHabit(id string) (CompleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	habit := s.state.HabitByID(id)
	if habit == nil {
		metrics.ActionErrors.WithLabelValues("complete").Inc()
		return CompleteResult{}, domain.ErrHabitNotFound
	}
	if habit.Recurring != domain.RecurrencePermanent && habit.Completed && habit.CompletedOn(now) {
		metrics.ActionErrors.WithLabelValues("complete").Inc()
		return CompleteResult{}, domain.ErrAlreadyCompleted
	}

	// 1. Gather multipliers against the pre-completion state.
	factors := rules.FactorsFor(s.state, *habit, s.guildBonus(), now)
	reward := rules.ComputeReward(*habit, factors, s.state.Character.Class)

	c := &s.state.Character
	prevLevel := c.Level
	prevClass := c.Class
	prevStats := c.Stats

	// 2. Apply currency, stat and health gains.
	c.TotalXP += reward.XP
	c.Gold += reward.Gold
	c.Stats = c.Stats.Add(reward.Stat, reward.StatGain)
	c.Health += rules.QuestHealHP
	if c.Health > c.MaxHealth {
		c.Health = c.MaxHealth
	}

	// 3. Advance the habit.
	habit.Streak++
	habit.TotalCompletions++
	habit.Completed = true
	completedAt := now
	habit.LastCompleted = &completedAt

	// 4. Re-derive level from total XP.
	p := rules.DeriveLevel(c.TotalXP)
	c.Level = p.Level
	c.XP = p.XPInLevel
	c.XPToNextLevel = p.XPToNext
	c.MaxHealth = rules.MaxHealthForLevel(c.Level)
	leveledUp := c.Level > prevLevel

	// 5. Class by stat dominance; ascendant never reverts.
	c.Class = rules.EvaluateClass(*c)
	switched := c.Class != prevClass

	// 6. Track per-class level progress: on a switch the new class owns
	// the level, otherwise a level-up credits the class being played.
	if switched {
		s.state.ClassProgress = s.state.ClassProgress.RecordLevel(c.Class, c.Level)
	} else if leveledUp && c.Class != domain.ClassAscendant {
		s.state.ClassProgress = s.state.ClassProgress.RecordLevel(c.Class, c.Level)
	}

	// 7. Ascendant unlock is checked on every completion; the flag and
	// the class switch are idempotent and permanent.
	ascended := false
	if !s.state.ClassProgress.Ascendant.Unlocked && rules.AscendantEligible(*c, s.state.ClassProgress) {
		s.state.ClassProgress.Ascendant.Unlocked = true
		c.Class = domain.ClassAscendant
		ascended = true
	}

	// 8. Advance the account streak with the fresh completion in view.
	res := rules.EvaluateStreak(s.state.StreakData, s.state.Habits, now)
	s.state.StreakData = res.Streak
	var milestone *rules.StreakMilestone
	if res.Grew {
		if m, ok := rules.MilestoneAt(res.Streak.CurrentStreak); ok {
			milestone = &m
			c.Gold += m.Gold
			s.addFlatXP(m.XP)
		}
		if gold, xp, ok := rules.WeeklyBonus(res.Streak.CurrentStreak); ok {
			c.Gold += gold
			s.addFlatXP(xp)
			s.notify(domain.Notification{
				Type:    domain.NotifyWeeklyBonus,
				Title:   "🎉 Weekly Streak Bonus!",
				Message: fmt.Sprintf("%d days strong: +%d gold, +%d XP", res.Streak.CurrentStreak, gold, xp),
			})
		}
	}

	// 9. Achievements unlock once, with flat rewards.
	s.scanAchievements()

	// 10. Persist everything immediately: gold moved.
	s.persistNow(domain.FullPatch(s.state))
	metrics.ActionsTotal.WithLabelValues("complete").Inc()

	// 11. Notifications and journey log.
	s.notify(domain.Notification{
		Type:    domain.NotifyReward,
		Title:   "Quest complete",
		Message: fmt.Sprintf("%s: +%d XP, +%d gold", habit.Name, reward.XP, reward.Gold),
	})
	s.logCompletionEvents(*habit, prevLevel, prevStats, prevClass, switched, ascended)
	if milestone != nil {
		s.notify(domain.Notification{
			Type:    domain.NotifyStreakMilestone,
			Title:   fmt.Sprintf("%s %s!", milestone.Icon, milestone.Name),
			Message: fmt.Sprintf("%d-day streak: +%d gold, +%d XP, ×%.2f rewards from now on", milestone.Days, milestone.Gold, milestone.XP, milestone.Multiplier),
		})
		s.logEvent(domain.TimelineEvent{
			Type:        domain.EventStreakMilestone,
			Level:       c.Level,
			Description: fmt.Sprintf("%d-day streak: %s", milestone.Days, milestone.Name),
			Icon:        milestone.Icon,
		})
	}

	return CompleteResult{Reward: reward, LeveledUp: leveledUp, NewLevel: c.Level, Milestone: milestone}, nil
}

// SkipHabit applies the miss penalty for a voluntarily skipped quest.
// Reaching zero health triggers the death pipeline.
func (s *Service) SkipHabit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	habit := s.state.HabitByID(id)
	if habit == nil {
		metrics.ActionErrors.WithLabelValues("skip").Inc()
		return domain.ErrHabitNotFound
	}

	penalty := rules.MissPenaltyHP(habit.Recurring)
	if penalty == 0 {
		penalty = rules.SkipPenaltyHP
	}

	c := &s.state.Character
	c.Health -= penalty
	if c.Health < 0 {
		c.Health = 0
	}
	habit.Streak = 0
	habit.SkippedCount++

	s.notify(domain.Notification{
		Type:    domain.NotifyHPDrain,
		Title:   "⚠️ Quest skipped",
		Message: fmt.Sprintf("%s: lost %d HP (%d/%d remaining)", habit.Name, penalty, c.Health, c.MaxHealth),
	})
	s.logEvent(domain.TimelineEvent{
		Type:        domain.EventQuestSkipped,
		Level:       c.Level,
		Description: fmt.Sprintf("Skipped: %s", habit.Name),
		Icon:        "❌",
		Details:     fmt.Sprintf("Lost %d HP", penalty),
	})

	if c.Health == 0 {
		s.die()
	}

	metrics.ActionsTotal.WithLabelValues("skip").Inc()
	s.persistNow(domain.FullPatch(s.state))
	return nil
}

// die runs the death pipeline: consume protection if held, otherwise
// halve gold, dock XP, revive at 1 HP, reset the account streak and
// start the 24h recovery debuff.
func (s *Service) die() {
	c := &s.state.Character
	now := s.now()

	protectedHP := 0
	if eff, ok := rules.ActiveDeathProtection(s.state.Inventory); ok {
		rules.ConsumeDeathProtection(&s.state.Inventory)
		protectedHP = eff.ReviveHP
	}

	out := rules.ApplyDeath(c, now, protectedHP)
	if protectedHP > 0 {
		s.notify(domain.Notification{
			Type:    domain.NotifyItemUsed,
			Title:   "⚜️ Immortal Shield",
			Message: fmt.Sprintf("Death prevented! Revived with %d HP.", out.ReviveHP),
		})
		return
	}

	streakLost := s.state.StreakData.CurrentStreak
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	s.state.StreakData.CurrentStreak = 0
	s.state.StreakData.LastActiveDate = &today

	s.notify(domain.Notification{
		Type:    domain.NotifyDeath,
		Title:   "💀 YOU HAVE FALLEN",
		Message: fmt.Sprintf("Lost %d gold, %d XP, and your %d-day streak!", out.GoldLost, out.XPLost, streakLost),
		Details: "Recovery mode active for 24 hours. Rewards reduced by 50%.",
	})
	s.logEvent(domain.TimelineEvent{
		Type:        domain.EventDeath,
		Level:       c.Level,
		Description: "Defeated by neglect",
		Icon:        "💀",
		Details:     fmt.Sprintf("Lost %d gold, %d XP, streak reset", out.GoldLost, out.XPLost),
	})
}

// addFlatXP grants multiplier-exempt XP (milestones, bonuses,
// achievements) and re-derives the level.
func (s *Service) addFlatXP(xp int) {
	c := &s.state.Character
	prev := c.Level
	c.TotalXP += xp
	p := rules.DeriveLevel(c.TotalXP)
	c.Level = p.Level
	c.XP = p.XPInLevel
	c.XPToNextLevel = p.XPToNext
	c.MaxHealth = rules.MaxHealthForLevel(c.Level)
	if c.Level > prev && c.Class != domain.ClassAscendant {
		s.state.ClassProgress = s.state.ClassProgress.RecordLevel(c.Class, c.Level)
	}
}

// scanAchievements unlocks any newly satisfied achievements and pays
// their flat rewards.
func (s *Service) scanAchievements() {
	unlocked := rules.NewlyUnlocked(s.state.Character, s.state.Habits, s.state.Achievements)
	for _, a := range unlocked {
		s.state.Achievements = append(s.state.Achievements, a.ID)
		s.state.Character.Gold += a.Gold
		s.addFlatXP(a.XP)
		s.notify(domain.Notification{
			Type:    domain.NotifyAchievement,
			Title:   fmt.Sprintf("%s Achievement unlocked!", a.Icon),
			Message: fmt.Sprintf("%s — %s (+%d gold, +%d XP)", a.Name, a.Desc, a.Gold, a.XP),
		})
		s.logEvent(domain.TimelineEvent{
			Type:        domain.EventAchievement,
			Level:       s.state.Character.Level,
			Description: fmt.Sprintf("Achievement: %s", a.Name),
			Icon:        a.Icon,
			Details:     a.Desc,
		})
	}
}

// statMilestones are the per-stat thresholds worth a journey entry.
var statMilestones = [...]int{25, 50, 75, 100}

// logCompletionEvents writes the timeline entries a completion earned.
func (s *Service) logCompletionEvents(h domain.Habit, prevLevel int, prevStats domain.StatBlock, prevClass domain.Class, switched, ascended bool) {
	c := s.state.Character

	switch h.TotalCompletions {
	case 10:
		s.logEvent(domain.TimelineEvent{Type: domain.EventMilestone, Level: c.Level,
			Description: fmt.Sprintf("Completed %q 10 times!", h.Name), Icon: "🎯", Details: "Dedication unlocked"})
	case 50:
		s.logEvent(domain.TimelineEvent{Type: domain.EventMilestone, Level: c.Level,
			Description: fmt.Sprintf("Completed %q 50 times!", h.Name), Icon: "🏆", Details: "Master of consistency"})
	case 100:
		s.logEvent(domain.TimelineEvent{Type: domain.EventMilestone, Level: c.Level,
			Description: fmt.Sprintf("Completed %q 100 times!", h.Name), Icon: "👑", Details: "Legendary dedication"})
	}

	if c.Level > prevLevel {
		s.notify(domain.Notification{
			Type:    domain.NotifyLevelUp,
			Title:   "🎉 Level up!",
			Message: fmt.Sprintf("You are now a %s (level %d)", rules.LevelName(c.Level), c.Level),
		})
		s.logEvent(domain.TimelineEvent{
			Type:        domain.EventLevelUp,
			Level:       c.Level,
			Description: fmt.Sprintf("Became a %s!", rules.LevelName(c.Level)),
			Icon:        levelIcon(c.Level),
			Details:     fmt.Sprintf("Reached Level %d", c.Level),
		})
	}

	for _, st := range []domain.Stat{domain.StatStrength, domain.StatIntelligence, domain.StatAgility, domain.StatCharisma} {
		before, after := prevStats.Get(st), c.Stats.Get(st)
		for _, m := range statMilestones {
			if before < m && after >= m {
				s.logEvent(domain.TimelineEvent{
					Type:        domain.EventStatMilestone,
					Level:       c.Level,
					Description: fmt.Sprintf("%s reached %d!", st, m),
					Icon:        statIcon(st),
				})
			}
		}
	}

	if ascended {
		s.notify(domain.Notification{
			Type:    domain.NotifyAscendant,
			Title:   "✨ Ascension!",
			Message: "Mastered all three classes and perfected all stats!",
		})
		s.logEvent(domain.TimelineEvent{
			Type:        domain.EventAscendantUnlock,
			Level:       c.Level,
			Description: "Ascended to Transcendence!",
			Icon:        "✨",
			Details:     "Achieved mastery in Warrior, Wizard, and Rogue. All stats perfected.",
		})
	} else if switched {
		s.notify(domain.Notification{
			Type:    domain.NotifyClassSwitch,
			Title:   "Class switched",
			Message: fmt.Sprintf("%s → %s: stat dominance achieved!", prevClass, c.Class),
		})
		s.logEvent(domain.TimelineEvent{
			Type:        domain.EventClassSwitch,
			Level:       c.Level,
			Description: fmt.Sprintf("Class switched to %s!", c.Class),
			Icon:        "🔁",
			Details:     fmt.Sprintf("%s exceeded other stats by 10+", c.Class.PrimaryStat()),
		})
	}
}

func levelIcon(level int) string {
	switch {
	case level == rules.MaxLevel:
		return "✨"
	case level >= 5:
		return "👑"
	case level >= 3:
		return "⚔️"
	default:
		return "🌟"
	}
}

func statIcon(s domain.Stat) string {
	switch s {
	case domain.StatStrength:
		return "💪"
	case domain.StatIntelligence:
		return "🧠"
	case domain.StatAgility:
		return "⚡"
	case domain.StatCharisma:
		return "✨"
	default:
		return "📈"
	}
}
