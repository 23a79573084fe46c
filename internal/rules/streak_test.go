package rules

import (
	"testing"
	"time"

	"github.com/questforge/questforge/internal/domain"
)

var testDay = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func completedHabit(at time.Time) domain.Habit {
	return domain.Habit{ID: "h1", Name: "run", Difficulty: domain.DifficultyEasy, LastCompleted: &at}
}

func TestEvaluateStreakFirstDay(t *testing.T) {
	res := EvaluateStreak(domain.StreakData{}, []domain.Habit{completedHabit(testDay)}, testDay)
	if res.Streak.CurrentStreak != 1 {
		t.Fatalf("streak = %d, want 1", res.Streak.CurrentStreak)
	}
	if !res.Grew || res.Broken {
		t.Errorf("grew=%v broken=%v, want grew only", res.Grew, res.Broken)
	}
	if res.Streak.TotalLoginDays != 1 {
		t.Errorf("login days = %d, want 1", res.Streak.TotalLoginDays)
	}
}

func TestEvaluateStreakSameDayIdempotent(t *testing.T) {
	first := EvaluateStreak(domain.StreakData{}, []domain.Habit{completedHabit(testDay)}, testDay)
	later := testDay.Add(5 * time.Hour)
	second := EvaluateStreak(first.Streak, []domain.Habit{completedHabit(testDay)}, later)
	if second.Changed {
		t.Fatal("same-day evaluation should not change state")
	}
	if second.Streak.CurrentStreak != 1 || second.Streak.TotalLoginDays != 1 {
		t.Errorf("state drifted: %+v", second.Streak)
	}
}

func TestEvaluateStreakConsecutiveDayIncrements(t *testing.T) {
	yesterday := testDay.AddDate(0, 0, -1)
	s := domain.StreakData{CurrentStreak: 29, LongestStreak: 29, LastActiveDate: &yesterday}
	res := EvaluateStreak(s, []domain.Habit{completedHabit(testDay)}, testDay)
	if res.Streak.CurrentStreak != 30 {
		t.Fatalf("streak = %d, want 30", res.Streak.CurrentStreak)
	}
	if res.Streak.LongestStreak != 30 {
		t.Errorf("longest = %d, want 30", res.Streak.LongestStreak)
	}
	m, ok := MilestoneAt(res.Streak.CurrentStreak)
	if !ok || m.Name != "Monthly Master" {
		t.Errorf("milestone at 30 = %+v ok=%v, want Monthly Master", m, ok)
	}
}

func TestEvaluateStreakGraceDay(t *testing.T) {
	yesterday := testDay.AddDate(0, 0, -1)
	s := domain.StreakData{CurrentStreak: 5, LongestStreak: 5, LastActiveDate: &yesterday}
	// Active today but nothing completed: streak neither grows nor breaks.
	res := EvaluateStreak(s, nil, testDay)
	if res.Streak.CurrentStreak != 5 {
		t.Fatalf("streak = %d, want 5", res.Streak.CurrentStreak)
	}
	if res.Grew || res.Broken {
		t.Errorf("grew=%v broken=%v, want neither", res.Grew, res.Broken)
	}
}

func TestEvaluateStreakBreaksAfterFullMissedDay(t *testing.T) {
	twoDaysAgo := testDay.AddDate(0, 0, -2)
	s := domain.StreakData{CurrentStreak: 10, LongestStreak: 10, LastActiveDate: &twoDaysAgo}
	res := EvaluateStreak(s, nil, testDay)
	if !res.Broken {
		t.Fatal("expected broken streak")
	}
	if res.Streak.CurrentStreak != 0 {
		t.Errorf("streak = %d, want 0", res.Streak.CurrentStreak)
	}
	if res.Streak.LongestStreak != 10 {
		t.Errorf("longest = %d, want 10 preserved", res.Streak.LongestStreak)
	}
}

func TestEvaluateStreakFreezeProtects(t *testing.T) {
	twoDaysAgo := testDay.AddDate(0, 0, -2)
	until := testDay.Add(12 * time.Hour)
	s := domain.StreakData{
		CurrentStreak: 10, LongestStreak: 10, LastActiveDate: &twoDaysAgo,
		FreezeActive: true, FreezeUntil: &until,
	}
	res := EvaluateStreak(s, nil, testDay)
	if res.Broken {
		t.Fatal("freeze should protect the streak")
	}
	if res.Streak.CurrentStreak != 10 {
		t.Errorf("streak = %d, want 10", res.Streak.CurrentStreak)
	}
}

func TestEvaluateStreakExpiredFreezeDoesNotProtect(t *testing.T) {
	threeDaysAgo := testDay.AddDate(0, 0, -3)
	until := testDay.AddDate(0, 0, -2)
	s := domain.StreakData{
		CurrentStreak: 4, LongestStreak: 4, LastActiveDate: &threeDaysAgo,
		FreezeActive: true, FreezeUntil: &until,
	}
	res := EvaluateStreak(s, nil, testDay)
	if !res.Broken {
		t.Fatal("expired freeze must not protect")
	}
	if res.Streak.FreezeActive {
		t.Error("freeze flag should clear on break")
	}
}

func TestStreakMultiplier(t *testing.T) {
	cases := []struct {
		days int
		want float64
	}{
		{0, 1.0},
		{2, 1.0},
		{3, 1.1},
		{7, 1.15},
		{29, 1.2},
		{30, 1.3},
		{365, 3.0},
		{400, 3.0},
	}
	for _, c := range cases {
		if got := StreakMultiplier(c.days); got != c.want {
			t.Errorf("StreakMultiplier(%d) = %v, want %v", c.days, got, c.want)
		}
	}
}

func TestWeeklyBonus(t *testing.T) {
	if _, _, ok := WeeklyBonus(0); ok {
		t.Error("day 0 should carry no weekly bonus")
	}
	if _, _, ok := WeeklyBonus(6); ok {
		t.Error("day 6 should carry no weekly bonus")
	}
	gold, xp, ok := WeeklyBonus(14)
	if !ok || gold != WeeklyBonusGold || xp != WeeklyBonusXP {
		t.Errorf("WeeklyBonus(14) = %d/%d/%v, want %d/%d/true", gold, xp, ok, WeeklyBonusGold, WeeklyBonusXP)
	}
}

func TestRecoveryOffer(t *testing.T) {
	lastActive := testDay.Add(-6 * time.Hour)
	s := domain.StreakData{LongestStreak: 12, LastActiveDate: &lastActive}
	offer, ok := RecoveryOfferFor(s, testDay)
	if !ok {
		t.Fatal("expected a recovery offer")
	}
	if offer.Cost != 120 {
		t.Errorf("cost = %d, want 120", offer.Cost)
	}
	if offer.StreakToRecover != 12 {
		t.Errorf("restores = %d, want 12", offer.StreakToRecover)
	}

	// Cost caps at 500.
	s.LongestStreak = 80
	offer, _ = RecoveryOfferFor(s, testDay)
	if offer.Cost != 500 {
		t.Errorf("capped cost = %d, want 500", offer.Cost)
	}

	// Short streaks do not qualify.
	s.LongestStreak = 2
	if _, ok := RecoveryOfferFor(s, testDay); ok {
		t.Error("streak below 3 must not qualify")
	}

	// The window closes after 24 hours.
	old := testDay.Add(-25 * time.Hour)
	s = domain.StreakData{LongestStreak: 12, LastActiveDate: &old}
	if _, ok := RecoveryOfferFor(s, testDay); ok {
		t.Error("offer should expire after 24h")
	}
}

func TestApplyFreezeCoversTomorrow(t *testing.T) {
	s := ApplyFreeze(domain.StreakData{}, testDay)
	if !s.FreezeActive || s.FreezeUntil == nil {
		t.Fatal("freeze not activated")
	}
	endOfTomorrow := time.Date(2026, 3, 11, 23, 59, 59, 0, time.UTC)
	if !s.FreezeUntil.Equal(endOfTomorrow) {
		t.Errorf("freeze until %v, want %v", s.FreezeUntil, endOfTomorrow)
	}
	if s.StreakFreezes != 1 {
		t.Errorf("freezes used = %d, want 1", s.StreakFreezes)
	}
}
