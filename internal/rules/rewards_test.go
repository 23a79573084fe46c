package rules

import (
	"testing"
	"time"

	"github.com/questforge/questforge/internal/domain"
)

func TestComputeRewardNoMultipliers(t *testing.T) {
	h := domain.Habit{Difficulty: domain.DifficultyEasy, Category: domain.StatStrength}
	f := RewardFactors{Mastery: 1, Guild: 1, Streak: 1, Recovery: 1, ShopXP: 1, ShopGold: 1}
	r := ComputeReward(h, f, domain.ClassWarrior)
	if r.XP != 10 || r.Gold != 5 {
		t.Errorf("reward = %d xp / %d gold, want 10/5", r.XP, r.Gold)
	}
	if r.Stat != domain.StatStrength || r.StatGain != 1 {
		t.Errorf("stat gain = %s +%d, want strength +1", r.Stat, r.StatGain)
	}
}

func TestComputeRewardGuildAppliesToXPOnly(t *testing.T) {
	h := domain.Habit{Difficulty: domain.DifficultyMedium, Category: domain.StatIntelligence}
	f := RewardFactors{Mastery: 1, Guild: 1.2, Streak: 1, Recovery: 1, ShopXP: 1, ShopGold: 1}
	r := ComputeReward(h, f, domain.ClassWizard)
	if r.XP != 30 { // 25 * 1.2
		t.Errorf("xp = %d, want 30", r.XP)
	}
	if r.Gold != 10 { // guild multiplier must not touch gold
		t.Errorf("gold = %d, want 10", r.Gold)
	}
}

func TestComputeRewardTruncates(t *testing.T) {
	h := domain.Habit{Difficulty: domain.DifficultyEasy, Category: domain.StatAgility}
	f := RewardFactors{Mastery: 1.2, Guild: 1, Streak: 1.1, Recovery: 1, ShopXP: 1, ShopGold: 1}
	r := ComputeReward(h, f, domain.ClassRogue)
	if r.XP != 13 { // 10*1.2*1.1 = 13.2
		t.Errorf("xp = %d, want 13", r.XP)
	}
	if r.Gold != 6 { // 5*1.2*1.1 = 6.6
		t.Errorf("gold = %d, want 6", r.Gold)
	}
}

func TestComputeRewardCategoryFallback(t *testing.T) {
	h := domain.Habit{Difficulty: domain.DifficultyEasy} // legacy habit, no category
	f := RewardFactors{Mastery: 1, Guild: 1, Streak: 1, Recovery: 1, ShopXP: 1, ShopGold: 1}
	if r := ComputeReward(h, f, domain.ClassWizard); r.Stat != domain.StatIntelligence {
		t.Errorf("fallback stat = %s, want intelligence", r.Stat)
	}
}

func TestFactorsForRecoveryDebuff(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	end := now.Add(10 * time.Hour)
	s := domain.NewUserState("hero")
	s.Character.RecoveryModeEndTime = &end
	h := domain.Habit{Difficulty: domain.DifficultyHard, Category: domain.StatStrength}

	f := FactorsFor(s, h, 1.0, now)
	if f.Recovery != RecoveryModeModifier {
		t.Errorf("recovery factor = %v, want %v", f.Recovery, RecoveryModeModifier)
	}
	after := FactorsFor(s, h, 1.0, end.Add(time.Minute))
	if after.Recovery != 1.0 {
		t.Errorf("recovery factor after window = %v, want 1.0", after.Recovery)
	}
}

func TestApplyDeath(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	c := domain.NewCharacter("hero")
	c.Gold = 100
	c.TotalXP = 150
	c.XP = 50
	c.Level = 2
	c.Health = 0

	out := ApplyDeath(&c, now, 0)
	if out.GoldLost != 50 || c.Gold != 50 {
		t.Errorf("gold lost = %d left = %d, want 50/50", out.GoldLost, c.Gold)
	}
	if c.TotalXP != 140 || c.XP != 40 {
		t.Errorf("xp = %d/%d total, want 40/140", c.XP, c.TotalXP)
	}
	if c.Level != 2 {
		t.Errorf("level = %d, death must never demote", c.Level)
	}
	if c.Health != 1 {
		t.Errorf("health = %d, want 1", c.Health)
	}
	if c.DeathCount != 1 {
		t.Errorf("death count = %d, want 1", c.DeathCount)
	}
	if c.RecoveryModeEndTime == nil || !c.RecoveryModeEndTime.Equal(now.Add(24*time.Hour)) {
		t.Errorf("recovery end = %v, want now+24h", c.RecoveryModeEndTime)
	}
}

func TestApplyDeathXPFloorsAtZero(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	c := domain.NewCharacter("hero")
	c.TotalXP = 4
	c.XP = 4
	out := ApplyDeath(&c, now, 0)
	if c.TotalXP != 0 || c.XP != 0 {
		t.Errorf("xp = %d/%d total, want 0/0", c.XP, c.TotalXP)
	}
	if out.XPLost != 4 {
		t.Errorf("xp lost = %d, want 4", out.XPLost)
	}
}

func TestApplyDeathWithProtection(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	c := domain.NewCharacter("hero")
	c.Gold = 400
	c.TotalXP = 500
	c.Health = 0

	out := ApplyDeath(&c, now, 50)
	if c.Gold != 400 || c.TotalXP != 500 {
		t.Errorf("protected death must not cost gold or xp: %d gold, %d xp", c.Gold, c.TotalXP)
	}
	if c.Health != 50 || out.ReviveHP != 50 {
		t.Errorf("health = %d revive = %d, want 50/50", c.Health, out.ReviveHP)
	}
	if c.DeathCount != 0 {
		t.Errorf("death count = %d, want 0", c.DeathCount)
	}
	if c.RecoveryModeEndTime != nil {
		t.Error("protected death must not start recovery mode")
	}
}

func TestMissPenaltyHP(t *testing.T) {
	cases := []struct {
		r    domain.Recurrence
		want int
	}{
		{domain.RecurrenceDaily, 15},
		{domain.RecurrenceWeekly, 25},
		{domain.RecurrenceMonthly, 50},
		{domain.RecurrencePermanent, 0},
	}
	for _, c := range cases {
		if got := MissPenaltyHP(c.r); got != c.want {
			t.Errorf("MissPenaltyHP(%s) = %d, want %d", c.r, got, c.want)
		}
	}
}

func TestDominantClass(t *testing.T) {
	cases := []struct {
		name string
		b    domain.StatBlock
		want domain.Class
		ok   bool
	}{
		{"warrior", domain.StatBlock{Strength: 30, Intelligence: 15, Agility: 10, Charisma: 10}, domain.ClassWarrior, true},
		{"wizard", domain.StatBlock{Strength: 10, Intelligence: 25, Agility: 15, Charisma: 10}, domain.ClassWizard, true},
		{"rogue", domain.StatBlock{Strength: 12, Intelligence: 10, Agility: 22, Charisma: 10}, domain.ClassRogue, true},
		{"margin not met", domain.StatBlock{Strength: 19, Intelligence: 10, Agility: 10, Charisma: 10}, "", false},
		{"charisma never dominates", domain.StatBlock{Strength: 10, Intelligence: 10, Agility: 10, Charisma: 99}, "", false},
	}
	for _, c := range cases {
		got, ok := DominantClass(c.b)
		if got != c.want || ok != c.ok {
			t.Errorf("%s: DominantClass = %s/%v, want %s/%v", c.name, got, ok, c.want, c.ok)
		}
	}
}

func TestEvaluateClassAscendantSticky(t *testing.T) {
	c := domain.NewCharacter("hero")
	c.Class = domain.ClassAscendant
	c.Stats = domain.StatBlock{Strength: 200, Intelligence: 10, Agility: 10, Charisma: 10}
	if got := EvaluateClass(c); got != domain.ClassAscendant {
		t.Errorf("class = %s, want ascendant to stick", got)
	}
}

func TestAscendantEligible(t *testing.T) {
	c := domain.NewCharacter("hero")
	c.Stats = domain.StatBlock{Strength: 100, Intelligence: 100, Agility: 100, Charisma: 100}
	p := domain.ClassProgress{
		Warrior: domain.ClassLevel{MaxLevel: 7},
		Wizard:  domain.ClassLevel{MaxLevel: 7},
		Rogue:   domain.ClassLevel{MaxLevel: 7},
	}
	if !AscendantEligible(c, p) {
		t.Fatal("expected eligible")
	}
	p.Rogue.MaxLevel = 6
	if AscendantEligible(c, p) {
		t.Error("missing class level must block")
	}
	p.Rogue.MaxLevel = 7
	c.Stats.Charisma = 99
	if AscendantEligible(c, p) {
		t.Error("stat below 100 must block")
	}
}

func TestNewlyUnlockedOnce(t *testing.T) {
	c := domain.NewCharacter("hero")
	c.Stats.Strength = 25
	habits := []domain.Habit{{ID: "h1", Name: "run"}}

	first := NewlyUnlocked(c, habits, nil)
	ids := map[string]bool{}
	for _, a := range first {
		ids[a.ID] = true
	}
	if !ids["strength_25"] || !ids["early_bird"] {
		t.Fatalf("expected strength_25 and early_bird, got %v", ids)
	}

	unlocked := make([]string, 0, len(first))
	for _, a := range first {
		unlocked = append(unlocked, a.ID)
	}
	if again := NewlyUnlocked(c, habits, unlocked); len(again) != 0 {
		t.Errorf("second pass unlocked %d achievements, want 0", len(again))
	}
}
