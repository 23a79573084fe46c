package rules

import (
	"testing"

	"github.com/questforge/questforge/internal/domain"
)

func TestLevelForTotalXP(t *testing.T) {
	cases := []struct {
		totalXP int
		want    int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{299, 2},
		{300, 3},
		{600, 4},
		{1000, 5},
		{1500, 6},
		{2199, 6},
		{2200, 7},
		{999999, 7}, // hard cap, no level 8
	}
	for _, c := range cases {
		if got := LevelForTotalXP(c.totalXP); got != c.want {
			t.Errorf("LevelForTotalXP(%d) = %d, want %d", c.totalXP, got, c.want)
		}
	}
}

func TestDeriveLevelIdempotent(t *testing.T) {
	for _, totalXP := range []int{0, 50, 100, 250, 2200, 5000} {
		first := DeriveLevel(totalXP)
		second := DeriveLevel(totalXP)
		if first != second {
			t.Errorf("DeriveLevel(%d) not stable: %+v then %+v", totalXP, first, second)
		}
	}
}

func TestDeriveLevelProgress(t *testing.T) {
	p := DeriveLevel(150)
	if p.Level != 2 {
		t.Fatalf("level = %d, want 2", p.Level)
	}
	if p.XPInLevel != 50 {
		t.Errorf("xp in level = %d, want 50", p.XPInLevel)
	}
	if p.XPToNext != 200 {
		t.Errorf("xp to next = %d, want 200", p.XPToNext)
	}

	top := DeriveLevel(3000)
	if top.Level != MaxLevel {
		t.Fatalf("level = %d, want %d", top.Level, MaxLevel)
	}
	if top.XPToNext != 0 {
		t.Errorf("xp to next at cap = %d, want 0", top.XPToNext)
	}
}

func TestMaxHealthForLevel(t *testing.T) {
	cases := []struct{ level, want int }{
		{1, 100},
		{2, 110},
		{7, 160},
	}
	for _, c := range cases {
		if got := MaxHealthForLevel(c.level); got != c.want {
			t.Errorf("MaxHealthForLevel(%d) = %d, want %d", c.level, got, c.want)
		}
	}
}

func TestDifficultyBaseAmounts(t *testing.T) {
	cases := []struct {
		d    domain.Difficulty
		xp   int
		gold int
		stat int
	}{
		{domain.DifficultyEasy, 10, 5, 1},
		{domain.DifficultyMedium, 25, 10, 2},
		{domain.DifficultyHard, 50, 20, 3},
	}
	for _, c := range cases {
		if got := BaseXP(c.d); got != c.xp {
			t.Errorf("BaseXP(%s) = %d, want %d", c.d, got, c.xp)
		}
		if got := BaseGold(c.d); got != c.gold {
			t.Errorf("BaseGold(%s) = %d, want %d", c.d, got, c.gold)
		}
		if got := StatGain(c.d); got != c.stat {
			t.Errorf("StatGain(%s) = %d, want %d", c.d, got, c.stat)
		}
	}
}

func TestMasteryFor(t *testing.T) {
	cases := []struct {
		completions int
		tier        string
		mult        float64
	}{
		{0, "Novice", 1.0},
		{4, "Novice", 1.0},
		{5, "Apprentice", 1.2},
		{15, "Adventurer", 1.4},
		{30, "Champion", 1.6},
		{50, "Hero", 1.8},
		{75, "Legend", 2.0},
		{100, "Mythic Hero", 2.5},
		{9999, "Mythic Hero", 2.5},
		{-3, "Novice", 1.0},
	}
	for _, c := range cases {
		m := MasteryFor(c.completions)
		if m.Tier.Name != c.tier {
			t.Errorf("MasteryFor(%d).Tier = %s, want %s", c.completions, m.Tier.Name, c.tier)
		}
		if m.Tier.Multiplier != c.mult {
			t.Errorf("MasteryFor(%d).Multiplier = %v, want %v", c.completions, m.Tier.Multiplier, c.mult)
		}
	}
}

func TestHeroRankFor(t *testing.T) {
	cases := []struct {
		total int
		want  string
	}{
		{40, "Novice"},
		{100, "Novice"},
		{101, "Apprentice"},
		{351, "Champion"},
		{1001, "Mythic Hero"},
	}
	for _, c := range cases {
		b := domain.StatBlock{Strength: c.total}
		if got := HeroRankFor(b).Rank.Name; got != c.want {
			t.Errorf("HeroRankFor(total=%d) = %s, want %s", c.total, got, c.want)
		}
	}
	// Top rank caps progress, below-floor totals fall back to the base rank.
	if p := HeroRankFor(domain.StatBlock{Strength: 2000}); p.ProgressPct != 100 || p.Next != nil {
		t.Errorf("top rank progress = %d next = %v, want 100/nil", p.ProgressPct, p.Next)
	}
}
