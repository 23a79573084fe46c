package rules

// MasteryTier is a per-habit multiplier tier keyed by lifetime
// completions of that habit. Seven tiers mirror the hero rank names.
type MasteryTier struct {
	Name           string
	MinCompletions int
	MaxCompletions int // -1 for the open-ended top tier
	Multiplier     float64
}

var masteryTiers = []MasteryTier{
	{"Novice", 0, 4, 1.0},
	{"Apprentice", 5, 14, 1.2},
	{"Adventurer", 15, 29, 1.4},
	{"Champion", 30, 49, 1.6},
	{"Hero", 50, 74, 1.8},
	{"Legend", 75, 99, 2.0},
	{"Mythic Hero", 100, -1, 2.5},
}

// Mastery is the resolved tier for a completion count.
type Mastery struct {
	Tier        MasteryTier
	Completions int
	ProgressPct int // progress within the tier, 100 at the top tier
}

// MasteryFor resolves the mastery tier for a lifetime completion count.
// Total function: negative counts are treated as zero.
func MasteryFor(completions int) Mastery {
	if completions < 0 {
		completions = 0
	}
	for i := len(masteryTiers) - 1; i >= 0; i-- {
		t := masteryTiers[i]
		if completions >= t.MinCompletions {
			m := Mastery{Tier: t, Completions: completions}
			if t.MaxCompletions < 0 {
				m.ProgressPct = 100
			} else {
				span := t.MaxCompletions - t.MinCompletions + 1
				m.ProgressPct = (completions - t.MinCompletions) * 100 / span
			}
			return m
		}
	}
	return Mastery{Tier: masteryTiers[0], Completions: completions}
}

// MasteryMultiplier is a shorthand for MasteryFor(n).Tier.Multiplier.
func MasteryMultiplier(completions int) float64 {
	return MasteryFor(completions).Tier.Multiplier
}
