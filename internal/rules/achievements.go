package rules

import "github.com/questforge/questforge/internal/domain"

// AchievementCategory groups achievements for display.
type AchievementCategory string

const (
	CategoryStats      AchievementCategory = "stats"
	CategoryMilestones AchievementCategory = "milestones"
	CategoryHidden     AchievementCategory = "hidden"
)

// Achievement is a one-time unlock with a flat gold/XP reward. Hidden
// achievements show only a hint until unlocked. Predicates read the
// current state and must be monotone: once true they stay true for the
// same state, so unlocks are decided solely by the unlocked-id list.
type Achievement struct {
	ID       string
	Name     string
	Desc     string
	Hint     string
	Icon     string
	Category AchievementCategory
	Hidden   bool
	Gold     int
	XP       int
	Unlocked func(c domain.Character, habits []domain.Habit) bool
}

func statAtLeast(s domain.Stat, n int) func(domain.Character, []domain.Habit) bool {
	return func(c domain.Character, _ []domain.Habit) bool {
		return c.Stats.Get(s) >= n
	}
}

func totalStatsAtLeast(n int) func(domain.Character, []domain.Habit) bool {
	return func(c domain.Character, _ []domain.Habit) bool {
		return c.Stats.Total() >= n
	}
}

var achievementCatalog = []Achievement{
	// Stat milestones
	{ID: "strength_25", Name: "Strength Builder", Desc: "Reach 25 Strength", Icon: "💪",
		Category: CategoryStats, Gold: 50, XP: 100, Unlocked: statAtLeast(domain.StatStrength, 25)},
	{ID: "strength_50", Name: "Mighty Warrior", Desc: "Reach 50 Strength", Icon: "⚔️",
		Category: CategoryStats, Gold: 100, XP: 200, Unlocked: statAtLeast(domain.StatStrength, 50)},
	{ID: "intelligence_25", Name: "Scholar", Desc: "Reach 25 Intelligence", Icon: "🧠",
		Category: CategoryStats, Gold: 50, XP: 100, Unlocked: statAtLeast(domain.StatIntelligence, 25)},
	{ID: "intelligence_50", Name: "Archmage", Desc: "Reach 50 Intelligence", Icon: "🔮",
		Category: CategoryStats, Gold: 100, XP: 200, Unlocked: statAtLeast(domain.StatIntelligence, 50)},
	{ID: "agility_25", Name: "Swift", Desc: "Reach 25 Agility", Icon: "⚡",
		Category: CategoryStats, Gold: 50, XP: 100, Unlocked: statAtLeast(domain.StatAgility, 25)},
	{ID: "agility_50", Name: "Master Rogue", Desc: "Reach 50 Agility", Icon: "🗡️",
		Category: CategoryStats, Gold: 100, XP: 200, Unlocked: statAtLeast(domain.StatAgility, 50)},
	{ID: "charisma_25", Name: "Charismatic", Desc: "Reach 25 Charisma", Icon: "✨",
		Category: CategoryStats, Gold: 50, XP: 100, Unlocked: statAtLeast(domain.StatCharisma, 25)},
	{ID: "charisma_50", Name: "Legendary Diplomat", Desc: "Reach 50 Charisma", Icon: "👑",
		Category: CategoryStats, Gold: 100, XP: 200, Unlocked: statAtLeast(domain.StatCharisma, 50)},
	{ID: "balanced_hero", Name: "Balanced Hero", Desc: "Reach 50 in all stats", Icon: "⚖️",
		Category: CategoryStats, Gold: 500, XP: 1000,
		Unlocked: func(c domain.Character, _ []domain.Habit) bool {
			b := c.Stats
			return b.Strength >= 50 && b.Intelligence >= 50 && b.Agility >= 50 && b.Charisma >= 50
		}},

	// Hero rank milestones (total stats)
	{ID: "rank_novice", Name: "Novice", Desc: "Reach 40 total stats", Icon: "🌱",
		Category: CategoryMilestones, Gold: 50, XP: 100, Unlocked: totalStatsAtLeast(40)},
	{ID: "rank_apprentice", Name: "Apprentice", Desc: "Reach 101 total stats", Icon: "⚔️",
		Category: CategoryMilestones, Gold: 100, XP: 200, Unlocked: totalStatsAtLeast(101)},
	{ID: "rank_adventurer", Name: "Adventurer", Desc: "Reach 201 total stats", Icon: "🗡️",
		Category: CategoryMilestones, Gold: 200, XP: 400, Unlocked: totalStatsAtLeast(201)},
	{ID: "rank_champion", Name: "Champion", Desc: "Reach 351 total stats", Icon: "🛡️",
		Category: CategoryMilestones, Gold: 300, XP: 600, Unlocked: totalStatsAtLeast(351)},
	{ID: "rank_hero", Name: "Hero", Desc: "Reach 501 total stats", Icon: "👑",
		Category: CategoryMilestones, Gold: 400, XP: 800, Unlocked: totalStatsAtLeast(501)},
	{ID: "rank_legend", Name: "Legend", Desc: "Reach 751 total stats", Icon: "⭐",
		Category: CategoryMilestones, Gold: 500, XP: 1000, Unlocked: totalStatsAtLeast(751)},
	{ID: "rank_mythic", Name: "Mythic Hero", Desc: "Reach 1001 total stats", Icon: "✨",
		Category: CategoryMilestones, Gold: 1000, XP: 2000, Unlocked: totalStatsAtLeast(1001)},

	// Hidden achievements
	{ID: "perfectionist", Name: "Perfectionist", Desc: "Complete 10 hard difficulty quests",
		Hint: "Master the most challenging quests", Icon: "💎",
		Category: CategoryHidden, Hidden: true, Gold: 200, XP: 300,
		Unlocked: func(_ domain.Character, habits []domain.Habit) bool {
			n := 0
			for _, h := range habits {
				if h.Difficulty == domain.DifficultyHard {
					n += h.TotalCompletions
				}
			}
			return n >= 10
		}},
	{ID: "jack_of_all", Name: "Jack of All Trades", Desc: "Have at least one habit in each category",
		Hint: "Explore all paths of growth", Icon: "🎭",
		Category: CategoryHidden, Hidden: true, Gold: 150, XP: 250,
		Unlocked: func(_ domain.Character, habits []domain.Habit) bool {
			seen := map[domain.Stat]bool{}
			for _, h := range habits {
				seen[h.Category] = true
			}
			return seen[domain.StatStrength] && seen[domain.StatIntelligence] &&
				seen[domain.StatAgility] && seen[domain.StatCharisma]
		}},
	{ID: "dedicated", Name: "Dedicated Hero", Desc: "Maintain a 30-day streak on any habit",
		Hint: "True dedication is the path to mastery", Icon: "🔥",
		Category: CategoryHidden, Hidden: true, Gold: 300, XP: 500,
		Unlocked: func(_ domain.Character, habits []domain.Habit) bool {
			for _, h := range habits {
				if h.Streak >= 30 {
					return true
				}
			}
			return false
		}},
	{ID: "master_of_one", Name: "Master of One", Desc: "Complete a single quest 50 times",
		Hint: "Complete a single quest 50 times", Icon: "🏆",
		Category: CategoryHidden, Hidden: true, Gold: 400, XP: 600,
		Unlocked: func(_ domain.Character, habits []domain.Habit) bool {
			for _, h := range habits {
				if h.TotalCompletions >= 50 {
					return true
				}
			}
			return false
		}},
	{ID: "gold_hoarder", Name: "Gold Hoarder", Desc: "Accumulate 1000 gold",
		Hint: "Wealth beyond measure", Icon: "💰",
		Category: CategoryHidden, Hidden: true, Gold: 500, XP: 500,
		Unlocked: func(c domain.Character, _ []domain.Habit) bool { return c.Gold >= 1000 }},
	{ID: "level_master", Name: "Level Master", Desc: "Reach the level cap",
		Hint: "The journey of a thousand quests", Icon: "⭐",
		Category: CategoryHidden, Hidden: true, Gold: 300, XP: 800,
		Unlocked: func(c domain.Character, _ []domain.Habit) bool { return c.Level >= MaxLevel }},
	{ID: "survivor", Name: "Survivor", Desc: "Survive with 5 health or less",
		Hint: "Live dangerously", Icon: "❤️‍🔥",
		Category: CategoryHidden, Hidden: true, Gold: 100, XP: 150,
		Unlocked: func(c domain.Character, _ []domain.Habit) bool {
			return c.Health > 0 && c.Health <= 5
		}},
	{ID: "early_bird", Name: "Early Bird", Desc: "Create your first habit",
		Hint: "Every journey begins with a single step", Icon: "🐦",
		Category: CategoryHidden, Hidden: true, Gold: 25, XP: 50,
		Unlocked: func(_ domain.Character, habits []domain.Habit) bool { return len(habits) >= 1 }},
	{ID: "quest_collector", Name: "Quest Collector", Desc: "Have 10 active habits",
		Hint: "Variety is the spice of life", Icon: "📚",
		Category: CategoryHidden, Hidden: true, Gold: 200, XP: 300,
		Unlocked: func(_ domain.Character, habits []domain.Habit) bool { return len(habits) >= 10 }},
	{ID: "centurion", Name: "Centurion", Desc: "Complete 100 total quests",
		Hint: "A hundred victories", Icon: "💯",
		Category: CategoryHidden, Hidden: true, Gold: 500, XP: 1000,
		Unlocked: func(_ domain.Character, habits []domain.Habit) bool {
			n := 0
			for _, h := range habits {
				n += h.TotalCompletions
			}
			return n >= 100
		}},
}

// Achievements returns the full catalog in display order.
func Achievements() []Achievement {
	return achievementCatalog
}

// AchievementByID looks up a catalog entry.
func AchievementByID(id string) (Achievement, bool) {
	for _, a := range achievementCatalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// NewlyUnlocked returns catalog entries whose predicate holds and whose
// id is not yet in the unlocked list. Rewards for the returned entries
// are flat grants, exempt from every multiplier.
func NewlyUnlocked(c domain.Character, habits []domain.Habit, unlocked []string) []Achievement {
	have := make(map[string]bool, len(unlocked))
	for _, id := range unlocked {
		have[id] = true
	}
	var out []Achievement
	for _, a := range achievementCatalog {
		if have[a.ID] {
			continue
		}
		if a.Unlocked(c, habits) {
			out = append(out, a)
		}
	}
	return out
}

// AchievementProgress reports unlocked/total counts for display.
func AchievementProgress(unlocked []string) (n, total int) {
	have := make(map[string]bool, len(unlocked))
	for _, id := range unlocked {
		have[id] = true
	}
	for _, a := range achievementCatalog {
		if have[a.ID] {
			n++
		}
	}
	return n, len(achievementCatalog)
}
