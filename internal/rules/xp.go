// Package rules holds the pure reward and progression formulas.
// Every function here is total and side-effect free; the engine in
// internal/app/engine composes them into state transitions.
package rules

import "github.com/questforge/questforge/internal/domain"

// MaxLevel caps the hero level table.
const MaxLevel = 7

// levelTier is one row of the fixed 7-tier XP table.
type levelTier struct {
	Level      int
	Name       string
	XPRequired int // cumulative XP threshold
}

// heroLevels is the fixed progression curve. Levels are derived from
// total XP by scanning this table; there is no level 8.
var heroLevels = []levelTier{
	{1, "Novice", 0},
	{2, "Apprentice", 100},
	{3, "Adventurer", 300},
	{4, "Champion", 600},
	{5, "Hero", 1000},
	{6, "Legend", 1500},
	{7, "Mythic Hero", 2200},
}

// XPRequiredForLevel returns the cumulative XP threshold for a level.
// Levels below 1 cost nothing; levels past the cap cost the cap amount.
func XPRequiredForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return heroLevels[level-1].XPRequired
}

// LevelForTotalXP returns the highest level whose threshold is <= totalXP,
// capped at MaxLevel.
func LevelForTotalXP(totalXP int) int {
	for i := len(heroLevels) - 1; i >= 0; i-- {
		if totalXP >= heroLevels[i].XPRequired {
			return heroLevels[i].Level
		}
	}
	return 1
}

// LevelName returns the rank title for a level.
func LevelName(level int) string {
	if level < 1 {
		level = 1
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return heroLevels[level-1].Name
}

// MaxHealthForLevel returns the health cap at a level.
func MaxHealthForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return 100 + 10*(level-1)
}

// LevelProgress is the (level, xpInLevel, xpToNext) triple derived from
// a total-XP value. Deriving twice from the same total is idempotent.
type LevelProgress struct {
	Level     int
	XPInLevel int
	XPToNext  int // 0 at max level
}

// DeriveLevel recomputes the level triple from total XP.
func DeriveLevel(totalXP int) LevelProgress {
	if totalXP < 0 {
		totalXP = 0
	}
	level := LevelForTotalXP(totalXP)
	p := LevelProgress{
		Level:     level,
		XPInLevel: totalXP - XPRequiredForLevel(level),
	}
	if level < MaxLevel {
		p.XPToNext = XPRequiredForLevel(level+1) - XPRequiredForLevel(level)
	}
	return p
}

// BaseXP returns the base XP reward for a difficulty.
func BaseXP(d domain.Difficulty) int {
	switch d {
	case domain.DifficultyEasy:
		return 10
	case domain.DifficultyMedium:
		return 25
	case domain.DifficultyHard:
		return 50
	default:
		return 0
	}
}

// BaseGold returns the base gold reward for a difficulty.
func BaseGold(d domain.Difficulty) int {
	switch d {
	case domain.DifficultyEasy:
		return 5
	case domain.DifficultyMedium:
		return 10
	case domain.DifficultyHard:
		return 20
	default:
		return 0
	}
}

// StatGain returns the stat increase for a difficulty.
func StatGain(d domain.Difficulty) int {
	switch d {
	case domain.DifficultyEasy:
		return 1
	case domain.DifficultyMedium:
		return 2
	case domain.DifficultyHard:
		return 3
	default:
		return 0
	}
}
