// Package domain holds the QuestForge entity types.
// The progression engine mutates these through the pure rules in
// internal/rules; everything here is plain data plus small derivations.
package domain

import "time"

// ─── Classes ────────────────────────────────────────────────────────────────

// Class is the character's hero class. Warrior, wizard and rogue are
// assigned by stat dominance; ascendant is terminal and sticky.
type Class string

const (
	ClassWarrior   Class = "warrior"
	ClassWizard    Class = "wizard"
	ClassRogue     Class = "rogue"
	ClassAscendant Class = "ascendant"
)

// IsValid reports whether c is one of the four known classes.
func (c Class) IsValid() bool {
	switch c {
	case ClassWarrior, ClassWizard, ClassRogue, ClassAscendant:
		return true
	default:
		return false
	}
}

// PrimaryStat returns the stat a class trains when a habit carries no
// category (legacy habits only).
func (c Class) PrimaryStat() Stat {
	switch c {
	case ClassWarrior:
		return StatStrength
	case ClassWizard:
		return StatIntelligence
	case ClassRogue:
		return StatAgility
	default:
		return StatStrength
	}
}

// ─── Stats ──────────────────────────────────────────────────────────────────

// Stat names one of the four trainable attributes.
type Stat string

const (
	StatStrength     Stat = "strength"
	StatIntelligence Stat = "intelligence"
	StatAgility      Stat = "agility"
	StatCharisma     Stat = "charisma"
)

// IsValid reports whether s is a known stat.
func (s Stat) IsValid() bool {
	switch s {
	case StatStrength, StatIntelligence, StatAgility, StatCharisma:
		return true
	default:
		return false
	}
}

// StatBlock holds the four attribute scores.
type StatBlock struct {
	Strength     int `json:"strength"`
	Intelligence int `json:"intelligence"`
	Agility      int `json:"agility"`
	Charisma     int `json:"charisma"`
}

// Get returns the score for a named stat.
func (b StatBlock) Get(s Stat) int {
	switch s {
	case StatStrength:
		return b.Strength
	case StatIntelligence:
		return b.Intelligence
	case StatAgility:
		return b.Agility
	case StatCharisma:
		return b.Charisma
	default:
		return 0
	}
}

// Add increases a named stat by delta and returns the updated block.
func (b StatBlock) Add(s Stat, delta int) StatBlock {
	switch s {
	case StatStrength:
		b.Strength += delta
	case StatIntelligence:
		b.Intelligence += delta
	case StatAgility:
		b.Agility += delta
	case StatCharisma:
		b.Charisma += delta
	}
	return b
}

// Total returns the sum of all four stats.
func (b StatBlock) Total() int {
	return b.Strength + b.Intelligence + b.Agility + b.Charisma
}

// ─── Character ──────────────────────────────────────────────────────────────

// Character is the player avatar. Health stays within [0, MaxHealth];
// Level is derived from TotalXP and never stored out of step with it.
type Character struct {
	Name                string     `json:"name"`
	Class               Class      `json:"class"`
	Level               int        `json:"level"`
	XP                  int        `json:"xp"` // XP accrued within the current level
	TotalXP             int        `json:"totalXp"`
	XPToNextLevel       int        `json:"xpToNextLevel"`
	Health              int        `json:"health"`
	MaxHealth           int        `json:"maxHealth"`
	Gold                int        `json:"gold"`
	Stats               StatBlock  `json:"stats"`
	RecoveryModeEndTime *time.Time `json:"recoveryModeEndTime,omitempty"`
	DeathCount          int        `json:"deathCount"`
}

// NewCharacter returns a fresh level-1 character.
func NewCharacter(name string) Character {
	return Character{
		Name:          name,
		Class:         ClassWarrior,
		Level:         1,
		XPToNextLevel: 100,
		Health:        100,
		MaxHealth:     100,
		Stats:         StatBlock{Strength: 10, Intelligence: 10, Agility: 10, Charisma: 10},
	}
}

// InRecovery reports whether the character is inside a post-death
// recovery window at the given time.
func (c Character) InRecovery(now time.Time) bool {
	return c.RecoveryModeEndTime != nil && now.Before(*c.RecoveryModeEndTime)
}
