package rules

import "github.com/questforge/questforge/internal/domain"

// Class switching by stat dominance: a stat must exceed both others by
// at least this margin before the class flips. Charisma never drives
// class identity.
const dominanceMargin = 10

// Ascendant unlock gates.
const (
	ascendantStatFloor  = 100
	ascendantClassLevel = MaxLevel
)

// DominantClass returns the class a stat block implies, or ok=false
// when no stat dominates and the current class stands.
func DominantClass(b domain.StatBlock) (domain.Class, bool) {
	str, intl, agi := b.Strength, b.Intelligence, b.Agility
	switch {
	case str >= intl+dominanceMargin && str >= agi+dominanceMargin:
		return domain.ClassWarrior, true
	case intl >= str+dominanceMargin && intl >= agi+dominanceMargin:
		return domain.ClassWizard, true
	case agi >= str+dominanceMargin && agi >= intl+dominanceMargin:
		return domain.ClassRogue, true
	}
	return "", false
}

// EvaluateClass returns the class the character should hold after a
// stat change. Ascendant is sticky; dominance only moves between the
// three base classes.
func EvaluateClass(c domain.Character) domain.Class {
	if c.Class == domain.ClassAscendant {
		return domain.ClassAscendant
	}
	if dominant, ok := DominantClass(c.Stats); ok {
		return dominant
	}
	return c.Class
}

// AscendantEligible reports whether the unlock conditions hold: level 7
// reached in all three base classes and every stat at or above 100.
func AscendantEligible(c domain.Character, p domain.ClassProgress) bool {
	if p.MaxLevelFor(domain.ClassWarrior) < ascendantClassLevel ||
		p.MaxLevelFor(domain.ClassWizard) < ascendantClassLevel ||
		p.MaxLevelFor(domain.ClassRogue) < ascendantClassLevel {
		return false
	}
	b := c.Stats
	return b.Strength >= ascendantStatFloor &&
		b.Intelligence >= ascendantStatFloor &&
		b.Agility >= ascendantStatFloor &&
		b.Charisma >= ascendantStatFloor
}
