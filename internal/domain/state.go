package domain

import "time"

// ClassLevel records the highest level reached while playing a base class.
type ClassLevel struct {
	MaxLevel int `json:"maxLevel"`
}

// AscendantProgress records the permanent ascendant unlock.
type AscendantProgress struct {
	Unlocked bool `json:"unlocked"`
}

// ClassProgress drives the ascendant unlock gate: level 7 must be
// reached in all three base classes.
type ClassProgress struct {
	Warrior   ClassLevel        `json:"warrior"`
	Wizard    ClassLevel        `json:"wizard"`
	Rogue     ClassLevel        `json:"rogue"`
	Ascendant AscendantProgress `json:"ascendant"`
}

// MaxLevelFor returns the recorded max level for a base class.
func (p ClassProgress) MaxLevelFor(c Class) int {
	switch c {
	case ClassWarrior:
		return p.Warrior.MaxLevel
	case ClassWizard:
		return p.Wizard.MaxLevel
	case ClassRogue:
		return p.Rogue.MaxLevel
	default:
		return 0
	}
}

// RecordLevel bumps the max level for a base class if the new level is
// higher. Ascendant has no level track.
func (p ClassProgress) RecordLevel(c Class, level int) ClassProgress {
	switch c {
	case ClassWarrior:
		if level > p.Warrior.MaxLevel {
			p.Warrior.MaxLevel = level
		}
	case ClassWizard:
		if level > p.Wizard.MaxLevel {
			p.Wizard.MaxLevel = level
		}
	case ClassRogue:
		if level > p.Rogue.MaxLevel {
			p.Rogue.MaxLevel = level
		}
	}
	return p
}

// UserState is the full per-user snapshot: the unit of persistence and
// cross-device sync. One document per user, last writer wins.
type UserState struct {
	Character     Character     `json:"character"`
	Habits        []Habit       `json:"habits"`
	Achievements  []string      `json:"achievements"` // unlocked ids, append-only
	ClassProgress ClassProgress `json:"classProgress"`
	StreakData    StreakData    `json:"streakData"`
	Inventory     Inventory     `json:"inventory"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// NewUserState returns the starting snapshot for a new player.
func NewUserState(name string) UserState {
	return UserState{
		Character: NewCharacter(name),
		Habits:    []Habit{},
		Inventory: NewInventory(),
	}
}

// HabitByID returns a pointer into Habits, or nil if the id is unknown.
func (s *UserState) HabitByID(id string) *Habit {
	for i := range s.Habits {
		if s.Habits[i].ID == id {
			return &s.Habits[i]
		}
	}
	return nil
}

// TotalQuestsCompleted sums lifetime completions across all habits.
func (s UserState) TotalQuestsCompleted() int {
	total := 0
	for _, h := range s.Habits {
		total += h.TotalCompletions
	}
	return total
}

// HasAchievement reports whether an achievement id is already unlocked.
func (s UserState) HasAchievement(id string) bool {
	for _, a := range s.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can hand out snapshots without
// aliasing the engine's working state.
func (s UserState) Clone() UserState {
	out := s
	out.Habits = append([]Habit(nil), s.Habits...)
	out.Achievements = append([]string(nil), s.Achievements...)
	out.Inventory.Items = make(map[string]int, len(s.Inventory.Items))
	for k, v := range s.Inventory.Items {
		out.Inventory.Items[k] = v
	}
	out.Inventory.ActiveEffects = append([]ActiveEffect(nil), s.Inventory.ActiveEffects...)
	out.Inventory.PurchasedUpgrades = append([]string(nil), s.Inventory.PurchasedUpgrades...)
	return out
}

// StatePatch is a section-wise partial update of a UserState document.
// Nil sections are left untouched by the store's merge.
type StatePatch struct {
	Character     *Character     `json:"character,omitempty"`
	Habits        *[]Habit       `json:"habits,omitempty"`
	Achievements  *[]string      `json:"achievements,omitempty"`
	ClassProgress *ClassProgress `json:"classProgress,omitempty"`
	StreakData    *StreakData    `json:"streakData,omitempty"`
	Inventory     *Inventory     `json:"inventory,omitempty"`
}

// FullPatch returns a patch covering every section of the snapshot.
func FullPatch(s UserState) StatePatch {
	return StatePatch{
		Character:     &s.Character,
		Habits:        &s.Habits,
		Achievements:  &s.Achievements,
		ClassProgress: &s.ClassProgress,
		StreakData:    &s.StreakData,
		Inventory:     &s.Inventory,
	}
}

// Clone returns a deep copy of the patch, detached from the state the
// section pointers were built from. Callers that hand a patch to
// another goroutine must clone it first.
func (p StatePatch) Clone() StatePatch {
	var out StatePatch
	if p.Character != nil {
		c := *p.Character
		if c.RecoveryModeEndTime != nil {
			t := *c.RecoveryModeEndTime
			c.RecoveryModeEndTime = &t
		}
		out.Character = &c
	}
	if p.Habits != nil {
		hs := append([]Habit(nil), *p.Habits...)
		for i := range hs {
			if hs[i].LastCompleted != nil {
				t := *hs[i].LastCompleted
				hs[i].LastCompleted = &t
			}
		}
		out.Habits = &hs
	}
	if p.Achievements != nil {
		a := append([]string(nil), *p.Achievements...)
		out.Achievements = &a
	}
	if p.ClassProgress != nil {
		cp := *p.ClassProgress
		out.ClassProgress = &cp
	}
	if p.StreakData != nil {
		sd := *p.StreakData
		if sd.LastActiveDate != nil {
			t := *sd.LastActiveDate
			sd.LastActiveDate = &t
		}
		if sd.FreezeUntil != nil {
			t := *sd.FreezeUntil
			sd.FreezeUntil = &t
		}
		out.StreakData = &sd
	}
	if p.Inventory != nil {
		inv := *p.Inventory
		inv.Items = make(map[string]int, len(p.Inventory.Items))
		for k, v := range p.Inventory.Items {
			inv.Items[k] = v
		}
		inv.ActiveEffects = append([]ActiveEffect(nil), p.Inventory.ActiveEffects...)
		inv.PurchasedUpgrades = append([]string(nil), p.Inventory.PurchasedUpgrades...)
		out.Inventory = &inv
	}
	return out
}

// Apply merges the patch's non-nil sections into the state.
func (s UserState) Apply(p StatePatch) UserState {
	if p.Character != nil {
		s.Character = *p.Character
	}
	if p.Habits != nil {
		s.Habits = *p.Habits
	}
	if p.Achievements != nil {
		s.Achievements = *p.Achievements
	}
	if p.ClassProgress != nil {
		s.ClassProgress = *p.ClassProgress
	}
	if p.StreakData != nil {
		s.StreakData = *p.StreakData
	}
	if p.Inventory != nil {
		s.Inventory = *p.Inventory
	}
	return s
}
