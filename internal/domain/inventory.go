package domain

import "time"

// EffectType categorizes item effects.
type EffectType string

const (
	EffectXPBoost         EffectType = "xp_boost"
	EffectGoldBoost       EffectType = "gold_boost"
	EffectHeal            EffectType = "heal"
	EffectStreakFreeze    EffectType = "streak_freeze"
	EffectDeathProtection EffectType = "death_protection"
	EffectStatBoost       EffectType = "stat_boost"
	EffectTaskReset       EffectType = "task_reset"
	EffectInventorySlots  EffectType = "inventory_upgrade"
	EffectQuestSlots      EffectType = "quest_slot"
)

// ActiveEffect is a timed buff held in the inventory. Death protection
// markers carry a zero EndTime and persist until consumed by a death.
type ActiveEffect struct {
	ID         string     `json:"id"`
	Type       EffectType `json:"type"`
	Multiplier float64    `json:"multiplier,omitempty"`
	ReviveHP   int        `json:"reviveHP,omitempty"`
	StartTime  time.Time  `json:"startTime"`
	EndTime    time.Time  `json:"endTime"`
}

// Expired reports whether a timed effect has lapsed. Untimed markers
// (zero EndTime) never expire.
func (e ActiveEffect) Expired(now time.Time) bool {
	return !e.EndTime.IsZero() && !e.EndTime.After(now)
}

// DefaultInventorySize is the slot capacity before upgrades.
const DefaultInventorySize = 20

// Inventory holds consumables, running effects and permanent upgrades.
// Invariant: sum of item quantities <= MaxSize, enforced at add time.
type Inventory struct {
	Items             map[string]int `json:"items"`
	ActiveEffects     []ActiveEffect `json:"activeEffects"`
	MaxSize           int            `json:"maxSize"`
	PurchasedUpgrades []string       `json:"purchasedUpgrades"`
}

// NewInventory returns an empty inventory at base capacity.
func NewInventory() Inventory {
	return Inventory{
		Items:             map[string]int{},
		ActiveEffects:     []ActiveEffect{},
		MaxSize:           DefaultInventorySize,
		PurchasedUpgrades: []string{},
	}
}

// Used returns the number of occupied slots.
func (inv Inventory) Used() int {
	total := 0
	for _, qty := range inv.Items {
		total += qty
	}
	return total
}

// Quantity returns how many of an item the inventory holds.
func (inv Inventory) Quantity(itemID string) int {
	return inv.Items[itemID]
}

// HasUpgrade reports whether a permanent upgrade was purchased.
func (inv Inventory) HasUpgrade(upgradeID string) bool {
	for _, id := range inv.PurchasedUpgrades {
		if id == upgradeID {
			return true
		}
	}
	return false
}
