package rules

import (
	"time"

	"github.com/questforge/questforge/internal/domain"
)

// ShopCategory groups catalog items for display.
type ShopCategory string

const (
	ShopConsumables ShopCategory = "consumables"
	ShopBoosts      ShopCategory = "boosts"
	ShopProtection  ShopCategory = "protection"
	ShopUpgrades    ShopCategory = "upgrades"
	ShopUtilities   ShopCategory = "utilities"
)

// ShopItem is one purchasable catalog entry. Permanent upgrades have
// Permanent set and at most one lifetime purchase; consumables stack up
// to MaxStack in the inventory.
type ShopItem struct {
	ID       string
	Name     string
	Desc     string
	Category ShopCategory
	Icon     string
	Price    int

	Effect     domain.EffectType
	Multiplier float64       // boost effects
	HealAmount int           // heal effects; -1 means full restore
	ReviveHP   int           // death protection
	Duration   time.Duration // timed effects
	StatGain   int           // stat boosts
	SlotGain   int           // inventory and quest-slot upgrades

	MaxStack  int
	Permanent bool
	Requires  string // upgrade id that must be owned first
}

// HealFull marks a heal item that restores to max health.
const HealFull = -1

var shopCatalog = []ShopItem{
	// XP boosts
	{ID: "small_xp_potion", Name: "Small XP Potion", Desc: "+5% XP gain for 30 minutes",
		Category: ShopBoosts, Icon: "🧪", Price: 50,
		Effect: domain.EffectXPBoost, Multiplier: 1.05, Duration: 30 * time.Minute, MaxStack: 10},
	{ID: "medium_xp_scroll", Name: "Medium XP Scroll", Desc: "+10% XP gain for 24 hours",
		Category: ShopBoosts, Icon: "📜", Price: 200,
		Effect: domain.EffectXPBoost, Multiplier: 1.10, Duration: 24 * time.Hour, MaxStack: 5},
	{ID: "major_xp_elixir", Name: "Major XP Elixir", Desc: "+20% XP gain for 3 days",
		Category: ShopBoosts, Icon: "⚗️", Price: 500,
		Effect: domain.EffectXPBoost, Multiplier: 1.20, Duration: 72 * time.Hour, MaxStack: 3},

	// Health potions
	{ID: "minor_health_potion", Name: "Minor Health Potion", Desc: "Restores 25 HP instantly",
		Category: ShopConsumables, Icon: "🧉", Price: 75,
		Effect: domain.EffectHeal, HealAmount: 25, MaxStack: 10},
	{ID: "health_potion", Name: "Health Potion", Desc: "Restores 50 HP instantly",
		Category: ShopConsumables, Icon: "🍶", Price: 150,
		Effect: domain.EffectHeal, HealAmount: 50, MaxStack: 10},
	{ID: "major_health_potion", Name: "Major Health Potion", Desc: "Restores 100 HP instantly",
		Category: ShopConsumables, Icon: "⚱️", Price: 300,
		Effect: domain.EffectHeal, HealAmount: 100, MaxStack: 10},
	{ID: "full_restore", Name: "Full Restore", Desc: "Restores HP to maximum",
		Category: ShopConsumables, Icon: "💊", Price: 500,
		Effect: domain.EffectHeal, HealAmount: HealFull, MaxStack: 5},

	// Streak protection
	{ID: "streak_shield_24h", Name: "24-Hour Streak Shield", Desc: "Protects streak for 24 hours",
		Category: ShopProtection, Icon: "🛡️", Price: 100,
		Effect: domain.EffectStreakFreeze, Duration: 24 * time.Hour, MaxStack: 5},
	{ID: "premium_streak_shield", Name: "Premium Streak Shield", Desc: "Protects streak for an entire week",
		Category: ShopProtection, Icon: "🛡️✨", Price: 600,
		Effect: domain.EffectStreakFreeze, Duration: 7 * 24 * time.Hour, MaxStack: 3},
	{ID: "immortal_shield", Name: "Immortal Shield", Desc: "Prevents death once (auto-revive with 50 HP)",
		Category: ShopProtection, Icon: "⚜️", Price: 1000,
		Effect: domain.EffectDeathProtection, ReviveHP: 50, MaxStack: 1},

	// Task utilities
	{ID: "task_reset_token", Name: "Task Reset Token", Desc: "Redo a missed task without penalty",
		Category: ShopUtilities, Icon: "🔄", Price: 250,
		Effect: domain.EffectTaskReset, MaxStack: 5},

	// Permanent inventory upgrades
	{ID: "inventory_upgrade_tier1", Name: "Inventory Upgrade (Tier 1)", Desc: "+5 storage slots",
		Category: ShopUpgrades, Icon: "🎒", Price: 500,
		Effect: domain.EffectInventorySlots, SlotGain: 5, Permanent: true},
	{ID: "inventory_upgrade_tier2", Name: "Inventory Upgrade (Tier 2)", Desc: "+10 storage slots",
		Category: ShopUpgrades, Icon: "🎒✨", Price: 1000,
		Effect: domain.EffectInventorySlots, SlotGain: 10, Permanent: true, Requires: "inventory_upgrade_tier1"},
	{ID: "inventory_upgrade_tier3", Name: "Inventory Upgrade (Tier 3)", Desc: "+15 storage slots",
		Category: ShopUpgrades, Icon: "🎒💎", Price: 2000,
		Effect: domain.EffectInventorySlots, SlotGain: 15, Permanent: true, Requires: "inventory_upgrade_tier2"},

	// Quest slot unlocks
	{ID: "quest_slot_1", Name: "Quest Slot Unlock +1", Desc: "Unlock 1 additional quest slot",
		Category: ShopUpgrades, Icon: "📋", Price: 300,
		Effect: domain.EffectQuestSlots, SlotGain: 1, Permanent: true},
	{ID: "quest_slot_2", Name: "Quest Slot Unlock +2", Desc: "Unlock 2 additional quest slots",
		Category: ShopUpgrades, Icon: "📋📋", Price: 700,
		Effect: domain.EffectQuestSlots, SlotGain: 2, Permanent: true, Requires: "quest_slot_1"},
	{ID: "quest_slot_3", Name: "Quest Slot Unlock +3", Desc: "Unlock 3 additional quest slots",
		Category: ShopUpgrades, Icon: "📋📋📋", Price: 1500,
		Effect: domain.EffectQuestSlots, SlotGain: 3, Permanent: true, Requires: "quest_slot_2"},

	// Gold boosters
	{ID: "gold_doubler_1h", Name: "Gold Doubler (1 Hour)", Desc: "Double gold rewards for 1 hour",
		Category: ShopBoosts, Icon: "💰", Price: 100,
		Effect: domain.EffectGoldBoost, Multiplier: 2.0, Duration: time.Hour, MaxStack: 5},
	{ID: "gold_doubler_24h", Name: "Gold Doubler (24 Hours)", Desc: "Double gold rewards for 24 hours",
		Category: ShopBoosts, Icon: "💰✨", Price: 400,
		Effect: domain.EffectGoldBoost, Multiplier: 2.0, Duration: 24 * time.Hour, MaxStack: 3},

	// Stat boosters
	{ID: "stat_boost_potion", Name: "Stat Boost Potion", Desc: "+5 to a chosen stat permanently",
		Category: ShopConsumables, Icon: "💪", Price: 800,
		Effect: domain.EffectStatBoost, StatGain: 5, MaxStack: 10},
}

// ShopItems returns the full catalog in display order.
func ShopItems() []ShopItem {
	return shopCatalog
}

// ShopItemByID looks up a catalog entry.
func ShopItemByID(id string) (ShopItem, bool) {
	for _, it := range shopCatalog {
		if it.ID == id {
			return it, true
		}
	}
	return ShopItem{}, false
}

// ShopItemsByCategory filters the catalog.
func ShopItemsByCategory(c ShopCategory) []ShopItem {
	var out []ShopItem
	for _, it := range shopCatalog {
		if it.Category == c {
			out = append(out, it)
		}
	}
	return out
}

// BaseQuestSlots is the number of habits a player can hold before any
// quest-slot unlocks.
const BaseQuestSlots = 10

// QuestSlotCapacity returns the habit capacity including purchased
// quest-slot unlocks.
func QuestSlotCapacity(inv domain.Inventory) int {
	n := BaseQuestSlots
	for _, id := range inv.PurchasedUpgrades {
		if it, ok := ShopItemByID(id); ok && it.Effect == domain.EffectQuestSlots {
			n += it.SlotGain
		}
	}
	return n
}

// ValidatePurchase runs every purchase check in order against the
// current state. It never mutates; a nil return means the purchase may
// proceed. Order matters: funds, ownership, prerequisite, then space.
func ValidatePurchase(item ShopItem, gold int, inv domain.Inventory) error {
	if gold < item.Price {
		return domain.ErrInsufficientFunds
	}
	if item.Permanent {
		if inv.HasUpgrade(item.ID) {
			return domain.ErrAlreadyOwned
		}
		if item.Requires != "" && !inv.HasUpgrade(item.Requires) {
			return domain.ErrPrerequisiteMissing
		}
		return nil
	}
	if inv.Used() >= inv.MaxSize {
		return domain.ErrInventoryFull
	}
	if item.MaxStack > 0 && inv.Quantity(item.ID) >= item.MaxStack {
		return domain.ErrStackLimit
	}
	return nil
}
