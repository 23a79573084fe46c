package rules

import (
	"time"

	"github.com/questforge/questforge/internal/domain"
)

// AddItem places one unit of an item into the inventory, enforcing
// capacity and stack limits. Mutates inv in place.
func AddItem(inv *domain.Inventory, item ShopItem) error {
	if inv.Used() >= inv.MaxSize {
		return domain.ErrInventoryFull
	}
	if item.MaxStack > 0 && inv.Quantity(item.ID) >= item.MaxStack {
		return domain.ErrStackLimit
	}
	if inv.Items == nil {
		inv.Items = map[string]int{}
	}
	inv.Items[item.ID]++
	return nil
}

// RemoveItem consumes one unit, deleting the key at zero so quantities
// never go negative and empty stacks never linger.
func RemoveItem(inv *domain.Inventory, itemID string) error {
	if inv.Items[itemID] <= 0 {
		return domain.ErrItemNotFound
	}
	inv.Items[itemID]--
	if inv.Items[itemID] <= 0 {
		delete(inv.Items, itemID)
	}
	return nil
}

// ApplyUpgrade records a permanent upgrade and applies its slot effect.
func ApplyUpgrade(inv *domain.Inventory, item ShopItem) {
	inv.PurchasedUpgrades = append(inv.PurchasedUpgrades, item.ID)
	if item.Effect == domain.EffectInventorySlots {
		inv.MaxSize += item.SlotGain
	}
}

// ActivateEffect starts a timed (or untimed, for death protection)
// effect from a consumed item.
func ActivateEffect(inv *domain.Inventory, item ShopItem, now time.Time) domain.ActiveEffect {
	eff := domain.ActiveEffect{
		ID:         item.ID,
		Type:       item.Effect,
		Multiplier: item.Multiplier,
		ReviveHP:   item.ReviveHP,
		StartTime:  now,
	}
	if item.Duration > 0 {
		eff.EndTime = now.Add(item.Duration)
	}
	inv.ActiveEffects = append(inv.ActiveEffects, eff)
	return eff
}

// PruneExpired drops lapsed timed effects. Untimed markers survive.
// Returns the number removed.
func PruneExpired(inv *domain.Inventory, now time.Time) int {
	kept := inv.ActiveEffects[:0]
	removed := 0
	for _, e := range inv.ActiveEffects {
		if e.Expired(now) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	inv.ActiveEffects = kept
	return removed
}

// BoostMultiplier returns the product of all live multipliers of one
// effect type. Stacked boosts multiply together.
func BoostMultiplier(inv domain.Inventory, t domain.EffectType, now time.Time) float64 {
	m := 1.0
	for _, e := range inv.ActiveEffects {
		if e.Type == t && !e.Expired(now) && e.Multiplier > 0 {
			m *= e.Multiplier
		}
	}
	return m
}

// ActiveDeathProtection returns the live death-protection marker, if any.
func ActiveDeathProtection(inv domain.Inventory) (domain.ActiveEffect, bool) {
	for _, e := range inv.ActiveEffects {
		if e.Type == domain.EffectDeathProtection {
			return e, true
		}
	}
	return domain.ActiveEffect{}, false
}

// ConsumeDeathProtection removes the first death-protection marker.
// Returns false when none was active.
func ConsumeDeathProtection(inv *domain.Inventory) bool {
	for i, e := range inv.ActiveEffects {
		if e.Type == domain.EffectDeathProtection {
			inv.ActiveEffects = append(inv.ActiveEffects[:i], inv.ActiveEffects[i+1:]...)
			return true
		}
	}
	return false
}
