package engine

import (
	"fmt"

	"github.com/questforge/questforge/internal/domain"
	"github.com/questforge/questforge/internal/infra/metrics"
	"github.com/questforge/questforge/internal/rules"
)

// Purchase buys one catalog item. Validation is complete before any
// mutation: a rejected purchase leaves gold and inventory untouched.
func (s *Service) Purchase(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := rules.ShopItemByID(itemID)
	if !ok {
		metrics.ActionErrors.WithLabelValues("purchase").Inc()
		return fmt.Errorf("%w: %q", domain.ErrItemNotFound, itemID)
	}
	if err := rules.ValidatePurchase(item, s.state.Character.Gold, s.state.Inventory); err != nil {
		metrics.ActionErrors.WithLabelValues("purchase").Inc()
		return err
	}

	s.state.Character.Gold -= item.Price
	if item.Permanent {
		rules.ApplyUpgrade(&s.state.Inventory, item)
	} else {
		// Validated above; cannot fail.
		if err := rules.AddItem(&s.state.Inventory, item); err != nil {
			s.state.Character.Gold += item.Price
			metrics.ActionErrors.WithLabelValues("purchase").Inc()
			return err
		}
	}

	metrics.ActionsTotal.WithLabelValues("purchase").Inc()
	s.notify(domain.Notification{
		Type:    domain.NotifyPurchase,
		Title:   "✅ Purchased",
		Message: fmt.Sprintf("%s %s (−%d gold)", item.Icon, item.Name, item.Price),
	})
	s.logEvent(domain.TimelineEvent{
		Type:        domain.EventShopPurchase,
		Level:       s.state.Character.Level,
		Description: fmt.Sprintf("Purchased %s", item.Name),
		Icon:        item.Icon,
		Details:     fmt.Sprintf("Spent %d gold", item.Price),
	})

	// Gold moved: persist immediately.
	s.persistNow(domain.StatePatch{
		Character: &s.state.Character,
		Inventory: &s.state.Inventory,
	})
	return nil
}

// UseItem consumes one unit of an owned item and applies its effect.
// Stat boost items need the target stat; other items ignore it.
func (s *Service) UseItem(itemID string, stat domain.Stat) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := rules.ShopItemByID(itemID)
	if !ok {
		metrics.ActionErrors.WithLabelValues("use_item").Inc()
		return fmt.Errorf("%w: %q", domain.ErrItemNotFound, itemID)
	}
	if item.Effect == domain.EffectStatBoost && !stat.IsValid() {
		metrics.ActionErrors.WithLabelValues("use_item").Inc()
		return fmt.Errorf("%w: stat boost needs a target stat", domain.ErrInvalidStat)
	}
	if err := rules.RemoveItem(&s.state.Inventory, itemID); err != nil {
		metrics.ActionErrors.WithLabelValues("use_item").Inc()
		return err
	}

	now := s.now()
	c := &s.state.Character
	message := fmt.Sprintf("Used %s", item.Name)

	switch item.Effect {
	case domain.EffectHeal:
		before := c.Health
		if item.HealAmount == rules.HealFull {
			c.Health = c.MaxHealth
		} else {
			c.Health += item.HealAmount
			if c.Health > c.MaxHealth {
				c.Health = c.MaxHealth
			}
		}
		message = fmt.Sprintf("❤️ Restored %d HP!", c.Health-before)

	case domain.EffectXPBoost, domain.EffectGoldBoost:
		rules.ActivateEffect(&s.state.Inventory, item, now)
		message = fmt.Sprintf("⚡ %s activated!", item.Name)

	case domain.EffectStreakFreeze:
		s.state.StreakData = rules.ApplyFreezeFor(s.state.StreakData, now, item.Duration)
		message = fmt.Sprintf("🛡️ Streak protected by %s!", item.Name)

	case domain.EffectDeathProtection:
		rules.ActivateEffect(&s.state.Inventory, item, now)
		message = "⚜️ Immortal Shield active!"

	case domain.EffectStatBoost:
		c.Stats = c.Stats.Add(stat, item.StatGain)
		c.Class = rules.EvaluateClass(*c)
		message = fmt.Sprintf("💪 %s +%d!", stat, item.StatGain)

	case domain.EffectTaskReset:
		// The token is informational: skipping a quest after using it
		// is handled by the player redoing the quest without penalty.
		message = "🔄 Task Reset Token ready! Use on a missed quest."
	}

	s.scanAchievements()
	metrics.ActionsTotal.WithLabelValues("use_item").Inc()
	s.notify(domain.Notification{
		Type:    domain.NotifyItemUsed,
		Title:   item.Name,
		Message: message,
	})
	s.logEvent(domain.TimelineEvent{
		Type:        domain.EventItemUsed,
		Level:       c.Level,
		Description: fmt.Sprintf("Used %s", item.Name),
		Icon:        item.Icon,
		Details:     item.Desc,
	})

	s.persistNow(domain.FullPatch(s.state))
	return nil
}
