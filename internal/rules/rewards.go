package rules

import (
	"time"

	"github.com/questforge/questforge/internal/domain"
)

// QuestHealHP is the small heal granted on every quest completion.
const QuestHealHP = 2

// RewardFactors is the full multiplier set for one completion. Guild
// bonuses apply to XP only; gold is deliberately exempt.
type RewardFactors struct {
	Mastery  float64
	Guild    float64
	Streak   float64
	Recovery float64
	ShopXP   float64
	ShopGold float64
}

// FactorsFor gathers every live multiplier for a completion of the
// given habit at the given time.
func FactorsFor(s domain.UserState, h domain.Habit, guildBonus float64, now time.Time) RewardFactors {
	return RewardFactors{
		Mastery:  MasteryMultiplier(h.TotalCompletions),
		Guild:    guildBonus,
		Streak:   StreakMultiplier(s.StreakData.CurrentStreak),
		Recovery: RecoveryMultiplier(s.Character, now),
		ShopXP:   BoostMultiplier(s.Inventory, domain.EffectXPBoost, now),
		ShopGold: BoostMultiplier(s.Inventory, domain.EffectGoldBoost, now),
	}
}

// Reward is the computed payout for a completion.
type Reward struct {
	XP       int
	Gold     int
	Stat     domain.Stat
	StatGain int
}

// ComputeReward applies the multiplier chains to the difficulty base
// amounts. Both products truncate toward zero after multiplication.
func ComputeReward(h domain.Habit, f RewardFactors, class domain.Class) Reward {
	stat := h.Category
	if !stat.IsValid() {
		stat = class.PrimaryStat()
	}
	return Reward{
		XP:       int(float64(BaseXP(h.Difficulty)) * f.Mastery * f.Guild * f.Streak * f.Recovery * f.ShopXP),
		Gold:     int(float64(BaseGold(h.Difficulty)) * f.Mastery * f.Streak * f.Recovery * f.ShopGold),
		Stat:     stat,
		StatGain: StatGain(h.Difficulty),
	}
}
