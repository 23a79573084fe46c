package rules

import "github.com/questforge/questforge/internal/domain"

// HeroRank is a cosmetic title derived from total stats.
type HeroRank struct {
	Name     string
	MinStats int
	MaxStats int // -1 for the open-ended top rank
	Icon     string
}

var heroRanks = []HeroRank{
	{"Novice", 40, 100, "🌱"},
	{"Apprentice", 101, 200, "⚔️"},
	{"Adventurer", 201, 350, "🗡️"},
	{"Champion", 351, 500, "🛡️"},
	{"Hero", 501, 750, "👑"},
	{"Legend", 751, 1000, "⭐"},
	{"Mythic Hero", 1001, -1, "✨"},
}

// RankProgress is the resolved rank plus progress toward the next one.
type RankProgress struct {
	Rank        HeroRank
	TotalStats  int
	ProgressPct int
	Next        *HeroRank
}

// HeroRankFor resolves the hero rank for a stat block.
func HeroRankFor(b domain.StatBlock) RankProgress {
	total := b.Total()
	for i := len(heroRanks) - 1; i >= 0; i-- {
		r := heroRanks[i]
		if total >= r.MinStats {
			p := RankProgress{Rank: r, TotalStats: total}
			if r.MaxStats < 0 {
				p.ProgressPct = 100
			} else {
				span := r.MaxStats - r.MinStats + 1
				p.ProgressPct = (total - r.MinStats) * 100 / span
				p.Next = &heroRanks[i+1]
			}
			return p
		}
	}
	return RankProgress{Rank: heroRanks[0], TotalStats: total, Next: &heroRanks[1]}
}
