package valuation

import (
	"math"
	"sort"

	"github.com/fortuna/courtside/internal/projections"
)

// RosterSize is the assumed number of draftable players per team when
// sizing the replacement-level pool.
const RosterSize = 13

// ComputeAuctionValues populates AuctionValue for every player from
// their VORP share of the league's budget. Each draftable player
// reserves a $1 floor; the remaining budget is distributed in
// proportion to value over the replacement-level player. Players at or
// below replacement level price at exactly $1.
//
// The input slice is mutated and returned. Ties in total value keep
// input order (the sort is stable), so results are deterministic.
func ComputeAuctionValues(players []*projections.PlayerStat, teamCount, budgetPerTeam int) []*projections.PlayerStat {
	if len(players) == 0 {
		return players
	}

	sorted := make([]*projections.PlayerStat, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalValue() > sorted[j].TotalValue()
	})

	draftableCount := teamCount * RosterSize
	replacementIndex := draftableCount - 1
	if replacementIndex > len(sorted)-1 {
		replacementIndex = len(sorted) - 1
	}
	baselineValue := sorted[replacementIndex].TotalValue()

	// VORP accrues only to players inside the draftable pool who clear
	// the replacement baseline.
	vorps := make([]float64, len(sorted))
	var totalVorp float64
	for i, p := range sorted {
		if i < draftableCount {
			if v := p.TotalValue() - baselineValue; v > 0 {
				vorps[i] = v
				totalVorp += v
			}
		}
	}

	totalBudget := teamCount * budgetPerTeam
	reservedBudget := draftableCount // $1 floor per draftable player
	remainingBudget := float64(totalBudget - reservedBudget)

	var conversionFactor float64
	if totalVorp > 0 {
		conversionFactor = remainingBudget / totalVorp
	}

	for i, p := range sorted {
		if vorps[i] > 0 {
			price := math.Round(1 + vorps[i]*conversionFactor)
			if price < 1 {
				price = 1
			}
			p.AuctionValue = int(price)
		} else {
			p.AuctionValue = 1
		}
	}

	return players
}
