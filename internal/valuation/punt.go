package valuation

import (
	"fmt"
	"sort"

	"github.com/fortuna/courtside/internal/projections"
)

// PuntAdjustedValue recomputes a player's value under a punt strategy:
// contributions from punted categories are zeroed, the rest are scaled
// by the category's scarcity weight.
func PuntAdjustedValue(p *projections.PlayerStat, puntCategories []projections.Category) float64 {
	punted := make(map[projections.Category]bool, len(puntCategories))
	for _, c := range puntCategories {
		punted[c] = true
	}

	var total float64
	for _, c := range projections.Categories {
		if punted[c] {
			continue
		}
		total += p.Value(c) * ScarcityWeights[c]
	}
	return total
}

// PuntPolicy holds the scoring weights for dynamic punt
// recommendations. The numbers are an empirically tuned heuristic, not
// a contract; callers can swap in their own.
type PuntPolicy struct {
	OwnWeak    float64 // own roster already weak in the category
	OwnAverage float64
	OwnStrong  float64 // punting a strength throws value away

	ManyOpponentsStrong float64 // >= 3 opponents strong
	SomeOpponentsStrong float64 // >= 2 opponents strong
	NoOpponentStrong    float64

	PoolDryingUp  float64 // remaining talent clearly below drafted talent
	PoolStillRich float64

	ScarcityBonus    float64 // applied when the scarcity weight >= 2.0
	PoolSampleSize   int     // top-N available players sampled
	HighConfidence   float64
	MediumConfidence float64
	SurfaceFloor     float64 // recommendations below this score are hidden
}

// DefaultPuntPolicy is the tuned production policy.
func DefaultPuntPolicy() PuntPolicy {
	return PuntPolicy{
		OwnWeak:             30,
		OwnAverage:          10,
		OwnStrong:           -40,
		ManyOpponentsStrong: 25,
		SomeOpponentsStrong: 15,
		NoOpponentStrong:    -20,
		PoolDryingUp:        20,
		PoolStillRich:       -10,
		ScarcityBonus:       10,
		PoolSampleSize:      50,
		HighConfidence:      50,
		MediumConfidence:    30,
		SurfaceFloor:        10,
	}
}

// PuntRecommendation is one surfaced punt candidate.
type PuntRecommendation struct {
	Category   projections.Category `json:"category"`
	Score      float64              `json:"score"`
	Confidence string               `json:"confidence"` // high, medium, low
	Reasons    []string             `json:"reasons"`
}

// RecommendPunts scores each category as a punt candidate from the live
// draft state: own-roster strength, how contested the category is among
// opponents, whether the remaining pool still offers that production,
// and a bonus for scarce categories. Only candidates above the policy
// floor are returned, best first.
func RecommendPunts(
	myStrength map[projections.Category]Strength,
	opponentStrengths []map[projections.Category]Strength,
	available []*projections.PlayerStat,
	drafted []*projections.PlayerStat,
	policy PuntPolicy,
) []PuntRecommendation {
	pool := topByValue(available, policy.PoolSampleSize)

	var recs []PuntRecommendation
	for _, c := range projections.Categories {
		var score float64
		var reasons []string

		switch myStrength[c] {
		case StrengthWeak:
			score += policy.OwnWeak
			reasons = append(reasons, "your roster is already weak here")
		case StrengthAverage:
			score += policy.OwnAverage
		case StrengthStrong:
			score += policy.OwnStrong
		}

		strongOpponents := 0
		for _, opp := range opponentStrengths {
			if opp[c] == StrengthStrong {
				strongOpponents++
			}
		}
		switch {
		case strongOpponents >= 3:
			score += policy.ManyOpponentsStrong
			reasons = append(reasons, fmt.Sprintf("%d opponents are strong here", strongOpponents))
		case strongOpponents >= 2:
			score += policy.SomeOpponentsStrong
			reasons = append(reasons, fmt.Sprintf("%d opponents are strong here", strongOpponents))
		case strongOpponents == 0:
			score += policy.NoOpponentStrong
		}

		if signal, ok := poolSignal(c, pool, drafted, policy); ok {
			score += signal
			if signal > 0 {
				reasons = append(reasons, "remaining talent pool is drying up")
			}
		}

		if ScarcityWeights[c] >= 2.0 {
			score += policy.ScarcityBonus
			reasons = append(reasons, "scarce category: punting frees real budget")
		}

		if score > policy.SurfaceFloor {
			recs = append(recs, PuntRecommendation{
				Category:   c,
				Score:      score,
				Confidence: policy.confidence(score),
				Reasons:    reasons,
			})
		}
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
	return recs
}

func (pp PuntPolicy) confidence(score float64) string {
	switch {
	case score >= pp.HighConfidence:
		return "high"
	case score >= pp.MediumConfidence:
		return "medium"
	default:
		return "low"
	}
}

// poolSignal compares remaining-pool production against already-drafted
// production in one category. Direction-aware: for turnovers a higher
// pool mean is the bad sign. Returns no signal when either sample is
// empty.
func poolSignal(c projections.Category, pool, drafted []*projections.PlayerStat, policy PuntPolicy) (float64, bool) {
	poolMean, okPool := categoryMean(c, pool)
	draftedMean, okDrafted := categoryMean(c, drafted)
	if !okPool || !okDrafted {
		return 0, false
	}

	dryingUp := poolMean < draftedMean*0.9
	stillRich := poolMean > draftedMean*1.1
	if LowerIsBetter(c) {
		dryingUp, stillRich = poolMean > draftedMean*1.1, poolMean < draftedMean*0.9
	}

	switch {
	case dryingUp:
		return policy.PoolDryingUp, true
	case stillRich:
		return policy.PoolStillRich, true
	}
	return 0, true
}

func categoryMean(c projections.Category, players []*projections.PlayerStat) (float64, bool) {
	if len(players) == 0 {
		return 0, false
	}
	var sum float64
	for _, p := range players {
		sum += p.Raw(c)
	}
	return sum / float64(len(players)), true
}

// topByValue returns the n highest-value players without disturbing the
// caller's slice.
func topByValue(players []*projections.PlayerStat, n int) []*projections.PlayerStat {
	sorted := make([]*projections.PlayerStat, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalValue() > sorted[j].TotalValue()
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
