package valuation

import (
	"sort"
	"strings"

	"github.com/fortuna/courtside/internal/projections"
)

// DraftPhase tracks how deep into the auction the league is.
type DraftPhase string

const (
	PhaseEarly  DraftPhase = "early"
	PhaseMiddle DraftPhase = "middle"
	PhaseLate   DraftPhase = "late"
)

// CurrentPhase derives the draft phase from the fraction of all roster
// slots filled league-wide: under 25% early, under 75% middle, else
// late.
func CurrentPhase(draftedCount int, settings LeagueSettings) DraftPhase {
	totalSlots := settings.TotalSlots() * settings.TeamCount
	if totalSlots <= 0 {
		return PhaseEarly
	}

	progress := float64(draftedCount) / float64(totalSlots)
	switch {
	case progress < 0.25:
		return PhaseEarly
	case progress < 0.75:
		return PhaseMiddle
	}
	return PhaseLate
}

// Sale records one resolved nomination for inflation tracking.
type Sale struct {
	Position       string  `json:"position"`
	ProjectedValue float64 `json:"projected_value"`
	ActualPrice    int     `json:"actual_price"`
}

// PositionInflation summarizes how far above projection a position has
// been selling.
type PositionInflation struct {
	Position         string  `json:"position"`
	Samples          int     `json:"samples"`
	AverageInflation float64 `json:"average_inflation"` // percent
}

// TrackInflation aggregates per-position price inflation from resolved
// sales. Multi-position players count toward each listed position.
// Sales with no projected value are skipped (nothing to inflate
// against).
func TrackInflation(sales []Sale) map[string]PositionInflation {
	sums := make(map[string]float64)
	counts := make(map[string]int)

	for _, sale := range sales {
		if sale.ProjectedValue <= 0 {
			continue
		}
		inflation := (float64(sale.ActualPrice) - sale.ProjectedValue) / sale.ProjectedValue * 100
		for _, pos := range strings.Split(sale.Position, "/") {
			pos = strings.TrimSpace(pos)
			if pos == "" {
				continue
			}
			sums[pos] += inflation
			counts[pos]++
		}
	}

	inflation := make(map[string]PositionInflation, len(sums))
	for pos, sum := range sums {
		inflation[pos] = PositionInflation{
			Position:         pos,
			Samples:          counts[pos],
			AverageInflation: sum / float64(counts[pos]),
		}
	}
	return inflation
}

// Recommendation is one ranked draft target.
type Recommendation struct {
	Player       *projections.PlayerStat `json:"player"`
	Score        float64                 `json:"score"`
	PuntAdjusted float64                 `json:"punt_adjusted"`
	PositionNeed float64                 `json:"position_need"`
	Tier         Tier                    `json:"tier"`
	Archetypes   []Archetype             `json:"archetypes"`
}

// Weighting for the recommendation score.
const (
	needWeight       = 2.0
	inflationDivisor = 20.0
	recommendLimit   = 10
)

// RecommendPicks ranks the available pool for "what should I nominate
// or chase next". Season-ending injuries are excluded. The score blends
// punt-adjusted value, the roster's sharpest positional need, and a
// penalty for positions currently selling hot, then tilts by phase:
// late drafts favor tier-4 fliers, early drafts the elite tiers.
// Returns the top ten.
func RecommendPicks(
	available []*projections.PlayerStat,
	roster []*projections.PlayerStat,
	settings LeagueSettings,
	puntCategories []projections.Category,
	inflation map[string]PositionInflation,
	draftedCount int,
) []Recommendation {
	needs := PositionNeeds(settings, roster)
	phase := CurrentPhase(draftedCount, settings)

	recs := make([]Recommendation, 0, len(available))
	for _, p := range available {
		if p.SeasonEnding {
			continue
		}

		var maxNeed float64
		for _, pos := range p.Positions() {
			if need := needs[pos]; need > maxNeed {
				maxNeed = need
			}
		}

		var inflationPenalty float64
		for _, pos := range p.Positions() {
			if pi, ok := inflation[pos]; ok {
				inflationPenalty = pi.AverageInflation / inflationDivisor
				break
			}
		}

		puntAdjusted := PuntAdjustedValue(p, puntCategories)
		score := puntAdjusted + needWeight*maxNeed - inflationPenalty

		tier := PlayerTier(p)
		switch phase {
		case PhaseLate:
			if tier == Tier4 {
				score *= 1.5
			}
		case PhaseEarly:
			if tier == Tier1 || tier == Tier2 {
				score *= 1.2
			}
		}

		recs = append(recs, Recommendation{
			Player:       p,
			Score:        score,
			PuntAdjusted: puntAdjusted,
			PositionNeed: maxNeed,
			Tier:         tier,
			Archetypes:   PlayerArchetypes(p),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
	if len(recs) > recommendLimit {
		recs = recs[:recommendLimit]
	}
	return recs
}
