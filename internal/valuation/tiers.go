package valuation

import (
	"math"

	"github.com/fortuna/courtside/internal/projections"
)

// Tier buckets players by aggregate value. Tier 1 is elite.
type Tier int

const (
	Tier1 Tier = 1
	Tier2 Tier = 2
	Tier3 Tier = 3
	Tier4 Tier = 4
)

// tierBands are evaluated in order; the first band whose floor the
// player's value clears wins. The final band's floor is -Inf so every
// real value lands somewhere.
var tierBands = []struct {
	tier Tier
	min  float64
}{
	{Tier1, 10},
	{Tier2, 6},
	{Tier3, 3},
	{Tier4, math.Inf(-1)},
}

// PlayerTier classifies a player into one of the four value bands.
func PlayerTier(p *projections.PlayerStat) Tier {
	value := p.TotalValue()
	for _, band := range tierBands {
		if value >= band.min {
			return band.tier
		}
	}
	return Tier4 // unreachable, but never leave a player untiered
}

// Archetype names a recognizable statistical profile.
type Archetype string

const (
	ArchAssistAnchor     Archetype = "Assist Anchor"
	ArchBigManAnchor     Archetype = "Rebound/Blocks Anchor"
	ArchThreeSpecialist  Archetype = "3PT Specialist"
	ArchScoringEngine    Archetype = "Scoring Engine"
	ArchStealsSpecialist Archetype = "Steals Specialist"
	ArchEliteEfficiency  Archetype = "Elite Efficiency"
	ArchFTAnchor         Archetype = "FT% Anchor"
	ArchLowTurnover      Archetype = "Low-Turnover Glue"
	ArchDefensiveStocks  Archetype = "Defensive Stocks"
	ArchMultiCat         Archetype = "Multi-Cat Contributor"
	ArchRolePlayer       Archetype = "Role Player"
)

// archetypeRules are independent predicates checked in a fixed order. A
// player can match several.
var archetypeRules = []struct {
	arch  Archetype
	match func(p *projections.PlayerStat) bool
}{
	{ArchAssistAnchor, func(p *projections.PlayerStat) bool {
		return p.Assists >= 8
	}},
	{ArchBigManAnchor, func(p *projections.PlayerStat) bool {
		return p.Rebounds >= 10 || p.Blocks >= 2
	}},
	{ArchThreeSpecialist, func(p *projections.PlayerStat) bool {
		return p.Threes >= 3
	}},
	{ArchScoringEngine, func(p *projections.PlayerStat) bool {
		return p.Points >= 25
	}},
	{ArchStealsSpecialist, func(p *projections.PlayerStat) bool {
		return p.Steals >= 1.8
	}},
	{ArchEliteEfficiency, func(p *projections.PlayerStat) bool {
		return p.FGPct >= 0.52 && p.FTPct >= 0.85
	}},
	{ArchFTAnchor, func(p *projections.PlayerStat) bool {
		return p.FTPct >= 0.88 && p.Points >= 15
	}},
	{ArchLowTurnover, func(p *projections.PlayerStat) bool {
		return p.Turnovers <= 1.5 && p.Minutes >= 28
	}},
	{ArchDefensiveStocks, func(p *projections.PlayerStat) bool {
		return p.Steals >= 1.2 && p.Blocks >= 1.2
	}},
}

// contributionThresholds define "contributes meaningfully" for the
// multi-category fallback. Eight thresholds; turnovers excluded since
// low turnovers are a lack of negatives, not a contribution.
var contributionThresholds = []func(p *projections.PlayerStat) bool{
	func(p *projections.PlayerStat) bool { return p.Points >= 12 },
	func(p *projections.PlayerStat) bool { return p.Threes >= 1.5 },
	func(p *projections.PlayerStat) bool { return p.Rebounds >= 5 },
	func(p *projections.PlayerStat) bool { return p.Assists >= 4 },
	func(p *projections.PlayerStat) bool { return p.Steals >= 1.0 },
	func(p *projections.PlayerStat) bool { return p.Blocks >= 0.8 },
	func(p *projections.PlayerStat) bool { return p.FGPct >= 0.46 },
	func(p *projections.PlayerStat) bool { return p.FTPct >= 0.78 },
}

// PlayerArchetypes returns every archetype a player matches. The result
// is never empty: players matching no named profile fall back to
// Multi-Cat Contributor when they clear five of the eight contribution
// thresholds, and Role Player otherwise.
func PlayerArchetypes(p *projections.PlayerStat) []Archetype {
	var matches []Archetype
	for _, rule := range archetypeRules {
		if rule.match(p) {
			matches = append(matches, rule.arch)
		}
	}
	if len(matches) > 0 {
		return matches
	}

	contributing := 0
	for _, meets := range contributionThresholds {
		if meets(p) {
			contributing++
		}
	}
	if contributing >= 5 {
		return []Archetype{ArchMultiCat}
	}
	return []Archetype{ArchRolePlayer}
}
