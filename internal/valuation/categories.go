// Package valuation implements the auction-draft analytics engine:
// VORP-based auction pricing, tier/archetype classification, punt
// scoring, matchup projection, bid advice, and pick recommendations.
// Every function is pure and takes its configuration explicitly.
package valuation

import "github.com/fortuna/courtside/internal/projections"

// ScarcityWeights reflect the relative scarcity of each category in a
// standard 9-cat league. Elite shot blockers are far rarer than
// scorers, so a blocks contribution is worth more when deciding what a
// player's production replaces. Tuned against historical draft
// results; every dollar value downstream depends on these numbers.
var ScarcityWeights = map[projections.Category]float64{
	projections.CatBlocks:    2.5,
	projections.CatAssists:   2.0,
	projections.CatSteals:    1.5,
	projections.CatFGPct:     1.3,
	projections.CatFTPct:     1.3,
	projections.CatThrees:    1.0,
	projections.CatTurnovers: 1.0,
	projections.CatRebounds:  0.8,
	projections.CatPoints:    0.5,
}

// LeagueAverages is the fixed per-game baseline a roster's category
// output is judged against.
var LeagueAverages = map[projections.Category]float64{
	projections.CatPoints:    15,
	projections.CatRebounds:  5,
	projections.CatAssists:   4,
	projections.CatSteals:    1.0,
	projections.CatBlocks:    0.8,
	projections.CatThrees:    1.5,
	projections.CatFGPct:     0.45,
	projections.CatFTPct:     0.78,
	projections.CatTurnovers: 2.0,
}

// Strength classifies a roster's output in one category.
type Strength string

const (
	StrengthStrong  Strength = "strong"
	StrengthAverage Strength = "average"
	StrengthWeak    Strength = "weak"
)

// LowerIsBetter reports whether a smaller per-game number is the good
// direction for a category. Turnovers are the only inverted category.
func LowerIsBetter(c projections.Category) bool {
	return c == projections.CatTurnovers
}
