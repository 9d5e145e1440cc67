package valuation_test

import (
	"testing"

	"github.com/fortuna/courtside/internal/projections"
	"github.com/fortuna/courtside/internal/valuation"
)

func TestPlayerTierCoversAllValues(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  valuation.Tier
	}{
		{"elite", 15, valuation.Tier1},
		{"tier1 boundary", 10, valuation.Tier1},
		{"tier2", 8, valuation.Tier2},
		{"tier2 boundary", 6, valuation.Tier2},
		{"tier3", 4.5, valuation.Tier3},
		{"tier3 boundary", 3, valuation.Tier3},
		{"tier4", 1, valuation.Tier4},
		{"zero", 0, valuation.Tier4},
		{"negative", -7, valuation.Tier4},
		{"deeply negative", -1000, valuation.Tier4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := playerWithValue(tt.name, tt.value)
			if got := valuation.PlayerTier(p); got != tt.want {
				t.Errorf("PlayerTier(value=%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestPlayerArchetypesMatching(t *testing.T) {
	tests := []struct {
		name   string
		player *projections.PlayerStat
		want   valuation.Archetype
	}{
		{
			"assist anchor",
			&projections.PlayerStat{Assists: 9.5},
			valuation.ArchAssistAnchor,
		},
		{
			"rebound anchor",
			&projections.PlayerStat{Rebounds: 11},
			valuation.ArchBigManAnchor,
		},
		{
			"shot blocker counts as big-man anchor",
			&projections.PlayerStat{Blocks: 2.3},
			valuation.ArchBigManAnchor,
		},
		{
			"three point specialist",
			&projections.PlayerStat{Threes: 3.4},
			valuation.ArchThreeSpecialist,
		},
		{
			"scoring engine",
			&projections.PlayerStat{Points: 28},
			valuation.ArchScoringEngine,
		},
		{
			"steals specialist",
			&projections.PlayerStat{Steals: 2.0},
			valuation.ArchStealsSpecialist,
		},
		{
			"elite efficiency",
			&projections.PlayerStat{FGPct: 0.55, FTPct: 0.88},
			valuation.ArchEliteEfficiency,
		},
		{
			"defensive stocks",
			&projections.PlayerStat{Steals: 1.4, Blocks: 1.3},
			valuation.ArchDefensiveStocks,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := valuation.PlayerArchetypes(tt.player)
			found := false
			for _, a := range got {
				if a == tt.want {
					found = true
				}
			}
			if !found {
				t.Errorf("PlayerArchetypes() = %v, want it to include %q", got, tt.want)
			}
		})
	}
}

func TestPlayerArchetypesMultipleMatches(t *testing.T) {
	p := &projections.PlayerStat{
		Points:  27,
		Assists: 9,
		Threes:  3.2,
	}

	got := valuation.PlayerArchetypes(p)
	if len(got) < 3 {
		t.Errorf("expected at least 3 archetypes, got %v", got)
	}
}

func TestPlayerArchetypesMultiCatFallback(t *testing.T) {
	// Misses every named profile but contributes across the board.
	p := &projections.PlayerStat{
		Points:   14,
		Threes:   1.8,
		Rebounds: 5.5,
		Assists:  4.5,
		Steals:   1.1,
		Blocks:   0.5,
		FGPct:    0.47,
		FTPct:    0.80,
	}

	got := valuation.PlayerArchetypes(p)
	if len(got) != 1 || got[0] != valuation.ArchMultiCat {
		t.Errorf("PlayerArchetypes() = %v, want [Multi-Cat Contributor]", got)
	}
}

func TestPlayerArchetypesNeverEmpty(t *testing.T) {
	players := []*projections.PlayerStat{
		{},          // zero stats
		{Points: 3}, // deep bench
		{Minutes: 12, FTPct: 0.6},
	}

	for i, p := range players {
		if got := valuation.PlayerArchetypes(p); len(got) == 0 {
			t.Errorf("player %d: empty archetype list", i)
		}
	}
}
