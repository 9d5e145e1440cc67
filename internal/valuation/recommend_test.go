package valuation_test

import (
	"fmt"
	"testing"

	"github.com/fortuna/courtside/internal/projections"
	"github.com/fortuna/courtside/internal/valuation"
)

func TestCurrentPhase(t *testing.T) {
	settings := valuation.DefaultSettings() // 13 slots x 10 teams = 130

	tests := []struct {
		drafted int
		want    valuation.DraftPhase
	}{
		{0, valuation.PhaseEarly},
		{32, valuation.PhaseEarly},  // 24.6%
		{33, valuation.PhaseMiddle}, // 25.4%
		{97, valuation.PhaseMiddle}, // 74.6%
		{98, valuation.PhaseLate},   // 75.4%
		{130, valuation.PhaseLate},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("drafted=%d", tt.drafted), func(t *testing.T) {
			if got := valuation.CurrentPhase(tt.drafted, settings); got != tt.want {
				t.Errorf("CurrentPhase(%d) = %v, want %v", tt.drafted, got, tt.want)
			}
		})
	}
}

func TestTrackInflation(t *testing.T) {
	sales := []valuation.Sale{
		{Position: "PG", ProjectedValue: 20, ActualPrice: 30}, // +50%
		{Position: "PG", ProjectedValue: 10, ActualPrice: 11}, // +10%
		{Position: "C", ProjectedValue: 40, ActualPrice: 36},  // -10%
		{Position: "SG", ProjectedValue: 0, ActualPrice: 5},   // skipped
	}

	inflation := valuation.TrackInflation(sales)

	pg, ok := inflation["PG"]
	if !ok {
		t.Fatal("expected PG inflation entry")
	}
	if pg.Samples != 2 || !almostEqual(pg.AverageInflation, 30, 1e-9) {
		t.Errorf("PG inflation = %+v, want 2 samples at 30%%", pg)
	}

	if c := inflation["C"]; !almostEqual(c.AverageInflation, -10, 1e-9) {
		t.Errorf("C inflation = %v, want -10", c.AverageInflation)
	}

	if _, ok := inflation["SG"]; ok {
		t.Error("zero-projection sale should not create an entry")
	}
}

func TestTrackInflationMultiPosition(t *testing.T) {
	sales := []valuation.Sale{
		{Position: "PG/SG", ProjectedValue: 20, ActualPrice: 24}, // +20% to both
	}

	inflation := valuation.TrackInflation(sales)

	for _, pos := range []string{"PG", "SG"} {
		if pi := inflation[pos]; !almostEqual(pi.AverageInflation, 20, 1e-9) {
			t.Errorf("%s inflation = %v, want 20", pos, pi.AverageInflation)
		}
	}
}

func statPlayer(name, pos string, value float64) *projections.PlayerStat {
	p := playerWithValue(name, value)
	p.Position = pos
	return p
}

func TestRecommendPicksExcludesSeasonEndingInjuries(t *testing.T) {
	settings := valuation.DefaultSettings()

	hurt := statPlayer("hurt", "PG", 50)
	hurt.SeasonEnding = true
	healthy := statPlayer("healthy", "PG", 5)

	recs := valuation.RecommendPicks(
		[]*projections.PlayerStat{hurt, healthy},
		nil, settings, nil, nil, 0,
	)

	for _, rec := range recs {
		if rec.Player.Name == "hurt" {
			t.Error("season-ending injury should never be recommended")
		}
	}
	if len(recs) != 1 {
		t.Errorf("got %d recommendations, want 1", len(recs))
	}
}

func TestRecommendPicksTopTen(t *testing.T) {
	settings := valuation.DefaultSettings()

	var available []*projections.PlayerStat
	for i := 0; i < 25; i++ {
		available = append(available, statPlayer(fmt.Sprintf("p%d", i), "PG", float64(25-i)))
	}

	recs := valuation.RecommendPicks(available, nil, settings, nil, nil, 0)

	if len(recs) != 10 {
		t.Fatalf("got %d recommendations, want 10", len(recs))
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].Score > recs[i-1].Score {
			t.Errorf("recommendations out of order at %d", i)
		}
	}
}

func TestRecommendPicksInflationPenalty(t *testing.T) {
	settings := valuation.DefaultSettings()
	settings.RosterPositions = "Util,BN" // equal 0.2 need everywhere

	cheapPos := statPlayer("center", "C", 5)
	hotPos := statPlayer("guard", "PG", 5)

	inflation := map[string]valuation.PositionInflation{
		"PG": {Position: "PG", Samples: 3, AverageInflation: 40},
	}

	recs := valuation.RecommendPicks(
		[]*projections.PlayerStat{hotPos, cheapPos},
		nil, settings, nil, inflation, 0,
	)

	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}
	if recs[0].Player.Name != "center" {
		t.Errorf("expected the un-inflated position ranked first, got %s", recs[0].Player.Name)
	}
}

func TestRecommendPicksLatePhaseBoostsTier4(t *testing.T) {
	settings := valuation.DefaultSettings()
	settings.RosterPositions = "Util,BN"

	// Tier 4 (value 2) vs tier 3 (value 3.1): the 1.5x late multiplier
	// flips the ordering.
	flier := statPlayer("flier", "PG", 2)
	steady := statPlayer("steady", "PG", 3.1)

	late := settings.TotalSlots() * settings.TeamCount // 100% drafted
	recs := valuation.RecommendPicks(
		[]*projections.PlayerStat{steady, flier},
		nil, settings, nil, nil, late,
	)

	if recs[0].Player.Name != "flier" {
		t.Errorf("late phase should boost tier-4 fliers, got %s first", recs[0].Player.Name)
	}
}

func TestRecommendPicksEarlyPhaseBoostsElite(t *testing.T) {
	settings := valuation.DefaultSettings()
	settings.RosterPositions = "Util,BN"

	elite := statPlayer("elite", "PG", 10)
	good := statPlayer("good", "PG", 11) // tier 1 too; both boosted equally
	mid := statPlayer("mid", "PG", 5.5)  // tier 3, no boost

	recs := valuation.RecommendPicks(
		[]*projections.PlayerStat{mid, elite, good},
		nil, settings, nil, nil, 0,
	)

	if recs[len(recs)-1].Player.Name != "mid" {
		t.Errorf("early phase should rank boosted elite tiers above tier 3")
	}
}
