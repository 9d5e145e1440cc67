package valuation_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/fortuna/courtside/internal/projections"
	"github.com/fortuna/courtside/internal/valuation"
)

// playerWithValue builds a player whose total value is carried entirely
// by the points category.
func playerWithValue(name string, total float64) *projections.PlayerStat {
	return &projections.PlayerStat{
		Name:     name,
		Position: "PG",
		Values: map[projections.Category]float64{
			projections.CatPoints: total,
		},
	}
}

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestComputeAuctionValuesStandardLeague(t *testing.T) {
	// 10 teams x $200: 130 draftable slots, $130 reserved, $1870 to
	// distribute. Ten players clear the baseline with 10% of total VORP
	// each, so each prices at round(1 + 0.10*1870) = 188.
	var players []*projections.PlayerStat
	for i := 0; i < 10; i++ {
		players = append(players, playerWithValue(fmt.Sprintf("star%d", i), 60))
	}
	for i := 0; i < 120; i++ {
		players = append(players, playerWithValue(fmt.Sprintf("replacement%d", i), 50))
	}

	valuation.ComputeAuctionValues(players, 10, 200)

	for i := 0; i < 10; i++ {
		if players[i].AuctionValue != 188 {
			t.Errorf("star %d: auction value = %d, want 188", i, players[i].AuctionValue)
		}
	}
	for i := 10; i < len(players); i++ {
		if players[i].AuctionValue != 1 {
			t.Errorf("replacement %d: auction value = %d, want 1", i, players[i].AuctionValue)
		}
	}
}

func TestComputeAuctionValuesBudgetConservation(t *testing.T) {
	var players []*projections.PlayerStat
	for i := 0; i < 10; i++ {
		players = append(players, playerWithValue(fmt.Sprintf("star%d", i), 60))
	}
	for i := 0; i < 120; i++ {
		players = append(players, playerWithValue(fmt.Sprintf("replacement%d", i), 50))
	}

	valuation.ComputeAuctionValues(players, 10, 200)

	total := 0
	for _, p := range players {
		total += p.AuctionValue
	}

	// Total spend over the draftable pool should land within per-player
	// rounding of the full league budget.
	want := 10 * 200
	if math.Abs(float64(total-want)) > float64(len(players))*0.5 {
		t.Errorf("total auction value = %d, want within rounding of %d", total, want)
	}
}

func TestComputeAuctionValuesFloor(t *testing.T) {
	players := []*projections.PlayerStat{
		playerWithValue("a", 12),
		playerWithValue("b", 5),
		playerWithValue("c", -3),
		playerWithValue("d", 0),
	}

	valuation.ComputeAuctionValues(players, 2, 100)

	for _, p := range players {
		if p.AuctionValue < 1 {
			t.Errorf("player %s: auction value %d below $1 floor", p.Name, p.AuctionValue)
		}
	}
}

func TestComputeAuctionValuesDeterministic(t *testing.T) {
	build := func() []*projections.PlayerStat {
		return []*projections.PlayerStat{
			playerWithValue("a", 9),
			playerWithValue("b", 9), // tie with a, stable order decides
			playerWithValue("c", 4),
			playerWithValue("d", 1),
		}
	}

	first := build()
	second := build()
	valuation.ComputeAuctionValues(first, 2, 50)
	valuation.ComputeAuctionValues(second, 2, 50)

	for i := range first {
		if first[i].AuctionValue != second[i].AuctionValue {
			t.Errorf("player %s: %d vs %d across runs",
				first[i].Name, first[i].AuctionValue, second[i].AuctionValue)
		}
	}
}

func TestComputeAuctionValuesZeroVorp(t *testing.T) {
	// Identical players: nobody clears the baseline, everyone gets the floor.
	players := []*projections.PlayerStat{
		playerWithValue("a", 10),
		playerWithValue("b", 10),
		playerWithValue("c", 10),
	}

	valuation.ComputeAuctionValues(players, 2, 100)

	for _, p := range players {
		if p.AuctionValue != 1 {
			t.Errorf("player %s: auction value = %d, want 1", p.Name, p.AuctionValue)
		}
	}
}

func TestComputeAuctionValuesEmptyList(t *testing.T) {
	if got := valuation.ComputeAuctionValues(nil, 10, 200); len(got) != 0 {
		t.Errorf("expected no-op on empty list, got %d players", len(got))
	}
}

func TestComputeAuctionValuesBaselinePlayerGetsFloor(t *testing.T) {
	// Fewer players than draftable slots: the last player is the
	// baseline and prices at $1.
	players := []*projections.PlayerStat{
		playerWithValue("a", 20),
		playerWithValue("b", 10),
		playerWithValue("c", 5),
	}

	valuation.ComputeAuctionValues(players, 2, 100)

	if players[2].AuctionValue != 1 {
		t.Errorf("baseline player auction value = %d, want 1", players[2].AuctionValue)
	}
	if players[0].AuctionValue <= players[1].AuctionValue {
		t.Errorf("ordering broken: %d <= %d", players[0].AuctionValue, players[1].AuctionValue)
	}
}

func TestTotalValueSumsAllNineCategories(t *testing.T) {
	p := &projections.PlayerStat{Values: map[projections.Category]float64{}}
	for i, c := range projections.Categories {
		p.Values[c] = float64(i + 1)
	}

	if !almostEqual(p.TotalValue(), 45, 1e-9) {
		t.Errorf("TotalValue() = %f, want 45", p.TotalValue())
	}
}
