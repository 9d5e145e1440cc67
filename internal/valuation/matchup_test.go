package valuation_test

import (
	"testing"

	"github.com/fortuna/courtside/internal/projections"
	"github.com/fortuna/courtside/internal/valuation"
)

func testStore() *projections.Store {
	store := projections.NewStore()
	store.Load([]*projections.PlayerStat{
		{
			Name: "Big Man", Position: "C",
			Points: 20, Rebounds: 12, Assists: 2, Steals: 0.8, Blocks: 2.2,
			Threes: 0.2, FGPct: 0.58, FTPct: 0.65, Turnovers: 2.5,
		},
		{
			Name: "Floor General", Position: "PG",
			Points: 18, Rebounds: 4, Assists: 9, Steals: 1.5, Blocks: 0.2,
			Threes: 2.5, FGPct: 0.46, FTPct: 0.88, Turnovers: 3.0,
		},
	})
	return store
}

func TestAnalyzeTeamCategoriesAverages(t *testing.T) {
	store := testStore()

	tc := valuation.AnalyzeTeamCategories([]int{1, 2}, store)
	if tc == nil {
		t.Fatal("expected analysis, got nil")
	}

	if !almostEqual(tc.Coverage[projections.CatPoints], 19, 1e-9) {
		t.Errorf("points coverage = %v, want 19", tc.Coverage[projections.CatPoints])
	}
	if !almostEqual(tc.Coverage[projections.CatRebounds], 8, 1e-9) {
		t.Errorf("rebounds coverage = %v, want 8", tc.Coverage[projections.CatRebounds])
	}

	// 19 ppg > 15 * 1.1: strong
	if tc.Strength[projections.CatPoints] != valuation.StrengthStrong {
		t.Errorf("points strength = %v, want strong", tc.Strength[projections.CatPoints])
	}
	// 2.75 topg > 2.0 * 1.1: weak, inverted category
	if tc.Strength[projections.CatTurnovers] != valuation.StrengthWeak {
		t.Errorf("turnovers strength = %v, want weak", tc.Strength[projections.CatTurnovers])
	}
}

func TestAnalyzeTeamCategoriesEmptyRoster(t *testing.T) {
	store := testStore()

	if tc := valuation.AnalyzeTeamCategories(nil, store); tc != nil {
		t.Errorf("expected nil for empty roster, got %+v", tc)
	}
	if tc := valuation.AnalyzeTeamCategories([]int{999}, store); tc != nil {
		t.Errorf("expected nil when no players resolve, got %+v", tc)
	}
}

func TestAnalyzeTeamCategoriesSkipsUnresolved(t *testing.T) {
	store := testStore()

	tc := valuation.AnalyzeTeamCategories([]int{1, 999}, store)
	if tc == nil {
		t.Fatal("expected analysis, got nil")
	}
	if tc.Resolved != 1 {
		t.Errorf("resolved = %d, want 1", tc.Resolved)
	}
	if !almostEqual(tc.Coverage[projections.CatPoints], 20, 1e-9) {
		t.Errorf("points coverage = %v, want 20 (only the resolved player)",
			tc.Coverage[projections.CatPoints])
	}
}

func strengthMap(strong ...projections.Category) map[projections.Category]valuation.Strength {
	m := make(map[projections.Category]valuation.Strength)
	for _, c := range projections.Categories {
		m[c] = valuation.StrengthAverage
	}
	for _, c := range strong {
		m[c] = valuation.StrengthStrong
	}
	return m
}

func TestProjectMatchupOutcomes(t *testing.T) {
	my := strengthMap(projections.CatPoints, projections.CatAssists)
	opp := strengthMap(projections.CatAssists, projections.CatBlocks)

	proj := valuation.ProjectMatchup(my, opp, nil)

	if got := proj.CategoryResults[projections.CatPoints]; got != valuation.ResultWin {
		t.Errorf("points = %v, want win", got)
	}
	if got := proj.CategoryResults[projections.CatBlocks]; got != valuation.ResultLoss {
		t.Errorf("blocks = %v, want loss", got)
	}
	// strong vs strong is a toss-up, not a win
	if got := proj.CategoryResults[projections.CatAssists]; got != valuation.ResultTossUp {
		t.Errorf("assists = %v, want toss-up", got)
	}
	if proj.Wins != 1 || proj.Losses != 1 {
		t.Errorf("wins/losses = %d/%d, want 1/1", proj.Wins, proj.Losses)
	}
}

func TestProjectMatchupPuntedCategoriesConceded(t *testing.T) {
	my := strengthMap(projections.CatFTPct)
	opp := strengthMap()

	proj := valuation.ProjectMatchup(my, opp, []projections.Category{projections.CatFTPct})

	if got := proj.CategoryResults[projections.CatFTPct]; got != valuation.ResultLoss {
		t.Errorf("punted ft%% = %v, want automatic loss", got)
	}
}

func TestProjectMatchupComplementary(t *testing.T) {
	a := strengthMap(projections.CatPoints, projections.CatSteals)
	b := strengthMap(projections.CatRebounds)

	forward := valuation.ProjectMatchup(a, b, nil)
	reverse := valuation.ProjectMatchup(b, a, nil)

	for _, c := range projections.Categories {
		f, r := forward.CategoryResults[c], reverse.CategoryResults[c]
		switch f {
		case valuation.ResultWin:
			if r != valuation.ResultLoss {
				t.Errorf("%s: my win should be their loss, got %v", c, r)
			}
		case valuation.ResultLoss:
			if r != valuation.ResultWin {
				t.Errorf("%s: my loss should be their win, got %v", c, r)
			}
		case valuation.ResultTossUp:
			if r != valuation.ResultTossUp {
				t.Errorf("%s: toss-ups should be symmetric, got %v", c, r)
			}
		}
	}

	if forward.Wins != reverse.Losses || forward.Losses != reverse.Wins {
		t.Errorf("totals not complementary: %d/%d vs %d/%d",
			forward.Wins, forward.Losses, reverse.Wins, reverse.Losses)
	}
}
