package valuation

import "github.com/fortuna/courtside/internal/projections"

// TeamCategories is a roster's per-category per-game averages and the
// strong/average/weak classification of each against the fixed league
// baselines.
type TeamCategories struct {
	Coverage map[projections.Category]float64  `json:"coverage"`
	Strength map[projections.Category]Strength `json:"strength"`
	Resolved int                               `json:"resolved"`
}

// AnalyzeTeamCategories averages a roster's nine raw per-game stats and
// classifies each category against the league baseline. Players that
// fail to resolve are excluded; a roster with nothing resolvable
// returns nil.
func AnalyzeTeamCategories(playerIDs []int, db *projections.Store) *TeamCategories {
	if len(playerIDs) == 0 {
		return nil
	}

	var resolved []*projections.PlayerStat
	for _, id := range playerIDs {
		if p, ok := db.ByID(id); ok {
			resolved = append(resolved, p)
		}
	}
	if len(resolved) == 0 {
		return nil
	}

	tc := &TeamCategories{
		Coverage: make(map[projections.Category]float64, len(projections.Categories)),
		Strength: make(map[projections.Category]Strength, len(projections.Categories)),
		Resolved: len(resolved),
	}

	for _, c := range projections.Categories {
		var sum float64
		for _, p := range resolved {
			sum += p.Raw(c)
		}
		mean := sum / float64(len(resolved))
		tc.Coverage[c] = mean
		tc.Strength[c] = classifyStrength(c, mean)
	}

	return tc
}

// classifyStrength compares a category mean to the league baseline with
// a 10% band either side. Turnovers invert: fewer is stronger.
func classifyStrength(c projections.Category, mean float64) Strength {
	avg := LeagueAverages[c]
	if LowerIsBetter(c) {
		switch {
		case mean < avg*0.9:
			return StrengthStrong
		case mean > avg*1.1:
			return StrengthWeak
		}
		return StrengthAverage
	}

	switch {
	case mean > avg*1.1:
		return StrengthStrong
	case mean < avg*0.9:
		return StrengthWeak
	}
	return StrengthAverage
}

// CategoryResult is one category's projected head-to-head outcome.
type CategoryResult string

const (
	ResultWin    CategoryResult = "win"
	ResultLoss   CategoryResult = "loss"
	ResultTossUp CategoryResult = "toss-up"
)

// MatchupProjection is a category-by-category head-to-head forecast.
type MatchupProjection struct {
	Wins            int                                     `json:"wins"`
	Losses          int                                     `json:"losses"`
	CategoryResults map[projections.Category]CategoryResult `json:"category_results"`
}

// ProjectMatchup forecasts a head-to-head week category by category.
// Punted categories are conceded outright. A category only projects as
// a win when we are strong and the opponent is not; strong-on-strong is
// a toss-up, and toss-ups count toward neither total.
func ProjectMatchup(my, opp map[projections.Category]Strength, puntCategories []projections.Category) MatchupProjection {
	punted := make(map[projections.Category]bool, len(puntCategories))
	for _, c := range puntCategories {
		punted[c] = true
	}

	proj := MatchupProjection{
		CategoryResults: make(map[projections.Category]CategoryResult, len(projections.Categories)),
	}

	for _, c := range projections.Categories {
		var result CategoryResult
		switch {
		case punted[c]:
			result = ResultLoss
		case my[c] == StrengthStrong && opp[c] != StrengthStrong:
			result = ResultWin
		case my[c] != StrengthStrong && opp[c] == StrengthStrong:
			result = ResultLoss
		default:
			result = ResultTossUp
		}

		proj.CategoryResults[c] = result
		switch result {
		case ResultWin:
			proj.Wins++
		case ResultLoss:
			proj.Losses++
		}
	}

	return proj
}
