package valuation_test

import (
	"testing"

	"github.com/fortuna/courtside/internal/projections"
	"github.com/fortuna/courtside/internal/valuation"
)

func fullValuePlayer() *projections.PlayerStat {
	p := &projections.PlayerStat{
		Name:   "test",
		Values: make(map[projections.Category]float64),
	}
	for _, c := range projections.Categories {
		p.Values[c] = 2
	}
	return p
}

func TestPuntAdjustedValueNoPunts(t *testing.T) {
	p := fullValuePlayer()

	// 2 in every category times the full weight table:
	// 2 * (2.5 + 2.0 + 1.5 + 1.3 + 1.3 + 1.0 + 1.0 + 0.8 + 0.5) = 23.8
	got := valuation.PuntAdjustedValue(p, nil)
	if !almostEqual(got, 23.8, 1e-9) {
		t.Errorf("PuntAdjustedValue() = %v, want 23.8", got)
	}
}

func TestPuntAdjustedValueZeroesPuntedCategories(t *testing.T) {
	punts := []projections.Category{projections.CatFTPct}

	low := fullValuePlayer()
	low.Values[projections.CatFTPct] = 0
	high := fullValuePlayer()
	high.Values[projections.CatFTPct] = 100

	lowScore := valuation.PuntAdjustedValue(low, punts)
	highScore := valuation.PuntAdjustedValue(high, punts)

	if !almostEqual(lowScore, highScore, 1e-9) {
		t.Errorf("punted category leaked into score: %v vs %v", lowScore, highScore)
	}
}

func TestPuntAdjustedValueScarcityWeighting(t *testing.T) {
	blocks := &projections.PlayerStat{Values: map[projections.Category]float64{
		projections.CatBlocks: 4,
	}}
	points := &projections.PlayerStat{Values: map[projections.Category]float64{
		projections.CatPoints: 4,
	}}

	if b, p := valuation.PuntAdjustedValue(blocks, nil), valuation.PuntAdjustedValue(points, nil); b <= p {
		t.Errorf("blocks value (%v) should outweigh equal points value (%v)", b, p)
	}
}

func TestRecommendPuntsWeakCategorySurfaces(t *testing.T) {
	my := map[projections.Category]valuation.Strength{}
	for _, c := range projections.Categories {
		my[c] = valuation.StrengthStrong
	}
	my[projections.CatFTPct] = valuation.StrengthWeak

	// Three opponents strong at the line makes FT% a contested category.
	opp := map[projections.Category]valuation.Strength{
		projections.CatFTPct: valuation.StrengthStrong,
	}
	opponents := []map[projections.Category]valuation.Strength{opp, opp, opp}

	recs := valuation.RecommendPunts(my, opponents, nil, nil, valuation.DefaultPuntPolicy())

	if len(recs) == 0 {
		t.Fatal("expected at least one punt recommendation")
	}
	if recs[0].Category != projections.CatFTPct {
		t.Errorf("top recommendation = %s, want ft%%", recs[0].Category)
	}
	// weak (+30) + 3 strong opponents (+25) = 55 -> high confidence
	if recs[0].Confidence != "high" {
		t.Errorf("confidence = %s, want high", recs[0].Confidence)
	}
}

func TestRecommendPuntsStrongCategoriesSuppressed(t *testing.T) {
	my := map[projections.Category]valuation.Strength{}
	for _, c := range projections.Categories {
		my[c] = valuation.StrengthStrong
	}

	recs := valuation.RecommendPunts(my, nil, nil, nil, valuation.DefaultPuntPolicy())

	for _, rec := range recs {
		// strong (-40) + no strong opponents (-20) can only be rescued
		// by signals that don't exist in this setup
		t.Errorf("unexpected punt recommendation for strong category %s (score %v)",
			rec.Category, rec.Score)
	}
}

func TestRecommendPuntsSortedByScore(t *testing.T) {
	my := map[projections.Category]valuation.Strength{}
	for _, c := range projections.Categories {
		my[c] = valuation.StrengthAverage
	}
	my[projections.CatBlocks] = valuation.StrengthWeak

	opp := map[projections.Category]valuation.Strength{
		projections.CatBlocks:  valuation.StrengthStrong,
		projections.CatAssists: valuation.StrengthStrong,
	}
	opponents := []map[projections.Category]valuation.Strength{opp, opp}

	recs := valuation.RecommendPunts(my, opponents, nil, nil, valuation.DefaultPuntPolicy())

	for i := 1; i < len(recs); i++ {
		if recs[i].Score > recs[i-1].Score {
			t.Errorf("recommendations out of order at %d: %v after %v",
				i, recs[i].Score, recs[i-1].Score)
		}
	}
}
