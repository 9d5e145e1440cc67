package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/fortuna/courtside/internal/cache"
	"github.com/fortuna/courtside/internal/projections"
	"github.com/fortuna/courtside/internal/valuation"
)

// PlayerCard is one player with everything the draft board shows.
type PlayerCard struct {
	Player       *projections.PlayerStat `json:"player"`
	Tier         valuation.Tier          `json:"tier"`
	Archetypes   []valuation.Archetype   `json:"archetypes"`
	PuntAdjusted float64                 `json:"punt_adjusted"`
}

// BidAdvice is the full response to "they just bid $X, do I go higher".
type BidAdvice struct {
	PlayerID       int                         `json:"player_id"`
	CurrentBid     int                         `json:"current_bid"`
	ProjectedValue int                         `json:"projected_value"`
	MaxBid         int                         `json:"max_bid"`
	RecommendedMax int                         `json:"recommended_max"`
	Verdict        valuation.BidRecommendation `json:"verdict"`
}

// RosterView is the user's roster resolved into starting slots.
type RosterView struct {
	Slots     []valuation.RosterSlot `json:"slots"`
	OpenSlots int                    `json:"open_slots"`
	Budget    int                    `json:"budget"`
	MaxBid    int                    `json:"max_bid"`
}

// AdvisorService answers every read-side draft question: values, tiers,
// punt strategy, matchups, bid advice, and ranked recommendations. It
// layers the pure valuation functions over the live room state and
// caches the expensive aggregates per session.
type AdvisorService struct {
	drafts  *DraftService
	players *projections.Store
	cache   *cache.RedisCache
	policy  valuation.PuntPolicy

	mu    sync.Mutex
	punts []projections.Category
}

// NewAdvisorService creates an advisor over the given draft service.
func NewAdvisorService(drafts *DraftService, players *projections.Store, rc *cache.RedisCache) *AdvisorService {
	return &AdvisorService{
		drafts:  drafts,
		players: players,
		cache:   rc,
		policy:  valuation.DefaultPuntPolicy(),
	}
}

// RefreshValues recomputes every player's auction value from the
// current league settings. Call after loading projections and after
// any settings change.
func (s *AdvisorService) RefreshValues() {
	settings := s.drafts.Room().Settings()
	valuation.ComputeAuctionValues(s.players.All(), settings.TeamCount, settings.BudgetPerTeam)
	log.Printf("✓ Auction values computed for %d players (%d teams, $%d budget)",
		s.players.Len(), settings.TeamCount, settings.BudgetPerTeam)
}

// SetPuntCategories replaces the active punt build. Unknown category
// ids are rejected.
func (s *AdvisorService) SetPuntCategories(ctx context.Context, ids []string) error {
	known := make(map[projections.Category]bool, len(projections.Categories))
	for _, c := range projections.Categories {
		known[c] = true
	}

	cats := make([]projections.Category, 0, len(ids))
	for _, id := range ids {
		c := projections.Category(id)
		if !known[c] {
			return fmt.Errorf("unknown category %q", id)
		}
		cats = append(cats, c)
	}

	s.mu.Lock()
	s.punts = cats
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.InvalidateSession(ctx, s.drafts.SessionID()); err != nil {
			log.Printf("⚠️  Cache invalidation failed: %v", err)
		}
	}
	return nil
}

// PuntCategories returns the active punt build.
func (s *AdvisorService) PuntCategories() []projections.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]projections.Category(nil), s.punts...)
}

// PlayerCards returns the full pool with tiers, archetypes, and
// punt-adjusted values, cached per session until the next mutation.
func (s *AdvisorService) PlayerCards(ctx context.Context) []PlayerCard {
	if s.cache != nil {
		var cached []PlayerCard
		if err := s.cache.GetValuations(ctx, s.drafts.SessionID(), &cached); err == nil {
			return cached
		}
	}

	punts := s.PuntCategories()
	all := s.players.All()
	cards := make([]PlayerCard, 0, len(all))
	for _, p := range all {
		cards = append(cards, PlayerCard{
			Player:       p,
			Tier:         valuation.PlayerTier(p),
			Archetypes:   valuation.PlayerArchetypes(p),
			PuntAdjusted: valuation.PuntAdjustedValue(p, punts),
		})
	}

	if s.cache != nil {
		if err := s.cache.SetValuations(ctx, s.drafts.SessionID(), cards); err != nil {
			log.Printf("⚠️  Cache write failed: %v", err)
		}
	}
	return cards
}

// SearchPlayers finds players by partial name match.
func (s *AdvisorService) SearchPlayers(query string, limit int) []PlayerCard {
	punts := s.PuntCategories()
	matches := s.players.Search(query, limit)
	cards := make([]PlayerCard, 0, len(matches))
	for _, p := range matches {
		cards = append(cards, PlayerCard{
			Player:       p,
			Tier:         valuation.PlayerTier(p),
			Archetypes:   valuation.PlayerArchetypes(p),
			PuntAdjusted: valuation.PuntAdjustedValue(p, punts),
		})
	}
	return cards
}

// MyTeamAnalysis classifies the user's roster per category. Nil until
// the roster has at least one resolvable player.
func (s *AdvisorService) MyTeamAnalysis() *valuation.TeamCategories {
	return valuation.AnalyzeTeamCategories(s.drafts.Room().MyRosterIDs(), s.players)
}

// OpponentAnalysis classifies every opponent roster per category.
// Opponents with no drafted players map to nil.
func (s *AdvisorService) OpponentAnalysis() map[string]*valuation.TeamCategories {
	rosters := s.drafts.Room().OpponentRosters()
	out := make(map[string]*valuation.TeamCategories, len(rosters))
	for name, roster := range rosters {
		out[name] = valuation.AnalyzeTeamCategories(playerIDs(roster), s.players)
	}
	return out
}

// Matchup forecasts a head-to-head week against one opponent. The
// active punt categories are conceded.
func (s *AdvisorService) Matchup(opponentName string) (valuation.MatchupProjection, error) {
	rosters := s.drafts.Room().OpponentRosters()
	roster, ok := rosters[opponentName]
	if !ok {
		return valuation.MatchupProjection{}, fmt.Errorf("unknown opponent %q", opponentName)
	}

	mine := s.MyTeamAnalysis()
	theirs := valuation.AnalyzeTeamCategories(playerIDs(roster), s.players)

	var myStrength, oppStrength map[projections.Category]valuation.Strength
	if mine != nil {
		myStrength = mine.Strength
	}
	if theirs != nil {
		oppStrength = theirs.Strength
	}

	return valuation.ProjectMatchup(myStrength, oppStrength, s.PuntCategories()), nil
}

// PuntSuggestions scores every category as a punt candidate from the
// user's weaknesses, opponent commitments, and the remaining pool.
func (s *AdvisorService) PuntSuggestions() []valuation.PuntRecommendation {
	room := s.drafts.Room()

	var myStrength map[projections.Category]valuation.Strength
	if mine := s.MyTeamAnalysis(); mine != nil {
		myStrength = mine.Strength
	}

	var oppStrengths []map[projections.Category]valuation.Strength
	for _, tc := range s.OpponentAnalysis() {
		if tc != nil {
			oppStrengths = append(oppStrengths, tc.Strength)
		}
	}

	return valuation.RecommendPunts(myStrength, oppStrengths, room.Available(), room.DraftedPlayers(), s.policy)
}

// AdviseBid evaluates a live bid on a player against projected value
// and the slot-aware budget cap.
func (s *AdvisorService) AdviseBid(playerID, currentBid int) (BidAdvice, error) {
	p, ok := s.players.ByID(playerID)
	if !ok {
		return BidAdvice{}, fmt.Errorf("unknown player %d", playerID)
	}

	room := s.drafts.Room()
	maxBid := valuation.MaxBid(room.MyBudget(), room.MySlotsRemaining())
	needs := valuation.PositionNeeds(room.Settings(), room.MyRoster())

	sharpNeeds := 0
	for _, pos := range p.Positions() {
		if needs[pos] >= 0.5 {
			sharpNeeds++
		}
	}

	return BidAdvice{
		PlayerID:       playerID,
		CurrentBid:     currentBid,
		ProjectedValue: p.AuctionValue,
		MaxBid:         maxBid,
		RecommendedMax: valuation.RecommendedMaxBid(float64(p.AuctionValue), sharpNeeds >= 2, maxBid),
		Verdict:        valuation.AdviseBid(currentBid, float64(p.AuctionValue), maxBid),
	}, nil
}

// Recommendations ranks the remaining pool for the user's next
// nomination, cached per session until the next mutation.
func (s *AdvisorService) Recommendations(ctx context.Context) []valuation.Recommendation {
	if s.cache != nil {
		var cached []valuation.Recommendation
		if err := s.cache.GetRecommendations(ctx, s.drafts.SessionID(), &cached); err == nil {
			return cached
		}
	}

	room := s.drafts.Room()
	recs := valuation.RecommendPicks(
		room.Available(),
		room.MyRoster(),
		room.Settings(),
		s.PuntCategories(),
		valuation.TrackInflation(room.Sales()),
		room.DraftedCount(),
	)

	if s.cache != nil {
		if err := s.cache.SetRecommendations(ctx, s.drafts.SessionID(), recs); err != nil {
			log.Printf("⚠️  Cache write failed: %v", err)
		}
	}
	return recs
}

// MyRosterView resolves the user's roster into slots with budget state.
func (s *AdvisorService) MyRosterView() RosterView {
	room := s.drafts.Room()
	settings := room.Settings()
	roster := room.MyRoster()

	return RosterView{
		Slots:     valuation.AssignRosterSlots(settings, roster),
		OpenSlots: valuation.OpenSlotCount(settings, roster),
		Budget:    room.MyBudget(),
		MaxBid:    valuation.MaxBid(room.MyBudget(), room.MySlotsRemaining()),
	}
}

// PositionInflationReport summarizes sale inflation by position.
func (s *AdvisorService) PositionInflationReport() map[string]valuation.PositionInflation {
	return valuation.TrackInflation(s.drafts.Room().Sales())
}

func playerIDs(players []*projections.PlayerStat) []int {
	ids := make([]int, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.ID)
	}
	return ids
}
