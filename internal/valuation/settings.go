package valuation

import (
	"fmt"
	"strings"

	"github.com/fortuna/courtside/internal/projections"
)

// Roster slot vocabulary. Anything else in a roster string is treated
// as an exact-match positional slot.
const (
	SlotGuard   = "G"
	SlotForward = "F"
	SlotUtil    = "Util"
	SlotBench   = "BN"
	SlotIL      = "IL"
	SlotILPlus  = "IL+"
)

// DefaultRosterPositions is the standard 13-slot auction roster.
const DefaultRosterPositions = "PG,SG,SF,PF,C,G,F,Util,Util,BN,BN,BN,IL"

// LeagueSettings configures every valuation computation. It is passed
// explicitly into each function rather than held as shared state.
type LeagueSettings struct {
	ScoringType     string                 `json:"scoring_type"`
	RosterPositions string                 `json:"roster_positions"` // comma-delimited slot list
	StatCategories  []projections.Category `json:"stat_categories"`
	TeamCount       int                    `json:"team_count"`
	BudgetPerTeam   int                    `json:"budget_per_team"`
	BidTime         int                    `json:"bid_time"`
	NominationTime  int                    `json:"nomination_time"`
	TeamNames       []string               `json:"team_names"`
}

// DefaultSettings returns a standard 10-team, $200 9-cat league.
func DefaultSettings() LeagueSettings {
	s := LeagueSettings{
		ScoringType:     "head-to-head-categories",
		RosterPositions: DefaultRosterPositions,
		StatCategories:  append([]projections.Category(nil), projections.Categories...),
		TeamCount:       10,
		BudgetPerTeam:   200,
		BidTime:         30,
		NominationTime:  60,
	}
	s.Normalize()
	return s
}

// Normalize repairs derived fields after an edit. The team-name list is
// padded or truncated so its length always equals TeamCount.
func (s *LeagueSettings) Normalize() {
	if s.TeamCount < 2 {
		s.TeamCount = 2
	}
	if s.BudgetPerTeam < 1 {
		s.BudgetPerTeam = 1
	}
	if len(s.StatCategories) == 0 {
		s.StatCategories = append([]projections.Category(nil), projections.Categories...)
	}

	for len(s.TeamNames) < s.TeamCount {
		s.TeamNames = append(s.TeamNames, fmt.Sprintf("Team %d", len(s.TeamNames)+1))
	}
	s.TeamNames = s.TeamNames[:s.TeamCount]
}

// Slots parses the roster-position string into an ordered slot list.
func (s *LeagueSettings) Slots() []string {
	parts := strings.Split(s.RosterPositions, ",")
	slots := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			slots = append(slots, trimmed)
		}
	}
	return slots
}

// TotalSlots returns the roster size implied by the slot list.
func (s *LeagueSettings) TotalSlots() int {
	return len(s.Slots())
}

// isBenchOrIL reports whether a slot holds non-starters.
func isBenchOrIL(slot string) bool {
	return slot == SlotBench || slot == SlotIL || slot == SlotILPlus
}
