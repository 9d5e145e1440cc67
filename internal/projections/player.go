package projections

import "strings"

// Category identifies one of the nine scored fantasy categories. The
// identifiers are shared by PlayerStat value fields, league settings,
// and the valuation weight tables, and must never drift apart.
type Category string

const (
	CatPoints    Category = "pts"
	CatThrees    Category = "3pm"
	CatRebounds  Category = "reb"
	CatAssists   Category = "ast"
	CatSteals    Category = "stl"
	CatBlocks    Category = "blk"
	CatFGPct     Category = "fg%"
	CatFTPct     Category = "ft%"
	CatTurnovers Category = "to"
)

// Categories lists every scored category in display order.
var Categories = []Category{
	CatPoints, CatThrees, CatRebounds, CatAssists, CatSteals,
	CatBlocks, CatFGPct, CatFTPct, CatTurnovers,
}

// PlayerStat is one player's season-projection snapshot. The ID is a
// surrogate key assigned at load time; all draft state references
// players by ID, never by name.
type PlayerStat struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Team     string `json:"team"`
	Position string `json:"position"` // single or slash-delimited, e.g. "PG/SG"

	Rank         int    `json:"rank"`
	Round        int    `json:"round"`
	InjuryNote   string `json:"injury_note,omitempty"`
	SeasonEnding bool   `json:"season_ending"`

	GamesPlayed float64 `json:"games_played"`
	Minutes     float64 `json:"minutes"`
	Points      float64 `json:"points"`
	Threes      float64 `json:"threes"`
	Rebounds    float64 `json:"rebounds"`
	Assists     float64 `json:"assists"`
	Steals      float64 `json:"steals"`
	Blocks      float64 `json:"blocks"`
	FGPct       float64 `json:"fg_pct"`
	FTPct       float64 `json:"ft_pct"`
	Turnovers   float64 `json:"turnovers"`
	Usage       float64 `json:"usage"`

	// Per-category standardized value contributions.
	Values map[Category]float64 `json:"values"`

	// AuctionValue is 0 until computed; computed values are always >= 1.
	AuctionValue int `json:"auction_value,omitempty"`
}

// Value returns the player's standardized contribution in one category.
func (p *PlayerStat) Value(c Category) float64 {
	return p.Values[c]
}

// TotalValue sums the nine per-category value contributions.
func (p *PlayerStat) TotalValue() float64 {
	var total float64
	for _, c := range Categories {
		total += p.Values[c]
	}
	return total
}

// Raw returns the per-game stat behind a scored category.
func (p *PlayerStat) Raw(c Category) float64 {
	switch c {
	case CatPoints:
		return p.Points
	case CatThrees:
		return p.Threes
	case CatRebounds:
		return p.Rebounds
	case CatAssists:
		return p.Assists
	case CatSteals:
		return p.Steals
	case CatBlocks:
		return p.Blocks
	case CatFGPct:
		return p.FGPct
	case CatFTPct:
		return p.FTPct
	case CatTurnovers:
		return p.Turnovers
	}
	return 0
}

// Positions splits a slash-delimited position string into its parts.
func (p *PlayerStat) Positions() []string {
	parts := strings.Split(p.Position, "/")
	positions := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			positions = append(positions, trimmed)
		}
	}
	return positions
}
