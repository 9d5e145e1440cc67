package scrape

import (
	"log"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fortuna/courtside/internal/projections"
)

// columnAliases maps sheet header spellings to canonical column names.
// The hosted sheet has drifted between header styles over the seasons.
var columnAliases = map[string]string{
	"RK":       "RANK",
	"RD":       "ROUND",
	"PLAYER":   "NAME",
	"TM":       "TEAM",
	"POSITION": "POS",
	"INJ":      "INJURY",
	"G":        "GP",
	"MPG":      "MIN",
	"3PTM":     "3PM",
	"USG%":     "USG",
}

// ParseSheet extracts player projection rows from the rendered sheet.
// The first table with a NAME (or PLAYER) header column wins.
func ParseSheet(doc *goquery.Document) ([]*projections.PlayerStat, error) {
	var players []*projections.PlayerStat

	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		header := parseHeader(table)
		if _, ok := header["NAME"]; !ok {
			return true // not the projections grid, keep looking
		}

		table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
			if p := parseRow(row, header); p != nil {
				players = append(players, p)
			}
		})
		return false
	})

	log.Printf("Parsed %d projection rows from sheet", len(players))
	return players, nil
}

// parseHeader maps canonical column names to cell indexes.
func parseHeader(table *goquery.Selection) map[string]int {
	header := make(map[string]int)

	table.Find("thead th, tr:first-child th").Each(func(i int, th *goquery.Selection) {
		name := strings.ToUpper(strings.TrimSpace(th.Text()))
		if alias, ok := columnAliases[name]; ok {
			name = alias
		}
		if name != "" {
			if _, seen := header[name]; !seen {
				header[name] = i
			}
		}
	})

	return header
}

// parseRow extracts one player from a table row. Rows without a name
// (section dividers, ad rows) are skipped.
func parseRow(row *goquery.Selection, header map[string]int) *projections.PlayerStat {
	cells := row.Find("td")
	if cells.Length() == 0 {
		return nil
	}

	cell := func(col string) string {
		i, ok := header[col]
		if !ok || i >= cells.Length() {
			return ""
		}
		return strings.TrimSpace(cells.Eq(i).Text())
	}
	num := func(col string) float64 {
		v, err := strconv.ParseFloat(strings.TrimSuffix(cell(col), "%"), 64)
		if err != nil {
			return 0
		}
		return v
	}
	// Shooting splits render both ways: "0.452" and "45.2%". Store
	// fractions, matching the CSV path and the league baselines.
	pct := func(col string) float64 {
		raw := cell(col)
		v, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
		if err != nil {
			return 0
		}
		if strings.HasSuffix(raw, "%") {
			v /= 100
		}
		return v
	}

	name := cell("NAME")
	if name == "" {
		return nil
	}

	p := &projections.PlayerStat{
		Name:        name,
		Team:        cell("TEAM"),
		Position:    cell("POS"),
		Rank:        int(num("RANK")),
		Round:       int(num("ROUND")),
		InjuryNote:  cell("INJURY"),
		GamesPlayed: num("GP"),
		Minutes:     num("MIN"),
		Points:      num("PTS"),
		Threes:      num("3PM"),
		Rebounds:    num("REB"),
		Assists:     num("AST"),
		Steals:      num("STL"),
		Blocks:      num("BLK"),
		FGPct:       pct("FG%"),
		FTPct:       pct("FT%"),
		Turnovers:   num("TO"),
		Usage:       num("USG"),
		Values:      make(map[projections.Category]float64, len(projections.Categories)),
	}
	p.SeasonEnding = projections.IsSeasonEnding(p.InjuryNote)

	// Value columns carry a V suffix, mirroring the CSV export.
	for cat, col := range map[projections.Category]string{
		projections.CatPoints:    "PTSV",
		projections.CatThrees:    "3PMV",
		projections.CatRebounds:  "REBV",
		projections.CatAssists:   "ASTV",
		projections.CatSteals:    "STLV",
		projections.CatBlocks:    "BLKV",
		projections.CatFGPct:     "FG%V",
		projections.CatFTPct:     "FT%V",
		projections.CatTurnovers: "TOV",
	} {
		p.Values[cat] = num(col)
	}

	return p
}
