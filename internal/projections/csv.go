package projections

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

// Expected CSV header names, matched case-insensitively. Per-category
// value columns carry a "V" suffix (e.g. "PTSV" is the standardized
// points contribution, "PTS" the raw per-game average).
var csvColumns = []string{
	"RANK", "ROUND", "NAME", "TEAM", "POS", "INJURY",
	"GP", "MIN", "PTS", "3PM", "REB", "AST", "STL", "BLK",
	"FG%", "FT%", "TO", "USG",
	"PTSV", "3PMV", "REBV", "ASTV", "STLV", "BLKV", "FG%V", "FT%V", "TOV",
}

// valueColumns maps scored categories to their CSV value-column names.
var valueColumns = map[Category]string{
	CatPoints:    "PTSV",
	CatThrees:    "3PMV",
	CatRebounds:  "REBV",
	CatAssists:   "ASTV",
	CatSteals:    "STLV",
	CatBlocks:    "BLKV",
	CatFGPct:     "FG%V",
	CatFTPct:     "FT%V",
	CatTurnovers: "TOV",
}

// LoadCSVFile parses a projections spreadsheet export from disk.
func LoadCSVFile(path string) ([]*PlayerStat, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening projections file: %w", err)
	}
	defer f.Close()

	return ParseCSV(f)
}

// ParseCSV parses the spreadsheet-like projections source. Rows with a
// missing name are skipped; unparsable numeric cells read as 0 so one
// bad cell never drops a player.
func ParseCSV(r io.Reader) ([]*PlayerStat, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading projections header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToUpper(strings.TrimSpace(name))] = i
	}
	if _, ok := index["NAME"]; !ok {
		return nil, fmt.Errorf("projections header missing NAME column")
	}

	var players []*PlayerStat
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			log.Printf("⚠️  skipping projections row %d: %v", line, err)
			continue
		}

		field := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		num := func(col string) float64 {
			v, err := strconv.ParseFloat(strings.TrimSuffix(field(col), "%"), 64)
			if err != nil {
				return 0
			}
			return v
		}
		// Shooting splits come through both ways: "0.452" and "45.2%".
		// Store fractions, matching the league-average baselines.
		pct := func(col string) float64 {
			raw := field(col)
			v, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
			if err != nil {
				return 0
			}
			if strings.HasSuffix(raw, "%") {
				v /= 100
			}
			return v
		}

		name := field("NAME")
		if name == "" {
			continue
		}

		p := &PlayerStat{
			Name:         name,
			Team:         field("TEAM"),
			Position:     field("POS"),
			Rank:         int(num("RANK")),
			Round:        int(num("ROUND")),
			InjuryNote:   field("INJURY"),
			SeasonEnding: IsSeasonEnding(field("INJURY")),
			GamesPlayed:  num("GP"),
			Minutes:      num("MIN"),
			Points:       num("PTS"),
			Threes:       num("3PM"),
			Rebounds:     num("REB"),
			Assists:      num("AST"),
			Steals:       num("STL"),
			Blocks:       num("BLK"),
			FGPct:        pct("FG%"),
			FTPct:        pct("FT%"),
			Turnovers:    num("TO"),
			Usage:        num("USG"),
			Values:       make(map[Category]float64, len(Categories)),
		}
		for cat, col := range valueColumns {
			p.Values[cat] = num(col)
		}

		players = append(players, p)
	}

	return players, nil
}

// IsSeasonEnding flags injury notes that rule a player out for the year.
func IsSeasonEnding(note string) bool {
	lower := strings.ToLower(note)
	return strings.Contains(lower, "out for season") ||
		strings.Contains(lower, "season-ending") ||
		strings.Contains(lower, "torn acl")
}
