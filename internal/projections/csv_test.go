package projections_test

import (
	"math"
	"strings"
	"testing"

	"github.com/fortuna/courtside/internal/projections"
)

const sampleHeader = "RANK,ROUND,NAME,TEAM,POS,INJURY,GP,MIN,PTS,3PM,REB,AST,STL,BLK,FG%,FT%,TO,USG,PTSV,3PMV,REBV,ASTV,STLV,BLKV,FG%V,FT%V,TOV"

func TestParseCSVBasicRow(t *testing.T) {
	csv := sampleHeader + "\n" +
		"1,1,Nikola Jokic,DEN,C,,79,34.6,26.4,1.1,12.4,9.0,1.3,0.9,58.3%,81.7%,3.0,29.1,6.1,0.2,8.9,8.2,1.4,1.1,5.6,2.1,-2.4\n"

	players, err := projections.ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(players) != 1 {
		t.Fatalf("got %d players, want 1", len(players))
	}

	p := players[0]
	if p.Name != "Nikola Jokic" || p.Team != "DEN" || p.Position != "C" {
		t.Errorf("identity = %q %q %q", p.Name, p.Team, p.Position)
	}
	if p.Rank != 1 || p.Round != 1 {
		t.Errorf("rank/round = %d/%d, want 1/1", p.Rank, p.Round)
	}
	if p.Points != 26.4 {
		t.Errorf("Points = %v, want 26.4", p.Points)
	}
	if p.FGPct != 0.583 {
		t.Errorf("FGPct = %v, want 0.583 (%%-formatted cell scaled to a fraction)", p.FGPct)
	}
	if got := p.Value(projections.CatPoints); got != 6.1 {
		t.Errorf("points value = %v, want 6.1", got)
	}
	if got := p.Value(projections.CatTurnovers); got != -2.4 {
		t.Errorf("turnovers value = %v, want -2.4", got)
	}
	if p.SeasonEnding {
		t.Error("healthy player flagged season-ending")
	}
}

func TestParseCSVShootingPercentFormats(t *testing.T) {
	// Exports render shooting splits both ways; either spelling must
	// land on the fractional scale the league baselines use.
	csv := sampleHeader + "\n" +
		"1,1,Fraction Guy,DEN,C,,79,34,26,1,12,9,1,1,0.452,0.817,3,29,6,0,8,8,1,1,5,2,-2\n" +
		"2,1,Percent Guy,LAL,PG,,70,36,28,3,8,8,1,1,45.2%,81.7%,3,33,7,3,4,7,1,0,1,1,-3\n"

	players, err := projections.ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("got %d players, want 2", len(players))
	}

	for _, p := range players {
		if math.Abs(p.FGPct-0.452) > 1e-9 {
			t.Errorf("%s: FGPct = %v, want 0.452", p.Name, p.FGPct)
		}
		if math.Abs(p.FTPct-0.817) > 1e-9 {
			t.Errorf("%s: FTPct = %v, want 0.817", p.Name, p.FTPct)
		}
	}
}

func TestParseCSVSeasonEndingInjury(t *testing.T) {
	tests := []struct {
		note string
		want bool
	}{
		{"", false},
		{"day-to-day (ankle)", false},
		{"Out for season (achilles)", true},
		{"season-ending knee surgery", true},
		{"Torn ACL", true},
	}

	for _, tt := range tests {
		csv := sampleHeader + "\n" +
			"10,2,Test Player,BOS,SF," + tt.note + ",70,30,15,2,5,3,1,0.5,45%,80%,2,20,1,1,1,1,1,1,1,1,-1\n"

		players, err := projections.ParseCSV(strings.NewReader(csv))
		if err != nil {
			t.Fatalf("ParseCSV(%q): %v", tt.note, err)
		}
		if got := players[0].SeasonEnding; got != tt.want {
			t.Errorf("SeasonEnding(%q) = %v, want %v", tt.note, got, tt.want)
		}
	}
}

func TestParseCSVSkipsNamelessRows(t *testing.T) {
	csv := sampleHeader + "\n" +
		"1,1,,DEN,C,,79,34,26,1,12,9,1,1,58%,81%,3,29,6,0,8,8,1,1,5,2,-2\n" +
		"2,1,Luka Doncic,LAL,PG,,70,36,28,3,8,8,1.4,0.5,49%,78%,3.6,33,7,3,4,7,1.5,0.3,1,1,-3\n"

	players, err := projections.ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(players) != 1 {
		t.Fatalf("got %d players, want 1 (nameless row skipped)", len(players))
	}
	if players[0].Name != "Luka Doncic" {
		t.Errorf("kept %q, want Luka Doncic", players[0].Name)
	}
}

func TestParseCSVBadNumericCellReadsZero(t *testing.T) {
	csv := sampleHeader + "\n" +
		"1,1,Test Player,DEN,C,,79,34,n/a,1,12,9,1,1,58%,81%,3,29,#REF!,0,8,8,1,1,5,2,-2\n"

	players, err := projections.ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(players) != 1 {
		t.Fatalf("got %d players, want 1 (bad cell never drops a player)", len(players))
	}
	if players[0].Points != 0 {
		t.Errorf("Points = %v, want 0 for unparsable cell", players[0].Points)
	}
	if got := players[0].Value(projections.CatPoints); got != 0 {
		t.Errorf("points value = %v, want 0 for unparsable cell", got)
	}
}

func TestParseCSVToleratesRaggedRows(t *testing.T) {
	// Trailing columns cut off mid-row.
	csv := sampleHeader + "\n" +
		"5,1,Short Row,PHI,PF,,70,33,22\n"

	players, err := projections.ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(players) != 1 {
		t.Fatalf("got %d players, want 1", len(players))
	}
	if players[0].Points != 22 {
		t.Errorf("Points = %v, want 22", players[0].Points)
	}
	if players[0].Rebounds != 0 {
		t.Errorf("Rebounds = %v, want 0 for missing column", players[0].Rebounds)
	}
}

func TestParseCSVMissingNameHeader(t *testing.T) {
	csv := "RANK,TEAM,POS\n1,DEN,C\n"

	if _, err := projections.ParseCSV(strings.NewReader(csv)); err == nil {
		t.Fatal("expected error for header without NAME column")
	}
}

func TestParseCSVHeaderCaseInsensitive(t *testing.T) {
	csv := "rank,round,name,team,pos,injury,gp,min,pts,3pm,reb,ast,stl,blk,fg%,ft%,to,usg,ptsv,3pmv,rebv,astv,stlv,blkv,fg%v,ft%v,tov\n" +
		"3,1,Anthony Davis,DAL,PF/C,,65,34,24,0.5,11,3,1.2,2.3,55%,79%,2,28,5,0,7,1,1,6,3,1,-1\n"

	players, err := projections.ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(players) != 1 || players[0].Name != "Anthony Davis" {
		t.Fatalf("lowercase header not matched")
	}
	if got := players[0].Positions(); len(got) != 2 || got[0] != "PF" || got[1] != "C" {
		t.Errorf("Positions() = %v, want [PF C]", got)
	}
}
