package store

import (
	"database/sql"
	"time"
)

// DraftSession is one persisted auction session.
type DraftSession struct {
	SessionID int            `json:"session_id" db:"session_id"`
	Name      string         `json:"name" db:"name"`
	Settings  string         `json:"settings" db:"settings"` // LeagueSettings as JSON
	IsActive  bool           `json:"is_active" db:"is_active"`
	Notes     sql.NullString `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// DraftPick is one persisted auction result.
type DraftPick struct {
	PickID         int       `json:"pick_id" db:"pick_id"`
	SessionID      int       `json:"session_id" db:"session_id"`
	PlayerID       int       `json:"player_id" db:"player_id"`
	PlayerName     string    `json:"player_name" db:"player_name"`
	Position       string    `json:"position" db:"position"`
	ProjectedValue int       `json:"projected_value" db:"projected_value"`
	ActualPrice    int       `json:"actual_price" db:"actual_price"`
	DraftedBy      string    `json:"drafted_by" db:"drafted_by"`
	DraftedAt      time.Time `json:"drafted_at" db:"drafted_at"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// ProjectionSnapshot groups one bulk load of player projections.
type ProjectionSnapshot struct {
	SnapshotID  int       `json:"snapshot_id" db:"snapshot_id"`
	Season      string    `json:"season" db:"season"`
	Source      string    `json:"source" db:"source"` // csv or sheet URL
	PlayerCount int       `json:"player_count" db:"player_count"`
	LoadedAt    time.Time `json:"loaded_at" db:"loaded_at"`
}

// ProjectionPlayer is one persisted projection row. The nine
// per-category value scores travel as a JSON blob alongside the raw
// per-game stats.
type ProjectionPlayer struct {
	ID           int            `json:"id" db:"id"`
	SnapshotID   int            `json:"snapshot_id" db:"snapshot_id"`
	PlayerID     int            `json:"player_id" db:"player_id"` // surrogate ID within the snapshot
	Name         string         `json:"name" db:"name"`
	Team         string         `json:"team" db:"team"`
	Position     string         `json:"position" db:"position"`
	Rank         int            `json:"rank" db:"rank"`
	Round        int            `json:"round" db:"round"`
	InjuryNote   sql.NullString `json:"injury_note,omitempty" db:"injury_note"`
	SeasonEnding bool           `json:"season_ending" db:"season_ending"`
	GamesPlayed  float64        `json:"games_played" db:"games_played"`
	Minutes      float64        `json:"minutes" db:"minutes"`
	Points       float64        `json:"points" db:"points"`
	Threes       float64        `json:"threes" db:"threes"`
	Rebounds     float64        `json:"rebounds" db:"rebounds"`
	Assists      float64        `json:"assists" db:"assists"`
	Steals       float64        `json:"steals" db:"steals"`
	Blocks       float64        `json:"blocks" db:"blocks"`
	FGPct        float64        `json:"fg_pct" db:"fg_pct"`
	FTPct        float64        `json:"ft_pct" db:"ft_pct"`
	Turnovers    float64        `json:"turnovers" db:"turnovers"`
	Usage        float64        `json:"usage" db:"usage"`
	Values       string         `json:"values" db:"value_scores"` // category -> value score, JSON
	AuctionValue sql.NullInt32  `json:"auction_value,omitempty" db:"auction_value"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
}

// ImportJob tracks one async projections import.
type ImportJob struct {
	JobID         int            `json:"job_id" db:"job_id"`
	Source        string         `json:"source" db:"source"`
	Season        string         `json:"season" db:"season"`
	Status        string         `json:"status" db:"status"` // queued, running, completed, failed
	StatusMessage sql.NullString `json:"status_message,omitempty" db:"status_message"`
	PlayerCount   sql.NullInt32  `json:"player_count,omitempty" db:"player_count"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	StartedAt     sql.NullTime   `json:"started_at,omitempty" db:"started_at"`
	FinishedAt    sql.NullTime   `json:"finished_at,omitempty" db:"finished_at"`
}
