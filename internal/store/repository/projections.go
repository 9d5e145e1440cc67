package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/fortuna/courtside/internal/projections"
	"github.com/fortuna/courtside/internal/store"
)

// ProjectionRepository persists projection snapshots
type ProjectionRepository struct {
	db *store.Database
}

// NewProjectionRepository creates a new projection repository
func NewProjectionRepository(db *store.Database) *ProjectionRepository {
	return &ProjectionRepository{db: db}
}

// SaveSnapshot persists a full projections load in one transaction.
func (r *ProjectionRepository) SaveSnapshot(ctx context.Context, season, source string, players []*projections.PlayerStat) (*store.ProjectionSnapshot, error) {
	// Freshly parsed players carry ID 0; number them here so every row
	// gets a distinct player_id matching the surrogate ID the store
	// assigns on load.
	projections.AssignIDs(players)

	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	snapshot := &store.ProjectionSnapshot{Season: season, Source: source, PlayerCount: len(players)}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO projection_snapshots (season, source, player_count)
		VALUES ($1, $2, $3)
		RETURNING snapshot_id, loaded_at
	`, season, source, len(players)).Scan(&snapshot.SnapshotID, &snapshot.LoadedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting snapshot: %w", err)
	}

	insert := `
		INSERT INTO projection_players
			(snapshot_id, player_id, name, team, position, rank, round,
			injury_note, season_ending, games_played, minutes, points, threes,
			rebounds, assists, steals, blocks, fg_pct, ft_pct, turnovers, usage, value_scores)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`
	for _, p := range players {
		valuesJSON, err := json.Marshal(p.Values)
		if err != nil {
			return nil, fmt.Errorf("encoding values for %s: %w", p.Name, err)
		}

		if _, err := tx.ExecContext(ctx, insert,
			snapshot.SnapshotID, p.ID, p.Name, p.Team, p.Position, p.Rank, p.Round,
			nullString(p.InjuryNote), p.SeasonEnding, p.GamesPlayed, p.Minutes,
			p.Points, p.Threes, p.Rebounds, p.Assists, p.Steals, p.Blocks,
			p.FGPct, p.FTPct, p.Turnovers, p.Usage, string(valuesJSON),
		); err != nil {
			return nil, fmt.Errorf("inserting projection row for %s: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing snapshot: %w", err)
	}

	return snapshot, nil
}

// LatestSnapshot returns the newest snapshot for a season, or nil.
func (r *ProjectionRepository) LatestSnapshot(ctx context.Context, season string) (*store.ProjectionSnapshot, error) {
	query := `
		SELECT snapshot_id, season, source, player_count, loaded_at
		FROM projection_snapshots
		WHERE season = $1
		ORDER BY loaded_at DESC
		LIMIT 1
	`

	snapshot := &store.ProjectionSnapshot{}
	err := r.db.DB().QueryRowContext(ctx, query, season).Scan(
		&snapshot.SnapshotID, &snapshot.Season, &snapshot.Source,
		&snapshot.PlayerCount, &snapshot.LoadedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest snapshot: %w", err)
	}

	return snapshot, nil
}

// LoadSnapshot rebuilds the in-memory player list from a snapshot.
func (r *ProjectionRepository) LoadSnapshot(ctx context.Context, snapshotID int) ([]*projections.PlayerStat, error) {
	query := `
		SELECT player_id, name, team, position, rank, round, injury_note,
			season_ending, games_played, minutes, points, threes, rebounds,
			assists, steals, blocks, fg_pct, ft_pct, turnovers, usage, value_scores
		FROM projection_players
		WHERE snapshot_id = $1
		ORDER BY player_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("querying projection rows: %w", err)
	}
	defer rows.Close()

	var players []*projections.PlayerStat
	for rows.Next() {
		p := &projections.PlayerStat{}
		var injuryNote sql.NullString
		var valuesJSON string

		if err := rows.Scan(
			&p.ID, &p.Name, &p.Team, &p.Position, &p.Rank, &p.Round, &injuryNote,
			&p.SeasonEnding, &p.GamesPlayed, &p.Minutes, &p.Points, &p.Threes,
			&p.Rebounds, &p.Assists, &p.Steals, &p.Blocks, &p.FGPct, &p.FTPct,
			&p.Turnovers, &p.Usage, &valuesJSON,
		); err != nil {
			return nil, fmt.Errorf("scanning projection row: %w", err)
		}

		p.InjuryNote = injuryNote.String
		p.Values = make(map[projections.Category]float64)
		if err := json.Unmarshal([]byte(valuesJSON), &p.Values); err != nil {
			return nil, fmt.Errorf("decoding values for %s: %w", p.Name, err)
		}

		players = append(players, p)
	}

	return players, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
