package repository

import (
	"context"
	"fmt"

	"github.com/fortuna/courtside/internal/store"
)

// PickRepository handles persisted draft picks
type PickRepository struct {
	db *store.Database
}

// NewPickRepository creates a new pick repository
func NewPickRepository(db *store.Database) *PickRepository {
	return &PickRepository{db: db}
}

// Record inserts a pick for a session.
func (r *PickRepository) Record(ctx context.Context, pick *store.DraftPick) error {
	query := `
		INSERT INTO draft_picks
			(session_id, player_id, player_name, position, projected_value, actual_price, drafted_by, drafted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING pick_id, created_at
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		pick.SessionID, pick.PlayerID, pick.PlayerName, pick.Position,
		pick.ProjectedValue, pick.ActualPrice, pick.DraftedBy, pick.DraftedAt,
	).Scan(&pick.PickID, &pick.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting draft pick: %w", err)
	}

	return nil
}

// Reattribute moves a pick to a new owner/price in a single statement.
func (r *PickRepository) Reattribute(ctx context.Context, sessionID, playerID int, draftedBy string, actualPrice int) error {
	query := `
		UPDATE draft_picks
		SET drafted_by = $3, actual_price = $4
		WHERE session_id = $1 AND player_id = $2
	`

	result, err := r.db.DB().ExecContext(ctx, query, sessionID, playerID, draftedBy, actualPrice)
	if err != nil {
		return fmt.Errorf("updating draft pick: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("pick not found for player %d in session %d", playerID, sessionID)
	}

	return nil
}

// Delete removes a pick.
func (r *PickRepository) Delete(ctx context.Context, sessionID, playerID int) error {
	query := `DELETE FROM draft_picks WHERE session_id = $1 AND player_id = $2`

	result, err := r.db.DB().ExecContext(ctx, query, sessionID, playerID)
	if err != nil {
		return fmt.Errorf("deleting draft pick: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("pick not found for player %d in session %d", playerID, sessionID)
	}

	return nil
}

// GetBySession returns a session's picks in draft order.
func (r *PickRepository) GetBySession(ctx context.Context, sessionID int) ([]*store.DraftPick, error) {
	query := `
		SELECT pick_id, session_id, player_id, player_name, position,
			projected_value, actual_price, drafted_by, drafted_at, created_at
		FROM draft_picks
		WHERE session_id = $1
		ORDER BY drafted_at, pick_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying draft picks: %w", err)
	}
	defer rows.Close()

	var picks []*store.DraftPick
	for rows.Next() {
		pick := &store.DraftPick{}
		if err := rows.Scan(
			&pick.PickID, &pick.SessionID, &pick.PlayerID, &pick.PlayerName,
			&pick.Position, &pick.ProjectedValue, &pick.ActualPrice,
			&pick.DraftedBy, &pick.DraftedAt, &pick.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning draft pick: %w", err)
		}
		picks = append(picks, pick)
	}

	return picks, rows.Err()
}

// DeleteBySession wipes a session's picks (used when a draft restarts).
func (r *PickRepository) DeleteBySession(ctx context.Context, sessionID int) error {
	if _, err := r.db.DB().ExecContext(ctx, `DELETE FROM draft_picks WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("deleting session picks: %w", err)
	}
	return nil
}
