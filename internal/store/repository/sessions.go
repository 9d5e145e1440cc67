package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/courtside/internal/store"
)

// SessionRepository handles draft-session data access
type SessionRepository struct {
	db *store.Database
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *store.Database) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new draft session and returns it with its ID.
func (r *SessionRepository) Create(ctx context.Context, name, settingsJSON string) (*store.DraftSession, error) {
	query := `
		INSERT INTO draft_sessions (name, settings, is_active)
		VALUES ($1, $2, true)
		RETURNING session_id, name, settings, is_active, notes, created_at, updated_at
	`

	session := &store.DraftSession{}
	err := r.db.DB().QueryRowContext(ctx, query, name, settingsJSON).Scan(
		&session.SessionID, &session.Name, &session.Settings,
		&session.IsActive, &session.Notes, &session.CreatedAt, &session.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting draft session: %w", err)
	}

	return session, nil
}

// GetByID finds a session by ID
func (r *SessionRepository) GetByID(ctx context.Context, sessionID int) (*store.DraftSession, error) {
	query := `
		SELECT session_id, name, settings, is_active, notes, created_at, updated_at
		FROM draft_sessions
		WHERE session_id = $1
	`

	session := &store.DraftSession{}
	err := r.db.DB().QueryRowContext(ctx, query, sessionID).Scan(
		&session.SessionID, &session.Name, &session.Settings,
		&session.IsActive, &session.Notes, &session.CreatedAt, &session.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("draft session not found: %d", sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying draft session: %w", err)
	}

	return session, nil
}

// GetActive returns the most recent active session, if any.
func (r *SessionRepository) GetActive(ctx context.Context) (*store.DraftSession, error) {
	query := `
		SELECT session_id, name, settings, is_active, notes, created_at, updated_at
		FROM draft_sessions
		WHERE is_active = true
		ORDER BY created_at DESC
		LIMIT 1
	`

	session := &store.DraftSession{}
	err := r.db.DB().QueryRowContext(ctx, query).Scan(
		&session.SessionID, &session.Name, &session.Settings,
		&session.IsActive, &session.Notes, &session.CreatedAt, &session.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil // no active session is not an error
	}
	if err != nil {
		return nil, fmt.Errorf("querying active session: %w", err)
	}

	return session, nil
}

// UpdateSettings stores a new settings blob for a session.
func (r *SessionRepository) UpdateSettings(ctx context.Context, sessionID int, settingsJSON string) error {
	query := `
		UPDATE draft_sessions
		SET settings = $2, updated_at = NOW()
		WHERE session_id = $1
	`

	result, err := r.db.DB().ExecContext(ctx, query, sessionID, settingsJSON)
	if err != nil {
		return fmt.Errorf("updating session settings: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("draft session not found: %d", sessionID)
	}

	return nil
}

// Close marks a session inactive.
func (r *SessionRepository) Close(ctx context.Context, sessionID int) error {
	query := `
		UPDATE draft_sessions
		SET is_active = false, updated_at = NOW()
		WHERE session_id = $1
	`

	if _, err := r.db.DB().ExecContext(ctx, query, sessionID); err != nil {
		return fmt.Errorf("closing session: %w", err)
	}
	return nil
}
