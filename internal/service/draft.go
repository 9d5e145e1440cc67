package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/fortuna/courtside/internal/cache"
	"github.com/fortuna/courtside/internal/draft"
	"github.com/fortuna/courtside/internal/projections"
	"github.com/fortuna/courtside/internal/publisher"
	"github.com/fortuna/courtside/internal/store"
	"github.com/fortuna/courtside/internal/store/repository"
	"github.com/fortuna/courtside/internal/valuation"
)

// DraftService owns the live draft room and keeps Postgres, the Redis
// cache, and the event stream in step with it. The room is the source
// of truth for validation; a pick only persists after the room accepts
// it, and a persistence failure rolls the room back.
type DraftService struct {
	room      *draft.Room
	sessionID int
	players   *projections.Store

	sessions *repository.SessionRepository
	picks    *repository.PickRepository
	cache    *cache.RedisCache
	events   *publisher.RedisStreamPublisher

	// OnEvent, when set, receives every confirmed draft event for
	// local fan-out (the WebSocket hub).
	OnEvent func(draft.Event)
}

// NewDraftService creates a draft service. cache and events may be nil
// in tests; degraded paths log and continue.
func NewDraftService(db *store.Database, rc *cache.RedisCache, events *publisher.RedisStreamPublisher, players *projections.Store) *DraftService {
	return &DraftService{
		players:  players,
		sessions: repository.NewSessionRepository(db),
		picks:    repository.NewPickRepository(db),
		cache:    rc,
		events:   events,
	}
}

// Room returns the live draft room. Nil before a session is opened.
func (s *DraftService) Room() *draft.Room {
	return s.room
}

// SessionID returns the persisted session id, 0 before a session opens.
func (s *DraftService) SessionID() int {
	return s.sessionID
}

// OpenSession resumes the active persisted session, or creates a fresh
// one with the given settings when none is active.
func (s *DraftService) OpenSession(ctx context.Context, name string, settings valuation.LeagueSettings) error {
	settings.Normalize()

	active, err := s.sessions.GetActive(ctx)
	if err != nil {
		return fmt.Errorf("looking up active session: %w", err)
	}

	if active == nil {
		settingsJSON, err := json.Marshal(settings)
		if err != nil {
			return fmt.Errorf("encoding settings: %w", err)
		}
		created, err := s.sessions.Create(ctx, name, string(settingsJSON))
		if err != nil {
			return fmt.Errorf("creating session: %w", err)
		}
		s.sessionID = created.SessionID
		s.room = draft.NewRoom(settings, s.players)
		log.Printf("✓ Draft session %d (%s) created", created.SessionID, name)
		return nil
	}

	var stored valuation.LeagueSettings
	if err := json.Unmarshal([]byte(active.Settings), &stored); err != nil {
		return fmt.Errorf("decoding stored settings: %w", err)
	}
	stored.Normalize()

	room := draft.NewRoom(stored, s.players)
	picks, err := s.picks.GetBySession(ctx, active.SessionID)
	if err != nil {
		return fmt.Errorf("loading picks: %w", err)
	}
	for _, p := range picks {
		if _, err := room.Draft(p.PlayerID, p.ActualPrice, p.DraftedBy); err != nil {
			log.Printf("⚠️  Skipping stored pick %s: %v", p.PlayerName, err)
		}
	}

	s.sessionID = active.SessionID
	s.room = room
	log.Printf("✓ Draft session %d resumed with %d picks", active.SessionID, room.DraftedCount())
	return nil
}

// DraftPlayer records a winning bid. The room validates and applies
// first; if the database insert fails the pick is removed again so
// memory and disk never diverge.
func (s *DraftService) DraftPlayer(ctx context.Context, playerID, price int, draftedBy string) (draft.Pick, error) {
	pick, err := s.room.Draft(playerID, price, draftedBy)
	if err != nil {
		return draft.Pick{}, err
	}

	row := &store.DraftPick{
		SessionID:      s.sessionID,
		PlayerID:       pick.PlayerID,
		PlayerName:     pick.Name,
		Position:       pick.Position,
		ProjectedValue: pick.ProjectedValue,
		ActualPrice:    pick.ActualPrice,
		DraftedBy:      pick.DraftedBy,
		DraftedAt:      pick.DraftedAt,
	}
	if err := s.picks.Record(ctx, row); err != nil {
		if _, rbErr := s.room.Remove(playerID); rbErr != nil {
			log.Printf("⚠️  Rollback of pick %d failed: %v", playerID, rbErr)
		}
		return draft.Pick{}, fmt.Errorf("persisting pick: %w", err)
	}

	s.afterMutation(ctx, draft.NewEvent(draft.EventPlayerDrafted, &pick))
	return pick, nil
}

// EditPick moves a recorded pick to a different owner or price.
func (s *DraftService) EditPick(ctx context.Context, playerID int, newOwner string, newPrice int) (draft.Pick, error) {
	prev, ok := s.room.Lookup(playerID)
	if !ok {
		return draft.Pick{}, fmt.Errorf("player %d has not been drafted", playerID)
	}

	pick, err := s.room.Edit(playerID, newOwner, newPrice)
	if err != nil {
		return draft.Pick{}, err
	}

	if err := s.picks.Reattribute(ctx, s.sessionID, playerID, newOwner, newPrice); err != nil {
		if _, rbErr := s.room.Edit(playerID, prev.DraftedBy, prev.ActualPrice); rbErr != nil {
			log.Printf("⚠️  Rollback of edit %d failed: %v", playerID, rbErr)
		}
		return draft.Pick{}, fmt.Errorf("persisting edit: %w", err)
	}

	s.afterMutation(ctx, draft.NewEvent(draft.EventPickEdited, &pick))
	return pick, nil
}

// RemovePick reverses a recorded pick, refunding the owner.
func (s *DraftService) RemovePick(ctx context.Context, playerID int) (draft.Pick, error) {
	pick, err := s.room.Remove(playerID)
	if err != nil {
		return draft.Pick{}, err
	}

	if err := s.picks.Delete(ctx, s.sessionID, playerID); err != nil {
		if _, rbErr := s.room.Draft(pick.PlayerID, pick.ActualPrice, pick.DraftedBy); rbErr != nil {
			log.Printf("⚠️  Rollback of removal %d failed: %v", playerID, rbErr)
		}
		return draft.Pick{}, fmt.Errorf("persisting removal: %w", err)
	}

	s.afterMutation(ctx, draft.NewEvent(draft.EventPickRemoved, &pick))
	return pick, nil
}

// UpdateSettings replaces the league settings and rebuilds the room by
// replaying every recorded pick under the new rules. A pick the new
// settings reject aborts the change.
func (s *DraftService) UpdateSettings(ctx context.Context, settings valuation.LeagueSettings) error {
	settings.Normalize()

	room := draft.NewRoom(settings, s.players)
	for _, p := range s.room.Picks() {
		if _, err := room.Draft(p.PlayerID, p.ActualPrice, p.DraftedBy); err != nil {
			return fmt.Errorf("pick %s conflicts with new settings: %w", p.Name, err)
		}
	}

	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := s.sessions.UpdateSettings(ctx, s.sessionID, string(settingsJSON)); err != nil {
		return fmt.Errorf("persisting settings: %w", err)
	}

	s.room = room
	s.afterMutation(ctx, draft.NewEvent(draft.EventSettingsReset, nil))
	return nil
}

// CloseSession marks the session inactive.
func (s *DraftService) CloseSession(ctx context.Context) error {
	if err := s.sessions.Close(ctx, s.sessionID); err != nil {
		return fmt.Errorf("closing session: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.InvalidateSession(ctx, s.sessionID); err != nil {
			log.Printf("⚠️  Cache invalidation failed: %v", err)
		}
	}
	return nil
}

func (s *DraftService) afterMutation(ctx context.Context, event draft.Event) {
	if s.cache != nil {
		if err := s.cache.InvalidateSession(ctx, s.sessionID); err != nil {
			log.Printf("⚠️  Cache invalidation failed: %v", err)
		}
	}
	if s.events != nil {
		if err := s.events.PublishDraftEvent(ctx, s.sessionID, event); err != nil {
			log.Printf("⚠️  Event publish failed: %v", err)
		}
	}
	if s.OnEvent != nil {
		s.OnEvent(event)
	}
}
