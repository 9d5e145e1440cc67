package projections

import (
	"log"
	"strings"
	"sync"
)

// Store is the in-memory player record store. Players are loaded in bulk
// once per snapshot; the store assigns surrogate IDs and builds the only
// name lookup table in the system. Lookups elsewhere go through IDs.
type Store struct {
	mu      sync.RWMutex
	players []*PlayerStat
	byID    map[int]*PlayerStat
	byName  map[string]*PlayerStat
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		byID:   make(map[int]*PlayerStat),
		byName: make(map[string]*PlayerStat),
	}
}

// Load replaces the store contents with a fresh snapshot. Surrogate IDs
// are assigned in input order, so a stable source keeps IDs stable
// across reloads. Duplicate names keep the first occurrence in the name
// index and are logged.
func (s *Store) Load(players []*PlayerStat) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.players = make([]*PlayerStat, 0, len(players))
	s.byID = make(map[int]*PlayerStat, len(players))
	s.byName = make(map[string]*PlayerStat, len(players))

	AssignIDs(players)
	for _, p := range players {
		s.players = append(s.players, p)
		s.byID[p.ID] = p

		key := normalizeName(p.Name)
		if _, exists := s.byName[key]; exists {
			log.Printf("⚠️  duplicate player name in snapshot: %q (keeping first)", p.Name)
			continue
		}
		s.byName[key] = p
	}
}

// AssignIDs numbers players sequentially in input order, the same
// numbering Load applies. Freshly parsed players carry ID 0; number
// them before persisting a snapshot so the stored rows and the
// in-memory store agree on every surrogate ID.
func AssignIDs(players []*PlayerStat) {
	for i, p := range players {
		p.ID = i + 1
	}
}

// All returns the players in load order. The slice is shared; callers
// treat it as read-only.
func (s *Store) All() []*PlayerStat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.players
}

// Len returns the number of loaded players.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}

// ByID finds a player by surrogate ID.
func (s *Store) ByID(id int) (*PlayerStat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	return p, ok
}

// Resolve finds a player by case-insensitive name. This is the single
// place name matching happens; a miss is not an error, the caller
// excludes the player from aggregates.
func (s *Store) Resolve(name string) (*PlayerStat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byName[normalizeName(name)]
	return p, ok
}

// Search returns players whose name contains the query,
// case-insensitive, in load order.
func (s *Store) Search(query string, limit int) []*PlayerStat {
	q := normalizeName(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []*PlayerStat
	for _, p := range s.players {
		if strings.Contains(normalizeName(p.Name), q) {
			matches = append(matches, p)
			if limit > 0 && len(matches) >= limit {
				break
			}
		}
	}
	return matches
}

// normalizeName collapses a player name to a lookup key: lowercase,
// trimmed, punctuation stripped, inner whitespace collapsed.
func normalizeName(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastSpace := false
	for _, r := range lower {
		switch {
		case r == '.' || r == '\'' || r == ',':
			// skip punctuation (C.J. Watson == CJ Watson)
		case r == ' ' || r == '\t':
			if !lastSpace && b.Len() > 0 {
				b.WriteRune(' ')
				lastSpace = true
			}
		default:
			b.WriteRune(r)
			lastSpace = false
		}
	}
	return strings.TrimSpace(b.String())
}
