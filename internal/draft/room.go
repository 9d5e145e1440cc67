// Package draft holds the authoritative in-memory state of one auction
// draft session. Every mutation runs under a single lock and applies
// all-or-nothing: a pick either fully lands (budget, roster, ledger) or
// leaves no trace. That rules out the double-spend window a nomination
// dialog otherwise opens when two confirms race.
package draft

import (
	"fmt"
	"sync"
	"time"

	"github.com/fortuna/courtside/internal/projections"
	"github.com/fortuna/courtside/internal/valuation"
)

// MyTeam is the reserved owner label for the user's own roster.
const MyTeam = "me"

// Pick is one resolved auction nomination.
type Pick struct {
	PlayerID       int       `json:"player_id"`
	Name           string    `json:"name"`
	Position       string    `json:"position"`
	ProjectedValue int       `json:"projected_value"` // auction value at draft time
	ActualPrice    int       `json:"actual_price"`
	DraftedBy      string    `json:"drafted_by"`
	DraftedAt      time.Time `json:"drafted_at"`
}

// Team tracks one opponent's remaining budget and winnings.
type Team struct {
	Name    string `json:"name"`
	Budget  int    `json:"budget"`
	Players []Pick `json:"players"`
}

// Room is a live draft session.
type Room struct {
	mu       sync.Mutex
	settings valuation.LeagueSettings
	store    *projections.Store

	myBudget  int
	myPicks   []Pick
	opponents map[string]*Team
	oppOrder  []string

	byPlayer map[int]*Pick
	picks    []Pick // league-wide, draft order
}

// NewRoom starts a draft session. The first configured team name is the
// user; the remaining teamCount-1 become opponents with full budgets.
func NewRoom(settings valuation.LeagueSettings, store *projections.Store) *Room {
	settings.Normalize()

	r := &Room{
		settings:  settings,
		store:     store,
		myBudget:  settings.BudgetPerTeam,
		opponents: make(map[string]*Team, settings.TeamCount-1),
		byPlayer:  make(map[int]*Pick),
	}

	for _, name := range settings.TeamNames[1:] {
		r.opponents[name] = &Team{Name: name, Budget: settings.BudgetPerTeam}
		r.oppOrder = append(r.oppOrder, name)
	}

	return r
}

// Settings returns the session's league settings.
func (r *Room) Settings() valuation.LeagueSettings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings
}

// Draft records a won nomination. Rejected outright when the player is
// unknown, already drafted (duplicate entries would silently corrupt
// every aggregate), the owner is unknown, or the price breaks the
// owner's slot-aware budget.
func (r *Room) Draft(playerID, price int, draftedBy string) (Pick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, ok := r.store.ByID(playerID)
	if !ok {
		return Pick{}, fmt.Errorf("unknown player id %d", playerID)
	}
	if existing, taken := r.byPlayer[playerID]; taken {
		return Pick{}, fmt.Errorf("%s already drafted by %s", player.Name, existing.DraftedBy)
	}
	if price < 1 {
		return Pick{}, fmt.Errorf("price must be at least $1, got $%d", price)
	}

	budget, rosterSize, err := r.teamState(draftedBy)
	if err != nil {
		return Pick{}, err
	}

	slotsRemaining := r.settings.TotalSlots() - rosterSize
	if maxBid := valuation.MaxBid(budget, slotsRemaining); price > maxBid {
		return Pick{}, fmt.Errorf("$%d exceeds %s's max bid of $%d", price, draftedBy, maxBid)
	}

	pick := Pick{
		PlayerID:       playerID,
		Name:           player.Name,
		Position:       player.Position,
		ProjectedValue: player.AuctionValue,
		ActualPrice:    price,
		DraftedBy:      draftedBy,
		DraftedAt:      time.Now().UTC(),
	}

	r.apply(pick)
	return pick, nil
}

// Edit re-attributes an existing pick to a new owner and/or price. The
// refund to the old owner and the charge to the new one happen as one
// step; if the new owner can't afford it, nothing changes.
func (r *Room) Edit(playerID int, newOwner string, newPrice int) (Pick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byPlayer[playerID]
	if !ok {
		return Pick{}, fmt.Errorf("player id %d has not been drafted", playerID)
	}
	if newPrice < 1 {
		return Pick{}, fmt.Errorf("price must be at least $1, got $%d", newPrice)
	}

	old := *existing
	r.unapply(old)

	budget, rosterSize, err := r.teamState(newOwner)
	if err != nil {
		r.apply(old) // restore, owner unknown
		return Pick{}, err
	}
	slotsRemaining := r.settings.TotalSlots() - rosterSize
	if maxBid := valuation.MaxBid(budget, slotsRemaining); newPrice > maxBid {
		r.apply(old)
		return Pick{}, fmt.Errorf("$%d exceeds %s's max bid of $%d", newPrice, newOwner, maxBid)
	}

	updated := old
	updated.DraftedBy = newOwner
	updated.ActualPrice = newPrice
	r.apply(updated)
	return updated, nil
}

// Remove deletes a pick and reverses all of its side effects: the
// owner's budget is refunded and the player returns to the pool.
func (r *Room) Remove(playerID int) (Pick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byPlayer[playerID]
	if !ok {
		return Pick{}, fmt.Errorf("player id %d has not been drafted", playerID)
	}

	removed := *existing
	r.unapply(removed)
	return removed, nil
}

// teamState returns the named owner's budget and current roster size.
func (r *Room) teamState(owner string) (budget, rosterSize int, err error) {
	if owner == MyTeam {
		return r.myBudget, len(r.myPicks), nil
	}
	team, ok := r.opponents[owner]
	if !ok {
		return 0, 0, fmt.Errorf("unknown team %q", owner)
	}
	return team.Budget, len(team.Players), nil
}

// apply commits a pick to every collection it touches. Caller holds mu.
func (r *Room) apply(pick Pick) {
	if pick.DraftedBy == MyTeam {
		r.myBudget -= pick.ActualPrice
		r.myPicks = append(r.myPicks, pick)
	} else if team, ok := r.opponents[pick.DraftedBy]; ok {
		team.Budget -= pick.ActualPrice
		team.Players = append(team.Players, pick)
	}

	r.picks = append(r.picks, pick)
	r.byPlayer[pick.PlayerID] = &r.picks[len(r.picks)-1]
}

// unapply reverses a committed pick. Caller holds mu.
func (r *Room) unapply(pick Pick) {
	if pick.DraftedBy == MyTeam {
		r.myBudget += pick.ActualPrice
		r.myPicks = removePick(r.myPicks, pick.PlayerID)
	} else if team, ok := r.opponents[pick.DraftedBy]; ok {
		team.Budget += pick.ActualPrice
		team.Players = removePick(team.Players, pick.PlayerID)
	}

	r.picks = removePick(r.picks, pick.PlayerID)
	delete(r.byPlayer, pick.PlayerID)
	r.reindex()
}

// reindex rebuilds byPlayer after the backing slice shifted. Caller
// holds mu.
func (r *Room) reindex() {
	for i := range r.picks {
		r.byPlayer[r.picks[i].PlayerID] = &r.picks[i]
	}
}

func removePick(picks []Pick, playerID int) []Pick {
	for i, p := range picks {
		if p.PlayerID == playerID {
			return append(picks[:i:i], picks[i+1:]...)
		}
	}
	return picks
}

// MyBudget returns the user's remaining budget.
func (r *Room) MyBudget() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.myBudget
}

// MyRosterIDs returns the player IDs on the user's roster, draft order.
func (r *Room) MyRosterIDs() []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]int, 0, len(r.myPicks))
	for _, p := range r.myPicks {
		ids = append(ids, p.PlayerID)
	}
	return ids
}

// MyRoster resolves the user's picks against the player store. Picks
// whose player has vanished from the snapshot are skipped.
func (r *Room) MyRoster() []*projections.PlayerStat {
	return r.resolve(r.MyRosterIDs())
}

// Opponents returns a deep snapshot of every opponent team, in the
// configured order.
func (r *Room) Opponents() []Team {
	r.mu.Lock()
	defer r.mu.Unlock()

	teams := make([]Team, 0, len(r.oppOrder))
	for _, name := range r.oppOrder {
		team := r.opponents[name]
		snapshot := Team{Name: team.Name, Budget: team.Budget}
		snapshot.Players = append(snapshot.Players, team.Players...)
		teams = append(teams, snapshot)
	}
	return teams
}

// OpponentRosters resolves every opponent's picks for matchup analysis,
// keyed by team name.
func (r *Room) OpponentRosters() map[string][]*projections.PlayerStat {
	rosters := make(map[string][]*projections.PlayerStat)
	for _, team := range r.Opponents() {
		ids := make([]int, 0, len(team.Players))
		for _, p := range team.Players {
			ids = append(ids, p.PlayerID)
		}
		rosters[team.Name] = r.resolve(ids)
	}
	return rosters
}

// Picks returns the league-wide pick ledger in draft order.
func (r *Room) Picks() []Pick {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Pick(nil), r.picks...)
}

// Lookup returns the recorded pick for a player, if any.
func (r *Room) Lookup(playerID int) (Pick, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.byPlayer[playerID]; ok {
		return *p, true
	}
	return Pick{}, false
}

// DraftedCount returns how many players have been drafted league-wide.
func (r *Room) DraftedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.picks)
}

// Available returns undrafted players in store order.
func (r *Room) Available() []*projections.PlayerStat {
	r.mu.Lock()
	taken := make(map[int]bool, len(r.byPlayer))
	for id := range r.byPlayer {
		taken[id] = true
	}
	r.mu.Unlock()

	var available []*projections.PlayerStat
	for _, p := range r.store.All() {
		if !taken[p.ID] {
			available = append(available, p)
		}
	}
	return available
}

// DraftedPlayers resolves every drafted pick against the store.
func (r *Room) DraftedPlayers() []*projections.PlayerStat {
	r.mu.Lock()
	ids := make([]int, 0, len(r.picks))
	for _, p := range r.picks {
		ids = append(ids, p.PlayerID)
	}
	r.mu.Unlock()
	return r.resolve(ids)
}

// Sales converts the pick ledger into inflation-tracking samples.
func (r *Room) Sales() []valuation.Sale {
	r.mu.Lock()
	defer r.mu.Unlock()

	sales := make([]valuation.Sale, 0, len(r.picks))
	for _, p := range r.picks {
		sales = append(sales, valuation.Sale{
			Position:       p.Position,
			ProjectedValue: float64(p.ProjectedValue),
			ActualPrice:    p.ActualPrice,
		})
	}
	return sales
}

// MySlotsRemaining returns how many roster slots the user still has to fill.
func (r *Room) MySlotsRemaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings.TotalSlots() - len(r.myPicks)
}

func (r *Room) resolve(ids []int) []*projections.PlayerStat {
	var players []*projections.PlayerStat
	for _, id := range ids {
		if p, ok := r.store.ByID(id); ok {
			players = append(players, p)
		}
	}
	return players
}
