package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fortuna/courtside/internal/service"
	"github.com/fortuna/courtside/internal/store"
	"github.com/fortuna/courtside/internal/valuation"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db      *store.Database
	drafts  *service.DraftService
	advisor *service.AdvisorService
}

// NewHandler creates a new handler
func NewHandler(db *store.Database, drafts *service.DraftService, advisor *service.AdvisorService) *Handler {
	return &Handler{
		db:      db,
		drafts:  drafts,
		advisor: advisor,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if err := h.db.HealthCheck(); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, code, map[string]interface{}{
		"status":  status,
		"service": "courtside",
		"session": h.drafts.SessionID(),
	})
}

// GetSettings returns the active league settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.drafts.Room().Settings())
}

// UpdateSettings replaces the league settings and replays the draft
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings valuation.LeagueSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.drafts.UpdateSettings(r.Context(), settings); err != nil {
		respondError(w, http.StatusConflict, "Failed to update settings", err)
		return
	}

	h.advisor.RefreshValues()
	respondJSON(w, http.StatusOK, h.drafts.Room().Settings())
}

// GetPlayers returns the full pool with values, tiers, and archetypes.
// ?available=true filters to undrafted players.
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	cards := h.advisor.PlayerCards(r.Context())

	if r.URL.Query().Get("available") == "true" {
		drafted := make(map[int]bool)
		for _, p := range h.drafts.Room().Picks() {
			drafted[p.PlayerID] = true
		}
		filtered := cards[:0]
		for _, c := range cards {
			if !drafted[c.Player.ID] {
				filtered = append(filtered, c)
			}
		}
		cards = filtered
	}

	respondJSON(w, http.StatusOK, cards)
}

// SearchPlayers finds players by partial name
func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "Missing query parameter 'q'", nil)
		return
	}

	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	respondJSON(w, http.StatusOK, h.advisor.SearchPlayers(query, limit))
}

// GetPlayer returns one player card by id
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	playerID, ok := pathInt(w, r, "playerID")
	if !ok {
		return
	}

	for _, c := range h.advisor.PlayerCards(r.Context()) {
		if c.Player.ID == playerID {
			respondJSON(w, http.StatusOK, c)
			return
		}
	}

	respondError(w, http.StatusNotFound, "Player not found", nil)
}

// GetBidAdvice evaluates ?bid=N on a player
func (h *Handler) GetBidAdvice(w http.ResponseWriter, r *http.Request) {
	playerID, ok := pathInt(w, r, "playerID")
	if !ok {
		return
	}

	bid, err := strconv.Atoi(r.URL.Query().Get("bid"))
	if err != nil || bid < 0 {
		respondError(w, http.StatusBadRequest, "Invalid or missing bid parameter", err)
		return
	}

	advice, err := h.advisor.AdviseBid(playerID, bid)
	if err != nil {
		respondError(w, http.StatusNotFound, "Failed to advise bid", err)
		return
	}

	respondJSON(w, http.StatusOK, advice)
}

// GetPuntCategories returns the active punt build
func (h *Handler) GetPuntCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"punt_categories": h.advisor.PuntCategories(),
	})
}

// SetPuntCategories replaces the active punt build
func (h *Handler) SetPuntCategories(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Categories []string `json:"categories"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.advisor.SetPuntCategories(r.Context(), req.Categories); err != nil {
		respondError(w, http.StatusBadRequest, "Failed to set punt categories", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"punt_categories": h.advisor.PuntCategories(),
	})
}

// GetPuntSuggestions scores every category as a punt candidate
func (h *Handler) GetPuntSuggestions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.advisor.PuntSuggestions())
}

// GetRecommendations ranks the pool for the next nomination
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.advisor.Recommendations(r.Context()))
}

// GetInflation summarizes sale inflation by position
func (h *Handler) GetInflation(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.advisor.PositionInflationReport())
}

// GetTeamAnalysis classifies the user's roster per category
func (h *Handler) GetTeamAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis := h.advisor.MyTeamAnalysis()
	if analysis == nil {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"message": "No players drafted yet",
		})
		return
	}
	respondJSON(w, http.StatusOK, analysis)
}

// GetRoster resolves the user's roster into slots
func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.advisor.MyRosterView())
}

// GetOpponents returns opponent budgets and winnings
func (h *Handler) GetOpponents(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.drafts.Room().Opponents())
}

// GetOpponentAnalysis classifies every opponent roster per category
func (h *Handler) GetOpponentAnalysis(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.advisor.OpponentAnalysis())
}

// GetMatchup forecasts a head-to-head week against one opponent
func (h *Handler) GetMatchup(w http.ResponseWriter, r *http.Request) {
	opponent := mux.Vars(r)["opponent"]

	projection, err := h.advisor.Matchup(opponent)
	if err != nil {
		respondError(w, http.StatusNotFound, "Failed to project matchup", err)
		return
	}

	respondJSON(w, http.StatusOK, projection)
}

// GetPicks returns the league-wide pick ledger
func (h *Handler) GetPicks(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.drafts.Room().Picks())
}

type draftRequest struct {
	PlayerID  int    `json:"player_id"`
	Price     int    `json:"price"`
	DraftedBy string `json:"drafted_by"`
}

// DraftPlayer records a winning bid
func (h *Handler) DraftPlayer(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	pick, err := h.drafts.DraftPlayer(r.Context(), req.PlayerID, req.Price, req.DraftedBy)
	if err != nil {
		respondError(w, http.StatusConflict, "Failed to draft player", err)
		return
	}

	respondJSON(w, http.StatusCreated, pick)
}

type editRequest struct {
	DraftedBy string `json:"drafted_by"`
	Price     int    `json:"price"`
}

// EditPick moves a recorded pick to a different owner or price
func (h *Handler) EditPick(w http.ResponseWriter, r *http.Request) {
	playerID, ok := pathInt(w, r, "playerID")
	if !ok {
		return
	}

	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	pick, err := h.drafts.EditPick(r.Context(), playerID, req.DraftedBy, req.Price)
	if err != nil {
		respondError(w, http.StatusConflict, "Failed to edit pick", err)
		return
	}

	respondJSON(w, http.StatusOK, pick)
}

// RemovePick reverses a recorded pick
func (h *Handler) RemovePick(w http.ResponseWriter, r *http.Request) {
	playerID, ok := pathInt(w, r, "playerID")
	if !ok {
		return
	}

	pick, err := h.drafts.RemovePick(r.Context(), playerID)
	if err != nil {
		respondError(w, http.StatusConflict, "Failed to remove pick", err)
		return
	}

	respondJSON(w, http.StatusOK, pick)
}

func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid "+name, err)
		return 0, false
	}
	return v, true
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
