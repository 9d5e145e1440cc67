package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fortuna/courtside/internal/importer"
	"github.com/fortuna/courtside/internal/service"
	"github.com/fortuna/courtside/internal/store"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, db *store.Database, drafts *service.DraftService, advisor *service.AdvisorService, imports *importer.Service) *Server {
	handler := NewHandler(db, drafts, advisor)
	importHandler := NewImportHandler(imports)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// League settings
	api.HandleFunc("/settings", handler.GetSettings).Methods("GET")
	api.HandleFunc("/settings", handler.UpdateSettings).Methods("PUT")

	// Players and valuations
	api.HandleFunc("/players", handler.GetPlayers).Methods("GET")
	api.HandleFunc("/players/search", handler.SearchPlayers).Methods("GET")
	api.HandleFunc("/players/{playerID}", handler.GetPlayer).Methods("GET")
	api.HandleFunc("/players/{playerID}/bid-advice", handler.GetBidAdvice).Methods("GET")

	// Strategy
	api.HandleFunc("/punts", handler.GetPuntCategories).Methods("GET")
	api.HandleFunc("/punts", handler.SetPuntCategories).Methods("PUT")
	api.HandleFunc("/punts/suggestions", handler.GetPuntSuggestions).Methods("GET")
	api.HandleFunc("/recommendations", handler.GetRecommendations).Methods("GET")
	api.HandleFunc("/inflation", handler.GetInflation).Methods("GET")

	// Team analysis
	api.HandleFunc("/team/analysis", handler.GetTeamAnalysis).Methods("GET")
	api.HandleFunc("/team/roster", handler.GetRoster).Methods("GET")
	api.HandleFunc("/opponents", handler.GetOpponents).Methods("GET")
	api.HandleFunc("/opponents/analysis", handler.GetOpponentAnalysis).Methods("GET")
	api.HandleFunc("/matchup/{opponent}", handler.GetMatchup).Methods("GET")

	// Draft actions
	api.HandleFunc("/draft/picks", handler.GetPicks).Methods("GET")
	api.HandleFunc("/draft/picks", handler.DraftPlayer).Methods("POST")
	api.HandleFunc("/draft/picks/{playerID}", handler.EditPick).Methods("PUT")
	api.HandleFunc("/draft/picks/{playerID}", handler.RemovePick).Methods("DELETE")

	// Import operations
	api.HandleFunc("/imports", importHandler.HandleImportRequest).Methods("POST")
	api.HandleFunc("/imports/status", importHandler.HandleImportStatus).Methods("GET")
	api.HandleFunc("/imports/{jobID}", importHandler.HandleImportJob).Methods("GET")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
