package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/fortuna/courtside/internal/importer"
)

// Config holds refresh scheduler configuration
type Config struct {
	RefreshHour   int           // Default: 6 (6 AM)
	SheetURL      string        // Projections sheet to rescrape
	Season        string        // e.g., "2026-27"
	EnableRefresh bool          // Default: false
	MaxRetries    int           // Default: 3
	RetryDelay    time.Duration // Default: 5s
}

// DefaultConfig returns default refresh scheduler configuration
func DefaultConfig() *Config {
	return &Config{
		RefreshHour:   6,
		Season:        "2026-27",
		EnableRefresh: false,
		MaxRetries:    3,
		RetryDelay:    5 * time.Second,
	}
}

// Refresher schedules the daily projections rescrape. It does no
// fetching itself, it enqueues import jobs for the importer worker.
type Refresher struct {
	imports *importer.Service
	config  *Config
	cancel  context.CancelFunc
}

// NewRefresher creates a refresh scheduler
func NewRefresher(imports *importer.Service, config *Config) *Refresher {
	if config == nil {
		config = DefaultConfig()
	}
	return &Refresher{
		imports: imports,
		config:  config,
	}
}

// Start begins the daily refresh loop. Blocks until ctx is cancelled.
func (r *Refresher) Start(ctx context.Context) {
	if !r.config.EnableRefresh || r.config.SheetURL == "" {
		log.Println("→ Projections refresh disabled")
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	log.Printf("→ Projections refresh scheduled daily at %02d:00 (season %s)", r.config.RefreshHour, r.config.Season)

	for {
		now := time.Now()
		nextRun := time.Date(now.Year(), now.Month(), now.Day(), r.config.RefreshHour, 0, 0, 0, now.Location())
		if now.After(nextRun) {
			nextRun = nextRun.Add(24 * time.Hour)
		}

		log.Printf("  Next projections refresh: %s (in %v)", nextRun.Format("2006-01-02 15:04:05"), time.Until(nextRun).Round(time.Second))

		select {
		case <-ctx.Done():
			log.Println("→ Projections refresh stopped")
			return
		case <-time.After(time.Until(nextRun)):
			r.refreshWithRetry(ctx)
		}
	}
}

// Stop gracefully stops the refresh loop
func (r *Refresher) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
}

// TriggerRefresh enqueues a rescrape immediately
func (r *Refresher) TriggerRefresh(ctx context.Context) error {
	_, err := r.imports.Enqueue(ctx, importer.Request{
		Source: r.config.SheetURL,
		Season: r.config.Season,
	})
	return err
}

func (r *Refresher) refreshWithRetry(ctx context.Context) {
	for attempt := 1; attempt <= r.config.MaxRetries; attempt++ {
		err := r.TriggerRefresh(ctx)
		if err == nil {
			log.Printf("✓ Projections refresh enqueued")
			return
		}

		log.Printf("  ⚠️  Refresh attempt %d/%d failed: %v", attempt, r.config.MaxRetries, err)

		if attempt < r.config.MaxRetries {
			select {
			case <-ctx.Done():
				return
			case <-time.After(r.config.RetryDelay):
			}
		}
	}

	log.Printf("  ❌ Projections refresh failed after %d attempts", r.config.MaxRetries)
}

// GetStatus returns current scheduler status
func (r *Refresher) GetStatus() map[string]interface{} {
	return map[string]interface{}{
		"refresh_enabled": r.config.EnableRefresh,
		"refresh_hour":    r.config.RefreshHour,
		"sheet_url":       r.config.SheetURL,
		"season":          r.config.Season,
	}
}
