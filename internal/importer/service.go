package importer

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/fortuna/courtside/internal/projections"
	"github.com/fortuna/courtside/internal/projections/scrape"
	"github.com/fortuna/courtside/internal/store"
	"github.com/fortuna/courtside/internal/store/repository"
)

// Request represents an import invocation request. Source is either a
// CSV file path or a sheet URL; URLs are fetched through the scraper.
type Request struct {
	Source string
	Season string
}

// Fetcher retrieves projection sheet HTML. Satisfied by *scrape.Client.
type Fetcher interface {
	FetchSheet(ctx context.Context, url string) (string, error)
}

// StatusSummary reports the active job plus recent history.
type StatusSummary struct {
	ActiveJob *store.ImportJob   `json:"active_job"`
	History   []*store.ImportJob `json:"history"`
}

// Service coordinates job persistence, execution, and status reporting.
type Service struct {
	repo      *Repository
	snapshots *repository.ProjectionRepository
	players   *projections.Store
	fetcher   Fetcher

	// ReloadGuard, when set, is consulted before a completed import
	// replaces the in-memory pool. A non-nil error keeps the snapshot
	// persisted but skips the live reload: replacing the pool
	// reassigns surrogate IDs, which must not shift under recorded
	// picks.
	ReloadGuard func() error

	// OnReload, when set, runs after the in-memory pool is replaced,
	// so auction values get recomputed and stale caches dropped.
	OnReload func()

	historyLimit int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *log.Logger
}

// NewService constructs a Service. Call Start to launch the worker.
// fetcher may be nil when sheet imports are disabled.
func NewService(db *store.Database, players *projections.Store, fetcher Fetcher, logger *log.Logger) *Service {
	ctx, cancel := context.WithCancel(context.Background())

	if logger == nil {
		logger = log.New(log.Writer(), "[importer] ", log.LstdFlags)
	}

	return &Service{
		repo:         NewRepository(db),
		snapshots:    repository.NewProjectionRepository(db),
		players:      players,
		fetcher:      fetcher,
		historyLimit: 10,
		ctx:          ctx,
		cancel:       cancel,
		logger:       logger,
	}
}

// Start launches the background worker loop.
func (s *Service) Start() {
	if err := s.repo.ResetStuckJobs(s.ctx); err != nil {
		s.logger.Printf("failed to reset jobs: %v", err)
	}

	s.wg.Add(1)
	go s.worker()
}

// Shutdown stops the worker and waits for completion.
func (s *Service) Shutdown(ctx context.Context) error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.wg.Wait()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Enqueue creates a new job from the provided request.
func (s *Service) Enqueue(ctx context.Context, req Request) (*store.ImportJob, error) {
	source := strings.TrimSpace(req.Source)
	if source == "" {
		return nil, fmt.Errorf("import requires a source path or URL")
	}
	if isSheetURL(source) && s.fetcher == nil {
		return nil, fmt.Errorf("sheet imports are disabled")
	}

	job := &store.ImportJob{
		Source:        source,
		Season:        req.Season,
		Status:        "queued",
		StatusMessage: sql.NullString{String: "Queued", Valid: true},
	}

	return s.repo.CreateJob(ctx, job)
}

// GetStatus returns the currently running job plus recent history.
func (s *Service) GetStatus(ctx context.Context) (*StatusSummary, error) {
	active, err := s.repo.GetActiveJob(ctx)
	if err != nil {
		return nil, err
	}

	history, err := s.repo.ListRecentJobs(ctx, s.historyLimit)
	if err != nil {
		return nil, err
	}

	return &StatusSummary{
		ActiveJob: active,
		History:   history,
	}, nil
}

// GetJob returns one job by id, nil when unknown.
func (s *Service) GetJob(ctx context.Context, jobID int) (*store.ImportJob, error) {
	return s.repo.GetJob(ctx, jobID)
}

func (s *Service) worker() {
	defer s.wg.Done()

	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		default:
			job, err := s.repo.MarkNextJobRunning(s.ctx)
			if err != nil {
				s.logger.Printf("claim job error: %v", err)
				time.Sleep(time.Second)
				continue
			}
			if job == nil {
				select {
				case <-s.ctx.Done():
					return
				case <-ticker.C:
					continue
				}
			}

			s.executeJob(job)
		}
	}
}

func (s *Service) executeJob(job *store.ImportJob) {
	players, err := s.loadPlayers(job.Source)
	if err != nil {
		s.logger.Printf("import job %d failed: %v", job.JobID, err)
		_ = s.repo.FailJob(s.ctx, job.JobID, err)
		return
	}
	if len(players) == 0 {
		err := fmt.Errorf("source %s produced no players", job.Source)
		s.logger.Printf("import job %d failed: %v", job.JobID, err)
		_ = s.repo.FailJob(s.ctx, job.JobID, err)
		return
	}

	if _, err := s.snapshots.SaveSnapshot(s.ctx, job.Season, job.Source, players); err != nil {
		s.logger.Printf("import job %d snapshot save failed: %v", job.JobID, err)
		_ = s.repo.FailJob(s.ctx, job.JobID, err)
		return
	}

	if err := s.reloadPool(players); err != nil {
		s.logger.Printf("⚠️  Job %d: snapshot saved, live reload skipped: %v", job.JobID, err)
	}

	if err := s.repo.CompleteJob(s.ctx, job.JobID, len(players)); err != nil {
		s.logger.Printf("import job %d status update failed: %v", job.JobID, err)
		return
	}

	s.logger.Printf("✓ Imported %d players from %s", len(players), job.Source)
}

// reloadPool replaces the in-memory pool with freshly imported
// players, unless ReloadGuard objects. The snapshot stays persisted
// either way; a skipped reload takes effect on the next session.
func (s *Service) reloadPool(players []*projections.PlayerStat) error {
	if s.ReloadGuard != nil {
		if err := s.ReloadGuard(); err != nil {
			return err
		}
	}

	s.players.Load(players)
	if s.OnReload != nil {
		s.OnReload()
	}
	return nil
}

func (s *Service) loadPlayers(source string) ([]*projections.PlayerStat, error) {
	if !isSheetURL(source) {
		return projections.LoadCSVFile(source)
	}

	if s.fetcher == nil {
		return nil, fmt.Errorf("sheet imports are disabled")
	}

	ctx, cancel := context.WithTimeout(s.ctx, 2*time.Minute)
	defer cancel()

	html, err := s.fetcher.FetchSheet(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("fetching sheet: %w", err)
	}

	doc, err := scrape.ParseHTML(html)
	if err != nil {
		return nil, fmt.Errorf("parsing sheet: %w", err)
	}

	return scrape.ParseSheet(doc)
}

func isSheetURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
