package importer

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/courtside/internal/store"
)

// Repository persists import job rows.
type Repository struct {
	db *store.Database
}

// NewRepository creates an import job repository.
func NewRepository(db *store.Database) *Repository {
	return &Repository{db: db}
}

// CreateJob inserts a queued job and returns it with its assigned id.
func (r *Repository) CreateJob(ctx context.Context, job *store.ImportJob) (*store.ImportJob, error) {
	query := `
		INSERT INTO import_jobs (source, season, status, status_message)
		VALUES ($1, $2, $3, $4)
		RETURNING job_id, created_at
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		job.Source, job.Season, job.Status, job.StatusMessage,
	).Scan(&job.JobID, &job.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating import job: %w", err)
	}

	return job, nil
}

// MarkNextJobRunning claims the oldest queued job, returning nil when
// the queue is empty.
func (r *Repository) MarkNextJobRunning(ctx context.Context) (*store.ImportJob, error) {
	query := `
		UPDATE import_jobs
		SET status = 'running', started_at = NOW(), status_message = 'Import running'
		WHERE job_id = (
			SELECT job_id FROM import_jobs
			WHERE status = 'queued'
			ORDER BY created_at
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING job_id, source, season, status, status_message, player_count,
			created_at, started_at, finished_at
	`

	job := &store.ImportJob{}
	err := r.db.DB().QueryRowContext(ctx, query).Scan(
		&job.JobID, &job.Source, &job.Season, &job.Status, &job.StatusMessage,
		&job.PlayerCount, &job.CreatedAt, &job.StartedAt, &job.FinishedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("claiming import job: %w", err)
	}

	return job, nil
}

// CompleteJob marks a job completed with the imported player count.
func (r *Repository) CompleteJob(ctx context.Context, jobID, playerCount int) error {
	query := `
		UPDATE import_jobs
		SET status = 'completed', status_message = 'Import completed',
			player_count = $2, finished_at = NOW()
		WHERE job_id = $1
	`

	_, err := r.db.DB().ExecContext(ctx, query, jobID, playerCount)
	return err
}

// FailJob marks a job failed with the error text.
func (r *Repository) FailJob(ctx context.Context, jobID int, cause error) error {
	query := `
		UPDATE import_jobs
		SET status = 'failed', status_message = $2, finished_at = NOW()
		WHERE job_id = $1
	`

	msg := "import failed"
	if cause != nil {
		msg = cause.Error()
	}

	_, err := r.db.DB().ExecContext(ctx, query, jobID, msg)
	return err
}

// GetJob fetches one job by id.
func (r *Repository) GetJob(ctx context.Context, jobID int) (*store.ImportJob, error) {
	query := `
		SELECT job_id, source, season, status, status_message, player_count,
			created_at, started_at, finished_at
		FROM import_jobs
		WHERE job_id = $1
	`

	job := &store.ImportJob{}
	err := r.db.DB().QueryRowContext(ctx, query, jobID).Scan(
		&job.JobID, &job.Source, &job.Season, &job.Status, &job.StatusMessage,
		&job.PlayerCount, &job.CreatedAt, &job.StartedAt, &job.FinishedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching import job %d: %w", jobID, err)
	}

	return job, nil
}

// GetActiveJob returns the running job, or nil when idle.
func (r *Repository) GetActiveJob(ctx context.Context) (*store.ImportJob, error) {
	query := `
		SELECT job_id, source, season, status, status_message, player_count,
			created_at, started_at, finished_at
		FROM import_jobs
		WHERE status = 'running'
		ORDER BY started_at DESC
		LIMIT 1
	`

	job := &store.ImportJob{}
	err := r.db.DB().QueryRowContext(ctx, query).Scan(
		&job.JobID, &job.Source, &job.Season, &job.Status, &job.StatusMessage,
		&job.PlayerCount, &job.CreatedAt, &job.StartedAt, &job.FinishedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching active import job: %w", err)
	}

	return job, nil
}

// ListRecentJobs returns the newest jobs first.
func (r *Repository) ListRecentJobs(ctx context.Context, limit int) ([]*store.ImportJob, error) {
	query := `
		SELECT job_id, source, season, status, status_message, player_count,
			created_at, started_at, finished_at
		FROM import_jobs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.DB().QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing import jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*store.ImportJob
	for rows.Next() {
		job := &store.ImportJob{}
		if err := rows.Scan(
			&job.JobID, &job.Source, &job.Season, &job.Status, &job.StatusMessage,
			&job.PlayerCount, &job.CreatedAt, &job.StartedAt, &job.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning import job: %w", err)
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

// ResetStuckJobs requeues jobs left running by a previous process.
func (r *Repository) ResetStuckJobs(ctx context.Context) error {
	query := `
		UPDATE import_jobs
		SET status = 'queued', status_message = 'Requeued after restart', started_at = NULL
		WHERE status = 'running'
	`

	_, err := r.db.DB().ExecContext(ctx, query)
	return err
}
