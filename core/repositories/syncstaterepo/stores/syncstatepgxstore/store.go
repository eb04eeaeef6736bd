// Package syncstatepgxstore implements sync state storage against
// Postgres.
package syncstatepgxstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hearthkeep/hearthkeep/core/repositories"
	"github.com/hearthkeep/hearthkeep/core/repositories/syncstaterepo"
	"github.com/hearthkeep/hearthkeep/infrastructure/postgresdb"
	"github.com/hearthkeep/hearthkeep/sdk/logger"
)

type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

const jobColumns = `job_id, entity_type, entity_id, status, attempts, last_error, created_at, updated_at`

// Enqueue inserts a pending job unless one already exists for the entity.
// Returns whether a new job was created.
func (s *Store) Enqueue(ctx context.Context, entityType, entityID string) (bool, error) {
	query := `INSERT INTO public.sync_jobs (job_id, entity_type, entity_id, status)
		VALUES (@job_id, @entity_type, @entity_id, 'pending')
		ON CONFLICT (entity_type, entity_id) WHERE status = 'pending' DO NOTHING`

	args := pgx.NamedArgs{
		"job_id":      uuid.NewString(),
		"entity_type": entityType,
		"entity_id":   entityID,
	}

	result, err := s.pool.Exec(ctx, query, args)
	if err != nil {
		return false, postgresdb.HandlePgError(err)
	}

	return result.RowsAffected() > 0, nil
}

// CheckoutJob claims the oldest pending job. SKIP LOCKED keeps concurrent
// workers from claiming the same row.
func (s *Store) CheckoutJob(ctx context.Context, workerID string) (syncstaterepo.SyncJob, error) {
	query := `UPDATE public.sync_jobs
		SET status = 'processing', updated_at = @now
		WHERE job_id = (
			SELECT job_id FROM public.sync_jobs
			WHERE status = 'pending'
			ORDER BY created_at
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING ` + jobColumns

	rows, err := s.pool.Query(ctx, query, pgx.NamedArgs{"now": time.Now()})
	if err != nil {
		return syncstaterepo.SyncJob{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[syncstaterepo.SyncJob])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return syncstaterepo.SyncJob{}, repositories.ErrNotFound
		}
		return syncstaterepo.SyncJob{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// SweepEnqueue inserts pending jobs for every currently syncable entity
// and for every entity that still has an event mapping. Pending duplicates
// are absorbed by the partial unique index.
func (s *Store) SweepEnqueue(ctx context.Context) (int64, error) {
	statements := []string{
		`INSERT INTO public.sync_jobs (job_id, entity_type, entity_id, status)
			SELECT gen_random_uuid(), 'task', task_id, 'pending'
			FROM public.tasks
			WHERE NOT done AND due_date >= CURRENT_DATE
			ON CONFLICT (entity_type, entity_id) WHERE status = 'pending' DO NOTHING`,
		`INSERT INTO public.sync_jobs (job_id, entity_type, entity_id, status)
			SELECT gen_random_uuid(), 'leave', leave_id, 'pending'
			FROM public.leave_requests
			WHERE status = 'approved' AND end_date >= CURRENT_DATE
			ON CONFLICT (entity_type, entity_id) WHERE status = 'pending' DO NOTHING`,
		`INSERT INTO public.sync_jobs (job_id, entity_type, entity_id, status)
			SELECT gen_random_uuid(), 'menu', entry_id, 'pending'
			FROM public.menu_entries
			WHERE week_start >= CURRENT_DATE - 6
			ON CONFLICT (entity_type, entity_id) WHERE status = 'pending' DO NOTHING`,
		`INSERT INTO public.sync_jobs (job_id, entity_type, entity_id, status)
			SELECT gen_random_uuid(), entity_type, entity_id, 'pending'
			FROM public.event_mappings
			ON CONFLICT (entity_type, entity_id) WHERE status = 'pending' DO NOTHING`,
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, postgresdb.HandlePgError(err)
	}
	defer tx.Rollback(ctx)

	var total int64
	for _, stmt := range statements {
		result, err := tx.Exec(ctx, stmt)
		if err != nil {
			return 0, postgresdb.HandlePgError(err)
		}
		total += result.RowsAffected()
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, postgresdb.HandlePgError(err)
	}

	return total, nil
}

// CompleteJob marks a job done.
func (s *Store) CompleteJob(ctx context.Context, jobID string) error {
	query := `UPDATE public.sync_jobs
		SET status = 'done', updated_at = @now
		WHERE job_id = @job_id`

	result, err := s.pool.Exec(ctx, query, pgx.NamedArgs{"job_id": jobID, "now": time.Now()})
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if result.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

// FailJob marks a job failed and records the error.
func (s *Store) FailJob(ctx context.Context, jobID, errMsg string) error {
	query := `UPDATE public.sync_jobs
		SET status = 'failed', attempts = attempts + 1, last_error = @last_error, updated_at = @now
		WHERE job_id = @job_id`

	args := pgx.NamedArgs{
		"job_id":     jobID,
		"last_error": errMsg,
		"now":        time.Now(),
	}

	result, err := s.pool.Exec(ctx, query, args)
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if result.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

// GetMapping retrieves the event mapping for an entity.
func (s *Store) GetMapping(ctx context.Context, entityType, entityID string) (syncstaterepo.EventMapping, error) {
	query := `SELECT entity_type, entity_id, event_id, fingerprint, updated_at
		FROM public.event_mappings
		WHERE entity_type = @entity_type AND entity_id = @entity_id`

	args := pgx.NamedArgs{
		"entity_type": entityType,
		"entity_id":   entityID,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return syncstaterepo.EventMapping{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[syncstaterepo.EventMapping])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return syncstaterepo.EventMapping{}, repositories.ErrNotFound
		}
		return syncstaterepo.EventMapping{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// UpsertMapping stores or replaces the event mapping for an entity.
func (s *Store) UpsertMapping(ctx context.Context, mapping syncstaterepo.EventMapping) error {
	query := `INSERT INTO public.event_mappings (entity_type, entity_id, event_id, fingerprint)
		VALUES (@entity_type, @entity_id, @event_id, @fingerprint)
		ON CONFLICT (entity_type, entity_id)
		DO UPDATE SET event_id = @event_id, fingerprint = @fingerprint, updated_at = NOW()`

	args := pgx.NamedArgs{
		"entity_type": mapping.EntityType,
		"entity_id":   mapping.EntityID,
		"event_id":    mapping.EventID,
		"fingerprint": mapping.Fingerprint,
	}

	if _, err := s.pool.Exec(ctx, query, args); err != nil {
		return postgresdb.HandlePgError(err)
	}

	return nil
}

// DeleteMapping removes the event mapping for an entity. Missing mappings
// are not an error.
func (s *Store) DeleteMapping(ctx context.Context, entityType, entityID string) error {
	query := `DELETE FROM public.event_mappings
		WHERE entity_type = @entity_type AND entity_id = @entity_id`

	args := pgx.NamedArgs{
		"entity_type": entityType,
		"entity_id":   entityID,
	}

	if _, err := s.pool.Exec(ctx, query, args); err != nil {
		return postgresdb.HandlePgError(err)
	}

	return nil
}
