// Package syncstaterepo provides access to calendar sync state: event
// mappings and the sync job outbox.
package syncstaterepo

import (
	"context"
	"fmt"

	"github.com/hearthkeep/hearthkeep/sdk/logger"
)

// Storer defines the data storage interface for sync state.
type Storer interface {
	Enqueue(ctx context.Context, entityType, entityID string) (bool, error)
	CheckoutJob(ctx context.Context, workerID string) (SyncJob, error)
	CompleteJob(ctx context.Context, jobID string) error
	FailJob(ctx context.Context, jobID, errMsg string) error

	SweepEnqueue(ctx context.Context) (int64, error)

	GetMapping(ctx context.Context, entityType, entityID string) (EventMapping, error)
	UpsertMapping(ctx context.Context, mapping EventMapping) error
	DeleteMapping(ctx context.Context, entityType, entityID string) error
}

// Repository provides access to sync state storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new sync state repository.
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// Enqueue adds a pending sync job for the entity. A pending job already
// queued for the same entity absorbs the request.
func (r *Repository) Enqueue(ctx context.Context, entityType, entityID string) error {
	if !ValidEntityType(entityType) {
		return fmt.Errorf("invalid entity type %q", entityType)
	}

	queued, err := r.storer.Enqueue(ctx, entityType, entityID)
	if err != nil {
		return fmt.Errorf("enqueue sync job: %w", err)
	}

	if queued {
		r.log.Debug(ctx, "sync job enqueued", "entity_type", entityType, "entity_id", entityID)
	}
	return nil
}

// Sweep enqueues jobs for every entity that is currently syncable and for
// every entity that still has an event mapping, so deletions reconcile.
func (r *Repository) Sweep(ctx context.Context) (int64, error) {
	n, err := r.storer.SweepEnqueue(ctx)
	if err != nil {
		return 0, fmt.Errorf("sweep enqueue: %w", err)
	}

	if n > 0 {
		r.log.Info(ctx, "sync sweep enqueued jobs", "count", n)
	}
	return n, nil
}

// CheckoutJob atomically claims the oldest pending job for a worker.
// Returns repositories.ErrNotFound when the queue is empty.
func (r *Repository) CheckoutJob(ctx context.Context, workerID string) (SyncJob, error) {
	return r.storer.CheckoutJob(ctx, workerID)
}

// CompleteJob marks a job done.
func (r *Repository) CompleteJob(ctx context.Context, jobID string) error {
	if err := r.storer.CompleteJob(ctx, jobID); err != nil {
		return fmt.Errorf("complete sync job %s: %w", jobID, err)
	}
	return nil
}

// FailJob marks a job failed, recording the error and bumping attempts.
func (r *Repository) FailJob(ctx context.Context, jobID string, jobErr error) error {
	msg := ""
	if jobErr != nil {
		msg = jobErr.Error()
	}
	if err := r.storer.FailJob(ctx, jobID, msg); err != nil {
		return fmt.Errorf("fail sync job %s: %w", jobID, err)
	}
	return nil
}

// Mapping retrieves the event mapping for an entity.
func (r *Repository) Mapping(ctx context.Context, entityType, entityID string) (EventMapping, error) {
	return r.storer.GetMapping(ctx, entityType, entityID)
}

// SaveMapping stores or replaces the event mapping for an entity.
func (r *Repository) SaveMapping(ctx context.Context, mapping EventMapping) error {
	if err := r.storer.UpsertMapping(ctx, mapping); err != nil {
		return fmt.Errorf("save mapping %s/%s: %w", mapping.EntityType, mapping.EntityID, err)
	}
	return nil
}

// DropMapping removes the event mapping for an entity.
func (r *Repository) DropMapping(ctx context.Context, entityType, entityID string) error {
	if err := r.storer.DeleteMapping(ctx, entityType, entityID); err != nil {
		return fmt.Errorf("drop mapping %s/%s: %w", entityType, entityID, err)
	}
	return nil
}
