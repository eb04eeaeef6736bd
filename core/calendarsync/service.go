package calendarsync

import (
	"context"
	"errors"
	"fmt"

	"github.com/hearthkeep/hearthkeep/core/repositories"
	"github.com/hearthkeep/hearthkeep/core/repositories/syncstaterepo"
	"github.com/hearthkeep/hearthkeep/infrastructure/workers"
	"github.com/hearthkeep/hearthkeep/sdk/logger"
)

// Service drains the sync job outbox: it loads the entity behind a job,
// computes the desired calendar event, and reconciles the remote calendar
// and the mapping table. It implements the worker pool's Processor so the
// pool can drive it directly.
type Service struct {
	log     *logger.Logger
	state   *syncstaterepo.Repository
	client  Client
	sources map[string]EventSource
}

// NewService creates a sync service over the given sources.
func NewService(log *logger.Logger, state *syncstaterepo.Repository, client Client, sources ...EventSource) *Service {
	bySource := make(map[string]EventSource, len(sources))
	for _, source := range sources {
		bySource[source.EntityType()] = source
	}

	return &Service{
		log:     log,
		state:   state,
		client:  client,
		sources: bySource,
	}
}

// SyncEntity reconciles one entity with the calendar.
func (s *Service) SyncEntity(ctx context.Context, entityType, entityID string) error {
	source, ok := s.sources[entityType]
	if !ok {
		return fmt.Errorf("no event source for entity type %q", entityType)
	}

	desired, present, err := source.Desired(ctx, entityID)
	if err != nil {
		return fmt.Errorf("compute desired event: %w", err)
	}

	mapping, err := s.state.Mapping(ctx, entityType, entityID)
	mapped := err == nil
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("load mapping: %w", err)
	}

	if !present {
		if !mapped {
			return nil
		}

		if err := s.client.DeleteEvent(ctx, mapping.EventID); err != nil && !errors.Is(err, ErrEventNotFound) {
			return fmt.Errorf("delete event: %w", err)
		}
		if err := s.state.DropMapping(ctx, entityType, entityID); err != nil {
			return err
		}

		s.log.Info(ctx, "calendar event removed", "entity_type", entityType, "entity_id", entityID)
		return nil
	}

	fingerprint := Fingerprint(desired)
	if mapped && mapping.Fingerprint == fingerprint {
		return nil
	}

	eventID := ""
	if mapped {
		err := s.client.PatchEvent(ctx, mapping.EventID, desired)
		switch {
		case err == nil:
			eventID = mapping.EventID
		case errors.Is(err, ErrEventNotFound):
			// The remote event was deleted out from under us; recreate.
		default:
			return fmt.Errorf("patch event: %w", err)
		}
	}

	if eventID == "" {
		eventID, err = s.client.InsertEvent(ctx, desired)
		if err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}

	if err := s.state.SaveMapping(ctx, syncstaterepo.EventMapping{
		EntityType:  entityType,
		EntityID:    entityID,
		EventID:     eventID,
		Fingerprint: fingerprint,
	}); err != nil {
		return err
	}

	s.log.Info(ctx, "calendar event pushed", "entity_type", entityType, "entity_id", entityID, "event_id", eventID)
	return nil
}

// Sweep enqueues jobs for everything currently syncable plus everything
// still mapped, so stale events get cleaned up.
func (s *Service) Sweep(ctx context.Context) error {
	if _, err := s.state.Sweep(ctx); err != nil {
		return err
	}
	return nil
}

// Checkout claims the next pending sync job for a worker.
func (s *Service) Checkout(ctx context.Context, workerID string) (syncstaterepo.SyncJob, error) {
	job, err := s.state.CheckoutJob(ctx, workerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return syncstaterepo.SyncJob{}, workers.ErrNoWorkAvailable
		}
		return syncstaterepo.SyncJob{}, err
	}
	return job, nil
}

// Process pushes the job's entity to the calendar.
func (s *Service) Process(ctx context.Context, job syncstaterepo.SyncJob) (syncstaterepo.SyncJob, error) {
	if err := s.SyncEntity(ctx, job.EntityType, job.EntityID); err != nil {
		return job, err
	}
	return job, nil
}

// Complete marks the job done.
func (s *Service) Complete(ctx context.Context, job syncstaterepo.SyncJob, processingTimeMS int) error {
	return s.state.CompleteJob(ctx, job.JobID)
}

// Fail marks the job failed with its error.
func (s *Service) Fail(ctx context.Context, job syncstaterepo.SyncJob, jobErr error) error {
	s.log.Error(ctx, "sync job failed", "job_id", job.JobID, "entity_type", job.EntityType,
		"entity_id", job.EntityID, "err", jobErr)
	return s.state.FailJob(ctx, job.JobID, jobErr)
}
