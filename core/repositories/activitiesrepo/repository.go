// Package activitiesrepo provides access to the child-activity log.
package activitiesrepo

import (
	"context"
	"fmt"

	"github.com/hearthkeep/hearthkeep/core/scaffolding/fop"
	"github.com/hearthkeep/hearthkeep/sdk/logger"
)

// Storer defines the data storage interface for Activity.
type Storer interface {
	Create(ctx context.Context, input CreateActivity) (Activity, error)
	Get(ctx context.Context, activityID string) (Activity, error)
	List(ctx context.Context, filter ActivityFilter, orderBy fop.By, page fop.PageStringCursor) ([]Activity, error)
	Delete(ctx context.Context, activityID string) error
}

// Repository provides access to activity storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new Activity repository.
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// Log records a new activity entry.
func (r *Repository) Log(ctx context.Context, input CreateActivity) (Activity, error) {
	if input.ChildName == "" || input.Activity == "" {
		return Activity{}, fmt.Errorf("child name and activity are required")
	}

	activity, err := r.storer.Create(ctx, input)
	if err != nil {
		return Activity{}, fmt.Errorf("create activity: %w", err)
	}

	r.log.Info(ctx, "logged activity", "activity_id", activity.ActivityID, "child", activity.ChildName)
	return activity, nil
}

// Get retrieves an activity entry by id.
func (r *Repository) Get(ctx context.Context, activityID string) (Activity, error) {
	activity, err := r.storer.Get(ctx, activityID)
	if err != nil {
		return Activity{}, fmt.Errorf("get activity %s: %w", activityID, err)
	}
	return activity, nil
}

// List retrieves activity entries matching the filter.
func (r *Repository) List(ctx context.Context, filter ActivityFilter, orderBy fop.By, page fop.PageStringCursor) ([]Activity, error) {
	activities, err := r.storer.List(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

// Delete removes an activity entry.
func (r *Repository) Delete(ctx context.Context, activityID string) error {
	if err := r.storer.Delete(ctx, activityID); err != nil {
		return fmt.Errorf("delete activity %s: %w", activityID, err)
	}
	return nil
}
