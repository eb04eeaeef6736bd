// Package supplyrepo provides access to supply request storage.
package supplyrepo

import (
	"context"
	"fmt"

	"github.com/hearthkeep/hearthkeep/core/repositories"
	"github.com/hearthkeep/hearthkeep/core/scaffolding/fop"
	"github.com/hearthkeep/hearthkeep/sdk/logger"
)

// Storer defines the data storage interface for SupplyRequest.
type Storer interface {
	Create(ctx context.Context, input CreateSupplyRequest) (SupplyRequest, error)
	Get(ctx context.Context, supplyID string) (SupplyRequest, error)
	List(ctx context.Context, filter SupplyFilter, orderBy fop.By, page fop.PageStringCursor) ([]SupplyRequest, error)
	Update(ctx context.Context, supplyID string, updates UpdateSupplyRequest) error
	SetStatus(ctx context.Context, supplyID, from, to string) error
	Delete(ctx context.Context, supplyID string) error
}

// Repository provides access to supply request storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new SupplyRequest repository.
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// Create files a new supply request in the requested status.
func (r *Repository) Create(ctx context.Context, input CreateSupplyRequest) (SupplyRequest, error) {
	if !ValidUrgency(input.Urgency) {
		return SupplyRequest{}, fmt.Errorf("invalid urgency %q", input.Urgency)
	}
	if input.Quantity <= 0 {
		return SupplyRequest{}, fmt.Errorf("quantity must be positive")
	}

	request, err := r.storer.Create(ctx, input)
	if err != nil {
		return SupplyRequest{}, fmt.Errorf("create supply request: %w", err)
	}

	r.log.Info(ctx, "supply requested", "supply_id", request.SupplyID, "name", request.Name)
	return request, nil
}

// Get retrieves a supply request by id.
func (r *Repository) Get(ctx context.Context, supplyID string) (SupplyRequest, error) {
	request, err := r.storer.Get(ctx, supplyID)
	if err != nil {
		return SupplyRequest{}, fmt.Errorf("get supply request %s: %w", supplyID, err)
	}
	return request, nil
}

// List retrieves supply requests matching the filter.
func (r *Repository) List(ctx context.Context, filter SupplyFilter, orderBy fop.By, page fop.PageStringCursor) ([]SupplyRequest, error) {
	requests, err := r.storer.List(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("list supply requests: %w", err)
	}
	return requests, nil
}

// Update modifies a supply request's descriptive fields.
func (r *Repository) Update(ctx context.Context, supplyID string, updates UpdateSupplyRequest) error {
	if updates.Urgency != nil && !ValidUrgency(*updates.Urgency) {
		return fmt.Errorf("invalid urgency %q", *updates.Urgency)
	}
	if updates.Quantity != nil && *updates.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}

	if err := r.storer.Update(ctx, supplyID, updates); err != nil {
		return fmt.Errorf("update supply request %s: %w", supplyID, err)
	}
	return nil
}

// Transition moves a supply request to a new status, enforcing the
// forward-only workflow.
func (r *Repository) Transition(ctx context.Context, supplyID, to string) (SupplyRequest, error) {
	request, err := r.storer.Get(ctx, supplyID)
	if err != nil {
		return SupplyRequest{}, fmt.Errorf("get supply request %s: %w", supplyID, err)
	}

	if !CanTransition(request.Status, to) {
		return SupplyRequest{}, fmt.Errorf("%w: %s -> %s", repositories.ErrInvalidTransition, request.Status, to)
	}

	if err := r.storer.SetStatus(ctx, supplyID, request.Status, to); err != nil {
		return SupplyRequest{}, fmt.Errorf("transition supply request %s: %w", supplyID, err)
	}

	r.log.Info(ctx, "supply status changed", "supply_id", supplyID, "from", request.Status, "to", to)

	request.Status = to
	return request, nil
}

// Delete removes a supply request.
func (r *Repository) Delete(ctx context.Context, supplyID string) error {
	if err := r.storer.Delete(ctx, supplyID); err != nil {
		return fmt.Errorf("delete supply request %s: %w", supplyID, err)
	}
	return nil
}
