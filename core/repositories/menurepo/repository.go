// Package menurepo provides access to weekly menu storage.
package menurepo

import (
	"context"
	"fmt"
	"time"

	"github.com/hearthkeep/hearthkeep/sdk/logger"
)

// Storer defines the data storage interface for MenuEntry.
type Storer interface {
	Upsert(ctx context.Context, input SetMenuEntry) (MenuEntry, error)
	Get(ctx context.Context, entryID string) (MenuEntry, error)
	Week(ctx context.Context, weekStart time.Time) ([]MenuEntry, error)
	Delete(ctx context.Context, weekStart time.Time, weekday int) error
}

// Repository provides access to menu storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new MenuEntry repository.
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// Set plans a recipe into a weekday slot, replacing whatever was there.
// The week key is normalized from any date within the week.
func (r *Repository) Set(ctx context.Context, input SetMenuEntry) (MenuEntry, error) {
	if input.Weekday < 0 || input.Weekday > 6 {
		return MenuEntry{}, fmt.Errorf("invalid weekday %d", input.Weekday)
	}
	if input.RecipeID == "" {
		return MenuEntry{}, fmt.Errorf("recipe id is required")
	}

	input.WeekStart = WeekStartOf(input.WeekStart)

	entry, err := r.storer.Upsert(ctx, input)
	if err != nil {
		return MenuEntry{}, fmt.Errorf("set menu entry: %w", err)
	}

	r.log.Info(ctx, "menu slot set", "week_start", entry.WeekStart.Format(time.DateOnly), "weekday", entry.Weekday)
	return entry, nil
}

// Get retrieves one slot by its entry id.
func (r *Repository) Get(ctx context.Context, entryID string) (MenuEntry, error) {
	entry, err := r.storer.Get(ctx, entryID)
	if err != nil {
		return MenuEntry{}, fmt.Errorf("get menu entry %s: %w", entryID, err)
	}
	return entry, nil
}

// Week returns the planned slots of the week containing the given date.
// Only slots that exist are returned; up to seven.
func (r *Repository) Week(ctx context.Context, anyDay time.Time) ([]MenuEntry, error) {
	entries, err := r.storer.Week(ctx, WeekStartOf(anyDay))
	if err != nil {
		return nil, fmt.Errorf("get menu week: %w", err)
	}
	return entries, nil
}

// Clear removes a weekday slot.
func (r *Repository) Clear(ctx context.Context, anyDay time.Time, weekday int) error {
	if weekday < 0 || weekday > 6 {
		return fmt.Errorf("invalid weekday %d", weekday)
	}

	if err := r.storer.Delete(ctx, WeekStartOf(anyDay), weekday); err != nil {
		return fmt.Errorf("clear menu slot: %w", err)
	}
	return nil
}
