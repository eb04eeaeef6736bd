// Package tasksrepo provides access to task storage, including recurring
// task expansion.
package tasksrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hearthkeep/hearthkeep/core/recurrence"
	"github.com/hearthkeep/hearthkeep/core/scaffolding/fop"
	"github.com/hearthkeep/hearthkeep/sdk/logger"
)

// MaxRecurrenceSpan bounds the range a recurring creation may cover.
const MaxRecurrenceSpan = 3 * 365 * 24 * time.Hour

var (
	// ErrEmptyExpansion is returned when a recurring creation generates no
	// dates within its range.
	ErrEmptyExpansion = errors.New("recurrence generates no dates in range")

	// ErrSpanTooLarge is returned when a recurring creation covers more
	// than MaxRecurrenceSpan.
	ErrSpanTooLarge = errors.New("recurrence range exceeds maximum span")

	// ErrNotRecurring is returned by batch operations on a task that was
	// not created as part of a recurring batch.
	ErrNotRecurring = errors.New("task is not part of a recurring batch")
)

// Storer defines the data storage interface for Task.
type Storer interface {
	Create(ctx context.Context, input CreateTask) (Task, error)
	CreateBatch(ctx context.Context, inputs []CreateTask, repeatWeekdays, repeatInterval string, batchDate time.Time) ([]Task, error)
	Get(ctx context.Context, taskID string) (Task, error)
	List(ctx context.Context, filter TaskFilter, orderBy fop.By, page fop.PageStringCursor) ([]Task, error)
	Update(ctx context.Context, taskID string, updates UpdateTask) error
	Delete(ctx context.Context, taskID string) error
	DeleteBatchFrom(ctx context.Context, title, creatorID string, batchDate, from time.Time) (int64, error)
}

// Repository provides access to task storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
	nowFn  func() time.Time
}

// NewRepository creates a new Task repository.
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
		nowFn:  time.Now,
	}
}

// Create adds a single, non-recurring task.
func (r *Repository) Create(ctx context.Context, input CreateTask) (Task, error) {
	task, err := r.storer.Create(ctx, input)
	if err != nil {
		return Task{}, fmt.Errorf("create task: %w", err)
	}

	r.log.Info(ctx, "created task", "task_id", task.TaskID, "due_date", task.DueDate.Format(time.DateOnly))
	return task, nil
}

// CreateRecurring expands the recurrence within [input.Start, input.End]
// and inserts one task row per generated date. All rows of the batch share
// the creation date as their batch date.
func (r *Repository) CreateRecurring(ctx context.Context, input CreateRecurringTask) ([]Task, error) {
	if !input.Interval.Valid() {
		return nil, fmt.Errorf("invalid interval %q", input.Interval)
	}
	if input.End.Sub(input.Start) > MaxRecurrenceSpan {
		return nil, ErrSpanTooLarge
	}

	dates := recurrence.Generate(recurrence.Request{
		Weekdays: input.Weekdays,
		Interval: input.Interval,
		Start:    input.Start,
		End:      input.End,
	})
	if len(dates) == 0 {
		return nil, ErrEmptyExpansion
	}

	inputs := make([]CreateTask, len(dates))
	for i, date := range dates {
		inputs[i] = CreateTask{
			Title:      input.Title,
			Notes:      input.Notes,
			AssigneeID: input.AssigneeID,
			CreatorID:  input.CreatorID,
			DueDate:    date,
		}
	}

	batchDate := recurrence.Date(r.nowFn())
	weekdayCSV := recurrence.FormatWeekdayCSV(input.Weekdays)

	tasks, err := r.storer.CreateBatch(ctx, inputs, weekdayCSV, string(input.Interval), batchDate)
	if err != nil {
		return nil, fmt.Errorf("create recurring tasks: %w", err)
	}

	r.log.Info(ctx, "created recurring tasks",
		"title", input.Title, "count", len(tasks), "interval", string(input.Interval))
	return tasks, nil
}

// PreviewRecurring expands a recurrence without persisting anything and
// pairs the dates with a human-readable summary.
func (r *Repository) PreviewRecurring(input CreateRecurringTask) (Preview, error) {
	if !input.Interval.Valid() {
		return Preview{}, fmt.Errorf("invalid interval %q", input.Interval)
	}
	if input.End.Sub(input.Start) > MaxRecurrenceSpan {
		return Preview{}, ErrSpanTooLarge
	}

	req := recurrence.Request{
		Weekdays: input.Weekdays,
		Interval: input.Interval,
		Start:    input.Start,
		End:      input.End,
	}

	return Preview{
		Dates:       recurrence.Generate(req),
		Description: recurrence.Describe(req),
	}, nil
}

// Get retrieves a task by id.
func (r *Repository) Get(ctx context.Context, taskID string) (Task, error) {
	task, err := r.storer.Get(ctx, taskID)
	if err != nil {
		return Task{}, fmt.Errorf("get task %s: %w", taskID, err)
	}
	return task, nil
}

// List retrieves tasks matching the filter.
func (r *Repository) List(ctx context.Context, filter TaskFilter, orderBy fop.By, page fop.PageStringCursor) ([]Task, error) {
	tasks, err := r.storer.List(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Update modifies a task.
func (r *Repository) Update(ctx context.Context, taskID string, updates UpdateTask) error {
	if err := r.storer.Update(ctx, taskID, updates); err != nil {
		return fmt.Errorf("update task %s: %w", taskID, err)
	}
	return nil
}

// SetDone marks a task complete or reopens it.
func (r *Repository) SetDone(ctx context.Context, taskID string, done bool) error {
	if err := r.storer.Update(ctx, taskID, UpdateTask{Done: &done}); err != nil {
		return fmt.Errorf("set task %s done=%t: %w", taskID, done, err)
	}
	return nil
}

// Delete removes a single task.
func (r *Repository) Delete(ctx context.Context, taskID string) error {
	if err := r.storer.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("delete task %s: %w", taskID, err)
	}
	return nil
}

// DeleteFuture removes the batch siblings of the given task whose due date
// is today or later, the given task included if it qualifies.
func (r *Repository) DeleteFuture(ctx context.Context, taskID string) (int64, error) {
	task, err := r.storer.Get(ctx, taskID)
	if err != nil {
		return 0, fmt.Errorf("get task %s: %w", taskID, err)
	}

	if task.BatchDate == nil {
		return 0, ErrNotRecurring
	}

	today := recurrence.Date(r.nowFn())
	n, err := r.storer.DeleteBatchFrom(ctx, task.Title, task.CreatorID, *task.BatchDate, today)
	if err != nil {
		return 0, fmt.Errorf("delete future tasks: %w", err)
	}

	r.log.Info(ctx, "deleted future tasks", "title", task.Title, "count", n)
	return n, nil
}
