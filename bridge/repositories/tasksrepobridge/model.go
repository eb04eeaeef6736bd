package tasksrepobridge

import (
	"fmt"
	"time"

	"github.com/hearthkeep/hearthkeep/core/recurrence"
	"github.com/hearthkeep/hearthkeep/core/repositories/tasksrepo"
	"github.com/hearthkeep/hearthkeep/sdk/validation"
)

// CreateTaskRequest carries fields for a single dated task. Dates use the
// YYYY-MM-DD calendar form.
type CreateTaskRequest struct {
	Title      string  `json:"title"`
	Notes      *string `json:"notes"`
	AssigneeID *string `json:"assignee_id"`
	DueDate    string  `json:"due_date"`
}

func (r CreateTaskRequest) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("missing required field: title")
	}
	if _, err := validation.ParseCalendarDate(r.DueDate); err != nil {
		return fmt.Errorf("invalid due_date: %w", err)
	}
	return nil
}

func (r CreateTaskRequest) toRepo(creatorID string) tasksrepo.CreateTask {
	due, _ := validation.ParseCalendarDate(r.DueDate)
	return tasksrepo.CreateTask{
		Title:      r.Title,
		Notes:      r.Notes,
		AssigneeID: r.AssigneeID,
		CreatorID:  creatorID,
		DueDate:    due,
	}
}

// RecurringTaskRequest carries fields for a recurring batch. Weekdays use
// 0=Sunday through 6=Saturday.
type RecurringTaskRequest struct {
	Title      string  `json:"title"`
	Notes      *string `json:"notes"`
	AssigneeID *string `json:"assignee_id"`
	Weekdays   []int   `json:"weekdays"`
	Interval   string  `json:"interval"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
}

func (r RecurringTaskRequest) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("missing required field: title")
	}
	for _, wd := range r.Weekdays {
		if wd < 0 || wd > 6 {
			return fmt.Errorf("weekday out of range: %d", wd)
		}
	}
	if !recurrence.Interval(r.Interval).Valid() {
		return fmt.Errorf("unknown interval: %q", r.Interval)
	}
	if _, err := validation.ParseCalendarDate(r.StartDate); err != nil {
		return fmt.Errorf("invalid start_date: %w", err)
	}
	if _, err := validation.ParseCalendarDate(r.EndDate); err != nil {
		return fmt.Errorf("invalid end_date: %w", err)
	}
	return nil
}

func (r RecurringTaskRequest) toRepo(creatorID string) tasksrepo.CreateRecurringTask {
	start, _ := validation.ParseCalendarDate(r.StartDate)
	end, _ := validation.ParseCalendarDate(r.EndDate)

	weekdays := make([]time.Weekday, 0, len(r.Weekdays))
	for _, wd := range r.Weekdays {
		weekdays = append(weekdays, time.Weekday(wd))
	}

	return tasksrepo.CreateRecurringTask{
		Title:      r.Title,
		Notes:      r.Notes,
		AssigneeID: r.AssigneeID,
		CreatorID:  creatorID,
		Weekdays:   weekdays,
		Interval:   recurrence.Interval(r.Interval),
		Start:      start,
		End:        end,
	}
}

// UpdateTaskRequest carries optional fields for a partial update.
type UpdateTaskRequest struct {
	Title      *string `json:"title"`
	Notes      *string `json:"notes"`
	AssigneeID *string `json:"assignee_id"`
	DueDate    *string `json:"due_date"`
	Done       *bool   `json:"done"`
}

func (r UpdateTaskRequest) Validate() error {
	if r.Title != nil && *r.Title == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if r.DueDate != nil {
		if _, err := validation.ParseCalendarDate(*r.DueDate); err != nil {
			return fmt.Errorf("invalid due_date: %w", err)
		}
	}
	return nil
}

func (r UpdateTaskRequest) toRepo() tasksrepo.UpdateTask {
	updates := tasksrepo.UpdateTask{
		Title:      r.Title,
		Notes:      r.Notes,
		AssigneeID: r.AssigneeID,
		Done:       r.Done,
	}
	if r.DueDate != nil {
		due, _ := validation.ParseCalendarDate(*r.DueDate)
		updates.DueDate = &due
	}
	return updates
}
