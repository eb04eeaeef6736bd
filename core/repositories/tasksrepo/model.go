package tasksrepo

import (
	"time"

	"github.com/hearthkeep/hearthkeep/core/recurrence"
)

// Task represents a single dated task row. Recurring tasks are materialized
// at creation time, one row per generated date; the rows of one creation
// share (title, creator, batch date).
type Task struct {
	TaskID         string     `db:"task_id" json:"task_id"`
	Title          string     `db:"title" json:"title"`
	Notes          *string    `db:"notes" json:"notes,omitempty"`
	AssigneeID     *string    `db:"assignee_id" json:"assignee_id,omitempty"`
	CreatorID      string     `db:"creator_id" json:"creator_id"`
	DueDate        time.Time  `db:"due_date" json:"due_date"`
	Done           bool       `db:"done" json:"done"`
	RepeatWeekdays *string    `db:"repeat_weekdays" json:"repeat_weekdays,omitempty"`
	RepeatInterval *string    `db:"repeat_interval" json:"repeat_interval,omitempty"`
	BatchDate      *time.Time `db:"batch_date" json:"batch_date,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// CreateTask contains fields for creating a single task.
type CreateTask struct {
	Title      string
	Notes      *string
	AssigneeID *string
	CreatorID  string
	DueDate    time.Time
}

// CreateRecurringTask contains fields for creating a recurring batch of
// tasks. The recurrence is expanded within [Start, End] and one row is
// inserted per generated date.
type CreateRecurringTask struct {
	Title      string
	Notes      *string
	AssigneeID *string
	CreatorID  string
	Weekdays   []time.Weekday
	Interval   recurrence.Interval
	Start      time.Time
	End        time.Time
}

// UpdateTask contains fields for updating an existing task. All fields are
// optional to support partial updates.
type UpdateTask struct {
	Title      *string
	Notes      *string
	AssigneeID *string
	DueDate    *time.Time
	Done       *bool
}

// Preview is the result of expanding a recurrence without persisting it.
type Preview struct {
	Dates       []time.Time `json:"dates"`
	Description string      `json:"description"`
}
