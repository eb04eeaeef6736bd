package tasksrepo

import (
	"time"

	"github.com/hearthkeep/hearthkeep/core/scaffolding/fop"
)

// TaskFilter holds the available fields a query can be filtered on.
type TaskFilter struct {
	AssigneeID *string
	CreatorID  *string
	Done       *bool
	DueFrom    *time.Time
	DueTo      *time.Time
}

// OrderableFields maps API order keys to database columns.
var OrderableFields = map[string]string{
	"due_date":   "due_date",
	"created_at": "created_at",
}

// DefaultOrderBy is used when the caller does not specify an order.
var DefaultOrderBy = fop.NewBy("due_date", fop.ASC)
