package activitiesrepo

import (
	"time"

	"github.com/hearthkeep/hearthkeep/core/scaffolding/fop"
)

// Activity represents one child-activity log entry.
type Activity struct {
	ActivityID string    `db:"activity_id" json:"activity_id"`
	ChildName  string    `db:"child_name" json:"child_name"`
	Activity   string    `db:"activity" json:"activity"`
	Notes      *string   `db:"notes" json:"notes,omitempty"`
	HappenedAt time.Time `db:"happened_at" json:"happened_at"`
	RecordedBy string    `db:"recorded_by" json:"recorded_by"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// CreateActivity contains fields for logging a new activity.
type CreateActivity struct {
	ChildName  string
	Activity   string
	Notes      *string
	HappenedAt time.Time
	RecordedBy string
}

// ActivityFilter holds the available fields a query can be filtered on.
type ActivityFilter struct {
	ChildName *string
	From      *time.Time
	To        *time.Time
}

// OrderableFields maps API order keys to database columns.
var OrderableFields = map[string]string{
	"happened_at": "happened_at",
	"created_at":  "created_at",
}

// DefaultOrderBy is used when the caller does not specify an order.
var DefaultOrderBy = fop.NewBy("happened_at", fop.DESC)
