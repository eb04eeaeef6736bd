package leaverepo

import (
	"time"

	"github.com/hearthkeep/hearthkeep/core/scaffolding/fop"
)

// LeaveFilter holds the available fields a query can be filtered on.
type LeaveFilter struct {
	UserID    *string
	Status    *string
	Type      *string
	StartFrom *time.Time
	StartTo   *time.Time
}

// OrderableFields maps API order keys to database columns.
var OrderableFields = map[string]string{
	"start_date": "start_date",
	"created_at": "created_at",
}

// DefaultOrderBy is used when the caller does not specify an order.
var DefaultOrderBy = fop.NewBy("start_date", fop.DESC)
