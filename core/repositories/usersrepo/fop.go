package usersrepo

import "github.com/hearthkeep/hearthkeep/core/scaffolding/fop"

// UserFilter holds the available fields a query can be filtered on.
type UserFilter struct {
	Email *string
	Role  *string
}

// OrderableFields maps API order keys to database columns.
var OrderableFields = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// DefaultOrderBy is used when the caller does not specify an order.
var DefaultOrderBy = fop.NewBy("created_at", fop.DESC)
