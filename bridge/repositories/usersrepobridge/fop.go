package usersrepobridge

import (
	"net/http"
	"time"

	"github.com/hearthkeep/hearthkeep/core/repositories/usersrepo"
	"github.com/hearthkeep/hearthkeep/core/scaffolding/fop"
)

type queryParams struct {
	Limit  string
	Cursor string
	Order  string
	Email  string
	Role   string
}

func parseQueryParams(r *http.Request) queryParams {
	q := r.URL.Query()
	return queryParams{
		Limit:  q.Get("limit"),
		Cursor: q.Get("cursor"),
		Order:  q.Get("order"),
		Email:  q.Get("email"),
		Role:   q.Get("role"),
	}
}

func parseFilter(qp queryParams) usersrepo.UserFilter {
	filter := usersrepo.UserFilter{}
	if qp.Email != "" {
		filter.Email = &qp.Email
	}
	if qp.Role != "" {
		filter.Role = &qp.Role
	}
	return filter
}

func parseOrderBy(order string) fop.By {
	orderBy, err := fop.ParseOrder(order, usersrepo.OrderableFields, usersrepo.DefaultOrderBy)
	if err != nil {
		return usersrepo.DefaultOrderBy
	}
	return orderBy
}

func nextCursor(orderBy fop.By) func(last usersrepo.User) (string, error) {
	return func(last usersrepo.User) (string, error) {
		orderValue := last.CreatedAt
		if orderBy.Field == "updated_at" {
			orderValue = last.UpdatedAt
		}
		return fop.Cursor[string, time.Time]{
			OrderValue: orderValue,
			PK:         last.UserID,
		}.Encode()
	}
}
