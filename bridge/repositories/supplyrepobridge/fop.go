package supplyrepobridge

import (
	"net/http"
	"time"

	"github.com/hearthkeep/hearthkeep/core/repositories/supplyrepo"
	"github.com/hearthkeep/hearthkeep/core/scaffolding/fop"
)

type queryParams struct {
	Limit       string
	Cursor      string
	Order       string
	Status      string
	Urgency     string
	RequestedBy string
}

func parseQueryParams(r *http.Request) queryParams {
	q := r.URL.Query()
	return queryParams{
		Limit:       q.Get("limit"),
		Cursor:      q.Get("cursor"),
		Order:       q.Get("order"),
		Status:      q.Get("status"),
		Urgency:     q.Get("urgency"),
		RequestedBy: q.Get("requestedBy"),
	}
}

func parseFilter(qp queryParams) supplyrepo.SupplyFilter {
	filter := supplyrepo.SupplyFilter{}
	if qp.Status != "" {
		filter.Status = &qp.Status
	}
	if qp.Urgency != "" {
		filter.Urgency = &qp.Urgency
	}
	if qp.RequestedBy != "" {
		filter.RequestedBy = &qp.RequestedBy
	}
	return filter
}

func parseOrderBy(order string) fop.By {
	orderBy, err := fop.ParseOrder(order, supplyrepo.OrderableFields, supplyrepo.DefaultOrderBy)
	if err != nil {
		return supplyrepo.DefaultOrderBy
	}
	return orderBy
}

func nextCursor(orderBy fop.By) func(last supplyrepo.SupplyRequest) (string, error) {
	return func(last supplyrepo.SupplyRequest) (string, error) {
		orderValue := last.CreatedAt
		if orderBy.Field == "updated_at" {
			orderValue = last.UpdatedAt
		}
		return fop.Cursor[string, time.Time]{
			OrderValue: orderValue,
			PK:         last.SupplyID,
		}.Encode()
	}
}
