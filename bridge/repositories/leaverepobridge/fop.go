package leaverepobridge

import (
	"fmt"
	"net/http"
	"time"

	"github.com/hearthkeep/hearthkeep/core/repositories/leaverepo"
	"github.com/hearthkeep/hearthkeep/core/scaffolding/fop"
	"github.com/hearthkeep/hearthkeep/sdk/validation"
)

type queryParams struct {
	Limit     string
	Cursor    string
	Order     string
	UserID    string
	Status    string
	Type      string
	StartFrom string
	StartTo   string
}

func parseQueryParams(r *http.Request) queryParams {
	q := r.URL.Query()
	return queryParams{
		Limit:     q.Get("limit"),
		Cursor:    q.Get("cursor"),
		Order:     q.Get("order"),
		UserID:    q.Get("userId"),
		Status:    q.Get("status"),
		Type:      q.Get("type"),
		StartFrom: q.Get("startFrom"),
		StartTo:   q.Get("startTo"),
	}
}

func parseFilter(qp queryParams) (leaverepo.LeaveFilter, error) {
	filter := leaverepo.LeaveFilter{}

	if qp.UserID != "" {
		filter.UserID = &qp.UserID
	}
	if qp.Status != "" {
		filter.Status = &qp.Status
	}
	if qp.Type != "" {
		filter.Type = &qp.Type
	}
	if qp.StartFrom != "" {
		t, err := validation.ParseCalendarDate(qp.StartFrom)
		if err != nil {
			return filter, fmt.Errorf("invalid startFrom: %s", qp.StartFrom)
		}
		filter.StartFrom = &t
	}
	if qp.StartTo != "" {
		t, err := validation.ParseCalendarDate(qp.StartTo)
		if err != nil {
			return filter, fmt.Errorf("invalid startTo: %s", qp.StartTo)
		}
		filter.StartTo = &t
	}

	return filter, nil
}

func parseOrderBy(order string) fop.By {
	orderBy, err := fop.ParseOrder(order, leaverepo.OrderableFields, leaverepo.DefaultOrderBy)
	if err != nil {
		return leaverepo.DefaultOrderBy
	}
	return orderBy
}

func nextCursor(orderBy fop.By) func(last leaverepo.LeaveRequest) (string, error) {
	return func(last leaverepo.LeaveRequest) (string, error) {
		orderValue := last.StartDate
		if orderBy.Field == "created_at" {
			orderValue = last.CreatedAt
		}
		return fop.Cursor[string, time.Time]{
			OrderValue: orderValue,
			PK:         last.LeaveID,
		}.Encode()
	}
}
