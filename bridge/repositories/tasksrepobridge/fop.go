package tasksrepobridge

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/hearthkeep/hearthkeep/core/repositories/tasksrepo"
	"github.com/hearthkeep/hearthkeep/core/scaffolding/fop"
	"github.com/hearthkeep/hearthkeep/sdk/validation"
)

type queryParams struct {
	Limit      string
	Cursor     string
	Order      string
	AssigneeID string
	CreatorID  string
	Done       string
	DueFrom    string
	DueTo      string
}

func parseQueryParams(r *http.Request) queryParams {
	q := r.URL.Query()
	return queryParams{
		Limit:      q.Get("limit"),
		Cursor:     q.Get("cursor"),
		Order:      q.Get("order"),
		AssigneeID: q.Get("assigneeId"),
		CreatorID:  q.Get("creatorId"),
		Done:       q.Get("done"),
		DueFrom:    q.Get("dueFrom"),
		DueTo:      q.Get("dueTo"),
	}
}

func parseFilter(qp queryParams) (tasksrepo.TaskFilter, error) {
	filter := tasksrepo.TaskFilter{}

	if qp.AssigneeID != "" {
		filter.AssigneeID = &qp.AssigneeID
	}
	if qp.CreatorID != "" {
		filter.CreatorID = &qp.CreatorID
	}
	if qp.Done != "" {
		done, err := strconv.ParseBool(qp.Done)
		if err != nil {
			return filter, fmt.Errorf("invalid done: %s", qp.Done)
		}
		filter.Done = &done
	}
	if qp.DueFrom != "" {
		t, err := validation.ParseCalendarDate(qp.DueFrom)
		if err != nil {
			return filter, fmt.Errorf("invalid dueFrom: %s", qp.DueFrom)
		}
		filter.DueFrom = &t
	}
	if qp.DueTo != "" {
		t, err := validation.ParseCalendarDate(qp.DueTo)
		if err != nil {
			return filter, fmt.Errorf("invalid dueTo: %s", qp.DueTo)
		}
		filter.DueTo = &t
	}

	return filter, nil
}

func parseOrderBy(order string) fop.By {
	orderBy, err := fop.ParseOrder(order, tasksrepo.OrderableFields, tasksrepo.DefaultOrderBy)
	if err != nil {
		return tasksrepo.DefaultOrderBy
	}
	return orderBy
}

func nextCursor(orderBy fop.By) func(last tasksrepo.Task) (string, error) {
	return func(last tasksrepo.Task) (string, error) {
		orderValue := last.DueDate
		if orderBy.Field == "created_at" {
			orderValue = last.CreatedAt
		}
		return fop.Cursor[string, time.Time]{
			OrderValue: orderValue,
			PK:         last.TaskID,
		}.Encode()
	}
}
