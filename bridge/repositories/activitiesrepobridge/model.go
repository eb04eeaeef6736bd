package activitiesrepobridge

import (
	"fmt"
	"net/http"
	"time"

	"github.com/hearthkeep/hearthkeep/core/repositories/activitiesrepo"
	"github.com/hearthkeep/hearthkeep/core/scaffolding/fop"
	"github.com/hearthkeep/hearthkeep/sdk/validation"
)

// CreateActivityRequest carries fields for logging a child activity.
// HappenedAt accepts RFC3339 or a bare calendar date; it defaults to now.
type CreateActivityRequest struct {
	ChildName  string  `json:"child_name"`
	Activity   string  `json:"activity"`
	Notes      *string `json:"notes"`
	HappenedAt string  `json:"happened_at"`
}

func (r CreateActivityRequest) Validate() error {
	if r.ChildName == "" {
		return fmt.Errorf("missing required field: child_name")
	}
	if r.Activity == "" {
		return fmt.Errorf("missing required field: activity")
	}
	if r.HappenedAt != "" {
		if _, err := validation.ParseFlexibleDate(r.HappenedAt); err != nil {
			return fmt.Errorf("invalid happened_at: %w", err)
		}
	}
	return nil
}

func (r CreateActivityRequest) toRepo(recordedBy string) activitiesrepo.CreateActivity {
	happenedAt := time.Now()
	if r.HappenedAt != "" {
		happenedAt, _ = validation.ParseFlexibleDate(r.HappenedAt)
	}
	return activitiesrepo.CreateActivity{
		ChildName:  r.ChildName,
		Activity:   r.Activity,
		Notes:      r.Notes,
		HappenedAt: happenedAt,
		RecordedBy: recordedBy,
	}
}

type queryParams struct {
	Limit     string
	Cursor    string
	Order     string
	ChildName string
	From      string
	To        string
}

func parseQueryParams(r *http.Request) queryParams {
	q := r.URL.Query()
	return queryParams{
		Limit:     q.Get("limit"),
		Cursor:    q.Get("cursor"),
		Order:     q.Get("order"),
		ChildName: q.Get("childName"),
		From:      q.Get("from"),
		To:        q.Get("to"),
	}
}

func parseFilter(qp queryParams) (activitiesrepo.ActivityFilter, error) {
	filter := activitiesrepo.ActivityFilter{}

	if qp.ChildName != "" {
		filter.ChildName = &qp.ChildName
	}
	if qp.From != "" {
		t, err := validation.ParseFlexibleDate(qp.From)
		if err != nil {
			return filter, fmt.Errorf("invalid from: %s", qp.From)
		}
		filter.From = &t
	}
	if qp.To != "" {
		t, err := validation.ParseFlexibleDate(qp.To)
		if err != nil {
			return filter, fmt.Errorf("invalid to: %s", qp.To)
		}
		filter.To = &t
	}

	return filter, nil
}

func parseOrderBy(order string) fop.By {
	orderBy, err := fop.ParseOrder(order, activitiesrepo.OrderableFields, activitiesrepo.DefaultOrderBy)
	if err != nil {
		return activitiesrepo.DefaultOrderBy
	}
	return orderBy
}

func nextCursor(orderBy fop.By) func(last activitiesrepo.Activity) (string, error) {
	return func(last activitiesrepo.Activity) (string, error) {
		orderValue := last.HappenedAt
		if orderBy.Field == "created_at" {
			orderValue = last.CreatedAt
		}
		return fop.Cursor[string, time.Time]{
			OrderValue: orderValue,
			PK:         last.ActivityID,
		}.Encode()
	}
}
