package activitiesrepobridge

import (
	"context"
	"errors"
	"net/http"

	"github.com/hearthkeep/hearthkeep/bridge/scaffolding/errs"
	"github.com/hearthkeep/hearthkeep/bridge/scaffolding/fopbridge"
	"github.com/hearthkeep/hearthkeep/bridge/scaffolding/mid"
	"github.com/hearthkeep/hearthkeep/core/repositories"
	"github.com/hearthkeep/hearthkeep/core/scaffolding/fop"
	"github.com/hearthkeep/hearthkeep/infrastructure/web"
)

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	page, err := fop.ParsePageStringCursor(qp.Limit, qp.Cursor)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	filter, err := parseFilter(qp)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	orderBy := parseOrderBy(qp.Order)

	activities, err := b.activityRepository.List(ctx, filter, orderBy, page)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	resp, err := fopbridge.NewPaginatedResponse(activities, page, nextCursor(orderBy))
	if err != nil {
		return errs.New(errs.Internal, err)
	}
	return resp
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	activityID := web.Param(r, "activity_id")

	activity, err := b.activityRepository.Get(ctx, activityID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.Newf(errs.NotFound, "activity %s not found", activityID)
		}
		return errs.New(errs.Internal, err)
	}

	return fopbridge.NewRecordResponse(activity)
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	var req CreateActivityRequest
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	if err := req.Validate(); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	activity, err := b.activityRepository.Log(ctx, req.toRepo(userID))
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return fopbridge.NewRecordResponse(activity)
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	activityID := web.Param(r, "activity_id")

	if err := b.activityRepository.Delete(ctx, activityID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.Newf(errs.NotFound, "activity %s not found", activityID)
		}
		return errs.New(errs.Internal, err)
	}

	return web.NewNoResponse()
}
