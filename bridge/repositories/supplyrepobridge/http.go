package supplyrepobridge

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
	orderBy := parseOrderBy(qp.Order)

	supplies, err := b.supplyRepository.List(ctx, parseFilter(qp), orderBy, page)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	resp, err := fopbridge.NewPaginatedResponse(supplies, page, nextCursor(orderBy))
	if err != nil {
		return errs.New(errs.Internal, err)
	}
	return resp
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	supplyID := web.Param(r, "supply_id")

	supply, err := b.supplyRepository.Get(ctx, supplyID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.Newf(errs.NotFound, "supply request %s not found", supplyID)
		}
		return errs.New(errs.Internal, err)
	}

	return fopbridge.NewRecordResponse(supply)
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	var req CreateSupplyRequestBody
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	if err := req.Validate(); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	supply, err := b.supplyRepository.Create(ctx, req.toRepo(userID))
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return fopbridge.NewRecordResponse(supply)
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	supplyID := web.Param(r, "supply_id")

	var req UpdateSupplyRequestBody
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	if err := req.Validate(); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	if err := b.supplyRepository.Update(ctx, supplyID, req.toRepo()); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.Newf(errs.NotFound, "supply request %s not found", supplyID)
		}
		return errs.New(errs.Internal, err)
	}

	return fopbridge.NewRecordID(supplyID)
}

func (b *bridge) httpTransition(ctx context.Context, r *http.Request) web.Encoder {
	supplyID := web.Param(r, "supply_id")

	var req TransitionRequest
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	if err := req.Validate(); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	supply, err := b.supplyRepository.Transition(ctx, supplyID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return errs.Newf(errs.NotFound, "supply request %s not found", supplyID)
		case errors.Is(err, repositories.ErrInvalidTransition):
			return errs.Newf(errs.FailedPrecondition, "cannot move supply request %s to %s", supplyID, req.Status)
		}
		return errs.New(errs.Internal, err)
	}

	return fopbridge.NewRecordResponse(supply)
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	supplyID := web.Param(r, "supply_id")

	if err := b.supplyRepository.Delete(ctx, supplyID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.Newf(errs.NotFound, "supply request %s not found", supplyID)
		}
		return errs.New(errs.Internal, err)
	}

	return web.NewNoResponse()
}
