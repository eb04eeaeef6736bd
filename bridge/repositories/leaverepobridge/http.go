package leaverepobridge

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/hearthkeep/hearthkeep/bridge/scaffolding/errs"
	"github.com/hearthkeep/hearthkeep/bridge/scaffolding/fopbridge"
	"github.com/hearthkeep/hearthkeep/bridge/scaffolding/mid"
	"github.com/hearthkeep/hearthkeep/core/repositories"
	"github.com/hearthkeep/hearthkeep/core/repositories/leaverepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/usersrepo"
	"github.com/hearthkeep/hearthkeep/core/scaffolding/fop"
	"github.com/hearthkeep/hearthkeep/infrastructure/web"
)

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	user, err := mid.GetUser(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	qp := parseQueryParams(r)

	page, err := fop.ParsePageStringCursor(qp.Limit, qp.Cursor)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	filter, err := parseFilter(qp)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	// Members only ever see their own requests.
	if user.Role != usersrepo.RoleAdmin {
		filter.UserID = &user.UserID
	}

	orderBy := parseOrderBy(qp.Order)

	requests, err := b.leaveRepository.List(ctx, filter, orderBy, page)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	resp, err := fopbridge.NewPaginatedResponse(requests, page, nextCursor(orderBy))
	if err != nil {
		return errs.New(errs.Internal, err)
	}
	return resp
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	user, err := mid.GetUser(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	leaveID := web.Param(r, "leave_id")

	request, err := b.leaveRepository.Get(ctx, leaveID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.Newf(errs.NotFound, "leave request %s not found", leaveID)
		}
		return errs.New(errs.Internal, err)
	}

	if user.Role != usersrepo.RoleAdmin && request.UserID != user.UserID {
		return errs.Newf(errs.PermissionDenied, "leave request %s belongs to another member", leaveID)
	}

	return fopbridge.NewRecordResponse(request)
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	var req CreateLeaveRequestBody
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	if err := req.Validate(); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	request, err := b.leaveRepository.Request(ctx, req.toRepo(userID))
	if err != nil {
		if errors.Is(err, leaverepo.ErrInvalidRange) {
			return errs.Newf(errs.InvalidArgument, "end_date before start_date")
		}
		return errs.New(errs.Internal, err)
	}

	return fopbridge.NewRecordResponse(request)
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	user, err := mid.GetUser(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	leaveID := web.Param(r, "leave_id")

	request, err := b.leaveRepository.Get(ctx, leaveID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.Newf(errs.NotFound, "leave request %s not found", leaveID)
		}
		return errs.New(errs.Internal, err)
	}

	if user.Role != usersrepo.RoleAdmin {
		if request.UserID != user.UserID {
			return errs.Newf(errs.PermissionDenied, "leave request %s belongs to another member", leaveID)
		}
		if request.Status != leaverepo.StatusPending {
			return errs.Newf(errs.FailedPrecondition, "only pending requests can be withdrawn")
		}
	}

	if err := b.leaveRepository.Delete(ctx, leaveID); err != nil {
		return errs.New(errs.Internal, err)
	}

	b.enqueueSync(ctx, leaveID)

	return web.NewNoResponse()
}

func (b *bridge) httpApprove(ctx context.Context, r *http.Request) web.Encoder {
	return b.decide(ctx, r, b.leaveRepository.Approve)
}

func (b *bridge) httpDeny(ctx context.Context, r *http.Request) web.Encoder {
	return b.decide(ctx, r, b.leaveRepository.Deny)
}

func (b *bridge) decide(ctx context.Context, r *http.Request, decideFn func(ctx context.Context, leaveID, deciderID string) (leaverepo.LeaveRequest, error)) web.Encoder {
	deciderID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	leaveID := web.Param(r, "leave_id")

	request, err := decideFn(ctx, leaveID, deciderID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return errs.Newf(errs.NotFound, "leave request %s not found", leaveID)
		case errors.Is(err, leaverepo.ErrAlreadyDecided):
			return errs.Newf(errs.FailedPrecondition, "leave request %s already decided", leaveID)
		case errors.Is(err, leaverepo.ErrInsufficientBalance):
			return errs.Newf(errs.FailedPrecondition, "insufficient leave balance")
		}
		return errs.New(errs.Internal, err)
	}

	b.enqueueSync(ctx, leaveID)

	return fopbridge.NewRecordResponse(request)
}

func (b *bridge) httpOwnBalance(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	year, appErr := parseYear(r)
	if appErr != nil {
		return appErr
	}

	balance, err := b.leaveRepository.Balance(ctx, userID, year)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.Newf(errs.NotFound, "no balance for %d", year)
		}
		return errs.New(errs.Internal, err)
	}

	return fopbridge.NewRecordResponse(balance)
}

func (b *bridge) httpBalances(ctx context.Context, r *http.Request) web.Encoder {
	year, appErr := parseYear(r)
	if appErr != nil {
		return appErr
	}

	balances, err := b.leaveRepository.Balances(ctx, year)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return fopbridge.NewRecordsResponse(balances)
}

func (b *bridge) httpSetAllotment(ctx context.Context, r *http.Request) web.Encoder {
	userID := web.Param(r, "user_id")

	var req SetAllotmentRequest
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	if err := req.Validate(); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	balance, err := b.leaveRepository.SetAllotment(ctx, userID, req.Year, req.AllottedDays)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return fopbridge.NewRecordResponse(balance)
}

func parseYear(r *http.Request) (int, *errs.Error) {
	raw := web.QueryParam(r, "year")
	if raw == "" {
		return time.Now().Year(), nil
	}

	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.Newf(errs.InvalidArgument, "invalid year: %s", raw)
	}
	return year, nil
}
