package usersrepobridge

import (
	"context"
	"errors"
	"net/http"

	"github.com/hearthkeep/hearthkeep/bridge/scaffolding/errs"
	"github.com/hearthkeep/hearthkeep/bridge/scaffolding/fopbridge"
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

	users, err := b.userRepository.List(ctx, parseFilter(qp), orderBy, page)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	resp, err := fopbridge.NewPaginatedResponse(users, page, nextCursor(orderBy))
	if err != nil {
		return errs.New(errs.Internal, err)
	}
	return resp
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	userID := web.Param(r, "user_id")

	user, err := b.userRepository.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.Newf(errs.NotFound, "user %s not found", userID)
		}
		return errs.New(errs.Internal, err)
	}

	return fopbridge.NewRecordResponse(user)
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	var req CreateUserRequest
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	if err := req.Validate(); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	user, err := b.userRepository.Create(ctx, req.toRepo())
	if err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			return errs.Newf(errs.AlreadyExists, "email %s already registered", req.Email)
		}
		return errs.New(errs.Internal, err)
	}

	return fopbridge.NewRecordResponse(user)
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	userID := web.Param(r, "user_id")

	var req UpdateUserRequest
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	if err := req.Validate(); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	if err := b.userRepository.Update(ctx, userID, req.toRepo()); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return errs.Newf(errs.NotFound, "user %s not found", userID)
		case errors.Is(err, repositories.ErrAlreadyExists):
			return errs.Newf(errs.AlreadyExists, "email already registered")
		}
		return errs.New(errs.Internal, err)
	}

	return fopbridge.NewRecordID(userID)
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	userID := web.Param(r, "user_id")

	if err := b.userRepository.Delete(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.Newf(errs.NotFound, "user %s not found", userID)
		}
		return errs.New(errs.Internal, err)
	}

	return web.NewNoResponse()
}
