package recipesrepobridge

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

	recipes, err := b.recipeRepository.List(ctx, parseFilter(qp), orderBy, page)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	resp, err := fopbridge.NewPaginatedResponse(recipes, page, nextCursor)
	if err != nil {
		return errs.New(errs.Internal, err)
	}
	return resp
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	recipeID := web.Param(r, "recipe_id")

	recipe, err := b.recipeRepository.Get(ctx, recipeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.Newf(errs.NotFound, "recipe %s not found", recipeID)
		}
		return errs.New(errs.Internal, err)
	}

	return fopbridge.NewRecordResponse(recipe)
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	var req CreateRecipeRequest
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	if err := req.Validate(); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	recipe, err := b.recipeRepository.Create(ctx, req.toRepo())
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return fopbridge.NewRecordResponse(recipe)
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	recipeID := web.Param(r, "recipe_id")

	var req UpdateRecipeRequest
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	if err := req.Validate(); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	if err := b.recipeRepository.Update(ctx, recipeID, req.toRepo()); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.Newf(errs.NotFound, "recipe %s not found", recipeID)
		}
		return errs.New(errs.Internal, err)
	}

	return fopbridge.NewRecordID(recipeID)
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	recipeID := web.Param(r, "recipe_id")

	if err := b.recipeRepository.Delete(ctx, recipeID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.Newf(errs.NotFound, "recipe %s not found", recipeID)
		}
		return errs.New(errs.Internal, err)
	}

	return web.NewNoResponse()
}
