package authbridge

import (
	"context"
	"errors"
	"net/http"

	"github.com/hearthkeep/hearthkeep/bridge/scaffolding/errs"
	"github.com/hearthkeep/hearthkeep/bridge/scaffolding/fopbridge"
	"github.com/hearthkeep/hearthkeep/bridge/scaffolding/mid"
	"github.com/hearthkeep/hearthkeep/core/repositories/usersrepo"
	"github.com/hearthkeep/hearthkeep/infrastructure/web"
)

func (b *bridge) httpLogin(ctx context.Context, r *http.Request) web.Encoder {
	var req LoginRequest
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	if err := req.Validate(); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	user, err := b.users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usersrepo.ErrAuthenticationFailure) {
			return errs.Newf(errs.Unauthenticated, "invalid credentials")
		}
		return errs.New(errs.Internal, err)
	}

	session, err := b.sessions.Start(ctx, user.UserID)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return newLoginResponse(session, user)
}

func (b *bridge) httpLogout(ctx context.Context, r *http.Request) web.Encoder {
	token := mid.BearerToken(r)
	if token == "" {
		return errs.Newf(errs.InvalidArgument, "missing session token")
	}

	if err := b.sessions.End(ctx, token); err != nil {
		return errs.New(errs.Internal, err)
	}

	return fopbridge.NewCodeResponse("OK", "logged out")
}

func (b *bridge) httpMe(ctx context.Context, r *http.Request) web.Encoder {
	user, err := mid.GetUser(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	return fopbridge.NewRecordResponse(user)
}
