package mid

import (
	"context"
	"net/http"
	"strings"

	"github.com/hearthkeep/hearthkeep/bridge/scaffolding/errs"
	"github.com/hearthkeep/hearthkeep/core/repositories/sessionsrepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/usersrepo"
	"github.com/hearthkeep/hearthkeep/infrastructure/web"
)

// BearerToken extracts the session token from the Authorization header,
// falling back to the X-Token header.
func BearerToken(r *http.Request) string {
	authorization := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(authorization, "Bearer "); ok {
		return token
	}
	return r.Header.Get("X-Token")
}

// Authenticate resolves the request's session token to a user and stores it
// in the context. Requests without a valid session are rejected.
func Authenticate(sessions *sessionsrepo.Repository, users *usersrepo.Repository) web.MidFunc {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			token := BearerToken(r)
			if token == "" {
				return errs.Newf(errs.Unauthenticated, "missing session token")
			}

			session, err := sessions.Authenticate(ctx, token)
			if err != nil {
				return errs.Newf(errs.Unauthenticated, "invalid session")
			}

			user, err := users.Get(ctx, session.UserID)
			if err != nil {
				return errs.Newf(errs.Unauthenticated, "invalid session")
			}

			ctx = setUser(ctx, user)
			return next(ctx, r)
		}
	}
}

// RequireAdmin rejects requests whose authenticated user is not an admin.
// Must run after Authenticate.
func RequireAdmin() web.MidFunc {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			user, err := GetUser(ctx)
			if err != nil {
				return errs.Newf(errs.Unauthenticated, "not authenticated")
			}

			if user.Role != usersrepo.RoleAdmin {
				return errs.Newf(errs.PermissionDenied, "admin role required")
			}

			return next(ctx, r)
		}
	}
}
