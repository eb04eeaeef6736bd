// Package mid provides app level middleware support.
package mid

import (
	"context"
	"errors"

	"github.com/hearthkeep/hearthkeep/core/repositories/usersrepo"
	"github.com/hearthkeep/hearthkeep/infrastructure/web"
)

type ctxKey int

const (
	userKey ctxKey = iota + 1
	userIDKey
)

func setUser(ctx context.Context, user usersrepo.User) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, userIDKey, user.UserID)
}

// GetUser returns the authenticated user from the context.
func GetUser(ctx context.Context) (usersrepo.User, error) {
	v, ok := ctx.Value(userKey).(usersrepo.User)
	if !ok {
		return usersrepo.User{}, errors.New("user not found in context")
	}

	return v, nil
}

// GetUserID returns the user id from the context.
func GetUserID(ctx context.Context) (string, error) {
	v, ok := ctx.Value(userIDKey).(string)
	if !ok {
		return "", errors.New("user id not found in context")
	}

	return v, nil
}

// isError tests if the Encoder has an error inside of it.
func isError(e web.Encoder) error {
	err, isError := e.(error)
	if isError {
		return err
	}
	return nil
}
