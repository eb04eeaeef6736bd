// Package sessionsrepo provides access to login session storage.
package sessionsrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hearthkeep/hearthkeep/core/repositories"
	"github.com/hearthkeep/hearthkeep/sdk/cryptids"
	"github.com/hearthkeep/hearthkeep/sdk/logger"
)

// ErrInvalidSession is returned when a presented token is unknown or
// expired.
var ErrInvalidSession = errors.New("invalid or expired session")

// Storer defines the data storage interface for Session.
type Storer interface {
	Create(ctx context.Context, session Session) (Session, error)
	GetByToken(ctx context.Context, token string) (Session, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Repository provides access to session storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
	ttl    time.Duration
}

// NewRepository creates a new Session repository. Sessions expire ttl after
// creation.
func NewRepository(log *logger.Logger, storer Storer, ttl time.Duration) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
		ttl:    ttl,
	}
}

// Start issues a new session for the user.
func (r *Repository) Start(ctx context.Context, userID string) (Session, error) {
	token, err := cryptids.GenerateToken()
	if err != nil {
		return Session{}, fmt.Errorf("generate token: %w", err)
	}

	session := Session{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(r.ttl),
	}

	created, err := r.storer.Create(ctx, session)
	if err != nil {
		return Session{}, fmt.Errorf("create session: %w", err)
	}

	r.log.Info(ctx, "session started", "user_id", userID, "session_id", created.SessionID)
	return created, nil
}

// Authenticate resolves a token to its session, rejecting expired ones.
func (r *Repository) Authenticate(ctx context.Context, token string) (Session, error) {
	session, err := r.storer.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return Session{}, ErrInvalidSession
		}
		return Session{}, fmt.Errorf("get session: %w", err)
	}

	if session.Expired(time.Now()) {
		return Session{}, ErrInvalidSession
	}

	return session, nil
}

// End removes the session for the given token. Unknown tokens are not an
// error; logout is idempotent.
func (r *Repository) End(ctx context.Context, token string) error {
	if err := r.storer.DeleteByToken(ctx, token); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PurgeExpired removes sessions past their expiry.
func (r *Repository) PurgeExpired(ctx context.Context) error {
	n, err := r.storer.DeleteExpired(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("delete expired sessions: %w", err)
	}
	if n > 0 {
		r.log.Info(ctx, "purged expired sessions", "count", n)
	}
	return nil
}
