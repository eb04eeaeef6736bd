// Package sessionspgxstore implements session storage against Postgres.
package sessionspgxstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hearthkeep/hearthkeep/core/repositories"
	"github.com/hearthkeep/hearthkeep/core/repositories/sessionsrepo"
	"github.com/hearthkeep/hearthkeep/infrastructure/postgresdb"
	"github.com/hearthkeep/hearthkeep/sdk/logger"
)

type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

const sessionColumns = `session_id, user_id, token, expires_at, created_at`

// Create inserts a new session.
func (s *Store) Create(ctx context.Context, session sessionsrepo.Session) (sessionsrepo.Session, error) {
	query := `INSERT INTO public.sessions (session_id, user_id, token, expires_at)
		VALUES (@session_id, @user_id, @token, @expires_at)
		RETURNING ` + sessionColumns

	args := pgx.NamedArgs{
		"session_id": uuid.NewString(),
		"user_id":    session.UserID,
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return sessionsrepo.Session{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[sessionsrepo.Session])
	if err != nil {
		return sessionsrepo.Session{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// GetByToken retrieves a session by its token.
func (s *Store) GetByToken(ctx context.Context, token string) (sessionsrepo.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM public.sessions WHERE token = @token`

	rows, err := s.pool.Query(ctx, query, pgx.NamedArgs{"token": token})
	if err != nil {
		return sessionsrepo.Session{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[sessionsrepo.Session])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sessionsrepo.Session{}, repositories.ErrNotFound
		}
		return sessionsrepo.Session{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// DeleteByToken removes a session by its token.
func (s *Store) DeleteByToken(ctx context.Context, token string) error {
	query := `DELETE FROM public.sessions WHERE token = @token`

	result, err := s.pool.Exec(ctx, query, pgx.NamedArgs{"token": token})
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if result.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

// DeleteExpired removes sessions whose expiry is before now.
func (s *Store) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM public.sessions WHERE expires_at < @now`

	result, err := s.pool.Exec(ctx, query, pgx.NamedArgs{"now": now})
	if err != nil {
		return 0, postgresdb.HandlePgError(err)
	}

	return result.RowsAffected(), nil
}
