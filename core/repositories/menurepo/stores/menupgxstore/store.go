// Package menupgxstore implements menu storage against Postgres.
package menupgxstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hearthkeep/hearthkeep/core/repositories"
	"github.com/hearthkeep/hearthkeep/core/repositories/menurepo"
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

const menuColumns = `entry_id, week_start, weekday, recipe_id, note, created_at, updated_at`

// Upsert writes a menu slot, replacing an existing entry for the same
// (week_start, weekday).
func (s *Store) Upsert(ctx context.Context, input menurepo.SetMenuEntry) (menurepo.MenuEntry, error) {
	query := `INSERT INTO public.menu_entries (entry_id, week_start, weekday, recipe_id, note)
		VALUES (@entry_id, @week_start, @weekday, @recipe_id, @note)
		ON CONFLICT (week_start, weekday)
		DO UPDATE SET recipe_id = @recipe_id, note = @note, updated_at = NOW()
		RETURNING ` + menuColumns

	args := pgx.NamedArgs{
		"entry_id":   uuid.NewString(),
		"week_start": input.WeekStart,
		"weekday":    input.Weekday,
		"recipe_id":  input.RecipeID,
		"note":       input.Note,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return menurepo.MenuEntry{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[menurepo.MenuEntry])
	if err != nil {
		return menurepo.MenuEntry{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// Get retrieves one slot by its entry id.
func (s *Store) Get(ctx context.Context, entryID string) (menurepo.MenuEntry, error) {
	query := `SELECT ` + menuColumns + ` FROM public.menu_entries WHERE entry_id = @entry_id`

	rows, err := s.pool.Query(ctx, query, pgx.NamedArgs{"entry_id": entryID})
	if err != nil {
		return menurepo.MenuEntry{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[menurepo.MenuEntry])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return menurepo.MenuEntry{}, repositories.ErrNotFound
		}
		return menurepo.MenuEntry{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// Week retrieves the slots of one week ordered by weekday.
func (s *Store) Week(ctx context.Context, weekStart time.Time) ([]menurepo.MenuEntry, error) {
	query := `SELECT ` + menuColumns + ` FROM public.menu_entries
		WHERE week_start = @week_start ORDER BY weekday`

	rows, err := s.pool.Query(ctx, query, pgx.NamedArgs{"week_start": weekStart})
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[menurepo.MenuEntry])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return records, nil
}

// Delete removes one weekday slot.
func (s *Store) Delete(ctx context.Context, weekStart time.Time, weekday int) error {
	query := `DELETE FROM public.menu_entries WHERE week_start = @week_start AND weekday = @weekday`

	args := pgx.NamedArgs{
		"week_start": weekStart,
		"weekday":    weekday,
	}

	result, err := s.pool.Exec(ctx, query, args)
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if result.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}

	return nil
}
