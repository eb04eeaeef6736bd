// Package activitiespgxstore implements activity log storage against
// Postgres.
package activitiespgxstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hearthkeep/hearthkeep/core/repositories"
	"github.com/hearthkeep/hearthkeep/core/repositories/activitiesrepo"
	"github.com/hearthkeep/hearthkeep/core/scaffolding/fop"
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

const activityColumns = `activity_id, child_name, activity, notes, happened_at, recorded_by, created_at`

// Create inserts a new activity entry.
func (s *Store) Create(ctx context.Context, input activitiesrepo.CreateActivity) (activitiesrepo.Activity, error) {
	query := `INSERT INTO public.activities (activity_id, child_name, activity, notes, happened_at, recorded_by)
		VALUES (@activity_id, @child_name, @activity, @notes, @happened_at, @recorded_by)
		RETURNING ` + activityColumns

	args := pgx.NamedArgs{
		"activity_id": uuid.NewString(),
		"child_name":  input.ChildName,
		"activity":    input.Activity,
		"notes":       input.Notes,
		"happened_at": input.HappenedAt,
		"recorded_by": input.RecordedBy,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return activitiesrepo.Activity{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[activitiesrepo.Activity])
	if err != nil {
		return activitiesrepo.Activity{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// Get retrieves a single activity entry by id.
func (s *Store) Get(ctx context.Context, activityID string) (activitiesrepo.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM public.activities WHERE activity_id = @activity_id`

	rows, err := s.pool.Query(ctx, query, pgx.NamedArgs{"activity_id": activityID})
	if err != nil {
		return activitiesrepo.Activity{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[activitiesrepo.Activity])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return activitiesrepo.Activity{}, repositories.ErrNotFound
		}
		return activitiesrepo.Activity{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// List retrieves activity entries with filtering, ordering and cursor
// pagination.
func (s *Store) List(ctx context.Context, filter activitiesrepo.ActivityFilter, orderBy fop.By, page fop.PageStringCursor) ([]activitiesrepo.Activity, error) {
	var buf bytes.Buffer
	buf.WriteString(`SELECT ` + activityColumns + ` FROM public.activities`)

	data := pgx.NamedArgs{}

	var clauses []string
	if filter.ChildName != nil {
		clauses = append(clauses, "child_name = @child_name")
		data["child_name"] = *filter.ChildName
	}
	if filter.From != nil {
		clauses = append(clauses, "happened_at >= @from")
		data["from"] = *filter.From
	}
	if filter.To != nil {
		clauses = append(clauses, "happened_at <= @to")
		data["to"] = *filter.To
	}
	if len(clauses) > 0 {
		buf.WriteString(" WHERE " + strings.Join(clauses, " AND "))
	}

	cfg := postgresdb.StringCursorConfig{
		Cursor:     page.Cursor,
		OrderField: orderBy.Field,
		PKField:    "activity_id",
		Direction:  orderBy.Direction,
		Limit:      page.Limit,
	}
	if err := postgresdb.ApplyStringCursorPagination[time.Time](&buf, data, cfg, false); err != nil {
		return nil, fmt.Errorf("apply pagination: %w", err)
	}
	if err := postgresdb.AddOrderByClause(&buf, orderBy.Field, "activity_id", orderBy.Direction, false); err != nil {
		return nil, fmt.Errorf("order by: %w", err)
	}
	postgresdb.AddLimitClause(&buf, data, page.Limit)

	rows, err := s.pool.Query(ctx, buf.String(), data)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[activitiesrepo.Activity])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return records, nil
}

// Delete removes an activity entry.
func (s *Store) Delete(ctx context.Context, activityID string) error {
	query := `DELETE FROM public.activities WHERE activity_id = @activity_id`

	result, err := s.pool.Exec(ctx, query, pgx.NamedArgs{"activity_id": activityID})
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if result.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}

	return nil
}
