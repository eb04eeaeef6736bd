// Package taskspgxstore implements task storage against Postgres.
package taskspgxstore

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
	"github.com/hearthkeep/hearthkeep/core/repositories/tasksrepo"
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

const taskColumns = `task_id, title, notes, assignee_id, creator_id, due_date, done,
	repeat_weekdays, repeat_interval, batch_date, created_at, updated_at`

const insertTask = `INSERT INTO public.tasks
	(task_id, title, notes, assignee_id, creator_id, due_date, repeat_weekdays, repeat_interval, batch_date)
	VALUES (@task_id, @title, @notes, @assignee_id, @creator_id, @due_date, @repeat_weekdays, @repeat_interval, @batch_date)
	RETURNING ` + taskColumns

// Create inserts a single non-recurring task.
func (s *Store) Create(ctx context.Context, input tasksrepo.CreateTask) (tasksrepo.Task, error) {
	args := pgx.NamedArgs{
		"task_id":         uuid.NewString(),
		"title":           input.Title,
		"notes":           input.Notes,
		"assignee_id":     input.AssigneeID,
		"creator_id":      input.CreatorID,
		"due_date":        input.DueDate,
		"repeat_weekdays": nil,
		"repeat_interval": nil,
		"batch_date":      nil,
	}

	rows, err := s.pool.Query(ctx, insertTask, args)
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// CreateBatch inserts the rows of one recurring expansion in a single
// transaction using a pgx batch. Either every row lands or none do.
func (s *Store) CreateBatch(ctx context.Context, inputs []tasksrepo.CreateTask, repeatWeekdays, repeatInterval string, batchDate time.Time) ([]tasksrepo.Task, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, input := range inputs {
		batch.Queue(insertTask, pgx.NamedArgs{
			"task_id":         uuid.NewString(),
			"title":           input.Title,
			"notes":           input.Notes,
			"assignee_id":     input.AssigneeID,
			"creator_id":      input.CreatorID,
			"due_date":        input.DueDate,
			"repeat_weekdays": repeatWeekdays,
			"repeat_interval": repeatInterval,
			"batch_date":      batchDate,
		})
	}

	results := tx.SendBatch(ctx, batch)

	tasks := make([]tasksrepo.Task, 0, len(inputs))
	for range inputs {
		rows, err := results.Query()
		if err != nil {
			results.Close()
			return nil, postgresdb.HandlePgError(err)
		}

		record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tasksrepo.Task])
		if err != nil {
			results.Close()
			return nil, postgresdb.HandlePgError(err)
		}
		tasks = append(tasks, record)
	}

	if err := results.Close(); err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return tasks, nil
}

// Get retrieves a single task by id.
func (s *Store) Get(ctx context.Context, taskID string) (tasksrepo.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM public.tasks WHERE task_id = @task_id`

	rows, err := s.pool.Query(ctx, query, pgx.NamedArgs{"task_id": taskID})
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tasksrepo.Task{}, repositories.ErrNotFound
		}
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// List retrieves tasks with filtering, ordering and cursor pagination.
func (s *Store) List(ctx context.Context, filter tasksrepo.TaskFilter, orderBy fop.By, page fop.PageStringCursor) ([]tasksrepo.Task, error) {
	var buf bytes.Buffer
	buf.WriteString(`SELECT ` + taskColumns + ` FROM public.tasks`)

	data := pgx.NamedArgs{}

	var clauses []string
	if filter.AssigneeID != nil {
		clauses = append(clauses, "assignee_id = @assignee_id")
		data["assignee_id"] = *filter.AssigneeID
	}
	if filter.CreatorID != nil {
		clauses = append(clauses, "creator_id = @creator_id")
		data["creator_id"] = *filter.CreatorID
	}
	if filter.Done != nil {
		clauses = append(clauses, "done = @done")
		data["done"] = *filter.Done
	}
	if filter.DueFrom != nil {
		clauses = append(clauses, "due_date >= @due_from")
		data["due_from"] = *filter.DueFrom
	}
	if filter.DueTo != nil {
		clauses = append(clauses, "due_date <= @due_to")
		data["due_to"] = *filter.DueTo
	}
	if len(clauses) > 0 {
		buf.WriteString(" WHERE " + strings.Join(clauses, " AND "))
	}

	cfg := postgresdb.StringCursorConfig{
		Cursor:     page.Cursor,
		OrderField: orderBy.Field,
		PKField:    "task_id",
		Direction:  orderBy.Direction,
		Limit:      page.Limit,
	}
	if err := postgresdb.ApplyStringCursorPagination[time.Time](&buf, data, cfg, false); err != nil {
		return nil, fmt.Errorf("apply pagination: %w", err)
	}
	if err := postgresdb.AddOrderByClause(&buf, orderBy.Field, "task_id", orderBy.Direction, false); err != nil {
		return nil, fmt.Errorf("order by: %w", err)
	}
	postgresdb.AddLimitClause(&buf, data, page.Limit)

	rows, err := s.pool.Query(ctx, buf.String(), data)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return records, nil
}

// Update modifies an existing task.
func (s *Store) Update(ctx context.Context, taskID string, updates tasksrepo.UpdateTask) error {
	var fields []string
	data := pgx.NamedArgs{
		"task_id":    taskID,
		"updated_at": time.Now(),
	}
	fields = append(fields, "updated_at = @updated_at")

	if updates.Title != nil {
		fields = append(fields, "title = @title")
		data["title"] = *updates.Title
	}
	if updates.Notes != nil {
		fields = append(fields, "notes = @notes")
		data["notes"] = *updates.Notes
	}
	if updates.AssigneeID != nil {
		fields = append(fields, "assignee_id = @assignee_id")
		data["assignee_id"] = *updates.AssigneeID
	}
	if updates.DueDate != nil {
		fields = append(fields, "due_date = @due_date")
		data["due_date"] = *updates.DueDate
	}
	if updates.Done != nil {
		fields = append(fields, "done = @done")
		data["done"] = *updates.Done
	}

	query := fmt.Sprintf(`UPDATE public.tasks SET %s WHERE task_id = @task_id`, strings.Join(fields, ", "))

	result, err := s.pool.Exec(ctx, query, data)
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if result.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

// Delete removes a task.
func (s *Store) Delete(ctx context.Context, taskID string) error {
	query := `DELETE FROM public.tasks WHERE task_id = @task_id`

	result, err := s.pool.Exec(ctx, query, pgx.NamedArgs{"task_id": taskID})
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if result.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

// DeleteBatchFrom removes the rows of one recurring batch whose due date is
// on or after from.
func (s *Store) DeleteBatchFrom(ctx context.Context, title, creatorID string, batchDate, from time.Time) (int64, error) {
	query := `DELETE FROM public.tasks
		WHERE title = @title
		  AND creator_id = @creator_id
		  AND batch_date = @batch_date
		  AND due_date >= @from`

	args := pgx.NamedArgs{
		"title":      title,
		"creator_id": creatorID,
		"batch_date": batchDate,
		"from":       from,
	}

	result, err := s.pool.Exec(ctx, query, args)
	if err != nil {
		return 0, postgresdb.HandlePgError(err)
	}

	return result.RowsAffected(), nil
}
