// Package leavepgxstore implements leave storage against Postgres.
package leavepgxstore

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
	"github.com/hearthkeep/hearthkeep/core/repositories/leaverepo"
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

const leaveColumns = `leave_id, user_id, start_date, end_date, type, status, reason,
	decided_by, decided_at, created_at, updated_at`

// Create inserts a new pending leave request.
func (s *Store) Create(ctx context.Context, input leaverepo.CreateLeaveRequest) (leaverepo.LeaveRequest, error) {
	query := `INSERT INTO public.leave_requests (leave_id, user_id, start_date, end_date, type, status, reason)
		VALUES (@leave_id, @user_id, @start_date, @end_date, @type, 'pending', @reason)
		RETURNING ` + leaveColumns

	args := pgx.NamedArgs{
		"leave_id":   uuid.NewString(),
		"user_id":    input.UserID,
		"start_date": input.StartDate,
		"end_date":   input.EndDate,
		"type":       input.Type,
		"reason":     input.Reason,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return leaverepo.LeaveRequest{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[leaverepo.LeaveRequest])
	if err != nil {
		return leaverepo.LeaveRequest{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// Get retrieves a single leave request by id.
func (s *Store) Get(ctx context.Context, leaveID string) (leaverepo.LeaveRequest, error) {
	query := `SELECT ` + leaveColumns + ` FROM public.leave_requests WHERE leave_id = @leave_id`

	rows, err := s.pool.Query(ctx, query, pgx.NamedArgs{"leave_id": leaveID})
	if err != nil {
		return leaverepo.LeaveRequest{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[leaverepo.LeaveRequest])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leaverepo.LeaveRequest{}, repositories.ErrNotFound
		}
		return leaverepo.LeaveRequest{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// List retrieves leave requests with filtering, ordering and cursor
// pagination.
func (s *Store) List(ctx context.Context, filter leaverepo.LeaveFilter, orderBy fop.By, page fop.PageStringCursor) ([]leaverepo.LeaveRequest, error) {
	var buf bytes.Buffer
	buf.WriteString(`SELECT ` + leaveColumns + ` FROM public.leave_requests`)

	data := pgx.NamedArgs{}

	var clauses []string
	if filter.UserID != nil {
		clauses = append(clauses, "user_id = @user_id")
		data["user_id"] = *filter.UserID
	}
	if filter.Status != nil {
		clauses = append(clauses, "status = @status")
		data["status"] = *filter.Status
	}
	if filter.Type != nil {
		clauses = append(clauses, "type = @type")
		data["type"] = *filter.Type
	}
	if filter.StartFrom != nil {
		clauses = append(clauses, "start_date >= @start_from")
		data["start_from"] = *filter.StartFrom
	}
	if filter.StartTo != nil {
		clauses = append(clauses, "start_date <= @start_to")
		data["start_to"] = *filter.StartTo
	}
	if len(clauses) > 0 {
		buf.WriteString(" WHERE " + strings.Join(clauses, " AND "))
	}

	cfg := postgresdb.StringCursorConfig{
		Cursor:     page.Cursor,
		OrderField: orderBy.Field,
		PKField:    "leave_id",
		Direction:  orderBy.Direction,
		Limit:      page.Limit,
	}
	if err := postgresdb.ApplyStringCursorPagination[time.Time](&buf, data, cfg, false); err != nil {
		return nil, fmt.Errorf("apply pagination: %w", err)
	}
	if err := postgresdb.AddOrderByClause(&buf, orderBy.Field, "leave_id", orderBy.Direction, false); err != nil {
		return nil, fmt.Errorf("order by: %w", err)
	}
	postgresdb.AddLimitClause(&buf, data, page.Limit)

	rows, err := s.pool.Query(ctx, buf.String(), data)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[leaverepo.LeaveRequest])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return records, nil
}

// Decide flips a pending request and, for approvals, debits the balance in
// the same transaction. The status guard in the UPDATE keeps two admins
// from deciding the same request twice.
func (s *Store) Decide(ctx context.Context, leaveID, status, deciderID string, debitDays, year int) (leaverepo.LeaveRequest, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return leaverepo.LeaveRequest{}, postgresdb.HandlePgError(err)
	}
	defer tx.Rollback(ctx)

	query := `UPDATE public.leave_requests
		SET status = @status, decided_by = @decided_by, decided_at = @decided_at, updated_at = @decided_at
		WHERE leave_id = @leave_id AND status = 'pending'
		RETURNING ` + leaveColumns

	args := pgx.NamedArgs{
		"leave_id":   leaveID,
		"status":     status,
		"decided_by": deciderID,
		"decided_at": time.Now(),
	}

	rows, err := tx.Query(ctx, query, args)
	if err != nil {
		return leaverepo.LeaveRequest{}, postgresdb.HandlePgError(err)
	}

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[leaverepo.LeaveRequest])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leaverepo.LeaveRequest{}, repositories.ErrNotFound
		}
		return leaverepo.LeaveRequest{}, postgresdb.HandlePgError(err)
	}

	if status == leaverepo.StatusApproved && debitDays > 0 {
		debit := `INSERT INTO public.leave_balances (user_id, year, allotted_days, used_days)
			VALUES (@user_id, @year, 0, @days)
			ON CONFLICT (user_id, year)
			DO UPDATE SET used_days = leave_balances.used_days + @days, updated_at = NOW()`

		if _, err := tx.Exec(ctx, debit, pgx.NamedArgs{
			"user_id": record.UserID,
			"year":    year,
			"days":    debitDays,
		}); err != nil {
			return leaverepo.LeaveRequest{}, postgresdb.HandlePgError(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return leaverepo.LeaveRequest{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// Delete removes a leave request.
func (s *Store) Delete(ctx context.Context, leaveID string) error {
	query := `DELETE FROM public.leave_requests WHERE leave_id = @leave_id`

	result, err := s.pool.Exec(ctx, query, pgx.NamedArgs{"leave_id": leaveID})
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if result.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

// GetBalance retrieves a member's balance row for a year.
func (s *Store) GetBalance(ctx context.Context, userID string, year int) (leaverepo.LeaveBalance, error) {
	query := `SELECT user_id, year, allotted_days, used_days, updated_at
		FROM public.leave_balances WHERE user_id = @user_id AND year = @year`

	rows, err := s.pool.Query(ctx, query, pgx.NamedArgs{"user_id": userID, "year": year})
	if err != nil {
		return leaverepo.LeaveBalance{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[leaverepo.LeaveBalance])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leaverepo.LeaveBalance{}, repositories.ErrNotFound
		}
		return leaverepo.LeaveBalance{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// UpsertAllotment creates or updates the allotment of a balance row,
// preserving any used days already recorded.
func (s *Store) UpsertAllotment(ctx context.Context, userID string, year, allottedDays int) (leaverepo.LeaveBalance, error) {
	query := `INSERT INTO public.leave_balances (user_id, year, allotted_days, used_days)
		VALUES (@user_id, @year, @allotted_days, 0)
		ON CONFLICT (user_id, year)
		DO UPDATE SET allotted_days = @allotted_days, updated_at = NOW()
		RETURNING user_id, year, allotted_days, used_days, updated_at`

	args := pgx.NamedArgs{
		"user_id":       userID,
		"year":          year,
		"allotted_days": allottedDays,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return leaverepo.LeaveBalance{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[leaverepo.LeaveBalance])
	if err != nil {
		return leaverepo.LeaveBalance{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// ListBalances retrieves every balance row for a year.
func (s *Store) ListBalances(ctx context.Context, year int) ([]leaverepo.LeaveBalance, error) {
	query := `SELECT user_id, year, allotted_days, used_days, updated_at
		FROM public.leave_balances WHERE year = @year ORDER BY user_id`

	rows, err := s.pool.Query(ctx, query, pgx.NamedArgs{"year": year})
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[leaverepo.LeaveBalance])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return records, nil
}
