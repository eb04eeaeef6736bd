// Package supplypgxstore implements supply request storage against
// Postgres.
package supplypgxstore

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
	"github.com/hearthkeep/hearthkeep/core/repositories/supplyrepo"
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

const supplyColumns = `supply_id, name, quantity, urgency, status, requested_by, notes, created_at, updated_at`

// Create inserts a new supply request.
func (s *Store) Create(ctx context.Context, input supplyrepo.CreateSupplyRequest) (supplyrepo.SupplyRequest, error) {
	query := `INSERT INTO public.supply_requests (supply_id, name, quantity, urgency, status, requested_by, notes)
		VALUES (@supply_id, @name, @quantity, @urgency, 'requested', @requested_by, @notes)
		RETURNING ` + supplyColumns

	args := pgx.NamedArgs{
		"supply_id":    uuid.NewString(),
		"name":         input.Name,
		"quantity":     input.Quantity,
		"urgency":      input.Urgency,
		"requested_by": input.RequestedBy,
		"notes":        input.Notes,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return supplyrepo.SupplyRequest{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[supplyrepo.SupplyRequest])
	if err != nil {
		return supplyrepo.SupplyRequest{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// Get retrieves a single supply request by id.
func (s *Store) Get(ctx context.Context, supplyID string) (supplyrepo.SupplyRequest, error) {
	query := `SELECT ` + supplyColumns + ` FROM public.supply_requests WHERE supply_id = @supply_id`

	rows, err := s.pool.Query(ctx, query, pgx.NamedArgs{"supply_id": supplyID})
	if err != nil {
		return supplyrepo.SupplyRequest{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[supplyrepo.SupplyRequest])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return supplyrepo.SupplyRequest{}, repositories.ErrNotFound
		}
		return supplyrepo.SupplyRequest{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// List retrieves supply requests with filtering, ordering and cursor
// pagination.
func (s *Store) List(ctx context.Context, filter supplyrepo.SupplyFilter, orderBy fop.By, page fop.PageStringCursor) ([]supplyrepo.SupplyRequest, error) {
	var buf bytes.Buffer
	buf.WriteString(`SELECT ` + supplyColumns + ` FROM public.supply_requests`)

	data := pgx.NamedArgs{}

	var clauses []string
	if filter.Status != nil {
		clauses = append(clauses, "status = @status")
		data["status"] = *filter.Status
	}
	if filter.Urgency != nil {
		clauses = append(clauses, "urgency = @urgency")
		data["urgency"] = *filter.Urgency
	}
	if filter.RequestedBy != nil {
		clauses = append(clauses, "requested_by = @requested_by")
		data["requested_by"] = *filter.RequestedBy
	}
	if len(clauses) > 0 {
		buf.WriteString(" WHERE " + strings.Join(clauses, " AND "))
	}

	cfg := postgresdb.StringCursorConfig{
		Cursor:     page.Cursor,
		OrderField: orderBy.Field,
		PKField:    "supply_id",
		Direction:  orderBy.Direction,
		Limit:      page.Limit,
	}
	if err := postgresdb.ApplyStringCursorPagination[time.Time](&buf, data, cfg, false); err != nil {
		return nil, fmt.Errorf("apply pagination: %w", err)
	}
	if err := postgresdb.AddOrderByClause(&buf, orderBy.Field, "supply_id", orderBy.Direction, false); err != nil {
		return nil, fmt.Errorf("order by: %w", err)
	}
	postgresdb.AddLimitClause(&buf, data, page.Limit)

	rows, err := s.pool.Query(ctx, buf.String(), data)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[supplyrepo.SupplyRequest])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return records, nil
}

// Update modifies a supply request's descriptive fields.
func (s *Store) Update(ctx context.Context, supplyID string, updates supplyrepo.UpdateSupplyRequest) error {
	var fields []string
	data := pgx.NamedArgs{
		"supply_id":  supplyID,
		"updated_at": time.Now(),
	}
	fields = append(fields, "updated_at = @updated_at")

	if updates.Name != nil {
		fields = append(fields, "name = @name")
		data["name"] = *updates.Name
	}
	if updates.Quantity != nil {
		fields = append(fields, "quantity = @quantity")
		data["quantity"] = *updates.Quantity
	}
	if updates.Urgency != nil {
		fields = append(fields, "urgency = @urgency")
		data["urgency"] = *updates.Urgency
	}
	if updates.Notes != nil {
		fields = append(fields, "notes = @notes")
		data["notes"] = *updates.Notes
	}

	query := fmt.Sprintf(`UPDATE public.supply_requests SET %s WHERE supply_id = @supply_id`, strings.Join(fields, ", "))

	result, err := s.pool.Exec(ctx, query, data)
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if result.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

// SetStatus applies a status change with a guard on the expected current
// status so concurrent transitions cannot cross.
func (s *Store) SetStatus(ctx context.Context, supplyID, from, to string) error {
	query := `UPDATE public.supply_requests
		SET status = @to, updated_at = @updated_at
		WHERE supply_id = @supply_id AND status = @from`

	args := pgx.NamedArgs{
		"supply_id":  supplyID,
		"from":       from,
		"to":         to,
		"updated_at": time.Now(),
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

// Delete removes a supply request.
func (s *Store) Delete(ctx context.Context, supplyID string) error {
	query := `DELETE FROM public.supply_requests WHERE supply_id = @supply_id`

	result, err := s.pool.Exec(ctx, query, pgx.NamedArgs{"supply_id": supplyID})
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if result.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}

	return nil
}
