// Package userspgxstore implements user storage against Postgres.
package userspgxstore

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
	"github.com/hearthkeep/hearthkeep/core/repositories/usersrepo"
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

const userColumns = `user_id, email, name, role, password_hash, created_at, updated_at`

// Create inserts a new user.
func (s *Store) Create(ctx context.Context, input usersrepo.CreateUser, passwordHash string) (usersrepo.User, error) {
	query := `INSERT INTO public.users (user_id, email, name, role, password_hash)
		VALUES (@user_id, @email, @name, @role, @password_hash)
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"user_id":       uuid.NewString(),
		"email":         input.Email,
		"name":          input.Name,
		"role":          input.Role,
		"password_hash": passwordHash,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return usersrepo.User{}, handleUserError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[usersrepo.User])
	if err != nil {
		return usersrepo.User{}, handleUserError(err)
	}

	return record, nil
}

// handleUserError translates driver errors, mapping the unique email
// violation onto the repository sentinel.
func handleUserError(err error) error {
	err = postgresdb.HandlePgError(err)
	if errors.Is(err, postgresdb.ErrDBDuplicatedEntry) {
		return repositories.ErrAlreadyExists
	}
	return err
}

// Get retrieves a single user by id.
func (s *Store) Get(ctx context.Context, userID string) (usersrepo.User, error) {
	query := `SELECT ` + userColumns + ` FROM public.users WHERE user_id = @user_id`

	return s.one(ctx, query, pgx.NamedArgs{"user_id": userID})
}

// GetByEmail retrieves a single user by email.
func (s *Store) GetByEmail(ctx context.Context, email string) (usersrepo.User, error) {
	query := `SELECT ` + userColumns + ` FROM public.users WHERE email = @email`

	return s.one(ctx, query, pgx.NamedArgs{"email": email})
}

func (s *Store) one(ctx context.Context, query string, args pgx.NamedArgs) (usersrepo.User, error) {
	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return usersrepo.User{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[usersrepo.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return usersrepo.User{}, repositories.ErrNotFound
		}
		return usersrepo.User{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// List retrieves users with filtering, ordering and cursor pagination.
func (s *Store) List(ctx context.Context, filter usersrepo.UserFilter, orderBy fop.By, page fop.PageStringCursor) ([]usersrepo.User, error) {
	var buf bytes.Buffer
	buf.WriteString(`SELECT ` + userColumns + ` FROM public.users`)

	data := pgx.NamedArgs{}

	var clauses []string
	if filter.Email != nil {
		clauses = append(clauses, "email = @email")
		data["email"] = *filter.Email
	}
	if filter.Role != nil {
		clauses = append(clauses, "role = @role")
		data["role"] = *filter.Role
	}
	if len(clauses) > 0 {
		buf.WriteString(" WHERE " + strings.Join(clauses, " AND "))
	}

	cfg := postgresdb.StringCursorConfig{
		Cursor:     page.Cursor,
		OrderField: orderBy.Field,
		PKField:    "user_id",
		Direction:  orderBy.Direction,
		Limit:      page.Limit,
	}
	if err := postgresdb.ApplyStringCursorPagination[time.Time](&buf, data, cfg, false); err != nil {
		return nil, fmt.Errorf("apply pagination: %w", err)
	}
	if err := postgresdb.AddOrderByClause(&buf, orderBy.Field, "user_id", orderBy.Direction, false); err != nil {
		return nil, fmt.Errorf("order by: %w", err)
	}
	postgresdb.AddLimitClause(&buf, data, page.Limit)

	rows, err := s.pool.Query(ctx, buf.String(), data)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[usersrepo.User])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return records, nil
}

// Update modifies an existing user.
func (s *Store) Update(ctx context.Context, userID string, updates usersrepo.UpdateUser, passwordHash *string) error {
	var fields []string
	data := pgx.NamedArgs{
		"user_id":    userID,
		"updated_at": time.Now(),
	}
	fields = append(fields, "updated_at = @updated_at")

	if updates.Email != nil {
		fields = append(fields, "email = @email")
		data["email"] = *updates.Email
	}
	if updates.Name != nil {
		fields = append(fields, "name = @name")
		data["name"] = *updates.Name
	}
	if updates.Role != nil {
		fields = append(fields, "role = @role")
		data["role"] = *updates.Role
	}
	if passwordHash != nil {
		fields = append(fields, "password_hash = @password_hash")
		data["password_hash"] = *passwordHash
	}

	query := fmt.Sprintf(`UPDATE public.users SET %s WHERE user_id = @user_id`, strings.Join(fields, ", "))

	result, err := s.pool.Exec(ctx, query, data)
	if err != nil {
		return handleUserError(err)
	}
	if result.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

// Delete removes a user.
func (s *Store) Delete(ctx context.Context, userID string) error {
	query := `DELETE FROM public.users WHERE user_id = @user_id`

	result, err := s.pool.Exec(ctx, query, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if result.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}

	return nil
}
