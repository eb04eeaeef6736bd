// Package recipespgxstore implements recipe storage against Postgres.
package recipespgxstore

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
	"github.com/hearthkeep/hearthkeep/core/repositories/recipesrepo"
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

const recipeColumns = `recipe_id, name, description, ingredients, instructions, tags, created_at, updated_at`

// Create inserts a new recipe.
func (s *Store) Create(ctx context.Context, input recipesrepo.CreateRecipe) (recipesrepo.Recipe, error) {
	query := `INSERT INTO public.recipes (recipe_id, name, description, ingredients, instructions, tags)
		VALUES (@recipe_id, @name, @description, @ingredients, @instructions, @tags)
		RETURNING ` + recipeColumns

	args := pgx.NamedArgs{
		"recipe_id":    uuid.NewString(),
		"name":         input.Name,
		"description":  input.Description,
		"ingredients":  input.Ingredients,
		"instructions": input.Instructions,
		"tags":         input.Tags,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return recipesrepo.Recipe{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[recipesrepo.Recipe])
	if err != nil {
		return recipesrepo.Recipe{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// Get retrieves a single recipe by id.
func (s *Store) Get(ctx context.Context, recipeID string) (recipesrepo.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM public.recipes WHERE recipe_id = @recipe_id`

	rows, err := s.pool.Query(ctx, query, pgx.NamedArgs{"recipe_id": recipeID})
	if err != nil {
		return recipesrepo.Recipe{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[recipesrepo.Recipe])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return recipesrepo.Recipe{}, repositories.ErrNotFound
		}
		return recipesrepo.Recipe{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// List retrieves recipes with filtering, ordering and cursor pagination.
// The tag filter uses array containment on the text[] column.
func (s *Store) List(ctx context.Context, filter recipesrepo.RecipeFilter, orderBy fop.By, page fop.PageStringCursor) ([]recipesrepo.Recipe, error) {
	var buf bytes.Buffer
	buf.WriteString(`SELECT ` + recipeColumns + ` FROM public.recipes`)

	data := pgx.NamedArgs{}

	var clauses []string
	if filter.Name != nil {
		clauses = append(clauses, "name ILIKE @name")
		data["name"] = "%" + *filter.Name + "%"
	}
	if filter.Tag != nil {
		clauses = append(clauses, "tags @> ARRAY[@tag]::text[]")
		data["tag"] = *filter.Tag
	}
	if len(clauses) > 0 {
		buf.WriteString(" WHERE " + strings.Join(clauses, " AND "))
	}

	cfg := postgresdb.StringCursorConfig{
		Cursor:     page.Cursor,
		OrderField: orderBy.Field,
		PKField:    "recipe_id",
		Direction:  orderBy.Direction,
		Limit:      page.Limit,
	}
	if err := postgresdb.ApplyStringCursorPagination[string](&buf, data, cfg, false); err != nil {
		return nil, fmt.Errorf("apply pagination: %w", err)
	}
	if err := postgresdb.AddOrderByClause(&buf, orderBy.Field, "recipe_id", orderBy.Direction, false); err != nil {
		return nil, fmt.Errorf("order by: %w", err)
	}
	postgresdb.AddLimitClause(&buf, data, page.Limit)

	rows, err := s.pool.Query(ctx, buf.String(), data)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[recipesrepo.Recipe])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return records, nil
}

// Update modifies an existing recipe.
func (s *Store) Update(ctx context.Context, recipeID string, updates recipesrepo.UpdateRecipe) error {
	var fields []string
	data := pgx.NamedArgs{
		"recipe_id":  recipeID,
		"updated_at": time.Now(),
	}
	fields = append(fields, "updated_at = @updated_at")

	if updates.Name != nil {
		fields = append(fields, "name = @name")
		data["name"] = *updates.Name
	}
	if updates.Description != nil {
		fields = append(fields, "description = @description")
		data["description"] = *updates.Description
	}
	if updates.Ingredients != nil {
		fields = append(fields, "ingredients = @ingredients")
		data["ingredients"] = updates.Ingredients
	}
	if updates.Instructions != nil {
		fields = append(fields, "instructions = @instructions")
		data["instructions"] = *updates.Instructions
	}
	if updates.Tags != nil {
		fields = append(fields, "tags = @tags")
		data["tags"] = updates.Tags
	}

	query := fmt.Sprintf(`UPDATE public.recipes SET %s WHERE recipe_id = @recipe_id`, strings.Join(fields, ", "))

	result, err := s.pool.Exec(ctx, query, data)
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if result.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

// Delete removes a recipe.
func (s *Store) Delete(ctx context.Context, recipeID string) error {
	query := `DELETE FROM public.recipes WHERE recipe_id = @recipe_id`

	result, err := s.pool.Exec(ctx, query, pgx.NamedArgs{"recipe_id": recipeID})
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if result.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}

	return nil
}
