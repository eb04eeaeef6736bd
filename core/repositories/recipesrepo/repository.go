// Package recipesrepo provides access to recipe storage.
package recipesrepo

import (
	"context"
	"fmt"

	"github.com/hearthkeep/hearthkeep/core/scaffolding/fop"
	"github.com/hearthkeep/hearthkeep/sdk/logger"
)

// Storer defines the data storage interface for Recipe.
type Storer interface {
	Create(ctx context.Context, input CreateRecipe) (Recipe, error)
	Get(ctx context.Context, recipeID string) (Recipe, error)
	List(ctx context.Context, filter RecipeFilter, orderBy fop.By, page fop.PageStringCursor) ([]Recipe, error)
	Update(ctx context.Context, recipeID string, updates UpdateRecipe) error
	Delete(ctx context.Context, recipeID string) error
}

// Repository provides access to recipe storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new Recipe repository.
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// Create adds a new recipe.
func (r *Repository) Create(ctx context.Context, input CreateRecipe) (Recipe, error) {
	if input.Name == "" {
		return Recipe{}, fmt.Errorf("recipe name is required")
	}

	recipe, err := r.storer.Create(ctx, input)
	if err != nil {
		return Recipe{}, fmt.Errorf("create recipe: %w", err)
	}

	r.log.Info(ctx, "created recipe", "recipe_id", recipe.RecipeID, "name", recipe.Name)
	return recipe, nil
}

// Get retrieves a recipe by id.
func (r *Repository) Get(ctx context.Context, recipeID string) (Recipe, error) {
	recipe, err := r.storer.Get(ctx, recipeID)
	if err != nil {
		return Recipe{}, fmt.Errorf("get recipe %s: %w", recipeID, err)
	}
	return recipe, nil
}

// List retrieves recipes matching the filter.
func (r *Repository) List(ctx context.Context, filter RecipeFilter, orderBy fop.By, page fop.PageStringCursor) ([]Recipe, error) {
	recipes, err := r.storer.List(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

// Update modifies a recipe.
func (r *Repository) Update(ctx context.Context, recipeID string, updates UpdateRecipe) error {
	if err := r.storer.Update(ctx, recipeID, updates); err != nil {
		return fmt.Errorf("update recipe %s: %w", recipeID, err)
	}
	return nil
}

// Delete removes a recipe.
func (r *Repository) Delete(ctx context.Context, recipeID string) error {
	if err := r.storer.Delete(ctx, recipeID); err != nil {
		return fmt.Errorf("delete recipe %s: %w", recipeID, err)
	}
	return nil
}
