package recipesrepo

import (
	"time"

	"github.com/hearthkeep/hearthkeep/core/scaffolding/fop"
)

// Recipe represents a stored recipe. Ingredients and tags map to Postgres
// text[] columns.
type Recipe struct {
	RecipeID     string    `db:"recipe_id" json:"recipe_id"`
	Name         string    `db:"name" json:"name"`
	Description  *string   `db:"description" json:"description,omitempty"`
	Ingredients  []string  `db:"ingredients" json:"ingredients"`
	Instructions *string   `db:"instructions" json:"instructions,omitempty"`
	Tags         []string  `db:"tags" json:"tags"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// CreateRecipe contains fields for creating a new recipe.
type CreateRecipe struct {
	Name         string
	Description  *string
	Ingredients  []string
	Instructions *string
	Tags         []string
}

// UpdateRecipe contains fields for updating an existing recipe. Slices
// replace the stored value wholesale when non-nil.
type UpdateRecipe struct {
	Name         *string
	Description  *string
	Ingredients  []string
	Instructions *string
	Tags         []string
}

// RecipeFilter holds the available fields a query can be filtered on.
type RecipeFilter struct {
	Name *string
	Tag  *string
}

// OrderableFields maps API order keys to database columns.
var OrderableFields = map[string]string{
	"name": "name",
}

// DefaultOrderBy is used when the caller does not specify an order.
var DefaultOrderBy = fop.NewBy("name", fop.ASC)
