package recipesrepobridge

import (
	"fmt"
	"net/http"

	"github.com/hearthkeep/hearthkeep/core/repositories/recipesrepo"
	"github.com/hearthkeep/hearthkeep/core/scaffolding/fop"
)

// CreateRecipeRequest carries fields for adding a recipe.
type CreateRecipeRequest struct {
	Name         string   `json:"name"`
	Description  *string  `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions *string  `json:"instructions"`
	Tags         []string `json:"tags"`
}

func (r CreateRecipeRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("missing required field: name")
	}
	for _, ing := range r.Ingredients {
		if ing == "" {
			return fmt.Errorf("ingredients cannot contain empty entries")
		}
	}
	for _, tag := range r.Tags {
		if tag == "" {
			return fmt.Errorf("tags cannot contain empty entries")
		}
	}
	return nil
}

func (r CreateRecipeRequest) toRepo() recipesrepo.CreateRecipe {
	return recipesrepo.CreateRecipe{
		Name:         r.Name,
		Description:  r.Description,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		Tags:         r.Tags,
	}
}

// UpdateRecipeRequest carries optional fields for a partial update. A
// non-nil slice replaces the stored value wholesale.
type UpdateRecipeRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions *string  `json:"instructions"`
	Tags         []string `json:"tags"`
}

func (r UpdateRecipeRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	return nil
}

func (r UpdateRecipeRequest) toRepo() recipesrepo.UpdateRecipe {
	return recipesrepo.UpdateRecipe{
		Name:         r.Name,
		Description:  r.Description,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		Tags:         r.Tags,
	}
}

type queryParams struct {
	Limit  string
	Cursor string
	Order  string
	Name   string
	Tag    string
}

func parseQueryParams(r *http.Request) queryParams {
	q := r.URL.Query()
	return queryParams{
		Limit:  q.Get("limit"),
		Cursor: q.Get("cursor"),
		Order:  q.Get("order"),
		Name:   q.Get("name"),
		Tag:    q.Get("tag"),
	}
}

func parseFilter(qp queryParams) recipesrepo.RecipeFilter {
	filter := recipesrepo.RecipeFilter{}
	if qp.Name != "" {
		filter.Name = &qp.Name
	}
	if qp.Tag != "" {
		filter.Tag = &qp.Tag
	}
	return filter
}

func parseOrderBy(order string) fop.By {
	orderBy, err := fop.ParseOrder(order, recipesrepo.OrderableFields, recipesrepo.DefaultOrderBy)
	if err != nil {
		return recipesrepo.DefaultOrderBy
	}
	return orderBy
}

func nextCursor(last recipesrepo.Recipe) (string, error) {
	return fop.Cursor[string, string]{
		OrderValue: last.Name,
		PK:         last.RecipeID,
	}.Encode()
}
