// Package recipesrepobridge contains HTTP route registration for the
// recipe collection.
package recipesrepobridge

import (
	"github.com/hearthkeep/hearthkeep/core/repositories/recipesrepo"
	"github.com/hearthkeep/hearthkeep/infrastructure/web"
	"github.com/hearthkeep/hearthkeep/sdk/logger"
)

// Config holds configuration for the Recipe bridge.
type Config struct {
	Log        *logger.Logger
	Repository *recipesrepo.Repository
	Middleware []web.MidFunc
}

type bridge struct {
	recipeRepository *recipesrepo.Repository
}

func newBridge(cfg Config) *bridge {
	return &bridge{
		recipeRepository: cfg.Repository,
	}
}

// AddHttpRoutes registers all HTTP routes for Recipe.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg)

	group.GET("/recipes", b.httpList, cfg.Middleware...)
	group.GET("/recipes/{recipe_id}", b.httpGetByID, cfg.Middleware...)
	group.POST("/recipes", b.httpCreate, cfg.Middleware...)
	group.PUT("/recipes/{recipe_id}", b.httpUpdate, cfg.Middleware...)
	group.DELETE("/recipes/{recipe_id}", b.httpDelete, cfg.Middleware...)
}
