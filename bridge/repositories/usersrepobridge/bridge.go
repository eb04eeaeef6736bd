// Package usersrepobridge contains HTTP route registration for household
// member accounts. Account management is an admin surface; the routes are
// expected to be registered behind the admin middleware.
package usersrepobridge

import (
	"github.com/hearthkeep/hearthkeep/core/repositories/usersrepo"
	"github.com/hearthkeep/hearthkeep/infrastructure/web"
	"github.com/hearthkeep/hearthkeep/sdk/logger"
)

// Config holds configuration for the User bridge.
type Config struct {
	Log        *logger.Logger
	Repository *usersrepo.Repository
	Middleware []web.MidFunc
}

type bridge struct {
	userRepository *usersrepo.Repository
}

func newBridge(cfg Config) *bridge {
	return &bridge{
		userRepository: cfg.Repository,
	}
}

// AddHttpRoutes registers all HTTP routes for User.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg)

	group.GET("/users", b.httpList, cfg.Middleware...)
	group.GET("/users/{user_id}", b.httpGetByID, cfg.Middleware...)
	group.POST("/users", b.httpCreate, cfg.Middleware...)
	group.PUT("/users/{user_id}", b.httpUpdate, cfg.Middleware...)
	group.DELETE("/users/{user_id}", b.httpDelete, cfg.Middleware...)
}
