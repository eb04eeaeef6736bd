// Package authbridge contains HTTP route registration for authentication:
// login, logout, and the current-user endpoint.
package authbridge

import (
	"github.com/hearthkeep/hearthkeep/core/repositories/sessionsrepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/usersrepo"
	"github.com/hearthkeep/hearthkeep/infrastructure/web"
	"github.com/hearthkeep/hearthkeep/sdk/logger"
)

// Config holds configuration for the auth bridge.
type Config struct {
	Log      *logger.Logger
	Users    *usersrepo.Repository
	Sessions *sessionsrepo.Repository
}

type bridge struct {
	users    *usersrepo.Repository
	sessions *sessionsrepo.Repository
}

func newBridge(cfg Config) *bridge {
	return &bridge{
		users:    cfg.Users,
		sessions: cfg.Sessions,
	}
}

// AddPublicHttpRoutes registers the routes that must work without a
// session.
func AddPublicHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg)

	group.POST("/auth/login", b.httpLogin)
}

// AddHttpRoutes registers the routes that require an authenticated caller.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg)

	group.POST("/auth/logout", b.httpLogout)
	group.GET("/auth/me", b.httpMe)
}
