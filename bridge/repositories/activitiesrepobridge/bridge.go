// Package activitiesrepobridge contains HTTP route registration for the
// child activity log.
package activitiesrepobridge

import (
	"github.com/hearthkeep/hearthkeep/core/repositories/activitiesrepo"
	"github.com/hearthkeep/hearthkeep/infrastructure/web"
	"github.com/hearthkeep/hearthkeep/sdk/logger"
)

// Config holds configuration for the Activity bridge.
type Config struct {
	Log        *logger.Logger
	Repository *activitiesrepo.Repository
	Middleware []web.MidFunc
}

type bridge struct {
	activityRepository *activitiesrepo.Repository
}

func newBridge(cfg Config) *bridge {
	return &bridge{
		activityRepository: cfg.Repository,
	}
}

// AddHttpRoutes registers all HTTP routes for Activity.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg)

	group.GET("/activities", b.httpList, cfg.Middleware...)
	group.GET("/activities/{activity_id}", b.httpGetByID, cfg.Middleware...)
	group.POST("/activities", b.httpCreate, cfg.Middleware...)
	group.DELETE("/activities/{activity_id}", b.httpDelete, cfg.Middleware...)
}
