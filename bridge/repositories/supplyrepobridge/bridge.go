// Package supplyrepobridge contains HTTP route registration for household
// supply requests and their status transitions.
package supplyrepobridge

import (
	"github.com/hearthkeep/hearthkeep/core/repositories/supplyrepo"
	"github.com/hearthkeep/hearthkeep/infrastructure/web"
	"github.com/hearthkeep/hearthkeep/sdk/logger"
)

// Config holds configuration for the Supply bridge.
type Config struct {
	Log        *logger.Logger
	Repository *supplyrepo.Repository
	Middleware []web.MidFunc
}

type bridge struct {
	supplyRepository *supplyrepo.Repository
}

func newBridge(cfg Config) *bridge {
	return &bridge{
		supplyRepository: cfg.Repository,
	}
}

// AddHttpRoutes registers all HTTP routes for Supply.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg)

	group.GET("/supplies", b.httpList, cfg.Middleware...)
	group.GET("/supplies/{supply_id}", b.httpGetByID, cfg.Middleware...)
	group.POST("/supplies", b.httpCreate, cfg.Middleware...)
	group.PUT("/supplies/{supply_id}", b.httpUpdate, cfg.Middleware...)
	group.DELETE("/supplies/{supply_id}", b.httpDelete, cfg.Middleware...)

	group.POST("/supplies/{supply_id}/transition", b.httpTransition, cfg.Middleware...)
}
