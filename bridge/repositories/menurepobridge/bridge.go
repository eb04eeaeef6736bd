// Package menurepobridge contains HTTP route registration for the weekly
// dinner menu. Slots are addressed by calendar day; the bridge resolves
// the day to its week and weekday.
package menurepobridge

import (
	"context"

	"github.com/hearthkeep/hearthkeep/core/repositories/menurepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/syncstaterepo"
	"github.com/hearthkeep/hearthkeep/infrastructure/web"
	"github.com/hearthkeep/hearthkeep/sdk/logger"
)

// Config holds configuration for the Menu bridge.
type Config struct {
	Log        *logger.Logger
	Repository *menurepo.Repository
	Sync       *syncstaterepo.Repository
	Middleware []web.MidFunc
}

type bridge struct {
	log            *logger.Logger
	menuRepository *menurepo.Repository
	sync           *syncstaterepo.Repository
}

func newBridge(cfg Config) *bridge {
	return &bridge{
		log:            cfg.Log,
		menuRepository: cfg.Repository,
		sync:           cfg.Sync,
	}
}

// AddHttpRoutes registers all HTTP routes for Menu.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg)

	group.GET("/menu/week", b.httpWeek, cfg.Middleware...)
	group.PUT("/menu/day", b.httpSetDay, cfg.Middleware...)
	group.DELETE("/menu/day", b.httpClearDay, cfg.Middleware...)
}

func (b *bridge) enqueueSync(ctx context.Context, entryID string) {
	if b.sync == nil {
		return
	}
	if err := b.sync.Enqueue(ctx, syncstaterepo.EntityMenu, entryID); err != nil {
		b.log.Error(ctx, "enqueue menu sync", "entry_id", entryID, "err", err)
	}
}
