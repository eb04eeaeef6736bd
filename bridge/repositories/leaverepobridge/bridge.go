// Package leaverepobridge contains HTTP route registration for leave
// requests and balances. Members see their own requests; admins see all
// and make the approve/deny decisions.
package leaverepobridge

import (
	"context"

	"github.com/hearthkeep/hearthkeep/core/repositories/leaverepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/syncstaterepo"
	"github.com/hearthkeep/hearthkeep/infrastructure/web"
	"github.com/hearthkeep/hearthkeep/sdk/logger"
)

// Config holds configuration for the Leave bridge. AdminMiddleware guards
// the decision and allotment routes on top of the regular middleware.
type Config struct {
	Log             *logger.Logger
	Repository      *leaverepo.Repository
	Sync            *syncstaterepo.Repository
	Middleware      []web.MidFunc
	AdminMiddleware []web.MidFunc
}

type bridge struct {
	log             *logger.Logger
	leaveRepository *leaverepo.Repository
	sync            *syncstaterepo.Repository
}

func newBridge(cfg Config) *bridge {
	return &bridge{
		log:             cfg.Log,
		leaveRepository: cfg.Repository,
		sync:            cfg.Sync,
	}
}

// AddHttpRoutes registers all HTTP routes for Leave.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg)

	group.GET("/leave", b.httpList, cfg.Middleware...)
	group.GET("/leave/{leave_id}", b.httpGetByID, cfg.Middleware...)
	group.POST("/leave", b.httpCreate, cfg.Middleware...)
	group.DELETE("/leave/{leave_id}", b.httpDelete, cfg.Middleware...)

	group.GET("/leave/balance", b.httpOwnBalance, cfg.Middleware...)

	admin := append(append([]web.MidFunc{}, cfg.Middleware...), cfg.AdminMiddleware...)
	group.POST("/leave/{leave_id}/approve", b.httpApprove, admin...)
	group.POST("/leave/{leave_id}/deny", b.httpDeny, admin...)
	group.GET("/leave/balances", b.httpBalances, admin...)
	group.PUT("/leave/balances/{user_id}", b.httpSetAllotment, admin...)
}

func (b *bridge) enqueueSync(ctx context.Context, leaveID string) {
	if b.sync == nil {
		return
	}
	if err := b.sync.Enqueue(ctx, syncstaterepo.EntityLeave, leaveID); err != nil {
		b.log.Error(ctx, "enqueue leave sync", "leave_id", leaveID, "err", err)
	}
}
