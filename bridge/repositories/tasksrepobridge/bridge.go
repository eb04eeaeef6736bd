// Package tasksrepobridge contains HTTP route registration for tasks,
// including recurring batch creation, preview, and completion toggling.
package tasksrepobridge

import (
	"context"

	"github.com/hearthkeep/hearthkeep/core/repositories/syncstaterepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/tasksrepo"
	"github.com/hearthkeep/hearthkeep/infrastructure/web"
	"github.com/hearthkeep/hearthkeep/sdk/logger"
)

// Config holds configuration for the Task bridge.
type Config struct {
	Log        *logger.Logger
	Repository *tasksrepo.Repository
	Sync       *syncstaterepo.Repository
	Middleware []web.MidFunc
}

type bridge struct {
	log            *logger.Logger
	taskRepository *tasksrepo.Repository
	sync           *syncstaterepo.Repository
}

func newBridge(cfg Config) *bridge {
	return &bridge{
		log:            cfg.Log,
		taskRepository: cfg.Repository,
		sync:           cfg.Sync,
	}
}

// AddHttpRoutes registers all HTTP routes for Task.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg)

	group.GET("/tasks", b.httpList, cfg.Middleware...)
	group.GET("/tasks/{task_id}", b.httpGetByID, cfg.Middleware...)
	group.POST("/tasks", b.httpCreate, cfg.Middleware...)
	group.PUT("/tasks/{task_id}", b.httpUpdate, cfg.Middleware...)
	group.DELETE("/tasks/{task_id}", b.httpDelete, cfg.Middleware...)

	// Recurring batches
	group.POST("/tasks/recurring", b.httpCreateRecurring, cfg.Middleware...)
	group.POST("/tasks/recurring/preview", b.httpPreviewRecurring, cfg.Middleware...)
	group.DELETE("/tasks/{task_id}/future", b.httpDeleteFuture, cfg.Middleware...)

	// Completion toggles
	group.POST("/tasks/{task_id}/complete", b.httpComplete, cfg.Middleware...)
	group.POST("/tasks/{task_id}/uncomplete", b.httpUncomplete, cfg.Middleware...)
}

// enqueueSync queues a calendar sync job for a task. Sync is best-effort
// from the request path; failures are logged and swept up later.
func (b *bridge) enqueueSync(ctx context.Context, taskID string) {
	if b.sync == nil {
		return
	}
	if err := b.sync.Enqueue(ctx, syncstaterepo.EntityTask, taskID); err != nil {
		b.log.Error(ctx, "enqueue task sync", "task_id", taskID, "err", err)
	}
}
