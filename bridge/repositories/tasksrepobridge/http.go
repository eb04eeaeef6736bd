package tasksrepobridge

import (
	"context"
	"errors"
	"net/http"

	"github.com/hearthkeep/hearthkeep/bridge/scaffolding/errs"
	"github.com/hearthkeep/hearthkeep/bridge/scaffolding/fopbridge"
	"github.com/hearthkeep/hearthkeep/bridge/scaffolding/mid"
	"github.com/hearthkeep/hearthkeep/core/repositories"
	"github.com/hearthkeep/hearthkeep/core/repositories/tasksrepo"
	"github.com/hearthkeep/hearthkeep/core/scaffolding/fop"
	"github.com/hearthkeep/hearthkeep/infrastructure/web"
)

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	page, err := fop.ParsePageStringCursor(qp.Limit, qp.Cursor)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	filter, err := parseFilter(qp)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	orderBy := parseOrderBy(qp.Order)

	tasks, err := b.taskRepository.List(ctx, filter, orderBy, page)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	resp, err := fopbridge.NewPaginatedResponse(tasks, page, nextCursor(orderBy))
	if err != nil {
		return errs.New(errs.Internal, err)
	}
	return resp
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	taskID := web.Param(r, "task_id")

	task, err := b.taskRepository.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.Newf(errs.NotFound, "task %s not found", taskID)
		}
		return errs.New(errs.Internal, err)
	}

	return fopbridge.NewRecordResponse(task)
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	var req CreateTaskRequest
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	if err := req.Validate(); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	task, err := b.taskRepository.Create(ctx, req.toRepo(userID))
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	b.enqueueSync(ctx, task.TaskID)

	return fopbridge.NewRecordResponse(task)
}

func (b *bridge) httpCreateRecurring(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	var req RecurringTaskRequest
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	if err := req.Validate(); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tasks, err := b.taskRepository.CreateRecurring(ctx, req.toRepo(userID))
	if err != nil {
		switch {
		case errors.Is(err, tasksrepo.ErrEmptyExpansion):
			return errs.Newf(errs.InvalidArgument, "recurrence generates no dates in range")
		case errors.Is(err, tasksrepo.ErrSpanTooLarge):
			return errs.Newf(errs.InvalidArgument, "recurrence range is too large")
		}
		return errs.New(errs.Internal, err)
	}

	for _, task := range tasks {
		b.enqueueSync(ctx, task.TaskID)
	}

	return fopbridge.NewRecordsResponse(tasks)
}

func (b *bridge) httpPreviewRecurring(ctx context.Context, r *http.Request) web.Encoder {
	var req RecurringTaskRequest
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	if err := req.Validate(); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	preview, err := b.taskRepository.PreviewRecurring(req.toRepo(""))
	if err != nil {
		switch {
		case errors.Is(err, tasksrepo.ErrEmptyExpansion):
			return errs.Newf(errs.InvalidArgument, "recurrence generates no dates in range")
		case errors.Is(err, tasksrepo.ErrSpanTooLarge):
			return errs.Newf(errs.InvalidArgument, "recurrence range is too large")
		}
		return errs.New(errs.Internal, err)
	}

	return fopbridge.NewRecordResponse(preview)
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	taskID := web.Param(r, "task_id")

	var req UpdateTaskRequest
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	if err := req.Validate(); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	if err := b.taskRepository.Update(ctx, taskID, req.toRepo()); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.Newf(errs.NotFound, "task %s not found", taskID)
		}
		return errs.New(errs.Internal, err)
	}

	b.enqueueSync(ctx, taskID)

	return fopbridge.NewRecordID(taskID)
}

func (b *bridge) httpComplete(ctx context.Context, r *http.Request) web.Encoder {
	return b.setDone(ctx, web.Param(r, "task_id"), true)
}

func (b *bridge) httpUncomplete(ctx context.Context, r *http.Request) web.Encoder {
	return b.setDone(ctx, web.Param(r, "task_id"), false)
}

func (b *bridge) setDone(ctx context.Context, taskID string, done bool) web.Encoder {
	if err := b.taskRepository.SetDone(ctx, taskID, done); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.Newf(errs.NotFound, "task %s not found", taskID)
		}
		return errs.New(errs.Internal, err)
	}

	b.enqueueSync(ctx, taskID)

	return fopbridge.NewRecordID(taskID)
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	taskID := web.Param(r, "task_id")

	if err := b.taskRepository.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.Newf(errs.NotFound, "task %s not found", taskID)
		}
		return errs.New(errs.Internal, err)
	}

	b.enqueueSync(ctx, taskID)

	return web.NewNoResponse()
}

func (b *bridge) httpDeleteFuture(ctx context.Context, r *http.Request) web.Encoder {
	taskID := web.Param(r, "task_id")

	deleted, err := b.taskRepository.DeleteFuture(ctx, taskID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return errs.Newf(errs.NotFound, "task %s not found", taskID)
		case errors.Is(err, tasksrepo.ErrNotRecurring):
			return errs.Newf(errs.FailedPrecondition, "task %s is not part of a recurring batch", taskID)
		}
		return errs.New(errs.Internal, err)
	}

	// The deleted rows' calendar events are cleaned up by the next sweep;
	// the named task gets a direct job in case it was in the range.
	b.enqueueSync(ctx, taskID)

	return fopbridge.NewRecordResponse(map[string]int64{"deleted": deleted})
}
