package calendarsync

import (
	"context"
	"errors"
	"fmt"

	"github.com/hearthkeep/hearthkeep/core/repositories"
	"github.com/hearthkeep/hearthkeep/core/repositories/leaverepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/menurepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/recipesrepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/syncstaterepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/tasksrepo"
	"github.com/hearthkeep/hearthkeep/core/repositories/usersrepo"
)

// EventSource maps one entity type to its desired calendar event. A source
// returns ok=false when the entity should have no event: the entity is
// gone, a task is done, leave is not approved.
type EventSource interface {
	EntityType() string
	Desired(ctx context.Context, entityID string) (Event, bool, error)
}

// TaskSource maps tasks to all-day events on their due date.
type TaskSource struct {
	tasks *tasksrepo.Repository
}

func NewTaskSource(tasks *tasksrepo.Repository) *TaskSource {
	return &TaskSource{tasks: tasks}
}

func (s *TaskSource) EntityType() string { return syncstaterepo.EntityTask }

func (s *TaskSource) Desired(ctx context.Context, entityID string) (Event, bool, error) {
	task, err := s.tasks.Get(ctx, entityID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return Event{}, false, nil
		}
		return Event{}, false, err
	}

	if task.Done {
		return Event{}, false, nil
	}

	description := ""
	if task.Notes != nil {
		description = *task.Notes
	}

	return Event{
		Summary:     "Task: " + task.Title,
		Description: description,
		Start:       task.DueDate,
		End:         task.DueDate.AddDate(0, 0, 1),
	}, true, nil
}

// LeaveSource maps approved leave requests to all-day span events.
type LeaveSource struct {
	leave *leaverepo.Repository
	users *usersrepo.Repository
}

func NewLeaveSource(leave *leaverepo.Repository, users *usersrepo.Repository) *LeaveSource {
	return &LeaveSource{leave: leave, users: users}
}

func (s *LeaveSource) EntityType() string { return syncstaterepo.EntityLeave }

func (s *LeaveSource) Desired(ctx context.Context, entityID string) (Event, bool, error) {
	request, err := s.leave.Get(ctx, entityID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return Event{}, false, nil
		}
		return Event{}, false, err
	}

	// Pending and denied leave never reach the calendar.
	if request.Status != leaverepo.StatusApproved {
		return Event{}, false, nil
	}

	who := request.UserID
	if user, err := s.users.Get(ctx, request.UserID); err == nil {
		who = user.Name
	}

	return Event{
		Summary:     fmt.Sprintf("Leave: %s (%s)", who, request.Type),
		Description: optional(request.Reason),
		Start:       request.StartDate,
		End:         request.EndDate.AddDate(0, 0, 1),
	}, true, nil
}

// MenuSource maps planned menu slots to all-day events titled by recipe.
type MenuSource struct {
	menu    *menurepo.Repository
	recipes *recipesrepo.Repository
}

func NewMenuSource(menu *menurepo.Repository, recipes *recipesrepo.Repository) *MenuSource {
	return &MenuSource{menu: menu, recipes: recipes}
}

func (s *MenuSource) EntityType() string { return syncstaterepo.EntityMenu }

func (s *MenuSource) Desired(ctx context.Context, entityID string) (Event, bool, error) {
	entry, err := s.menu.Get(ctx, entityID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return Event{}, false, nil
		}
		return Event{}, false, err
	}

	summary := "Dinner"
	if recipe, err := s.recipes.Get(ctx, entry.RecipeID); err == nil {
		summary = "Dinner: " + recipe.Name
	}

	day := entry.WeekStart.AddDate(0, 0, entry.Weekday)

	return Event{
		Summary:     summary,
		Description: optional(entry.Note),
		Start:       day,
		End:         day.AddDate(0, 0, 1),
	}, true, nil
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
