package menurepobridge

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/hearthkeep/hearthkeep/bridge/scaffolding/errs"
	"github.com/hearthkeep/hearthkeep/bridge/scaffolding/fopbridge"
	"github.com/hearthkeep/hearthkeep/core/repositories"
	"github.com/hearthkeep/hearthkeep/core/repositories/menurepo"
	"github.com/hearthkeep/hearthkeep/infrastructure/web"
	"github.com/hearthkeep/hearthkeep/sdk/validation"
)

func (b *bridge) httpWeek(ctx context.Context, r *http.Request) web.Encoder {
	day, appErr := parseDateParam(r, time.Now())
	if appErr != nil {
		return appErr
	}

	entries, err := b.menuRepository.Week(ctx, day)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return newWeekResponse(menurepo.WeekStartOf(day), entries)
}

func (b *bridge) httpSetDay(ctx context.Context, r *http.Request) web.Encoder {
	var req SetDayRequest
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}
	if err := req.Validate(); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	entry, err := b.menuRepository.Set(ctx, req.toRepo())
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	b.enqueueSync(ctx, entry.EntryID)

	return fopbridge.NewRecordResponse(entry)
}

func (b *bridge) httpClearDay(ctx context.Context, r *http.Request) web.Encoder {
	day, appErr := parseDateParam(r, time.Time{})
	if appErr != nil {
		return appErr
	}
	if day.IsZero() {
		return errs.Newf(errs.InvalidArgument, "missing required parameter: date")
	}

	// Grab the slot's id before it goes away so its calendar event can be
	// cleaned up.
	entryID := ""
	entries, err := b.menuRepository.Week(ctx, day)
	if err != nil {
		return errs.New(errs.Internal, err)
	}
	for _, entry := range entries {
		if entry.Weekday == int(day.Weekday()) {
			entryID = entry.EntryID
			break
		}
	}

	if err := b.menuRepository.Clear(ctx, day, int(day.Weekday())); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errs.Newf(errs.NotFound, "no menu entry on %s", validation.FormatCalendarDate(day))
		}
		return errs.New(errs.Internal, err)
	}

	if entryID != "" {
		b.enqueueSync(ctx, entryID)
	}

	return web.NewNoResponse()
}

func parseDateParam(r *http.Request, fallback time.Time) (time.Time, *errs.Error) {
	raw := web.QueryParam(r, "date")
	if raw == "" {
		return fallback, nil
	}

	day, err := validation.ParseCalendarDate(raw)
	if err != nil {
		return time.Time{}, errs.Newf(errs.InvalidArgument, "invalid date: %s", raw)
	}
	return day, nil
}
