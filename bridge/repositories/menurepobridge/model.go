package menurepobridge

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hearthkeep/hearthkeep/core/repositories/menurepo"
	"github.com/hearthkeep/hearthkeep/sdk/validation"
)

// SetDayRequest plans a recipe for one calendar day. Writing the same day
// twice replaces the slot.
type SetDayRequest struct {
	Date     string  `json:"date"`
	RecipeID string  `json:"recipe_id"`
	Note     *string `json:"note"`
}

func (r SetDayRequest) Validate() error {
	if _, err := validation.ParseCalendarDate(r.Date); err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}
	if r.RecipeID == "" {
		return fmt.Errorf("missing required field: recipe_id")
	}
	return nil
}

func (r SetDayRequest) toRepo() menurepo.SetMenuEntry {
	day, _ := validation.ParseCalendarDate(r.Date)
	return menurepo.SetMenuEntry{
		WeekStart: menurepo.WeekStartOf(day),
		Weekday:   int(day.Weekday()),
		RecipeID:  r.RecipeID,
		Note:      r.Note,
	}
}

// WeekResponse returns the planned slots of one week.
type WeekResponse struct {
	WeekStart string               `json:"week_start"`
	Entries   []menurepo.MenuEntry `json:"entries"`
}

func newWeekResponse(weekStart time.Time, entries []menurepo.MenuEntry) WeekResponse {
	if entries == nil {
		entries = []menurepo.MenuEntry{}
	}
	return WeekResponse{
		WeekStart: validation.FormatCalendarDate(weekStart),
		Entries:   entries,
	}
}

func (w WeekResponse) Encode() ([]byte, string, error) {
	data, err := json.Marshal(w)
	return data, "application/json", err
}
